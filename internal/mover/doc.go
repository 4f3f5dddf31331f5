// Package mover relocates classified files into their category directories.
// Destination names are claimed with exclusive creates so concurrent workers
// never collide, same-device moves are atomic renames, and cross-device moves
// copy through a verified temporary file before the source is removed.
package mover
