// Package daemon composes the watcher and organizer into the long-running
// curator process and enforces single-instance execution with a lock file.
package daemon
