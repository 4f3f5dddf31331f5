// Package classify resolves a detected file type to a destination category
// and root directory, and provides the classify stage handler.
package classify
