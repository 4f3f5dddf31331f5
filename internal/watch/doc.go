// Package watch observes the watch directory for new files and enqueues them
// once their contents have settled. Browsers and download managers write
// files incrementally, so arrival events are coalesced per path and a path is
// enqueued only after its size has held still for a full settle window.
package watch
