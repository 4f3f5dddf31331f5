// Package organizer drives queued files through the processing stages:
// preprocess, classify, move. A pool of workers claims ready items with
// atomic status transitions, so each file advances through the stages in
// order while different files process concurrently.
package organizer
