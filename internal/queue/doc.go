// Package queue persists the per-file processing state in SQLite.
//
// Every file the watcher notices becomes one queue item. Workers claim items
// with an atomic status transition and advance them through the pipeline
// statuses; the row doubles as the outcome record once the item reaches a
// terminal status. Completed rows are operational state only and can be
// dropped with ClearCompleted.
package queue
