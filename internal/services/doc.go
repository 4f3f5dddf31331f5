// Package services defines shared utilities consumed by the pipeline stage
// handlers.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent queue statuses (failed vs skipped).
//   - Context helpers that stamp queue item IDs and stage names for logging.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
