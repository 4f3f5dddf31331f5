// Package preprocess runs optional per-file transformations before a file is
// classified: filename normalization and HEIC conversion. Stages are applied
// in registration order and a failing stage leaves the file on its previous
// path rather than aborting the pipeline.
package preprocess
