package queue

import "time"

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending       Status = "pending"
	StatusPreprocessing Status = "preprocessing"
	StatusPreprocessed  Status = "preprocessed"
	StatusClassifying   Status = "classifying"
	StatusClassified    Status = "classified"
	StatusMoving        Status = "moving"
	StatusCompleted     Status = "completed"
	StatusSkipped       Status = "skipped"
	StatusFailed        Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusPreprocessing,
	StatusPreprocessed,
	StatusClassifying,
	StatusClassified,
	StatusMoving,
	StatusCompleted,
	StatusSkipped,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// IsValid reports whether the status is one of the known lifecycle values.
func (s Status) IsValid() bool {
	_, ok := statusSet[s]
	return ok
}

// IsTerminal reports whether the item needs no further processing.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusSkipped || s == StatusFailed
}

var processingStatuses = map[Status]struct{}{
	StatusPreprocessing: {},
	StatusClassifying:   {},
	StatusMoving:        {},
}

type statusTransition struct {
	from Status
	to   Status
}

// Rollbacks applied when a worker dies mid-stage: the item returns to the
// status that feeds the stage so the next run can pick it up again.
var stageRollbackTransitions = []statusTransition{
	{from: StatusPreprocessing, to: StatusPending},
	{from: StatusClassifying, to: StatusPreprocessed},
	{from: StatusMoving, to: StatusClassified},
}

// MoveKind distinguishes a same-device rename from the copy fallback.
type MoveKind string

const (
	MoveKindAtomic MoveKind = "atomic"
	MoveKindCopy   MoveKind = "copy"
)

// Provenance records how the file type was determined.
type Provenance string

const (
	ProvenanceSignature Provenance = "signature"
	ProvenanceExtension Provenance = "extension"
	ProvenanceUnknown   Provenance = "unknown"
)

// Item represents one file moving through the pipeline, persisted in SQLite.
type Item struct {
	ID           int64
	SourcePath   string
	WorkingPath  string
	Status       Status
	TypeLabel    string
	Provenance   Provenance
	Category     string
	Destination  string
	FinalPath    string
	MoveKind     MoveKind
	RenameSuffix string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Skipped    int
	Failed     int
}
