package services

import (
	"errors"
	"fmt"
	"strings"

	"curator/internal/queue"
)

var (
	// ErrVanished marks a source file that disappeared between the watch
	// notification and processing. Non-fatal; the item is skipped.
	ErrVanished = errors.New("source vanished")
	// ErrConflictExhausted marks a destination namespace where no free
	// candidate name could be claimed.
	ErrConflictExhausted = errors.New("conflict resolution exhausted")
	// ErrVerifyFailed marks a cross-device copy whose verification did not
	// match the source. The source is always retained.
	ErrVerifyFailed = errors.New("copy verification failed")
	// ErrDestination marks an uncreatable or unwritable destination.
	ErrDestination = errors.New("destination error")
	// ErrExternalTool marks a failure in an external conversion tool.
	ErrExternalTool = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a stage error to the queue status the organizer should
// persist after the stage fails. A vanished source is not a failure: the item
// is recorded as skipped and the watch loop moves on.
func FailureStatus(err error) queue.Status {
	if errors.Is(err, ErrVanished) {
		return queue.StatusSkipped
	}
	return queue.StatusFailed
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
