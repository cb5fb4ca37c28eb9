package driven

import (
	"context"
	"time"
)

// RunRecord is the persisted summary of one batch-processing run.
type RunRecord struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is when the batch began.
	StartedAt time.Time

	// Duration is the batch's wall-clock time.
	Duration time.Duration

	// Processed is the number of notes successfully processed.
	Processed int

	// Errors holds the per-note failure messages.
	Errors []string
}

// RunStore persists batch-run history for the statistics surface.
// It is never consulted by the processing path itself.
type RunStore interface {
	// SaveRun records a completed batch.
	SaveRun(ctx context.Context, run RunRecord) error

	// ListRuns returns the most recent runs, newest first, up to limit.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases the underlying storage.
	Close() error
}
