package driving

import (
	"context"
	"time"
)

// BatchResult summarises one batch-processing run.
type BatchResult struct {
	// Processed is the number of notes successfully processed.
	Processed int

	// Errors holds one message per failed note.
	Errors []string

	// Duration is the batch's wall-clock time.
	Duration time.Duration
}

// Success reports whether the batch completed without per-note failures.
func (r *BatchResult) Success() bool {
	return len(r.Errors) == 0
}

// BatchProcessor runs the note-processing pipeline over all eligible
// source notes. At most one batch runs at a time; concurrent calls are
// rejected, not queued.
type BatchProcessor interface {
	// ProcessAll processes every eligible note and returns the batch
	// summary. Returns domain.ErrBatchInProgress (with a zero-count
	// result) when a batch is already running.
	ProcessAll(ctx context.Context) (*BatchResult, error)

	// DryRun lists the notes ProcessAll would process, without calling
	// the AI backend or writing anything.
	DryRun(ctx context.Context) ([]string, error)
}
