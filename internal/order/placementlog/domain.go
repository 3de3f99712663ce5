// Package placementlog records every order placement attempt as an
// append-only audit trail that can be joined with traces through trace_id.
package placementlog

import (
	"context"
	"time"
)

type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusReplayed  Status = "REPLAYED"
	StatusRejected  Status = "REJECTED"
	StatusFailed    Status = "FAILED"
)

// Entry is a single row in the placement_logs table.
type Entry struct {
	BatchID      string
	Username     string
	Status       Status
	ItemCount    int
	ErrorMessage string

	// TraceID and SpanID identify the span active when the entry was written.
	TraceID string
	SpanID  string

	UpdatedAt time.Time
}

// Repository appends entries; it never updates them.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	// History returns the entries of one batch in the order they were written.
	History(ctx context.Context, batchID string) ([]Entry, error)
}
