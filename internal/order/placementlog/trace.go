package placementlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo returns the hex trace and span ids of the active span, or
// empty strings when ctx carries none.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an entry stamped with the trace of ctx.
//
//	entry := placementlog.NewEntry(ctx, batchID, "alice", placementlog.StatusStarted, 3, nil)
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, batchID, username string, status Status, itemCount int, cause error) *Entry {
	ti := ExtractTraceInfo(ctx)

	var msg string
	if cause != nil {
		msg = cause.Error()
	}

	return &Entry{
		BatchID:      batchID,
		Username:     username,
		Status:       status,
		ItemCount:    itemCount,
		ErrorMessage: msg,
		TraceID:      ti.TraceID,
		SpanID:       ti.SpanID,
		UpdatedAt:    time.Now().UTC(),
	}
}
