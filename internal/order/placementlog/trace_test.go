package placementlog

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNewEntryWithoutSpan(t *testing.T) {
	e := NewEntry(context.Background(), "batch-1", "alice", StatusRejected, 2, errors.New("cart item missing"))
	if e.TraceID != "" || e.SpanID != "" {
		t.Fatalf("expected empty trace ids, got %q/%q", e.TraceID, e.SpanID)
	}
	if e.ErrorMessage != "cart item missing" || e.ItemCount != 2 || e.UpdatedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestNewEntryWithSpan(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	e := NewEntry(ctx, "batch-1", "alice", StatusStarted, 1, nil)
	if e.TraceID != "4bf92f3577b34da6a3ce929d0e0e4736" || e.SpanID != "00f067aa0ba902b7" {
		t.Fatalf("unexpected trace ids %q/%q", e.TraceID, e.SpanID)
	}
	if e.ErrorMessage != "" {
		t.Fatalf("expected no error message, got %q", e.ErrorMessage)
	}
}
