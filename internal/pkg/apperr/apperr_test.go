package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	t.Run("wrapped validation", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", Validation("cart.AddItem", "quantity must be positive"))
		if got := KindOf(err); got != KindValidation {
			t.Fatalf("expected %s, got %s", KindValidation, got)
		}
	})

	t.Run("plain error -> internal", func(t *testing.T) {
		if got := KindOf(errors.New("boom")); got != KindInternal {
			t.Fatalf("expected %s, got %s", KindInternal, got)
		}
	})

	t.Run("storage keeps driver error", func(t *testing.T) {
		err := Storage("sqlite: insert", sql.ErrConnDone)
		if !errors.Is(err, sql.ErrConnDone) {
			t.Fatalf("expected driver error in chain, got %v", err)
		}
		if KindOf(err) != KindStorage {
			t.Fatalf("expected storage kind")
		}
	})

	t.Run("nil storage error", func(t *testing.T) {
		if Storage("op", nil) != nil {
			t.Fatalf("expected nil")
		}
	})
}

func TestSentinelMatching(t *testing.T) {
	sentinel := &Error{Kind: KindConflict, Message: "cart item already ordered or removed"}
	err := fmt.Errorf("tx: %w", &Error{Kind: KindConflict, Op: "order.PlaceOrder", Message: sentinel.Message})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected errors.Is to match sentinel")
	}
	if errors.Is(err, &Error{Kind: KindConflict, Message: "other"}) {
		t.Fatalf("different message must not match")
	}
}

func TestMessageHidesInternals(t *testing.T) {
	if got := Message(errors.New("dial tcp 10.0.0.1: refused")); got != "internal server error" {
		t.Fatalf("leaked internal error: %q", got)
	}
	if got := Message(Storage("op", errors.New("disk I/O error"))); got != "storage operation failed" {
		t.Fatalf("unexpected storage message: %q", got)
	}
	if got := Message(NotFound("op", "product %d not found", 7)); got != "product 7 not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:    http.StatusNotFound,
		KindValidation:  http.StatusBadRequest,
		KindConflict:    http.StatusConflict,
		KindAuthFailure: http.StatusUnauthorized,
		KindStorage:     http.StatusServiceUnavailable,
		KindInternal:    http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	if Classify("op", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	conflict := Conflict("inner", "taken")
	if got := Classify("outer", fmt.Errorf("tx err: %w", conflict)); KindOf(got) != KindConflict {
		t.Fatalf("expected conflict to survive, got %v", got)
	}
	if got := Classify("outer", errors.New("database is locked")); KindOf(got) != KindStorage {
		t.Fatalf("expected storage, got %v", got)
	}
}
