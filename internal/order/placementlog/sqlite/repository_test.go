package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jcmexdev/storefront/internal/order/placementlog"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

func TestSaveAndHistory(t *testing.T) {
	ctx := context.Background()
	db, err := sqlitedb.Open(ctx, sqlitedb.Config{Path: filepath.Join(t.TempDir(), "log.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := NewRepository(db)

	entries := []*placementlog.Entry{
		placementlog.NewEntry(ctx, "batch-1", "alice", placementlog.StatusStarted, 2, nil),
		placementlog.NewEntry(ctx, "batch-2", "bob", placementlog.StatusStarted, 1, nil),
		placementlog.NewEntry(ctx, "batch-1", "alice", placementlog.StatusRejected, 2, errors.New("cart item missing")),
	}
	for _, e := range entries {
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	history, err := repo.History(ctx, "batch-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Status != placementlog.StatusStarted || history[1].Status != placementlog.StatusRejected {
		t.Fatalf("unexpected order %v, %v", history[0].Status, history[1].Status)
	}
	if history[1].ErrorMessage != "cart item missing" || history[1].ItemCount != 2 {
		t.Fatalf("unexpected entry %+v", history[1])
	}
	if !history[0].UpdatedAt.Equal(entries[0].UpdatedAt) {
		t.Fatalf("updated_at round trip failed")
	}

	none, err := repo.History(ctx, "unknown")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no entries, got %d (%v)", len(none), err)
	}
}
