package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "nested", "test.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenAppliesSchemaTwice(t *testing.T) {
	db := openTestDB(t)
	if err := applySchema(context.Background(), db); err != nil {
		t.Fatalf("second schema apply failed: %v", err)
	}
	for _, table := range []string{"products", "cart", "orders", "users", "placement_logs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insert := `INSERT INTO users (username, password_hash, created_at) VALUES (?, 'x', ?)`

	t.Run("commit", func(t *testing.T) {
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "alice", FormatTime(time.Now()))
			return err
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
		assertUsers(t, db, 1)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "bob", FormatTime(time.Now())); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		assertUsers(t, db, 1)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "alice", FormatTime(time.Now()))
			return err
		})
		if !IsUniqueViolation(err) {
			t.Fatalf("expected unique violation, got %v", err)
		}
	})
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 30, 0, 123, time.UTC)
	got, err := ParseTime(FormatTime(now))
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("expected %s, got %s", now, got)
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	if IsUniqueViolation(errors.New("duplicate key")) {
		t.Fatalf("plain errors are not sqlite constraint errors")
	}
	if IsUniqueViolation(nil) {
		t.Fatalf("nil is not a violation")
	}
}

func assertUsers(t *testing.T, db *sql.DB, want int) {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != want {
		t.Fatalf("expected %d users, got %d", want, n)
	}
}
