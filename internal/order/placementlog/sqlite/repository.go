// Package sqlite provides a SQLite-backed placementlog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront/internal/order/placementlog"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save appends an entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *placementlog.Entry) error {
	const q = `
		INSERT INTO placement_logs
			(batch_id, username, status, item_count, error_message, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.BatchID,
		entry.Username,
		string(entry.Status),
		entry.ItemCount,
		entry.ErrorMessage,
		entry.TraceID,
		entry.SpanID,
		sqlitedb.FormatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save placement log for %q: %w", entry.BatchID, err)
	}
	return nil
}

// History returns every entry of a batch in the order it was written.
func (r *Repository) History(ctx context.Context, batchID string) ([]placementlog.Entry, error) {
	const q = `
		SELECT batch_id, username, status, item_count, error_message, trace_id, span_id, updated_at
		FROM   placement_logs
		WHERE  batch_id = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q, batchID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", batchID, err)
	}
	defer rows.Close()

	var entries []placementlog.Entry
	for rows.Next() {
		var (
			e         placementlog.Entry
			updatedAt string
		)
		if err := rows.Scan(&e.BatchID, &e.Username, &e.Status, &e.ItemCount,
			&e.ErrorMessage, &e.TraceID, &e.SpanID, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan placement log: %w", err)
		}
		if e.UpdatedAt, err = sqlitedb.ParseTime(updatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
