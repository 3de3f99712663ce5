// Package sqlite implements the cart CartRepo on the storefront database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcmexdev/storefront/internal/cart/app"
	"github.com/jcmexdev/storefront/internal/cart/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/money"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

const cartColumns = `id, username, product_id, product_image, product_name,
	product_price_cents, quantity, total_price_cents, created_at`

type CartRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db, now: time.Now}
}

func (r *CartRepo) Insert(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	const q = `
		INSERT INTO cart
			(username, product_id, product_image, product_name,
			 product_price_cents, quantity, total_price_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	unit, err := money.ToCents(item.UnitPrice)
	if err != nil {
		return domain.CartItem{}, apperr.Validation("cart.Insert", "product_price: %v", err)
	}
	total, err := money.ToCents(item.TotalPrice)
	if err != nil {
		return domain.CartItem{}, apperr.Validation("cart.Insert", "total_price: %v", err)
	}

	item.CreatedAt = r.now().UTC()
	res, err := r.db.ExecContext(ctx, q,
		item.Username, item.ProductID, item.Image, item.Name,
		unit, item.Quantity, total, sqlitedb.FormatTime(item.CreatedAt),
	)
	if err != nil {
		return domain.CartItem{}, apperr.Storage("cart.Insert", fmt.Errorf("sqlite: insert cart item: %w", err))
	}
	if item.ID, err = res.LastInsertId(); err != nil {
		return domain.CartItem{}, apperr.Storage("cart.Insert", err)
	}
	return item, nil
}

// Adjust checks and updates the rows of one pair in a single transaction.
// The new quantity and total are computed by the UPDATE itself so concurrent
// adjustments never overwrite each other.
func (r *CartRepo) Adjust(ctx context.Context, adj app.Adjustment) ([]domain.CartItem, error) {
	const op = "cart.Adjust"

	var items []domain.CartItem
	err := sqlitedb.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			count                      int
			minQty, minPrice, maxPrice sql.NullInt64
			maxTotal                   sql.NullInt64
		)
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*), MIN(quantity), MIN(product_price_cents), MAX(product_price_cents),
			       MAX(total_price_cents)
			FROM cart WHERE username = ? AND product_id = ?`,
			adj.Username, adj.ProductID,
		).Scan(&count, &minQty, &minPrice, &maxPrice, &maxTotal)
		if err != nil {
			return fmt.Errorf("sqlite: read cart item: %w", err)
		}
		if count == 0 {
			return apperr.NotFound(op, "product %d is not in %s's cart", adj.ProductID, adj.Username)
		}

		if adj.UnitPrice.Valid {
			want, err := money.ToCents(adj.UnitPrice.Decimal)
			if err != nil {
				return apperr.Validation(op, "product_price: %v", err)
			}
			if minPrice.Int64 != want || maxPrice.Int64 != want {
				return apperr.Validation(op, "product_price does not match the price in the cart")
			}
		}
		if minQty.Int64+int64(adj.Delta) < 1 {
			return apperr.Validation(op, "quantity cannot go below 1")
		}
		// SQLite turns an overflowing integer expression into a REAL.
		if adj.Delta > 0 {
			bound := money.FromCents(maxTotal.Int64).Add(money.Line(money.FromCents(maxPrice.Int64), adj.Delta))
			if _, err := money.ToCents(bound); err != nil {
				return apperr.Validation(op, "total_price: %v", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE cart
			SET quantity          = quantity + ?,
			    total_price_cents = total_price_cents + product_price_cents * ?
			WHERE username = ? AND product_id = ?`,
			adj.Delta, adj.Delta, adj.Username, adj.ProductID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: update cart quantity: %w", err)
		}

		items, err = listTx(ctx, tx, `WHERE username = ? AND product_id = ?`, adj.Username, adj.ProductID)
		return err
	})
	if err != nil {
		return nil, apperr.Classify(op, err)
	}
	return items, nil
}

func (r *CartRepo) Remove(ctx context.Context, username string, productID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE username = ? AND product_id = ?`, username, productID)
	if err != nil {
		return 0, apperr.Storage("cart.Remove", fmt.Errorf("sqlite: delete cart item: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Storage("cart.Remove", err)
	}
	return n, nil
}

func (r *CartRepo) List(ctx context.Context, username string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+cartColumns+` FROM cart WHERE username = ? ORDER BY id`, username)
	if err != nil {
		return nil, apperr.Storage("cart.List", fmt.Errorf("sqlite: list cart: %w", err))
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, apperr.Storage("cart.List", err)
	}
	return items, nil
}

func listTx(ctx context.Context, tx *sql.Tx, where string, args ...any) ([]domain.CartItem, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+cartColumns+` FROM cart `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list cart: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for rows.Next() {
		var (
			it          domain.CartItem
			unit, total int64
			createdAt   string
		)
		if err := rows.Scan(&it.ID, &it.Username, &it.ProductID, &it.Image, &it.Name,
			&unit, &it.Quantity, &total, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan cart item: %w", err)
		}
		it.UnitPrice = money.FromCents(unit)
		it.TotalPrice = money.FromCents(total)

		var err error
		if it.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
