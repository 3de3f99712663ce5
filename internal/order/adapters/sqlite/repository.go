// Package sqlite implements the order OrderRepo on the storefront database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcmexdev/storefront/internal/order/app"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/money"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

const orderColumns = `order_id, batch_id, COALESCE(idempotency_key, ''), username, product_id,
	product_image, product_name, product_price_cents, quantity, total_price_cents,
	payment_method, address, city, created_at`

type OrderRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db, now: time.Now}
}

func (r *OrderRepo) Place(ctx context.Context, params app.PlaceParams) ([]domain.Order, error) {
	const (
		op      = "order.Place"
		insertQ = `
			INSERT INTO orders
				(batch_id, idempotency_key, username, product_id, product_image, product_name,
				 product_price_cents, quantity, total_price_cents, payment_method, address, city, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		consumeQ = `DELETE FROM cart WHERE username = ? AND product_id = ?`
	)

	key := sql.NullString{String: params.IdempotencyKey, Valid: params.IdempotencyKey != ""}
	createdAt := r.now().UTC()
	orders := make([]domain.Order, 0, len(params.Items))

	err := sqlitedb.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		insert, err := tx.PrepareContext(ctx, insertQ)
		if err != nil {
			return fmt.Errorf("sqlite: prepare order insert: %w", err)
		}
		defer insert.Close()

		for _, it := range params.Items {
			unit, err := money.ToCents(it.UnitPrice)
			if err != nil {
				return apperr.Validation(op, "product %d: product_price: %v", it.ProductID, err)
			}
			total, err := money.ToCents(it.TotalPrice)
			if err != nil {
				return apperr.Validation(op, "product %d: total_price: %v", it.ProductID, err)
			}

			res, err := insert.ExecContext(ctx,
				params.BatchID, key, it.Username, it.ProductID, it.Image, it.Name,
				unit, it.Quantity, total, it.PaymentMethod, it.Address, it.City,
				sqlitedb.FormatTime(createdAt),
			)
			if err != nil {
				return fmt.Errorf("sqlite: insert order for product %d: %w", it.ProductID, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("sqlite: order id: %w", err)
			}

			orders = append(orders, domain.Order{
				ID:             id,
				BatchID:        params.BatchID,
				IdempotencyKey: params.IdempotencyKey,
				Username:       it.Username,
				ProductID:      it.ProductID,
				Image:          it.Image,
				Name:           it.Name,
				UnitPrice:      it.UnitPrice,
				Quantity:       it.Quantity,
				TotalPrice:     it.TotalPrice,
				PaymentMethod:  it.PaymentMethod,
				Address:        it.Address,
				City:           it.City,
				CreatedAt:      createdAt,
			})
		}

		for _, it := range params.Items {
			res, err := tx.ExecContext(ctx, consumeQ, it.Username, it.ProductID)
			if err != nil {
				return fmt.Errorf("sqlite: consume cart item %d: %w", it.ProductID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("sqlite: consume cart item %d: %w", it.ProductID, err)
			}
			if n == 0 {
				return fmt.Errorf("product %d: %w", it.ProductID, domain.ErrCartItemMissing)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Classify(op, err)
	}
	return orders, nil
}

func (r *OrderRepo) FindByIdempotencyKey(ctx context.Context, username, key string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders
		WHERE username = ? AND idempotency_key = ? ORDER BY order_id`
	return r.query(ctx, "order.FindByIdempotencyKey", q, username, key)
}

func (r *OrderRepo) ListByUser(ctx context.Context, username string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE username = ? ORDER BY order_id`
	return r.query(ctx, "order.ListByUser", q, username)
}

func (r *OrderRepo) query(ctx context.Context, op, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("sqlite: query orders: %w", err))
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o           domain.Order
			unit, total int64
			createdAt   string
		)
		if err := rows.Scan(&o.ID, &o.BatchID, &o.IdempotencyKey, &o.Username, &o.ProductID,
			&o.Image, &o.Name, &unit, &o.Quantity, &total,
			&o.PaymentMethod, &o.Address, &o.City, &createdAt); err != nil {
			return nil, apperr.Storage(op, fmt.Errorf("sqlite: scan order: %w", err))
		}
		o.UnitPrice = money.FromCents(unit)
		o.TotalPrice = money.FromCents(total)
		if o.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
			return nil, apperr.Storage(op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}
	return orders, nil
}
