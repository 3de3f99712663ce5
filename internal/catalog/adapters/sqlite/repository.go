// Package sqlite implements the catalog ProductRepo on the storefront database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/money"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

const productColumns = `product_id, product_name, product_category, product_image, product_price_cents`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Find counts and reads in one transaction so total and rows agree.
func (r *ProductRepo) Find(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Product, int, error) {
	where, args := whereClause(filter)

	var (
		products []domain.Product
		total    int
	)
	err := sqlitedb.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("sqlite: count products: %w", err)
		}
		if total == 0 || offset >= total {
			return nil
		}

		q := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY product_id LIMIT ? OFFSET ?`
		rows, err := tx.QueryContext(ctx, q, append(args, limit, offset)...)
		if err != nil {
			return fmt.Errorf("sqlite: list products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, apperr.Storage("catalog.Find", err)
	}
	return products, total, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("catalog.Get", "product %d not found", id)
	}
	if err != nil {
		return domain.Product{}, apperr.Storage("catalog.Get", err)
	}
	return p, nil
}

func (r *ProductRepo) Upsert(ctx context.Context, products []domain.Product) (int, error) {
	const q = `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name        = excluded.product_name,
			product_category    = excluded.product_category,
			product_image       = excluded.product_image,
			product_price_cents = excluded.product_price_cents`

	err := sqlitedb.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("sqlite: prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			cents, err := money.ToCents(p.Price)
			if err != nil {
				return fmt.Errorf("product %d: %w", p.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Category, p.Image, cents); err != nil {
				return fmt.Errorf("sqlite: upsert product %d: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperr.Storage("catalog.Upsert", err)
	}
	return len(products), nil
}

func whereClause(filter domain.Filter) (string, []any) {
	switch filter.Kind {
	case domain.FilterCategory:
		return ` WHERE product_category = ?`, []any{filter.Term}
	case domain.FilterName:
		return ` WHERE product_name LIKE ? ESCAPE '\'`, []any{"%" + escapeLike(filter.Term) + "%"}
	default:
		return "", nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p     domain.Product
		cents int64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Category, &p.Image, &cents); err != nil {
		return domain.Product{}, err
	}
	p.Price = money.FromCents(cents)
	return p, nil
}
