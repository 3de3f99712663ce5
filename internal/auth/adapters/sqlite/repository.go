// Package sqlite implements the auth UserRepo on the storefront database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/storefront/internal/auth/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, now: time.Now}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	const q = `
		INSERT INTO users (username, password_hash, first_name, last_name, mobile_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		u.Username, string(u.PasswordHash), u.FirstName, u.LastName, u.MobileNumber,
		sqlitedb.FormatTime(r.now()),
	)
	if sqlitedb.IsUniqueViolation(err) {
		return apperr.Conflict("auth.Create", "username %q is already taken", u.Username)
	}
	if err != nil {
		return apperr.Storage("auth.Create", fmt.Errorf("sqlite: insert user: %w", err))
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `
		SELECT username, password_hash, first_name, last_name, mobile_number, created_at
		FROM users WHERE username = ?`

	var (
		u         domain.User
		hash      string
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, q, username).
		Scan(&u.Username, &hash, &u.FirstName, &u.LastName, &u.MobileNumber, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("auth.FindByUsername", "user %q not found", username)
	}
	if err != nil {
		return domain.User{}, apperr.Storage("auth.FindByUsername", fmt.Errorf("sqlite: get user: %w", err))
	}

	u.PasswordHash = []byte(hash)
	if u.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
		return domain.User{}, apperr.Storage("auth.FindByUsername", err)
	}
	return u, nil
}
