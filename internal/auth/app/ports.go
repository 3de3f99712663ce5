package app

import (
	"context"

	"github.com/jcmexdev/storefront/internal/auth/domain"
)

type UserRepo interface {
	// Create fails with a conflict error when the username is taken.
	Create(ctx context.Context, user domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}
