package domain

import "github.com/jcmexdev/storefront/internal/pkg/apperr"

// ErrCartItemMissing rejects a placement whose item is no longer in the
// user's cart, which is also how a retried placement is detected.
var ErrCartItemMissing = &apperr.Error{
	Kind:    apperr.KindConflict,
	Message: "cart item is no longer in the cart",
}
