package httpx

import (
	"context"

	authapp "github.com/jcmexdev/storefront/internal/auth/app"
	authdomain "github.com/jcmexdev/storefront/internal/auth/domain"
	cartapp "github.com/jcmexdev/storefront/internal/cart/app"
	cartdomain "github.com/jcmexdev/storefront/internal/cart/domain"
	catalogdomain "github.com/jcmexdev/storefront/internal/catalog/domain"
	orderdomain "github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/order/placementlog"
)

type CatalogService interface {
	Home(ctx context.Context) (catalogdomain.Page, error)
	ByCategory(ctx context.Context, category string, page int) (catalogdomain.Page, error)
	Search(ctx context.Context, query string, page int) (catalogdomain.Page, error)
	GetProduct(ctx context.Context, id int64) (catalogdomain.Product, error)
}

type CartService interface {
	AddItem(ctx context.Context, req cartapp.AddItemRequest) (cartdomain.CartItem, error)
	AdjustQuantity(ctx context.Context, req cartapp.AdjustRequest) ([]cartdomain.CartItem, error)
	RemoveItem(ctx context.Context, username string, productID int64) (int64, error)
	ListCart(ctx context.Context, username string) ([]cartdomain.CartItem, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, items []orderdomain.PlaceOrderItem, idempotencyKey string) (orderdomain.Placement, error)
	ListOrders(ctx context.Context, username string) ([]orderdomain.Order, error)
	PlacementHistory(ctx context.Context, batchID string) ([]placementlog.Entry, error)
}

type AuthService interface {
	CreateAccount(ctx context.Context, req authapp.SignupRequest) (authdomain.Profile, error)
	VerifyCredentials(ctx context.Context, username, password string) (authdomain.Profile, error)
}
