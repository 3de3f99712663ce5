package httpx

import "github.com/shopspring/decimal"

type ProductResponse struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
	ProductImage    string          `json:"product_image"`
	ProductPrice    decimal.Decimal `json:"product_price"`
}

type PageResponse struct {
	Total       int               `json:"total"`
	PerPage     int               `json:"per_page"`
	Offset      int               `json:"offset"`
	To          int               `json:"to"`
	LastPage    int               `json:"last_page"`
	CurrentPage int               `json:"current_page"`
	From        int               `json:"from"`
	Products    []ProductResponse `json:"products"`
}

type AddToCartRequest struct {
	Username     string          `json:"username"`
	ProductID    int64           `json:"product_id"`
	ProductImage string          `json:"product_image"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// AdjustQuantityRequest omits product_price to adjust by the price stored
// with the cart item.
type AdjustQuantityRequest struct {
	Username     string              `json:"username"`
	ProductID    int64               `json:"product_id"`
	ProductPrice decimal.NullDecimal `json:"product_price"`
	Step         int                 `json:"step,omitempty"`
}

type RemoveItemRequest struct {
	Username  string `json:"username"`
	ProductID int64  `json:"product_id"`
}

type CartItemResponse struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	ProductID    int64           `json:"product_id"`
	ProductImage string          `json:"product_image"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    string          `json:"created_at"`
}

type RemoveItemResponse struct {
	Removed int64 `json:"removed"`
}

type OrderItemRequest struct {
	Username      string          `json:"username"`
	ProductID     int64           `json:"product_id"`
	ProductImage  string          `json:"product_image"`
	ProductName   string          `json:"product_name"`
	ProductPrice  decimal.Decimal `json:"product_price"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
}

type OrderResponse struct {
	OrderID       int64           `json:"order_id"`
	BatchID       string          `json:"batch_id"`
	Username      string          `json:"username"`
	ProductID     int64           `json:"product_id"`
	ProductImage  string          `json:"product_image"`
	ProductName   string          `json:"product_name"`
	ProductPrice  decimal.Decimal `json:"product_price"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type PlacementResponse struct {
	BatchID  string          `json:"batch_id"`
	Replayed bool            `json:"replayed"`
	Orders   []OrderResponse `json:"orders"`
}

type PlacementLogEntryResponse struct {
	BatchID      string `json:"batch_id"`
	Username     string `json:"username"`
	Status       string `json:"status"`
	ItemCount    int    `json:"item_count"`
	ErrorMessage string `json:"error_message,omitempty"`
	TraceID      string `json:"trace_id,omitempty"`
	SpanID       string `json:"span_id,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
}

type ProfileResponse struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
