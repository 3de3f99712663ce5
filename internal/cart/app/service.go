package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/cart/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/money"
)

type Service struct {
	repo   CartRepo
	tracer trace.Tracer
}

func NewService(repo CartRepo) *Service {
	return &Service{
		repo:   repo,
		tracer: otel.Tracer("github.com/jcmexdev/storefront/internal/cart"),
	}
}

type AddItemRequest struct {
	Username   string
	ProductID  int64
	Image      string
	Name       string
	Price      decimal.Decimal
	Quantity   int
	TotalPrice decimal.Decimal
}

type AdjustRequest struct {
	Username  string
	ProductID int64
	UnitPrice decimal.NullDecimal
	Direction domain.Direction
	// Step defaults to 1 when zero.
	Step int
}

// AddItem inserts a new cart row. Adding a product already in the cart adds
// another row for it.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (domain.CartItem, error) {
	const op = "cart.AddItem"
	ctx, span := s.startSpan(ctx, "cart.AddItem", req.Username, req.ProductID)
	defer span.End()

	if err := validateKey(op, req.Username, req.ProductID); err != nil {
		return domain.CartItem{}, err
	}
	if req.Quantity < 1 {
		return domain.CartItem{}, apperr.Validation(op, "quantity must be at least 1")
	}
	if _, err := money.ToCents(req.Price); err != nil {
		return domain.CartItem{}, apperr.Validation(op, "product_price: %v", err)
	}
	if !req.TotalPrice.Equal(money.Line(req.Price, req.Quantity)) {
		return domain.CartItem{}, apperr.Validation(op, "total_price must equal product_price × quantity")
	}

	item, err := s.repo.Insert(ctx, domain.CartItem{
		Username:   req.Username,
		ProductID:  req.ProductID,
		Image:      req.Image,
		Name:       req.Name,
		UnitPrice:  req.Price,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		recordError(span, err)
		slog.ErrorContext(ctx, "failed to add cart item", "username", req.Username, "product_id", req.ProductID, "error", err)
		return domain.CartItem{}, err
	}

	slog.InfoContext(ctx, "cart item added", "username", req.Username, "product_id", req.ProductID, "quantity", req.Quantity)
	return item, nil
}

// AdjustQuantity moves the quantity of every row of the pair by step in the
// given direction and returns the updated rows. A decrement that would leave
// any row below 1 is rejected and nothing is written.
func (s *Service) AdjustQuantity(ctx context.Context, req AdjustRequest) ([]domain.CartItem, error) {
	const op = "cart.AdjustQuantity"
	ctx, span := s.startSpan(ctx, "cart.AdjustQuantity", req.Username, req.ProductID)
	defer span.End()
	span.SetAttributes(attribute.String("cart.direction", req.Direction.String()))

	if err := validateKey(op, req.Username, req.ProductID); err != nil {
		return nil, err
	}
	if !req.Direction.Valid() {
		return nil, apperr.Validation(op, "unknown direction")
	}
	step := req.Step
	if step == 0 {
		step = 1
	}
	if step < 1 {
		return nil, apperr.Validation(op, "step must be at least 1")
	}
	if req.UnitPrice.Valid {
		if _, err := money.ToCents(req.UnitPrice.Decimal); err != nil {
			return nil, apperr.Validation(op, "product_price: %v", err)
		}
	}

	items, err := s.repo.Adjust(ctx, Adjustment{
		Username:  req.Username,
		ProductID: req.ProductID,
		Delta:     int(req.Direction) * step,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		recordError(span, err)
		slog.WarnContext(ctx, "cart adjustment rejected",
			"username", req.Username, "product_id", req.ProductID,
			"direction", req.Direction.String(), "error", err)
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes every row of the pair. Removing an absent item succeeds.
func (s *Service) RemoveItem(ctx context.Context, username string, productID int64) (int64, error) {
	ctx, span := s.startSpan(ctx, "cart.RemoveItem", username, productID)
	defer span.End()

	if err := validateKey("cart.RemoveItem", username, productID); err != nil {
		return 0, err
	}
	n, err := s.repo.Remove(ctx, username, productID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	slog.InfoContext(ctx, "cart item removed", "username", username, "product_id", productID, "rows", n)
	return n, nil
}

func (s *Service) ListCart(ctx context.Context, username string) ([]domain.CartItem, error) {
	ctx, span := s.tracer.Start(ctx, "cart.ListCart", trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	if strings.TrimSpace(username) == "" {
		return nil, apperr.Validation("cart.ListCart", "username is required")
	}
	items, err := s.repo.List(ctx, username)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (s *Service) startSpan(ctx context.Context, name, username string, productID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("username", username),
		attribute.Int64("product.id", productID),
	))
}

func validateKey(op, username string, productID int64) error {
	if strings.TrimSpace(username) == "" {
		return apperr.Validation(op, "username is required")
	}
	if productID <= 0 {
		return apperr.Validation(op, "product_id must be positive")
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
