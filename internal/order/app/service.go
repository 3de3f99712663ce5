package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/order/placementlog"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/money"
)

const maxIdempotencyKeyLen = 128

type Service struct {
	repo      OrderRepo
	logRepo   placementlog.Repository
	cache     cache.Cache
	replayTTL time.Duration
	tracer    trace.Tracer
	newBatch  func() string
}

func NewService(repo OrderRepo, logRepo placementlog.Repository, c cache.Cache, replayTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		logRepo:   logRepo,
		cache:     c,
		replayTTL: replayTTL,
		tracer:    otel.Tracer("github.com/jcmexdev/storefront/internal/order"),
		newBatch:  uuid.NewString,
	}
}

// PlaceOrder turns a batch of cart items into orders. When idempotencyKey is
// set and the same user already placed a batch under it, that placement is
// returned with Replayed set and nothing is written.
func (s *Service) PlaceOrder(ctx context.Context, items []domain.PlaceOrderItem, idempotencyKey string) (domain.Placement, error) {
	ctx, span := s.tracer.Start(ctx, "order.PlaceOrder")
	defer span.End()

	if err := validateBatch(items, idempotencyKey); err != nil {
		recordError(span, err)
		return domain.Placement{}, err
	}
	username := items[0].Username
	span.SetAttributes(
		attribute.String("username", username),
		attribute.Int("order.item_count", len(items)),
		attribute.Bool("order.idempotent", idempotencyKey != ""),
	)

	if idempotencyKey != "" {
		placement, found, err := s.lookupReplay(ctx, username, idempotencyKey)
		if err != nil {
			recordError(span, err)
			return domain.Placement{}, err
		}
		if found {
			s.saveLog(ctx, placementlog.NewEntry(ctx, placement.BatchID, username, placementlog.StatusReplayed, len(placement.Orders), nil))
			slog.InfoContext(ctx, "order placement replayed", "username", username, "batch_id", placement.BatchID)
			return placement, nil
		}
	}

	batchID := s.newBatch()
	span.SetAttributes(attribute.String("order.batch_id", batchID))
	s.saveLog(ctx, placementlog.NewEntry(ctx, batchID, username, placementlog.StatusStarted, len(items), nil))

	orders, err := s.repo.Place(ctx, PlaceParams{BatchID: batchID, IdempotencyKey: idempotencyKey, Items: items})
	if err != nil {
		recordError(span, err)
		status := placementlog.StatusFailed
		if apperr.KindOf(err) == apperr.KindConflict {
			status = placementlog.StatusRejected
		}
		s.saveLog(ctx, placementlog.NewEntry(ctx, batchID, username, status, len(items), err))
		slog.ErrorContext(ctx, "order placement failed", "username", username, "batch_id", batchID, "status", status, "error", err)
		return domain.Placement{}, err
	}

	placement := domain.Placement{BatchID: batchID, Username: username, Orders: orders}
	s.saveLog(ctx, placementlog.NewEntry(ctx, batchID, username, placementlog.StatusCompleted, len(orders), nil))
	if idempotencyKey != "" {
		s.cachePlacement(ctx, idempotencyKey, placement)
	}

	slog.InfoContext(ctx, "order placed", "username", username, "batch_id", batchID, "orders", len(orders))
	return placement, nil
}

func (s *Service) ListOrders(ctx context.Context, username string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.ListOrders", trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	if strings.TrimSpace(username) == "" {
		return nil, apperr.Validation("order.ListOrders", "username is required")
	}
	orders, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// PlacementHistory returns the audit trail of one placement batch.
func (s *Service) PlacementHistory(ctx context.Context, batchID string) ([]placementlog.Entry, error) {
	const op = "order.PlacementHistory"
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attribute.String("order.batch_id", batchID)))
	defer span.End()

	if strings.TrimSpace(batchID) == "" {
		return nil, apperr.Validation(op, "batch_id is required")
	}
	entries, err := s.logRepo.History(ctx, batchID)
	if err != nil {
		recordError(span, err)
		return nil, apperr.Storage(op, err)
	}
	if len(entries) == 0 {
		return nil, apperr.NotFound(op, "placement %s not found", batchID)
	}
	return entries, nil
}

// lookupReplay checks the replay cache first and falls back to the order
// store, which is authoritative.
func (s *Service) lookupReplay(ctx context.Context, username, key string) (domain.Placement, bool, error) {
	cacheKey := s.replayKey(username, key)
	if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
		slog.WarnContext(ctx, "replay cache read failed", "username", username, "error", err)
	} else if cached != "" {
		var p domain.Placement
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			p.Replayed = true
			return p, true, nil
		}
	}

	orders, err := s.repo.FindByIdempotencyKey(ctx, username, key)
	if err != nil {
		return domain.Placement{}, false, err
	}
	if len(orders) == 0 {
		return domain.Placement{}, false, nil
	}

	placement := domain.Placement{BatchID: orders[0].BatchID, Username: username, Orders: orders}
	s.cachePlacement(ctx, key, placement)
	placement.Replayed = true
	return placement, true, nil
}

func (s *Service) cachePlacement(ctx context.Context, key string, p domain.Placement) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.replayKey(p.Username, key), b, s.replayTTL); err != nil {
		slog.WarnContext(ctx, "replay cache write failed", "username", p.Username, "batch_id", p.BatchID, "error", err)
	}
}

func (s *Service) replayKey(username, key string) string {
	return s.cache.GenerateKey("place-order", username+":"+key)
}

// saveLog never fails a placement; the orders table is the source of truth.
func (s *Service) saveLog(ctx context.Context, entry *placementlog.Entry) {
	if err := s.logRepo.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to save placement log", "batch_id", entry.BatchID, "status", entry.Status, "error", err)
	}
}

func validateBatch(items []domain.PlaceOrderItem, key string) error {
	const op = "order.PlaceOrder"
	if len(items) == 0 {
		return apperr.Validation(op, "at least one item is required")
	}
	if len(key) > maxIdempotencyKeyLen {
		return apperr.Validation(op, "idempotency key longer than %d characters", maxIdempotencyKeyLen)
	}

	username := items[0].Username
	if strings.TrimSpace(username) == "" {
		return apperr.Validation(op, "username is required")
	}
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it.Username != username {
			return apperr.Validation(op, "all items must belong to one user")
		}
		if it.ProductID <= 0 {
			return apperr.Validation(op, "product_id must be positive")
		}
		if _, dup := seen[it.ProductID]; dup {
			return apperr.Validation(op, "product %d appears more than once", it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
		if it.Quantity < 1 {
			return apperr.Validation(op, "product %d: quantity must be at least 1", it.ProductID)
		}
		if _, err := money.ToCents(it.UnitPrice); err != nil {
			return apperr.Validation(op, "product %d: product_price: %v", it.ProductID, err)
		}
		if _, err := money.ToCents(it.TotalPrice); err != nil {
			return apperr.Validation(op, "product %d: total_price: %v", it.ProductID, err)
		}
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
