package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/money"
)

// Page sizes are fixed per view to bound response size.
const (
	HomePageSize    = 24
	CategoryPerPage = 30
	SearchPerPage   = 30
)

type Service struct {
	repo       ProductRepo
	cache      cache.Cache
	productTTL time.Duration
	tracer     trace.Tracer
}

func NewService(repo ProductRepo, c cache.Cache, productTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		cache:      c,
		productTTL: productTTL,
		tracer:     otel.Tracer("github.com/jcmexdev/storefront/internal/catalog"),
	}
}

// Home returns the first HomePageSize products of the unfiltered catalog.
func (s *Service) Home(ctx context.Context) (domain.Page, error) {
	return s.Paginate(ctx, domain.Filter{Kind: domain.FilterNone}, 1, HomePageSize)
}

func (s *Service) ByCategory(ctx context.Context, category string, page int) (domain.Page, error) {
	filter := domain.Filter{Kind: domain.FilterCategory, Term: NormalizeTerm(category)}
	return s.Paginate(ctx, filter, page, CategoryPerPage)
}

func (s *Service) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	filter := domain.Filter{Kind: domain.FilterName, Term: NormalizeTerm(query)}
	return s.Paginate(ctx, filter, page, SearchPerPage)
}

// Paginate returns one window of the filtered catalog. Pages below 1 are
// clamped to 1 and pages above domain.MaxPage are rejected. A filter whose
// term is blank yields an empty page.
func (s *Service) Paginate(ctx context.Context, filter domain.Filter, page, perPage int) (domain.Page, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Paginate")
	defer span.End()

	if perPage <= 0 {
		return domain.Page{}, apperr.Validation("catalog.Paginate", "per page must be positive")
	}
	page = ClampPage(page)
	if page > domain.MaxPage {
		return domain.Page{}, apperr.Validation("catalog.Paginate", "page must not exceed %d", domain.MaxPage)
	}
	span.SetAttributes(
		attribute.Int("catalog.filter_kind", int(filter.Kind)),
		attribute.String("catalog.term", filter.Term),
		attribute.Int("catalog.page", page),
	)

	if filter.Empty() {
		return domain.NewPage(nil, 0, page, perPage), nil
	}

	products, total, err := s.repo.Find(ctx, filter, perPage, domain.Offset(page, perPage))
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(products, total, page, perPage), nil
}

// GetProduct reads through the product cache. Cache failures only cost a
// database read.
func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if id <= 0 {
		return domain.Product{}, apperr.Validation("catalog.GetProduct", "product_id must be positive")
	}

	key := s.productKey(id)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
	} else if cached != "" {
		var p domain.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return p, nil
		}
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if b, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, key, b, s.productTTL); err != nil {
			slog.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
		}
	}
	return p, nil
}

// Import validates and upserts products, then drops their cached copies.
// Categories are stored normalized so category pages match them. It is the only catalog writer and is not
// reachable from the HTTP surface.
func (s *Service) Import(ctx context.Context, products []domain.Product) (int, error) {
	const op = "catalog.Import"
	if len(products) == 0 {
		return 0, apperr.Validation(op, "no products to import")
	}

	seen := make(map[int64]struct{}, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return 0, apperr.Validation(op, "product %d: product_id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return 0, apperr.Validation(op, "product %d: duplicate product_id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" {
			return 0, apperr.Validation(op, "product %d: name and category are required", p.ID)
		}
		if _, err := money.ToCents(p.Price); err != nil {
			return 0, apperr.Validation(op, "product %d: price: %v", p.ID, err)
		}
		products[i].Category = NormalizeTerm(p.Category)
	}

	n, err := s.repo.Upsert(ctx, products)
	if err != nil {
		return 0, err
	}

	keys := make([]string, len(products))
	for i, p := range products {
		keys[i] = s.productKey(p.ID)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "products", len(keys), "error", err)
	}
	return n, nil
}

func (s *Service) productKey(id int64) string {
	return s.cache.GenerateKey("product", strconv.FormatInt(id, 10))
}

// ClampPage maps every page below 1 to the first page.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
