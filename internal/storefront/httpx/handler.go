package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authapp "github.com/jcmexdev/storefront/internal/auth/app"
	cartapp "github.com/jcmexdev/storefront/internal/cart/app"
	cartdomain "github.com/jcmexdev/storefront/internal/cart/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
)

// maxBodyBytes caps request bodies; order batches are the largest payload.
const maxBodyBytes = 1 << 20

// Handler serves the storefront HTTP API.
type Handler struct {
	catalog CatalogService
	cart    CartService
	orders  OrderService
	auth    AuthService
}

func NewHandler(catalog CatalogService, cart CartService, orders OrderService, auth AuthService) *Handler {
	return &Handler{
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		auth:    auth,
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Home(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page))
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	pageNum, err := parsePage(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	page, err := h.catalog.ByCategory(r.Context(), chi.URLParam(r, "category"), pageNum)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	pageNum, err := parsePage(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	page, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"), pageNum)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page))
}

// Product responds with an array holding the product, or an empty array when
// it does not exist.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		writeAppError(w, r, apperr.Validation("http.Product", "product_id must be an integer"))
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if apperr.KindOf(err) == apperr.KindNotFound {
		writeJSON(w, http.StatusOK, []ProductResponse{})
		return
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, []ProductResponse{mapProduct(p)})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.cart.AddItem(r.Context(), cartapp.AddItemRequest{
		Username:   req.Username,
		ProductID:  req.ProductID,
		Image:      req.ProductImage,
		Name:       req.ProductName,
		Price:      req.ProductPrice,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCartItems([]cartdomain.CartItem{item})[0])
}

func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.ListCart(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartItems(items))
}

func (h *Handler) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustQuantity(w, r, cartdomain.Increment)
}

func (h *Handler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustQuantity(w, r, cartdomain.Decrement)
}

func (h *Handler) adjustQuantity(w http.ResponseWriter, r *http.Request, dir cartdomain.Direction) {
	var req AdjustQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.cart.AdjustQuantity(r.Context(), cartapp.AdjustRequest{
		Username:  req.Username,
		ProductID: req.ProductID,
		UnitPrice: req.ProductPrice,
		Direction: dir,
		Step:      req.Step,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartItems(items))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req RemoveItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.cart.RemoveItem(r.Context(), req.Username, req.ProductID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RemoveItemResponse{Removed: n})
}

// PlaceOrder takes a JSON array of cart items. A repeated X-Idempotency-Key
// returns the earlier placement with 200 instead of 201.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req []OrderItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	idempKey := interceptors.IdempotencyKey(r.Context())
	slog.InfoContext(r.Context(), "placing order",
		"request_id", interceptors.RequestID(r.Context()),
		"items", len(req),
		"idempotent", idempKey != "",
	)

	placement, err := h.orders.PlaceOrder(r.Context(), mapOrderItems(req), idempKey)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	status := http.StatusCreated
	if placement.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, mapPlacement(placement))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrders(orders))
}

func (h *Handler) PlacementLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.orders.PlacementHistory(r.Context(), chi.URLParam(r, "batch_id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPlacementLog(entries))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.auth.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProfile(profile))
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.auth.CreateAccount(r.Context(), authapp.SignupRequest{
		Username:     req.Username,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProfile(profile))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePage reads the page query parameter. A missing page is the first
// page; values below 1 are clamped by the catalog service.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("http.parsePage", "page must be an integer")
	}
	return page, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// writeAppError maps err to a status code. Unclassified and storage errors
// are logged since their details never reach the client.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal || kind == apperr.KindStorage {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", interceptors.RequestID(r.Context()),
			"error", err,
		)
	}
	writeError(w, apperr.HTTPStatus(kind), string(kind), apperr.Message(err))
}
