package httpx

import (
	"time"

	authdomain "github.com/jcmexdev/storefront/internal/auth/domain"
	cartdomain "github.com/jcmexdev/storefront/internal/cart/domain"
	catalogdomain "github.com/jcmexdev/storefront/internal/catalog/domain"
	orderdomain "github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/order/placementlog"
)

func mapProduct(p catalogdomain.Product) ProductResponse {
	return ProductResponse{
		ProductID:       p.ID,
		ProductName:     p.Name,
		ProductCategory: p.Category,
		ProductImage:    p.Image,
		ProductPrice:    p.Price,
	}
}

func mapPage(p catalogdomain.Page) PageResponse {
	products := make([]ProductResponse, len(p.Products))
	for i, prod := range p.Products {
		products[i] = mapProduct(prod)
	}
	return PageResponse{
		Total:       p.Total,
		PerPage:     p.PerPage,
		Offset:      p.Offset,
		To:          p.To,
		LastPage:    p.LastPage,
		CurrentPage: p.CurrentPage,
		From:        p.From,
		Products:    products,
	}
}

func mapCartItems(items []cartdomain.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, len(items))
	for i, it := range items {
		out[i] = CartItemResponse{
			ID:           it.ID,
			Username:     it.Username,
			ProductID:    it.ProductID,
			ProductImage: it.Image,
			ProductName:  it.Name,
			ProductPrice: it.UnitPrice,
			Quantity:     it.Quantity,
			TotalPrice:   it.TotalPrice,
			CreatedAt:    it.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

func mapOrderItems(req []OrderItemRequest) []orderdomain.PlaceOrderItem {
	items := make([]orderdomain.PlaceOrderItem, len(req))
	for i, it := range req {
		items[i] = orderdomain.PlaceOrderItem{
			Username:      it.Username,
			ProductID:     it.ProductID,
			Image:         it.ProductImage,
			Name:          it.ProductName,
			UnitPrice:     it.ProductPrice,
			Quantity:      it.Quantity,
			TotalPrice:    it.TotalPrice,
			PaymentMethod: it.PaymentMethod,
			Address:       it.Address,
			City:          it.City,
		}
	}
	return items
}

func mapOrders(orders []orderdomain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderResponse{
			OrderID:       o.ID,
			BatchID:       o.BatchID,
			Username:      o.Username,
			ProductID:     o.ProductID,
			ProductImage:  o.Image,
			ProductName:   o.Name,
			ProductPrice:  o.UnitPrice,
			Quantity:      o.Quantity,
			TotalPrice:    o.TotalPrice,
			PaymentMethod: o.PaymentMethod,
			Address:       o.Address,
			City:          o.City,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

func mapPlacement(p orderdomain.Placement) PlacementResponse {
	return PlacementResponse{
		BatchID:  p.BatchID,
		Replayed: p.Replayed,
		Orders:   mapOrders(p.Orders),
	}
}

func mapPlacementLog(entries []placementlog.Entry) []PlacementLogEntryResponse {
	out := make([]PlacementLogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = PlacementLogEntryResponse{
			BatchID:      e.BatchID,
			Username:     e.Username,
			Status:       string(e.Status),
			ItemCount:    e.ItemCount,
			ErrorMessage: e.ErrorMessage,
			TraceID:      e.TraceID,
			SpanID:       e.SpanID,
			UpdatedAt:    e.UpdatedAt.Format(time.RFC3339Nano),
		}
	}
	return out
}

func mapProfile(p authdomain.Profile) ProfileResponse {
	return ProfileResponse{
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		MobileNumber: p.MobileNumber,
	}
}
