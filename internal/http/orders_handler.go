package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

// OrdersAPI is the slice of the commerce API the order pages need.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type OrdersHandler struct {
	orders OrdersAPI
}

func NewOrdersHandler(orders OrdersAPI) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// GET /api/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/orders/{id}
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
