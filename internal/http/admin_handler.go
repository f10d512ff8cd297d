package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AdminOrdersAPI is the slice of the commerce API the admin surface
// needs on top of the catalog service.
type AdminOrdersAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type AdminHandler struct {
	catalog *catalog.Service
	orders  AdminOrdersAPI
}

func NewAdminHandler(catalogService *catalog.Service, orders AdminOrdersAPI) *AdminHandler {
	return &AdminHandler{
		catalog: catalogService,
		orders:  orders,
	}
}

type DashboardResponseDTO struct {
	ProductCount  int             `json:"product_count"`
	OrderCount    int             `json:"order_count"`
	PendingOrders int             `json:"pending_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		orders   []domain.Order
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		products, err = h.catalog.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = h.orders.ListOrders(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondFailure(w, err)
		return
	}

	resp := DashboardResponseDTO{
		ProductCount: len(products),
		OrderCount:   len(orders),
		TotalRevenue: decimal.Zero,
	}
	for _, order := range orders {
		if order.Status == domain.OrderStatusPending {
			resp.PendingOrders++
		}
		if order.Status != domain.OrderStatusCancelled {
			resp.TotalRevenue = resp.TotalRevenue.Add(order.TotalAmount)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in gateway.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// PUT /api/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	var in gateway.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.Update(r.Context(), id, in)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type UpdateOrderStatusRequestDTO struct {
	Status domain.OrderStatus `json:"status"`
}

// PUT /api/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return
	}

	var req UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		respondFailure(w, err)
		return
	}

	// Forward-only transitions, with cancellation as the only escape.
	if !order.Status.CanTransitionTo(req.Status) {
		respondError(w, http.StatusConflict, "invalid_transition",
			"cannot move order from "+order.Status.String()+" to "+req.Status.String())
		return
	}

	updated, err := h.orders.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
