package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cart    *cart.Manager
	catalog *catalog.Service
}

func NewCartHandler(cartManager *cart.Manager, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{
		cart:    cartManager,
		catalog: catalogService,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

func (h *CartHandler) state() CartResponseDTO {
	return CartResponseDTO{
		Items:      h.cart.Items(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state())
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 {
		// Below-minimum quantity is a no-op, not an error.
		respondJSON(w, http.StatusOK, h.state())
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	if err := h.cart.AddItem(r.Context(), *product, req.Quantity); err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.state())
}

// PUT /api/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondJSON(w, http.StatusOK, h.state())
		return
	}

	if err := h.cart.SetQuantity(r.Context(), itemID, req.Quantity); err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

// DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), itemID); err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}
