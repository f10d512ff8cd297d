package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalog *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
