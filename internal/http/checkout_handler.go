package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/payment"
)

type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	cart        *cart.Manager
}

func NewCheckoutHandler(coordinator *checkout.Coordinator, cartManager *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		coordinator: coordinator,
		cart:        cartManager,
	}
}

type SubmitCheckoutRequestDTO struct {
	Shipping checkout.ShippingDetails `json:"shipping"`
	Card     payment.Card             `json:"card"`
}

type CheckoutResponseDTO struct {
	OrderID int64  `json:"order_id,omitempty"`
	Stage   string `json:"stage"`
	Detail  string `json:"detail,omitempty"`
}

// GET /api/checkout
func (h *CheckoutHandler) Stage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		Stage: h.coordinator.Stage().String(),
	})
}

// POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// An empty cart never enters the checkout state machine; the UI is
	// told to go back to the cart instead.
	if h.cart.TotalItems() == 0 {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	var req SubmitCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.coordinator.Submit(r.Context(), req.Shipping, req.Card)
	if err != nil {
		if errors.Is(err, checkout.ErrPaymentInconclusive) {
			// Not failed, not succeeded: the order exists, the cart is
			// kept, and no further polling happens here.
			respondJSON(w, http.StatusAccepted, CheckoutResponseDTO{
				OrderID: result.OrderID,
				Stage:   result.Stage.String(),
				Detail:  err.Error(),
			})
			return
		}
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: result.OrderID,
		Stage:   result.Stage.String(),
	})
}
