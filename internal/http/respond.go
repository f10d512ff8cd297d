package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/gateway"
	"github.com/fjod/go_storefront/internal/payment"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondFailure maps component errors onto the JSON error envelope.
// Every failed operation produces a discrete, human-readable message;
// nothing fails silently.
func respondFailure(w http.ResponseWriter, err error) {
	var apiErr *gateway.APIError
	var payErr *payment.GatewayError
	var stageErr *checkout.StageError

	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.As(err, &payErr):
		respondError(w, http.StatusPaymentRequired, "payment_failed", payErr.Message)
	case errors.As(err, &stageErr):
		respondStageFailure(w, stageErr)
	case errors.As(err, &apiErr):
		respondJSON(w, apiErr.Status, ErrorResponse{
			Error: apiErr.Error(),
			Code:  "upstream_error",
		})
	case errors.Is(err, checkout.ErrInProgress):
		respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	default:
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
	}
}

func respondStageFailure(w http.ResponseWriter, stageErr *checkout.StageError) {
	status := http.StatusBadGateway
	switch stageErr.Stage {
	case checkout.StageValidating:
		status = http.StatusBadRequest
	case checkout.StageConfirmingPayment:
		status = http.StatusPaymentRequired
	}

	respondJSON(w, status, ErrorResponse{
		Error:   stageErr.Err.Error(),
		Code:    "checkout_failed",
		Details: stageErr.Stage.String(),
	})
}
