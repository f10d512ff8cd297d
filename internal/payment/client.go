// Package payment talks to the hosted payment processor. The only
// operation the storefront needs is confirming a server-created
// payment intent with locally collected card details.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// StatusSucceeded is the only confirmation status that counts as a
// completed payment. Anything else is either a processor error or an
// intermediate state the caller has to treat as unresolved.
const StatusSucceeded = "succeeded"

type Card struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
}

type BillingDetails struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type ConfirmResult struct {
	IntentID string `json:"id"`
	Status   string `json:"status"`
}

func (r *ConfirmResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// GatewayError is a processor-reported refusal; Message is shown to
// the user verbatim.
type GatewayError struct {
	Message string `json:"message"`
}

func (e *GatewayError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		log: log,
	}
}

type confirmRequest struct {
	ClientSecret string `json:"client_secret"`
	PaymentMethod struct {
		Card           Card           `json:"card"`
		BillingDetails BillingDetails `json:"billing_details"`
	} `json:"payment_method"`
}

// ConfirmIntent submits the intent's client secret plus card and
// billing details. A processor refusal comes back as *GatewayError;
// transport problems as plain errors.
func (c *Client) ConfirmIntent(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*ConfirmResult, error) {
	var in confirmRequest
	in.ClientSecret = clientSecret
	in.PaymentMethod.Card = card
	in.PaymentMethod.BillingDetails = billing

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents/confirm", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		ConfirmResult
		Error *GatewayError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	if body.Error != nil {
		c.log.Debug("payment refused", "message", body.Error.Message)
		return nil, body.Error
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("payment gateway error: status %d", resp.StatusCode)
	}

	return &body.ConfirmResult, nil
}
