package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource yields the current bearer token, or "" when the session
// holds none. Calls carry the token whenever one is present; the
// server decides which endpoints require it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     *slog.Logger
}

func NewClient(baseURL string, tokens TokenSource, log *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "commerce-api",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		tokens:  tokens,
		breaker: breaker,
		log:     log,
	}
}

// do issues one JSON request. body and out may be nil; non-2xx replies
// come back as *APIError with the server detail message when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// postForm issues a form-encoded POST; the token endpoint is the only
// caller.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("commerce api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}

	c.log.Debug("commerce api error",
		"status", resp.StatusCode,
		"detail", apiErr.Detail,
		"path", resp.Request.URL.Path,
	)
	return apiErr
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
