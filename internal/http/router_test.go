package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(app *testApp) *chi.Mux {
	return NewRouter(RouterDeps{
		Sessions:    app.sessions,
		Cart:        app.cart,
		Catalog:     app.catalog,
		Coordinator: app.coordinator(),
		Orders:      app.stub,
		Timeout:     5 * time.Second,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func shopper() *domain.User {
	return &domain.User{ID: 7, Email: "jane@example.com", FullName: "Jane Doe", Role: domain.RoleCustomer}
}

func admin() *domain.User {
	return &domain.User{ID: 1, Email: "root@example.com", FullName: "Root", Role: domain.RoleAdmin}
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(&commerceStub{})
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ProtectedRoutesBeforeRestore(t *testing.T) {
	app := newTestApp(&commerceStub{})
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "session_not_ready", decodeError(t, rec).Code)
}

func TestRouter_ProtectedRoutesUnauthenticated(t *testing.T) {
	app := newTestApp(&commerceStub{})
	require.NoError(t, app.sessions.Restore(context.Background()))
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/api/orders", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Code)
}

func TestRouter_ProductsArePublic(t *testing.T) {
	app := newTestApp(&commerceStub{products: []domain.Product{{ID: 1, Name: "Keyboard"}}})
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRequiresRole(t *testing.T) {
	app := newTestApp(&commerceStub{})
	app.signIn(shopper())
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Code)
}

func TestRouter_AdminAllowsAdmins(t *testing.T) {
	app := newTestApp(&commerceStub{})
	app.signIn(admin())
	router := newTestRouter(app)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
