// Package cart keeps the client-side view of the shopping cart. The
// server is the source of truth: the cache is always the result of the
// last successful fetch, never a local prediction.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// API is the slice of the commerce API the cart needs.
type API interface {
	CartItems(ctx context.Context) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (*domain.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

type Manager struct {
	api API
	log *slog.Logger

	mu    sync.RWMutex
	items []domain.CartItem
}

func NewManager(api API, log *slog.Logger) *Manager {
	return &Manager{
		api: api,
		log: log,
	}
}

// Items returns a copy of the cached cart lines.
func (m *Manager) Items() []domain.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]domain.CartItem, len(m.items))
	copy(items, m.items)
	return items
}

// TotalItems is the sum of cached quantities.
func (m *Manager) TotalItems() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, item := range m.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums quantity times the snapshot price embedded in each
// line, never a freshly fetched product price.
func (m *Manager) TotalPrice() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, item := range m.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Refresh replaces the cache with the server's cart.
func (m *Manager) Refresh(ctx context.Context) error {
	items, err := m.api.CartItems(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

// AddItem follows the two-step protocol: mutate on the server, then
// refetch to rebase the cache. A failed mutation leaves the cache
// untouched. A quantity below 1 is a local no-op.
func (m *Manager) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if _, err := m.api.AddCartItem(ctx, product.ID, quantity); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return m.Refresh(ctx)
}

// SetQuantity mutates one line's quantity then rebases. A quantity
// below 1 is a local no-op.
func (m *Manager) SetQuantity(ctx context.Context, itemID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if _, err := m.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return m.Refresh(ctx)
}

func (m *Manager) RemoveItem(ctx context.Context, itemID int64) error {
	if err := m.api.RemoveCartItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return m.Refresh(ctx)
}

// Clear wipes the server cart. A full wipe has no partial-state
// ambiguity, so the cache empties optimistically without a refetch.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.api.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	m.Reset()
	return nil
}

// Reset empties the cache locally with no server call. Used when the
// session ends and after a completed checkout, where the order record
// is the durable account of what was purchased.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
}

// HandleIdentityChange is registered as a session listener: becoming
// authenticated triggers a full fetch, becoming unauthenticated drops
// the cache. These transitions are the only sync triggers.
func (m *Manager) HandleIdentityChange(ctx context.Context, user *domain.User) {
	if user == nil {
		m.Reset()
		return
	}
	if err := m.Refresh(ctx); err != nil {
		m.log.Error("failed to sync cart after login", "error", err, "user_id", user.ID)
	}
}
