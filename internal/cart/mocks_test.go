package cart

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
)

// mockAPI implements the cart API slice. serverItems plays the role of
// the remote cart; every mutation edits it, every fetch returns a
// copy. Calls are counted so tests can assert the two-step protocol.
type mockAPI struct {
	m           sync.Mutex
	serverItems []domain.CartItem
	nextID      int64

	fetchErr  error
	mutateErr error

	fetchCalls  int
	addCalls    int
	updateCalls int
	removeCalls int
	clearCalls  int
}

func (m *mockAPI) CartItems(context.Context) ([]domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	items := make([]domain.CartItem, len(m.serverItems))
	copy(items, m.serverItems)
	return items, nil
}

func (m *mockAPI) AddCartItem(_ context.Context, productID int64, quantity int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.addCalls++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	m.nextID++
	item := domain.CartItem{
		ID:        m.nextID,
		ProductID: productID,
		Quantity:  quantity,
		Product:   domain.Product{ID: productID},
	}
	m.serverItems = append(m.serverItems, item)
	return &item, nil
}

func (m *mockAPI) UpdateCartItem(_ context.Context, itemID int64, quantity int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.updateCalls++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	for i := range m.serverItems {
		if m.serverItems[i].ID == itemID {
			m.serverItems[i].Quantity = quantity
			return &m.serverItems[i], nil
		}
	}
	return nil, errItemNotFound
}

func (m *mockAPI) RemoveCartItem(_ context.Context, itemID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.removeCalls++
	if m.mutateErr != nil {
		return m.mutateErr
	}
	for i, item := range m.serverItems {
		if item.ID == itemID {
			m.serverItems = append(m.serverItems[:i], m.serverItems[i+1:]...)
			return nil
		}
	}
	return errItemNotFound
}

func (m *mockAPI) ClearCart(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.clearCalls++
	if m.mutateErr != nil {
		return m.mutateErr
	}
	m.serverItems = nil
	return nil
}

func (m *mockAPI) calls() (fetch, add, update, remove, clear int) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.fetchCalls, m.addCalls, m.updateCalls, m.removeCalls, m.clearCalls
}
