package checkout

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
	"github.com/fjod/go_storefront/internal/payment"
)

// mockOrdersAPI captures order and intent calls. blockOrder, when set,
// makes CreateOrder wait until released, so tests can hold an attempt
// in flight.
type mockOrdersAPI struct {
	m sync.Mutex

	order     *domain.Order
	orderErr  error
	intent    *domain.PaymentIntent
	intentErr error

	createdOrders  []gateway.OrderInput
	intentOrderIDs []int64

	blockOrder   chan struct{}
	orderEntered chan struct{}
}

func (m *mockOrdersAPI) CreateOrder(_ context.Context, in gateway.OrderInput) (*domain.Order, error) {
	if m.orderEntered != nil {
		m.orderEntered <- struct{}{}
	}
	if m.blockOrder != nil {
		<-m.blockOrder
	}

	m.m.Lock()
	defer m.m.Unlock()
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	m.createdOrders = append(m.createdOrders, in)
	return m.order, nil
}

func (m *mockOrdersAPI) CreatePaymentIntent(_ context.Context, orderID int64) (*domain.PaymentIntent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.intentErr != nil {
		return nil, m.intentErr
	}
	m.intentOrderIDs = append(m.intentOrderIDs, orderID)
	return m.intent, nil
}

func (m *mockOrdersAPI) orderCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.createdOrders)
}

type mockConfirmer struct {
	m sync.Mutex

	result *payment.ConfirmResult
	err    error

	secrets  []string
	billings []payment.BillingDetails
}

func (m *mockConfirmer) ConfirmIntent(_ context.Context, clientSecret string, _ payment.Card, billing payment.BillingDetails) (*payment.ConfirmResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.secrets = append(m.secrets, clientSecret)
	m.billings = append(m.billings, billing)
	return m.result, nil
}

type mockCart struct {
	m      sync.Mutex
	items  []domain.CartItem
	resets int
}

func (m *mockCart) Items() []domain.CartItem {
	m.m.Lock()
	defer m.m.Unlock()
	items := make([]domain.CartItem, len(m.items))
	copy(items, m.items)
	return items
}

func (m *mockCart) Reset() {
	m.m.Lock()
	defer m.m.Unlock()
	m.items = nil
	m.resets++
}

func (m *mockCart) resetCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.resets
}

type mockPublisher struct {
	m      sync.Mutex
	placed []int64
	failed []Stage
}

func (m *mockPublisher) OrderPlaced(_ context.Context, order *domain.Order) {
	m.m.Lock()
	defer m.m.Unlock()
	m.placed = append(m.placed, order.ID)
}

func (m *mockPublisher) CheckoutFailed(_ context.Context, stage Stage, _ string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.failed = append(m.failed, stage)
}
