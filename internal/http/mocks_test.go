package http

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func unauthorizedErr() error {
	return &gateway.APIError{Status: 401, Detail: "Incorrect email or password"}
}

// commerceStub implements every API slice the handlers consume, backed
// by in-memory state.
type commerceStub struct {
	m sync.Mutex

	user     *domain.User
	token    *domain.AuthToken
	products []domain.Product
	items    []domain.CartItem
	orders   []domain.Order
	intent   *domain.PaymentIntent

	err error

	nextItemID  int64
	nextOrderID int64

	orderCalls int
}

func (s *commerceStub) fail() error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.err
}

// session.AuthAPI

func (s *commerceStub) Register(_ context.Context, in session.RegisterInput) (*domain.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.user, nil
}

func (s *commerceStub) Login(context.Context, string, string) (*domain.AuthToken, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.token, nil
}

func (s *commerceStub) CurrentUser(context.Context) (*domain.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.user, nil
}

// catalog.API

func (s *commerceStub) ListProducts(context.Context) ([]domain.Product, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.products, nil
}

func (s *commerceStub) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, &gateway.APIError{Status: 404, Detail: "Product not found"}
}

func (s *commerceStub) CreateProduct(_ context.Context, in gateway.ProductInput) (*domain.Product, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return &domain.Product{ID: 99, Name: in.Name, Price: in.Price}, nil
}

func (s *commerceStub) UpdateProduct(_ context.Context, id int64, in gateway.ProductInput) (*domain.Product, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return &domain.Product{ID: id, Name: in.Name, Price: in.Price}, nil
}

func (s *commerceStub) DeleteProduct(context.Context, int64) error {
	return s.fail()
}

// cart.API

func (s *commerceStub) CartItems(context.Context) ([]domain.CartItem, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *commerceStub) AddCartItem(_ context.Context, productID int64, quantity int) (*domain.CartItem, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.nextItemID++
	var product domain.Product
	for _, p := range s.products {
		if p.ID == productID {
			product = p
		}
	}
	item := domain.CartItem{ID: s.nextItemID, ProductID: productID, Quantity: quantity, Product: product}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *commerceStub) UpdateCartItem(_ context.Context, itemID int64, quantity int) (*domain.CartItem, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			return &s.items[i], nil
		}
	}
	return nil, errors.New("item not found")
}

func (s *commerceStub) RemoveCartItem(_ context.Context, itemID int64) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.m.Lock()
	defer s.m.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return errors.New("item not found")
}

func (s *commerceStub) ClearCart(context.Context) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.items = nil
	return nil
}

// checkout.OrdersAPI + orders/admin slices

func (s *commerceStub) CreateOrder(_ context.Context, in gateway.OrderInput) (*domain.Order, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.orderCalls++
	s.nextOrderID++
	order := domain.Order{
		ID:              s.nextOrderID,
		ShippingAddress: in.ShippingAddress,
		TotalAmount:     in.TotalAmount,
		Status:          domain.OrderStatusPending,
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

func (s *commerceStub) CreatePaymentIntent(context.Context, int64) (*domain.PaymentIntent, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.intent, nil
}

func (s *commerceStub) ListOrders(context.Context) ([]domain.Order, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.orders, nil
}

func (s *commerceStub) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, &gateway.APIError{Status: 404, Detail: "Order not found"}
}

func (s *commerceStub) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	s.m.Lock()
	defer s.m.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return &s.orders[i], nil
		}
	}
	return nil, &gateway.APIError{Status: 404, Detail: "Order not found"}
}

type memoryTokenStore struct {
	m     sync.Mutex
	token string
}

func (s *memoryTokenStore) Load() (string, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.token, nil
}

func (s *memoryTokenStore) Save(token string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.token = token
	return nil
}

func (s *memoryTokenStore) Clear() error {
	s.m.Lock()
	defer s.m.Unlock()
	s.token = ""
	return nil
}

type stubConfirmer struct {
	result *payment.ConfirmResult
	err    error
}

func (s *stubConfirmer) ConfirmIntent(context.Context, string, payment.Card, payment.BillingDetails) (*payment.ConfirmResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// testApp wires real managers over the stub, the way main does.
type testApp struct {
	stub      *commerceStub
	confirmer *stubConfirmer
	sessions  *session.Manager
	cart      *cart.Manager
	catalog   *catalog.Service
}

func newTestApp(stub *commerceStub) *testApp {
	log := slog.Default()
	confirmer := &stubConfirmer{result: &payment.ConfirmResult{IntentID: "pi_1", Status: payment.StatusSucceeded}}

	sessions := session.NewManager(stub, &memoryTokenStore{}, log)
	cartManager := cart.NewManager(stub, log)
	sessions.OnIdentityChange(cartManager.HandleIdentityChange)

	return &testApp{
		stub:      stub,
		confirmer: confirmer,
		sessions:  sessions,
		cart:      cartManager,
		catalog:   catalog.NewService(stub, nil, log),
	}
}

func (a *testApp) coordinator() *checkout.Coordinator {
	return checkout.NewCoordinator(a.stub, a.confirmer, a.cart, nil, slog.Default())
}

// signIn marks the session authenticated through a real login.
func (a *testApp) signIn(user *domain.User) {
	a.stub.m.Lock()
	a.stub.user = user
	a.stub.token = &domain.AuthToken{AccessToken: "tok-test"}
	a.stub.m.Unlock()
	if err := a.sessions.Login(context.Background(), user.Email, "secret"); err != nil {
		panic(err)
	}
}
