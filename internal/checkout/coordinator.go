// Package checkout sequences the only multi-step, partially failable
// transaction in the storefront: create order, create payment intent,
// confirm payment. Stages run strictly one after another; a failure
// leaves all prior effects in place and reports which stage broke.
package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/shopspring/decimal"
)

// OrdersAPI is the slice of the commerce API the coordinator needs.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, in gateway.OrderInput) (*domain.Order, error)
	CreatePaymentIntent(ctx context.Context, orderID int64) (*domain.PaymentIntent, error)
}

// PaymentConfirmer confirms a server-created intent with the payment
// processor.
type PaymentConfirmer interface {
	ConfirmIntent(ctx context.Context, clientSecret string, card payment.Card, billing payment.BillingDetails) (*payment.ConfirmResult, error)
}

// Cart is the slice of the cart manager the coordinator needs: a
// snapshot to order from, and a local wipe on success.
type Cart interface {
	Items() []domain.CartItem
	Reset()
}

// Publisher emits checkout lifecycle events. Implementations must not
// block checkout; a nil publisher disables events entirely.
type Publisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order)
	CheckoutFailed(ctx context.Context, stage Stage, reason string)
}

type Coordinator struct {
	orders   OrdersAPI
	payments PaymentConfirmer
	cart     Cart
	events   Publisher
	log      *slog.Logger

	mu       sync.RWMutex
	inFlight bool
	stage    Stage
}

func NewCoordinator(orders OrdersAPI, payments PaymentConfirmer, cart Cart, events Publisher, log *slog.Logger) *Coordinator {
	return &Coordinator{
		orders:   orders,
		payments: payments,
		cart:     cart,
		events:   events,
		log:      log,
		stage:    StageIdle,
	}
}

// Result reports the outcome of a submit. OrderID is set from the
// creating-order stage onward, so a failed or inconclusive payment
// still tells the caller which order it belongs to.
type Result struct {
	OrderID int64
	Stage   Stage
}

// Stage reports the last observed stage, for display.
func (c *Coordinator) Stage() Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stage
}

// Submit runs one checkout attempt end to end. While an attempt is in
// flight every further call returns ErrInProgress without touching the
// network: a second order must never be created from a single
// user-initiated submission.
func (c *Coordinator) Submit(ctx context.Context, shipping ShippingDetails, card payment.Card) (*Result, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.finish()

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := shipping.Validate(); err != nil {
		// No network call has happened yet; nothing partial exists.
		c.setStage(StageFailed)
		return nil, failAt(StageValidating, err)
	}

	order, err := c.createOrder(ctx, shipping, items)
	if err != nil {
		return nil, c.fail(ctx, StageCreatingOrder, err)
	}

	intent, err := c.createPaymentIntent(ctx, order)
	if err != nil {
		// The order now sits in pending with no intent. Accepted
		// terminal inconsistency: the coordinator does not compensate.
		return nil, c.fail(ctx, StageCreatingPaymentIntent, err)
	}

	result, err := c.confirmPayment(ctx, intent, card, shipping)
	if err != nil {
		return nil, c.fail(ctx, StageConfirmingPayment, err)
	}
	if !result.Succeeded() {
		c.log.Warn("payment confirmation inconclusive",
			"order_id", order.ID,
			"status", result.Status,
		)
		c.setStage(StageConfirmingPayment)
		return &Result{OrderID: order.ID, Stage: StageConfirmingPayment}, ErrPaymentInconclusive
	}

	// The order record is the durable account of the purchase; the
	// cart cache is wiped locally, no server call.
	c.cart.Reset()
	c.setStage(StageSucceeded)
	c.log.Info("checkout succeeded", "order_id", order.ID)

	if c.events != nil {
		c.events.OrderPlaced(ctx, order)
	}
	return &Result{OrderID: order.ID, Stage: StageSucceeded}, nil
}

func (c *Coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrInProgress
	}
	c.inFlight = true
	c.stage = StageValidating
	return nil
}

func (c *Coordinator) finish() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

func (c *Coordinator) setStage(stage Stage) {
	c.mu.Lock()
	c.stage = stage
	c.mu.Unlock()
}

func (c *Coordinator) fail(ctx context.Context, stage Stage, err error) error {
	c.setStage(StageFailed)
	c.log.Error("checkout failed", "stage", stage.String(), "error", err)

	if c.events != nil {
		c.events.CheckoutFailed(ctx, stage, err.Error())
	}
	return failAt(stage, err)
}

func orderTotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func orderItems(items []domain.CartItem) []gateway.OrderItemInput {
	out := make([]gateway.OrderItemInput, len(items))
	for i, item := range items {
		out[i] = gateway.OrderItemInput{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Product.Price,
		}
	}
	return out
}
