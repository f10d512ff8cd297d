package checkout

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/payment"
)

// createPaymentIntent asks the commerce API for a single-use intent
// bound to the just-created order. A failure here strands the order in
// pending; the coordinator does not resolve that.
func (c *Coordinator) createPaymentIntent(ctx context.Context, order *domain.Order) (*domain.PaymentIntent, error) {
	c.setStage(StageCreatingPaymentIntent)

	intent, err := c.orders.CreatePaymentIntent(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	c.log.Info("payment intent created", "order_id", order.ID)
	return intent, nil
}

// confirmPayment hands the client secret plus card and billing details
// to the processor. A processor refusal surfaces as an error with the
// gateway's own message; the order stays pending.
func (c *Coordinator) confirmPayment(ctx context.Context, intent *domain.PaymentIntent, card payment.Card, shipping ShippingDetails) (*payment.ConfirmResult, error) {
	c.setStage(StageConfirmingPayment)

	return c.payments.ConfirmIntent(ctx, intent.ClientSecret, card, shipping.billingDetails())
}
