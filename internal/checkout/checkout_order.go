package checkout

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
)

// createOrder submits the cart snapshot with prices captured at order
// time. On success the returned order id drives every later stage; on
// failure no order exists and there is nothing to compensate.
func (c *Coordinator) createOrder(ctx context.Context, shipping ShippingDetails, items []domain.CartItem) (*domain.Order, error) {
	c.setStage(StageCreatingOrder)

	order, err := c.orders.CreateOrder(ctx, gateway.OrderInput{
		ShippingAddress: shipping.FormatAddress(),
		TotalAmount:     orderTotal(items),
		Items:           orderItems(items),
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("order created",
		"order_id", order.ID,
		"total", order.TotalAmount.String(),
		"lines", len(items),
	)
	return order, nil
}
