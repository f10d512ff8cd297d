package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

type OrderInput struct {
	ShippingAddress string           `json:"shipping_address"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Items           []OrderItemInput `json:"items"`
}

type paymentIntentRequest struct {
	OrderID int64 `json:"order_id"`
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	query := url.Values{"status": {string(status)}}

	var order domain.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), query, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, orderID int64) (*domain.PaymentIntent, error) {
	var intent domain.PaymentIntent
	in := paymentIntentRequest{OrderID: orderID}
	if err := c.do(ctx, http.MethodPost, "/orders/payment", nil, in, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
