package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fjod/go_storefront/internal/domain"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) CartItems(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (*domain.CartItem, error) {
	var item domain.CartItem
	in := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem passes the new quantity as a query parameter, the way
// the cart endpoint expects it.
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*domain.CartItem, error) {
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}

	var item domain.CartItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", itemID), query, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, nil)
}
