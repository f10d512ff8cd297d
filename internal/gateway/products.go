package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url"`
	Category       domain.Category `json:"category"`
	InventoryCount int             `json:"inventory_count"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}
