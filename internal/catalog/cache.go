package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

type ProductCache interface {
	GetList(ctx context.Context) ([]domain.Product, error)
	SetList(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
