// Package catalog serves product browsing with an optional cache in
// front of the commerce API, plus the admin write operations that
// invalidate it. Product data is read-mostly; the listing is the hot
// path.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
	"golang.org/x/sync/singleflight"
)

// API is the slice of the commerce API the catalog needs.
type API interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in gateway.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in gateway.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type Service struct {
	api   API
	cache ProductCache // nil disables caching
	log   *slog.Logger
	sfg   singleflight.Group // Prevents listing stampede on cache miss
}

func NewService(api API, cache ProductCache, log *slog.Logger) *Service {
	return &Service{
		api:   api,
		cache: cache,
		log:   log,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.api.ListProducts(ctx)
	}

	v, err, _ := s.sfg.Do(listKey, func() (interface{}, error) {
		products, err := s.cache.GetList(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("product cache get failed", "error", err) // log cache error but continue
		}

		products, err = s.api.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.SetList(context.WithoutCancel(ctx), products); errSet != nil {
				s.log.Warn("product cache set failed", "error", errSet)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

// Get bypasses the cache: detail pages need the current inventory
// count.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.api.GetProduct(ctx, id)
}

func (s *Service) Create(ctx context.Context, in gateway.ProductInput) (*domain.Product, error) {
	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *Service) Update(ctx context.Context, id int64, in gateway.ProductInput) (*domain.Product, error) {
	product, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("product cache invalidate failed", "error", err)
	}
}
