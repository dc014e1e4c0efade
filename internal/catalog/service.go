// Package catalog provides HTTP handlers and business logic for the product inventory.
package catalog

import (
	"context"
	"errors"

	"github.com/shelfwise/shelfwise/internal/domain"
)

// Sentinel errors returned by the catalog service.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStatus   = errors.New("invalid product status")
)

// Service implements catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct validates and persists a new product.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Status == "" {
		product.Status = domain.ProductStatusPublished
	}
	if !product.Status.IsValid() {
		return ErrInvalidStatus
	}
	if product.Tags == nil {
		product.Tags = make([]string, 0)
	}

	return s.repo.CreateProduct(ctx, product)
}

// GetProduct returns a product by id and records the view.
// The view counter is incremented best-effort after the read.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err == nil {
		product.Views++
	}

	return product, nil
}

// ListProducts returns a page of products plus the total match count.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListProducts(ctx, filter)
}

// UpdateProduct applies changes to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if !product.Status.IsValid() {
		return ErrInvalidStatus
	}
	return s.repo.UpdateProduct(ctx, product)
}

// DeleteProduct removes a product permanently.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}
