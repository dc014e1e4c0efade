package catalog

import (
	"context"

	"github.com/shelfwise/shelfwise/internal/domain"
)

// Repository defines the interface for product data operations.
type Repository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// ProductFilter represents filter and pagination criteria for listing products.
type ProductFilter struct {
	Search   string
	Category string
	Status   *domain.ProductStatus
	Limit    int
	Offset   int
}
