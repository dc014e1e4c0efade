// Package postgres provides PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfwise/shelfwise/internal/catalog"
	"github.com/shelfwise/shelfwise/internal/domain"
)

// Repository implements the catalog.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const productColumns = `id, name, category, description, price, views, revenue,
	image_url, thumbnail_url, tags, discount, discount_category, status,
	created_at, updated_at`

// CreateProduct inserts a new product.
func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, category, description, price, image_url,
			thumbnail_url, tags, discount, discount_category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, views, revenue, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.ThumbnailURL,
		product.Tags,
		product.Discount,
		product.DiscountCategory,
		product.Status,
	).Scan(&product.ID, &product.Views, &product.Revenue, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetProductByID retrieves a product by its id.
func (r *Repository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts retrieves a page of products matching the filter plus the
// total match count.
func (r *Repository) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]domain.Product, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, filter.Limit)
	limitClause := fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	offsetClause := fmt.Sprintf(" OFFSET $%d", len(args))

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY created_at DESC` + limitClause + offsetClause

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates all mutable fields of a product.
func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, description = $3, price = $4,
			image_url = $5, thumbnail_url = $6, tags = $7, discount = $8,
			discount_category = $9, status = $10, updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.ThumbnailURL,
		product.Tags,
		product.Discount,
		product.DiscountCategory,
		product.Status,
		product.ID,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.ErrProductNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// IncrementViews bumps the view counter of a product.
func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Description,
		&product.Price,
		&product.Views,
		&product.Revenue,
		&product.ImageURL,
		&product.ThumbnailURL,
		&product.Tags,
		&product.Discount,
		&product.DiscountCategory,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
