package domain

import "time"

// ProductStatus represents the publication state of a product.
type ProductStatus string

// Product statuses.
const (
	ProductStatusPublished ProductStatus = "published"
	ProductStatusDraft     ProductStatus = "draft"
)

// IsValid checks if the product status is valid.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPublished, ProductStatusDraft:
		return true
	}
	return false
}

// Product represents a catalog item.
type Product struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Category         string        `json:"category"`
	Description      string        `json:"description"`
	Price            float64       `json:"price"`
	Views            int           `json:"views"`
	Revenue          float64       `json:"revenue"`
	ImageURL         string        `json:"image_url,omitempty"`
	ThumbnailURL     string        `json:"thumbnail_url,omitempty"`
	Tags             []string      `json:"tags"`
	Discount         float64       `json:"discount"`
	DiscountCategory string        `json:"discount_category,omitempty"`
	Status           ProductStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// IsPublished returns true if the product is visible in the storefront.
func (p *Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}
