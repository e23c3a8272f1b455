package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Title        string           `json:"title" binding:"required,min=1,max=255"`
	Slug         string           `json:"slug" binding:"omitempty,max=255"`
	Description  string           `json:"description" binding:"max=2000"`
	UnitPrice    decimal.Decimal  `json:"unit_price" binding:"required"`
	Inventory    int              `json:"inventory" binding:"min=0"`
	CollectionID *uuid.UUID       `json:"collection_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Inventory    *int             `json:"inventory" binding:"omitempty,min=0"`
	CollectionID *uuid.UUID       `json:"collection_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PriceWithTax   decimal.Decimal `json:"price_with_tax"`
	Inventory      int             `json:"inventory"`
	CollectionID   *uuid.UUID      `json:"collection_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	CollectionID *uuid.UUID      `json:"collection_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListFilter represents filter options for product lists
type ProductListFilter struct {
	Search       string     `form:"search"`
	CollectionID *uuid.UUID `form:"collection_id"`
	MinPrice     *float64   `form:"min_price"`
	MaxPrice     *float64   `form:"max_price"`
	InStock      *bool      `form:"in_stock"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// UpdateCollectionRequest represents a request to rename a collection
type UpdateCollectionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ProductsCount int64     `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CollectionListFilter represents filter options for collection lists
type CollectionListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateReviewRequest represents a request to create a product review
type CreateReviewRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
}

// UpdateReviewRequest represents a request to update a review
type UpdateReviewRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Label string `json:"label" binding:"required,min=1,max=255"`
}

// UpdateTagRequest represents a request to relabel a tag
type UpdateTagRequest struct {
	Label string `json:"label" binding:"required,min=1,max=255"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice,
		PriceWithTax: catalog.PriceWithTax(p.UnitPrice),
		Inventory:    p.Inventory,
		CollectionID: p.CollectionID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		UnitPrice:    p.UnitPrice,
		Inventory:    p.Inventory,
		CollectionID: p.CollectionID,
		CreatedAt:    p.CreatedAt,
	}
}

// ToCollectionResponse converts a CollectionWithCount to CollectionResponse
func ToCollectionResponse(c *catalog.CollectionWithCount) CollectionResponse {
	return CollectionResponse{
		ID:            c.ID,
		Title:         c.Title,
		ProductsCount: c.ProductsCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
}

// ToTagResponse converts a domain Tag to TagResponse
func ToTagResponse(t *catalog.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID,
		Label: t.Label,
	}
}
