package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCollection finds all products in a collection
	FindByCollection(ctx context.Context, collectionID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCollection counts products assigned to a collection
	CountByCollection(ctx context.Context, collectionID uuid.UUID) (int64, error)

	// ExistsBySlug checks if a product with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// FindByID finds a collection by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)

	// FindByIDWithCount finds a collection together with its products count
	FindByIDWithCount(ctx context.Context, id uuid.UUID) (*CollectionWithCount, error)

	// FindAll finds all collections with their products count
	FindAll(ctx context.Context, filter shared.Filter) ([]CollectionWithCount, error)

	// Save creates or updates a collection
	Save(ctx context.Context, collection *Collection) error

	// Delete deletes a collection
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts collections
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct finds all reviews for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProduct counts reviews for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindByLabel finds a tag by its label
	FindByLabel(ctx context.Context, label string) (*Tag, error)

	// FindAll finds all tags
	FindAll(ctx context.Context, filter shared.Filter) ([]Tag, error)

	// FindByProduct finds all tags attached to a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Tag, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag and its product links
	Delete(ctx context.Context, id uuid.UUID) error

	// Attach links a tag to a product (idempotent)
	Attach(ctx context.Context, tagID, productID uuid.UUID) error

	// Detach removes the link between a tag and a product
	Detach(ctx context.Context, tagID, productID uuid.UUID) error
}
