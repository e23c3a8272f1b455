package catalog

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Collection groups products for browsing
type Collection struct {
	shared.BaseAggregateRoot
	Title string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Collection) TableName() string {
	return "collections"
}

// NewCollection creates a new collection
func NewCollection(title string) (*Collection, error) {
	if err := validateCollectionTitle(title); err != nil {
		return nil, err
	}

	return &Collection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
	}, nil
}

// Rename updates the collection title
func (c *Collection) Rename(title string) error {
	if err := validateCollectionTitle(title); err != nil {
		return err
	}

	c.Title = title
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCollectionTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Collection title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Collection title cannot exceed 255 characters")
	}
	return nil
}

// CollectionWithCount pairs a collection with the number of products it holds
type CollectionWithCount struct {
	Collection
	ProductsCount int64 `gorm:"column:products_count"`
}
