package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Tag is a reusable label. Tags attach to products through the ProductTag
// join table rather than a type-plus-id pair, so the reference is enforceable
// by the database.
type Tag struct {
	shared.BaseEntity
	Label string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new tag
func NewTag(label string) (*Tag, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Tag label cannot be empty")
	}
	if len(label) > 255 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Tag label cannot exceed 255 characters")
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		Label:      label,
	}, nil
}

// Relabel updates the tag label
func (t *Tag) Relabel(label string) error {
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Tag label cannot be empty")
	}

	t.Label = label
	t.UpdatedAt = time.Now()

	return nil
}

// ProductTag links a tag to a product
type ProductTag struct {
	shared.BaseEntity
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tag,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tag,priority:2"`
}

// TableName returns the table name for GORM
func (ProductTag) TableName() string {
	return "product_tags"
}

// NewProductTag attaches a tag to a product
func NewProductTag(tagID, productID uuid.UUID) *ProductTag {
	return &ProductTag{
		BaseEntity: shared.NewBaseEntity(),
		TagID:      tagID,
		ProductID:  productID,
	}
}
