package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Promotion is a discount campaign that may cover many products
type Promotion struct {
	shared.BaseEntity
	Description string  `gorm:"type:varchar(255);not null"`
	Discount    float64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// NewPromotion creates a new promotion
func NewPromotion(description string, discount float64) (*Promotion, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Promotion description cannot be empty")
	}
	if discount < 0 || discount > 1 {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 1")
	}

	return &Promotion{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Discount:    discount,
	}, nil
}

// ProductPromotion links a promotion to a product
type ProductPromotion struct {
	shared.BaseEntity
	PromotionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_promotion,priority:1"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_promotion,priority:2"`
}

// TableName returns the table name for GORM
func (ProductPromotion) TableName() string {
	return "product_promotions"
}
