package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer-visible note attached to a product
type Review struct {
	shared.BaseEntity
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review for a product
func NewReview(productID uuid.UUID, name, description string) (*Review, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Reviewer name cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Review description cannot be empty")
	}

	return &Review{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		Name:        name,
		Description: description,
		Date:        time.Now(),
	}, nil
}

// Update replaces the review text
func (r *Review) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Reviewer name cannot be empty")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Review description cannot be empty")
	}

	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()

	return nil
}
