package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Membership represents the customer's loyalty tier
type Membership string

const (
	MembershipStandard Membership = "standard"
	MembershipSilver   Membership = "silver"
	MembershipGold     Membership = "gold"
)

// IsValid reports whether the membership value is one of the known tiers
func (m Membership) IsValid() bool {
	switch m {
	case MembershipStandard, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer links an authentication principal to storefront state.
// Exactly one customer exists per principal; resolution is get-or-create.
type Customer struct {
	shared.BaseAggregateRoot
	PrincipalID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	FirstName   string     `gorm:"type:varchar(255)"`
	LastName    string     `gorm:"type:varchar(255)"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex"`
	Phone       string     `gorm:"type:varchar(32)"`
	BirthDate   *time.Time `gorm:""`
	Membership  Membership `gorm:"type:varchar(16);not null;default:'standard'"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer for an authentication principal
func NewCustomer(principalID uuid.UUID) *Customer {
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PrincipalID:       principalID,
		Membership:        MembershipStandard,
	}
}

// UpdateProfile updates the customer's own contact details
func (c *Customer) UpdateProfile(firstName, lastName, email, phone string, birthDate *time.Time) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.Phone = phone
	c.BirthDate = birthDate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetMembership moves the customer to another loyalty tier
func (c *Customer) SetMembership(m Membership) error {
	if !m.IsValid() {
		return shared.NewDomainError("INVALID_MEMBERSHIP", "Membership must be standard, silver, or gold")
	}

	c.Membership = m
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
