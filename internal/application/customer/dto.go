package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
)

// UpdateProfileRequest represents a request to update a customer profile
type UpdateProfileRequest struct {
	FirstName string     `json:"first_name" binding:"max=255"`
	LastName  string     `json:"last_name" binding:"max=255"`
	Email     string     `json:"email" binding:"omitempty,email,max=255"`
	Phone     string     `json:"phone" binding:"max=50"`
	BirthDate *time.Time `json:"birth_date"`
}

// SetMembershipRequest represents a request to change a customer's membership tier
type SetMembershipRequest struct {
	Membership string `json:"membership" binding:"required,oneof=standard silver gold"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID  `json:"id"`
	PrincipalID uuid.UUID  `json:"principal_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	BirthDate   *time.Time `json:"birth_date"`
	Membership  string     `json:"membership"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CustomerListFilter represents filter options for customer lists
type CustomerListFilter struct {
	Search     string `form:"search"`
	Membership string `form:"membership" binding:"omitempty,oneof=standard silver gold"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		PrincipalID: c.PrincipalID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		BirthDate:   c.BirthDate,
		Membership:  string(c.Membership),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
