package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerService handles customer profiles. A customer record is created
// lazily the first time a principal touches their profile or places an order.
type CustomerService struct {
	customerRepo customer.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetMe returns the profile of the customer linked to the principal,
// creating the record on first access.
func (s *CustomerService) GetMe(ctx context.Context, principalID uuid.UUID) (*CustomerResponse, error) {
	if principalID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	cust, err := s.customerRepo.GetOrCreateByPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(cust)
	return &response, nil
}

// UpdateMe updates the profile of the customer linked to the principal
func (s *CustomerService) UpdateMe(ctx context.Context, principalID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	if principalID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	cust, err := s.customerRepo.GetOrCreateByPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if err := cust.UpdateProfile(req.FirstName, req.LastName, req.Email, req.Phone, req.BirthDate); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(cust)
	return &response, nil
}

// GetByID retrieves a customer by ID. Intended for staff use.
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	cust, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(cust)
	return &response, nil
}

// List lists customers matching the filter. Intended for staff use.
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Membership != "" {
		domainFilter.Filters["membership"] = filter.Membership
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}

// SetMembership changes a customer's membership tier. Intended for staff use.
func (s *CustomerService) SetMembership(ctx context.Context, customerID uuid.UUID, req SetMembershipRequest) (*CustomerResponse, error) {
	cust, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := cust.SetMembership(customer.Membership(req.Membership)); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(cust)
	return &response, nil
}
