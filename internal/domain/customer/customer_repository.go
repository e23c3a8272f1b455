package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPrincipal finds the customer linked to an authentication principal
	FindByPrincipal(ctx context.Context, principalID uuid.UUID) (*Customer, error)

	// GetOrCreateByPrincipal resolves the customer for a principal, creating
	// the record on first use. Concurrent callers for the same principal must
	// resolve to a single row.
	GetOrCreateByPrincipal(ctx context.Context, principalID uuid.UUID) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
