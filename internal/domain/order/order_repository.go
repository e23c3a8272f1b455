package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence.
// There is deliberately no Delete: orders are permanent sales history.
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByCustomer finds all orders placed by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// SaveItems bulk-inserts order items
	SaveItems(ctx context.Context, items []OrderItem) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCustomer counts orders placed by a customer
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// CountItemsByProduct counts order items referencing a product.
	// The product deletion guard relies on this check.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
