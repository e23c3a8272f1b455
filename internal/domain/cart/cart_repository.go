package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and its items
	Save(ctx context.Context, cart *Cart) error

	// Delete deletes a cart; its items are cascade-deleted
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteItem deletes a single cart line
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// CountItems counts the lines in a cart
	CountItems(ctx context.Context, cartID uuid.UUID) (int64, error)
}
