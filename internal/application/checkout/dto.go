package checkout

import (
	"github.com/google/uuid"
)

// PlaceOrderRequest represents a request to convert a cart into an order
type PlaceOrderRequest struct {
	CartID uuid.UUID `json:"cart_id" binding:"required"`
}
