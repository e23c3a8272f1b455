package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// AddItemRequest represents a request to add a product to a cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemProduct is the product summary embedded in a cart line
type CartItemProduct struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Product    CartItemProduct `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ToCartItemResponse converts a cart line and its product to CartItemResponse
func ToCartItemResponse(item *cart.CartItem, product *catalog.Product) CartItemResponse {
	return CartItemResponse{
		ID: item.ID,
		Product: CartItemProduct{
			ID:        product.ID,
			Title:     product.Title,
			UnitPrice: product.UnitPrice,
		},
		Quantity:   item.Quantity,
		TotalPrice: cart.LineTotal(item.Quantity, product.UnitPrice),
	}
}

// ToCartResponse converts a cart and its products to CartResponse.
// products maps product ID to the product record for every line.
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	total := decimal.Zero
	for i := range c.Items {
		product, ok := products[c.Items[i].ProductID]
		if !ok {
			continue
		}
		line := ToCartItemResponse(&c.Items[i], product)
		items = append(items, line)
		total = total.Add(line.TotalPrice)
	}
	return CartResponse{
		ID:         c.ID,
		Items:      items,
		TotalPrice: total,
		CreatedAt:  c.CreatedAt,
	}
}
