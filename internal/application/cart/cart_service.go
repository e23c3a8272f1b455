package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles cart lifecycle and line edits. Carts are anonymous:
// knowing the cart ID is the only credential.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Create creates a new empty cart
func (s *CartService) Create(ctx context.Context) (*CartResponse, error) {
	crt := cart.NewCart()
	if err := s.cartRepo.Save(ctx, crt); err != nil {
		return nil, err
	}
	response := ToCartResponse(crt, nil)
	return &response, nil
}

// GetByID retrieves a cart with its lines, product summaries, and totals
func (s *CartService) GetByID(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	crt, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, crt)
}

// Delete deletes a cart and its lines
func (s *CartService) Delete(ctx context.Context, cartID uuid.UUID) error {
	if _, err := s.cartRepo.FindByID(ctx, cartID); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, cartID)
}

// AddItem adds a product to the cart. Adding a product already in the cart
// increments the existing line instead of creating a second one.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	crt, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	if _, err := crt.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, crt); err != nil {
		return nil, err
	}
	return s.materialize(ctx, crt)
}

// UpdateItem replaces a cart line's quantity
func (s *CartService) UpdateItem(ctx context.Context, cartID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	crt, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if _, err := crt.SetItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, crt); err != nil {
		return nil, err
	}
	return s.materialize(ctx, crt)
}

// RemoveItem deletes a single cart line
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	crt, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return err
	}

	if _, err := crt.FindItem(itemID); err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(ctx, cartID, itemID)
}

// materialize fills in the product summaries and totals for a cart
func (s *CartService) materialize(ctx context.Context, crt *cart.Cart) (*CartResponse, error) {
	products := make(map[uuid.UUID]*catalog.Product, len(crt.Items))
	if len(crt.Items) > 0 {
		ids := make([]uuid.UUID, 0, len(crt.Items))
		for i := range crt.Items {
			ids = append(ids, crt.Items[i].ProductID)
		}
		found, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	response := ToCartResponse(crt, products)
	return &response, nil
}
