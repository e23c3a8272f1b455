package checkout

import (
	"context"

	"github.com/google/uuid"
	appOrder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutService converts a cart into an order. The conversion runs inside
// a single database transaction: either the order exists with all its lines
// and the cart is gone, or nothing changed.
type CheckoutService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		scope:  scope,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder turns the cart into a pending order for the customer linked to
// the principal, creating the customer record on first purchase. Each order
// line snapshots the product's unit price at this moment; later price edits
// do not touch it. The cart and its items are deleted in the same
// transaction.
func (s *CheckoutService) PlaceOrder(ctx context.Context, principalID uuid.UUID, req PlaceOrderRequest) (*appOrder.OrderResponse, error) {
	if principalID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	var placed *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		crt, err := repos.CartRepo().FindByID(ctx, req.CartID)
		if err != nil {
			return err
		}
		if crt.IsEmpty() {
			return shared.ErrEmptyCart
		}

		cust, err := repos.CustomerRepo().GetOrCreateByPrincipal(ctx, principalID)
		if err != nil {
			return err
		}

		ord, err := order.NewOrder(cust.ID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(crt.Items))
		for i := range crt.Items {
			productIDs = append(productIDs, crt.Items[i].ProductID)
		}

		products, err := repos.ProductRepo().FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productsByID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			productsByID[products[i].ID] = &products[i]
		}

		for i := range crt.Items {
			item := &crt.Items[i]
			product, ok := productsByID[item.ProductID]
			if !ok {
				// A cart line without its product means the store is
				// inconsistent; the FK should have prevented this.
				return shared.ErrStorageFailure
			}
			if _, err := ord.AddItem(product.ID, product.Title, item.Quantity, product.UnitPriceMoney()); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, ord); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveItems(ctx, ord.Items); err != nil {
			return err
		}

		if err := repos.CartRepo().Delete(ctx, crt.ID); err != nil {
			return err
		}

		placed = ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The event goes out only after the transaction committed. Notification
	// failures never affect the placed order.
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, order.NewOrderPlacedEvent(placed)); err != nil {
			s.logger.Warn("failed to publish order placed event",
				zap.String("order_id", placed.ID.String()),
				zap.Error(err))
		}
	}

	response := appOrder.ToOrderResponse(placed)
	return &response, nil
}
