package notification

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderConfirmationMailer sends order confirmations. Implementations can
// support different delivery channels (SMTP, provider API, log-only).
type OrderConfirmationMailer interface {
	// SendOrderConfirmation sends a confirmation for a placed order
	SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error
}

// OrderConfirmation is the message handed to the mailer
type OrderConfirmation struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	ItemCount    int    `json:"item_count"`
	Total        string `json:"total"`
}

// OrderPlacedHandler handles OrderPlacedEvent by sending the customer an
// order confirmation. Delivery is fire-and-forget: a failed send is logged
// and never surfaces to the checkout flow.
type OrderPlacedHandler struct {
	logger       *zap.Logger
	customerRepo customer.CustomerRepository
	mailer       OrderConfirmationMailer
}

// NewOrderPlacedHandler creates a new handler for order placed events
func NewOrderPlacedHandler(logger *zap.Logger, customerRepo customer.CustomerRepository, mailer OrderConfirmationMailer) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		logger:       logger,
		customerRepo: customerRepo,
		mailer:       mailer,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placedEvent, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderPlaced),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderPlaced, event.EventType())
	}

	cust, err := h.customerRepo.FindByID(ctx, placedEvent.CustomerID)
	if err != nil {
		h.logger.Warn("order confirmation skipped, customer lookup failed",
			zap.String("order_id", placedEvent.OrderID.String()),
			zap.String("customer_id", placedEvent.CustomerID.String()),
			zap.Error(err),
		)
		return nil
	}

	if cust.Email == "" {
		h.logger.Info("order confirmation skipped, customer has no email",
			zap.String("order_id", placedEvent.OrderID.String()),
			zap.String("customer_id", cust.ID.String()),
		)
		return nil
	}

	msg := OrderConfirmation{
		OrderID:      placedEvent.OrderID.String(),
		CustomerName: cust.FullName(),
		Email:        cust.Email,
		ItemCount:    placedEvent.ItemCount,
		Total:        placedEvent.Total.StringFixed(2),
	}

	if err := h.mailer.SendOrderConfirmation(ctx, msg); err != nil {
		h.logger.Warn("order confirmation delivery failed",
			zap.String("order_id", placedEvent.OrderID.String()),
			zap.String("email", cust.Email),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("order confirmation sent",
		zap.String("order_id", placedEvent.OrderID.String()),
		zap.String("email", cust.Email),
	)
	return nil
}

// Ensure OrderPlacedHandler implements EventHandler
var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
