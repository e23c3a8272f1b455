package mail

import (
	"context"

	"github.com/storefront/backend/internal/application/notification"
	"go.uber.org/zap"
)

// LogMailer is an OrderConfirmationMailer that writes confirmations to the
// log instead of delivering them. It stands in until a real provider is
// wired up, and doubles as the mailer for development environments.
type LogMailer struct {
	logger      *zap.Logger
	fromAddress string
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger, fromAddress string) *LogMailer {
	return &LogMailer{
		logger:      logger.Named("mailer"),
		fromAddress: fromAddress,
	}
}

// SendOrderConfirmation logs the confirmation that would have been sent
func (m *LogMailer) SendOrderConfirmation(_ context.Context, msg notification.OrderConfirmation) error {
	m.logger.Info("order confirmation",
		zap.String("from", m.fromAddress),
		zap.String("to", msg.Email),
		zap.String("customer", msg.CustomerName),
		zap.String("order_id", msg.OrderID),
		zap.Int("item_count", msg.ItemCount),
		zap.String("total", msg.Total),
	)
	return nil
}

// Ensure LogMailer implements OrderConfirmationMailer
var _ notification.OrderConfirmationMailer = (*LogMailer)(nil)
