package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the payment status can move to the target status.
// Complete and failed are terminal.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusComplete || target == PaymentStatusFailed
	}
	return false
}

// Order is an immutable record of a completed checkout. Orders are never
// deleted: sales history protects the products and customer they reference.
// The only mutation allowed after creation is the payment-status transition
// driven by the external payment collaborator.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	PlacedAt      time.Time     `gorm:"not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;default:'pending'"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. UnitPrice is captured at order time and
// must never change afterwards, even when the product's catalog price moves.
type OrderItem struct {
	shared.BaseEntity
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductTitle string          `gorm:"type:varchar(255);not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a pending order for a customer
func NewOrder(customerID uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PlacedAt:          time.Now(),
		PaymentStatus:     PaymentStatusPending,
		Items:             make([]OrderItem, 0),
	}

	return order, nil
}

// AddItem appends a line with the price snapshot taken at this moment
func (o *Order) AddItem(productID uuid.UUID, productTitle string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      o.ID,
		ProductID:    productID,
		ProductTitle: productTitle,
		Quantity:     quantity,
		UnitPrice:    unitPrice.Amount(),
	}
	o.Items = append(o.Items, item)

	return &o.Items[len(o.Items)-1], nil
}

// SetPaymentStatus performs the payment-status transition.
// It is the only state change permitted on an existing order.
func (o *Order) SetPaymentStatus(target PaymentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be pending, complete, or failed")
	}
	if !o.PaymentStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition payment status from "+o.PaymentStatus.String()+" to "+target.String())
	}

	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentStatusChangedEvent(o))

	return nil
}

// Total returns the sum of quantity times unit price over all lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// LineTotal returns quantity times the frozen unit price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
