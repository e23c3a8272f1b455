package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func usd(s string) valueobject.Money {
	return valueobject.NewMoneyUSD(decimal.RequireFromString(s))
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		customerID := uuid.New()

		ord, err := NewOrder(customerID)

		require.NoError(t, err)
		assert.Equal(t, customerID, ord.CustomerID)
		assert.Equal(t, PaymentStatusPending, ord.PaymentStatus)
		assert.False(t, ord.PlacedAt.IsZero())
		assert.Empty(t, ord.Items)
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil)

		require.Error(t, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("freezes the unit price at add time", func(t *testing.T) {
		ord, err := NewOrder(uuid.New())
		require.NoError(t, err)

		item, err := ord.AddItem(uuid.New(), "Blue Mug", 2, usd("9.99"))

		require.NoError(t, err)
		assert.Equal(t, ord.ID, item.OrderID)
		assert.Equal(t, "Blue Mug", item.ProductTitle)
		assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("9.99")))
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		ord, err := NewOrder(uuid.New())
		require.NoError(t, err)

		_, err = ord.AddItem(uuid.Nil, "x", 1, usd("1.00"))
		assert.Error(t, err)

		_, err = ord.AddItem(uuid.New(), "x", 0, usd("1.00"))
		assert.Error(t, err)

		_, err = ord.AddItem(uuid.New(), "x", 1, usd("-1.00"))
		assert.Error(t, err)

		assert.Empty(t, ord.Items)
	})
}

func TestOrder_Total(t *testing.T) {
	ord, err := NewOrder(uuid.New())
	require.NoError(t, err)

	_, err = ord.AddItem(uuid.New(), "Mug", 2, usd("9.99"))
	require.NoError(t, err)
	_, err = ord.AddItem(uuid.New(), "Plate", 1, usd("25.00"))
	require.NoError(t, err)

	assert.True(t, ord.Total().Equal(decimal.RequireFromString("44.98")))
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusComplete))
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatusComplete.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatusComplete.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusComplete))
}

func TestOrder_SetPaymentStatus(t *testing.T) {
	t.Run("pending to complete", func(t *testing.T) {
		ord, err := NewOrder(uuid.New())
		require.NoError(t, err)

		err = ord.SetPaymentStatus(PaymentStatusComplete)

		require.NoError(t, err)
		assert.Equal(t, PaymentStatusComplete, ord.PaymentStatus)
		assert.Len(t, ord.GetDomainEvents(), 1)
	})

	t.Run("terminal statuses reject further transitions", func(t *testing.T) {
		ord, err := NewOrder(uuid.New())
		require.NoError(t, err)
		require.NoError(t, ord.SetPaymentStatus(PaymentStatusFailed))

		err = ord.SetPaymentStatus(PaymentStatusComplete)

		require.Error(t, err)
		domainErr := &shared.DomainError{}
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, PaymentStatusFailed, ord.PaymentStatus)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		ord, err := NewOrder(uuid.New())
		require.NoError(t, err)

		err = ord.SetPaymentStatus(PaymentStatus("refunded"))

		require.Error(t, err)
	})
}
