package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MockCustomerRepository is a mock implementation of customer.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPrincipal(ctx context.Context, principalID uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetOrCreateByPrincipal(ctx context.Context, principalID uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMailer is a mock implementation of OrderConfirmationMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func placedEvent(t *testing.T, customerID uuid.UUID) *order.OrderPlacedEvent {
	t.Helper()
	ord, err := order.NewOrder(customerID)
	require.NoError(t, err)
	_, err = ord.AddItem(uuid.New(), "Blue Mug", 2,
		valueobject.NewMoneyUSD(decimal.RequireFromString("9.99")))
	require.NoError(t, err)
	return order.NewOrderPlacedEvent(ord)
}

func TestOrderPlacedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a confirmation to the customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		mailer := new(MockMailer)
		handler := NewOrderPlacedHandler(zap.NewNop(), repo, mailer)

		cust := customer.NewCustomer(uuid.New())
		require.NoError(t, cust.UpdateProfile("Ada", "Lovelace", "ada@example.com", "", nil))

		event := placedEvent(t, cust.ID)
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		mailer.On("SendOrderConfirmation", ctx, mock.MatchedBy(func(msg OrderConfirmation) bool {
			return msg.Email == "ada@example.com" &&
				msg.CustomerName == "Ada Lovelace" &&
				msg.ItemCount == 1 &&
				msg.Total == "19.98"
		})).Return(nil)

		require.NoError(t, handler.Handle(ctx, event))
		mailer.AssertExpectations(t)
	})

	t.Run("skips customers without an email", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		mailer := new(MockMailer)
		handler := NewOrderPlacedHandler(zap.NewNop(), repo, mailer)

		cust := customer.NewCustomer(uuid.New())
		event := placedEvent(t, cust.ID)
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)

		require.NoError(t, handler.Handle(ctx, event))
		mailer.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("customer lookup failure is swallowed", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		mailer := new(MockMailer)
		handler := NewOrderPlacedHandler(zap.NewNop(), repo, mailer)

		event := placedEvent(t, uuid.New())
		repo.On("FindByID", ctx, event.CustomerID).Return(nil, shared.ErrNotFound)

		require.NoError(t, handler.Handle(ctx, event))
		mailer.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		mailer := new(MockMailer)
		handler := NewOrderPlacedHandler(zap.NewNop(), repo, mailer)

		cust := customer.NewCustomer(uuid.New())
		require.NoError(t, cust.UpdateProfile("Ada", "", "ada@example.com", "", nil))

		event := placedEvent(t, cust.ID)
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		mailer.On("SendOrderConfirmation", ctx, mock.Anything).Return(errors.New("smtp down"))

		require.NoError(t, handler.Handle(ctx, event))
	})

	t.Run("rejects a foreign event type", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		mailer := new(MockMailer)
		handler := NewOrderPlacedHandler(zap.NewNop(), repo, mailer)

		ord, err := order.NewOrder(uuid.New())
		require.NoError(t, err)
		foreign := order.NewOrderPaymentStatusChangedEvent(ord)

		err = handler.Handle(ctx, foreign)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
