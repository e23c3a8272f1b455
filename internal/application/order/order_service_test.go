package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveItems(ctx context.Context, items []order.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

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

func placedOrder(t *testing.T, customerID uuid.UUID) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(customerID)
	require.NoError(t, err)
	_, err = ord.AddItem(uuid.New(), "Blue Mug", 2,
		valueobject.NewMoneyUSD(decimal.RequireFromString("9.99")))
	require.NoError(t, err)
	return ord
}

func TestOrderService_GetOwnByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the caller's own order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		ord := placedOrder(t, cust.ID)

		customerRepo.On("FindByPrincipal", ctx, principalID).Return(cust, nil)
		orderRepo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		resp, err := service.GetOwnByID(ctx, principalID, ord.ID)

		require.NoError(t, err)
		assert.Equal(t, ord.ID, resp.ID)
		assert.Equal(t, cust.ID, resp.CustomerID)
	})

	t.Run("hides another customer's order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		someoneElses := placedOrder(t, uuid.New())

		customerRepo.On("FindByPrincipal", ctx, principalID).Return(cust, nil)
		orderRepo.On("FindByID", ctx, someoneElses.ID).Return(someoneElses, nil)

		_, err := service.GetOwnByID(ctx, principalID, someoneElses.ID)

		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("principal without customer record sees nothing", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		customerRepo.On("FindByPrincipal", ctx, principalID).Return(nil, shared.ErrNotFound)

		_, err := service.GetOwnByID(ctx, principalID, uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestOrderService_ListMine(t *testing.T) {
	ctx := context.Background()

	t.Run("lists orders for the caller's customer", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		ord := placedOrder(t, cust.ID)

		customerRepo.On("FindByPrincipal", ctx, principalID).Return(cust, nil)
		orderRepo.On("FindByCustomer", ctx, cust.ID, mock.Anything).Return([]order.Order{*ord}, nil)
		orderRepo.On("CountByCustomer", ctx, cust.ID).Return(int64(1), nil)

		responses, total, err := service.ListMine(ctx, principalID, OrderListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, ord.ID, responses[0].ID)
	})

	t.Run("principal that never purchased gets an empty list", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		customerRepo.On("FindByPrincipal", ctx, principalID).Return(nil, shared.ErrNotFound)

		responses, total, err := service.ListMine(ctx, principalID, OrderListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, responses)
		orderRepo.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defaults pagination and ordering", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)

		customerRepo.On("FindByPrincipal", ctx, principalID).Return(cust, nil)
		orderRepo.On("FindByCustomer", ctx, cust.ID, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "placed_at" && f.OrderDir == "desc"
		})).Return([]order.Order{}, nil)
		orderRepo.On("CountByCustomer", ctx, cust.ID).Return(int64(0), nil)

		_, _, err := service.ListMine(ctx, principalID, OrderListFilter{})

		require.NoError(t, err)
		orderRepo.AssertExpectations(t)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by payment status", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		filterMatch := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["payment_status"] == "pending"
		})
		orderRepo.On("FindAll", ctx, filterMatch).Return([]order.Order{}, nil)
		orderRepo.On("Count", ctx, filterMatch).Return(int64(0), nil)

		_, _, err := service.List(ctx, OrderListFilter{PaymentStatus: "pending"})

		require.NoError(t, err)
		orderRepo.AssertExpectations(t)
	})
}

func TestOrderService_SetPaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions pending to complete", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		ord := placedOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, ord.ID).Return(ord, nil)
		orderRepo.On("Save", ctx, ord).Return(nil)

		resp, err := service.SetPaymentStatus(ctx, ord.ID, SetPaymentStatusRequest{PaymentStatus: "complete"})

		require.NoError(t, err)
		assert.Equal(t, "complete", resp.PaymentStatus)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects transitions out of a terminal status", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		ord := placedOrder(t, uuid.New())
		require.NoError(t, ord.SetPaymentStatus(order.PaymentStatusFailed))
		orderRepo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		_, err := service.SetPaymentStatus(ctx, ord.ID, SetPaymentStatusRequest{PaymentStatus: "complete"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewOrderService(orderRepo, customerRepo)

		id := uuid.New()
		orderRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.SetPaymentStatus(ctx, id, SetPaymentStatusRequest{PaymentStatus: "complete"})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
