package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
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

func TestCustomerService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the record on first access", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		repo.On("GetOrCreateByPrincipal", ctx, principalID).Return(cust, nil)

		resp, err := service.GetMe(ctx, principalID)

		require.NoError(t, err)
		assert.Equal(t, principalID, resp.PrincipalID)
		assert.Equal(t, "standard", resp.Membership)
	})

	t.Run("rejects the nil principal", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		_, err := service.GetMe(ctx, uuid.Nil)

		assert.Equal(t, shared.ErrUnauthorized, err)
		repo.AssertNotCalled(t, "GetOrCreateByPrincipal", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and saves the profile", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		repo.On("GetOrCreateByPrincipal", ctx, principalID).Return(cust, nil)
		repo.On("Save", ctx, cust).Return(nil)

		resp, err := service.UpdateMe(ctx, principalID, UpdateProfileRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "  Ada@Example.COM ",
		})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.Email)
		assert.Equal(t, "Ada", resp.FirstName)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a malformed email without saving", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		principalID := uuid.New()
		cust := customer.NewCustomer(principalID)
		repo.On("GetOrCreateByPrincipal", ctx, principalID).Return(cust, nil)

		_, err := service.UpdateMe(ctx, principalID, UpdateProfileRequest{Email: "not-an-email"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_SetMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("upgrades the tier", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		cust := customer.NewCustomer(uuid.New())
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		repo.On("Save", ctx, cust).Return(nil)

		resp, err := service.SetMembership(ctx, cust.ID, SetMembershipRequest{Membership: "gold"})

		require.NoError(t, err)
		assert.Equal(t, "gold", resp.Membership)
	})

	t.Run("rejects an unknown tier", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		cust := customer.NewCustomer(uuid.New())
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)

		_, err := service.SetMembership(ctx, cust.ID, SetMembershipRequest{Membership: "platinum"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.SetMembership(ctx, id, SetMembershipRequest{Membership: "gold"})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	filterMatch := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["membership"] == "gold" && f.Page == 1 && f.PageSize == 20
	})
	repo.On("FindAll", ctx, filterMatch).Return([]customer.Customer{}, nil)
	repo.On("Count", ctx, filterMatch).Return(int64(0), nil)

	_, total, err := service.List(ctx, CustomerListFilter{Membership: "gold"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	repo.AssertExpectations(t)
}
