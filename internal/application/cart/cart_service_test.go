package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) CountItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCollection(ctx context.Context, collectionID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, collectionID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCollection(ctx context.Context, collectionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func catalogProduct(t *testing.T, title, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, "", "",
		valueobject.NewMoneyUSD(decimal.RequireFromString(price)), 10)
	require.NoError(t, err)
	return p
}

func TestCartService_Create(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil)

	resp, err := service.Create(ctx)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.TotalPrice.IsZero())
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a product and returns totals", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		mug := catalogProduct(t, "Blue Mug", "9.99")
		crt := cart.NewCart()

		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
		productRepo.On("FindByID", ctx, mug.ID).Return(mug, nil)
		cartRepo.On("Save", ctx, crt).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*mug}, nil)

		resp, err := service.AddItem(ctx, crt.ID, AddItemRequest{ProductID: mug.ID, Quantity: 3})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].Quantity)
		assert.Equal(t, "Blue Mug", resp.Items[0].Product.Title)
		assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("29.97")))
	})

	t.Run("increments the existing line for the same product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		mug := catalogProduct(t, "Blue Mug", "9.99")
		crt := cart.NewCart()
		existing, err := crt.AddItem(mug.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
		productRepo.On("FindByID", ctx, mug.ID).Return(mug, nil)
		cartRepo.On("Save", ctx, crt).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*mug}, nil)

		resp, err := service.AddItem(ctx, crt.ID, AddItemRequest{ProductID: mug.ID, Quantity: 3})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, existing.ID, resp.Items[0].ID)
		assert.Equal(t, 5, resp.Items[0].Quantity)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		crt := cart.NewCart()
		productID := uuid.New()

		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddItem(ctx, crt.ID, AddItemRequest{ProductID: productID, Quantity: 1})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the line quantity", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		mug := catalogProduct(t, "Blue Mug", "9.99")
		crt := cart.NewCart()
		item, err := crt.AddItem(mug.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
		cartRepo.On("Save", ctx, crt).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*mug}, nil)

		resp, err := service.UpdateItem(ctx, crt.ID, item.ID, UpdateItemRequest{Quantity: 7})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 7, resp.Items[0].Quantity)
	})

	t.Run("unknown line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		crt := cart.NewCart()
		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)

		_, err := service.UpdateItem(ctx, crt.ID, uuid.New(), UpdateItemRequest{Quantity: 1})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		mug := catalogProduct(t, "Blue Mug", "9.99")
		crt := cart.NewCart()
		item, err := crt.AddItem(mug.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
		cartRepo.On("DeleteItem", ctx, crt.ID, item.ID).Return(nil)

		require.NoError(t, service.RemoveItem(ctx, crt.ID, item.ID))
		cartRepo.AssertExpectations(t)
	})

	t.Run("unknown line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)

		crt := cart.NewCart()
		cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)

		err := service.RemoveItem(ctx, crt.ID, uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		cartRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartService_Delete(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	crt := cart.NewCart()
	cartRepo.On("FindByID", ctx, crt.ID).Return(crt, nil)
	cartRepo.On("Delete", ctx, crt.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, crt.ID))
	cartRepo.AssertExpectations(t)
}
