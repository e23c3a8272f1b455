package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// newCheckoutTestDB opens an in-memory database with the checkout schema
func newCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Collection{},
		&catalog.Product{},
		&cart.Cart{},
		&cart.CartItem{},
		&customer.Customer{},
		&order.Order{},
		&order.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(title, "", "",
		valueobject.NewMoneyUSD(decimal.RequireFromString(price)), 10)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, lines map[*catalog.Product]int) *cart.Cart {
	t.Helper()
	crt := cart.NewCart()
	for product, qty := range lines {
		_, err := crt.AddItem(product.ID, qty)
		require.NoError(t, err)
	}
	require.NoError(t, NewGormCartRepository(db).Save(context.Background(), crt))
	return crt
}

func TestGormTransactionScope_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("commits the order and removes the cart", func(t *testing.T) {
		db := newCheckoutTestDB(t)

		mug := seedProduct(t, db, "Blue Mug", "9.99")
		plate := seedProduct(t, db, "Plate", "25.00")
		crt := seedCart(t, db, map[*catalog.Product]int{mug: 2, plate: 1})

		principalID := uuid.New()
		service := appcheckout.NewCheckoutService(NewGormTransactionScope(db), zap.NewNop())

		resp, err := service.PlaceOrder(ctx, principalID, appcheckout.PlaceOrderRequest{CartID: crt.ID})
		require.NoError(t, err)

		// Order and lines are persisted
		persisted, err := NewGormOrderRepository(db).FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusPending, persisted.PaymentStatus)
		assert.Len(t, persisted.Items, 2)
		assert.True(t, persisted.Total().Equal(decimal.RequireFromString("44.98")))

		// First purchase created the customer record
		cust, err := NewGormCustomerRepository(db).FindByPrincipal(ctx, principalID)
		require.NoError(t, err)
		assert.Equal(t, cust.ID, persisted.CustomerID)

		// The cart and its lines are gone
		_, err = NewGormCartRepository(db).FindByID(ctx, crt.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		var itemCount int64
		require.NoError(t, db.Model(&cart.CartItem{}).Where("cart_id = ?", crt.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(0), itemCount)
	})

	t.Run("checkout reuses the existing customer record", func(t *testing.T) {
		db := newCheckoutTestDB(t)

		mug := seedProduct(t, db, "Blue Mug", "9.99")
		principalID := uuid.New()
		service := appcheckout.NewCheckoutService(NewGormTransactionScope(db), zap.NewNop())

		first := seedCart(t, db, map[*catalog.Product]int{mug: 1})
		firstResp, err := service.PlaceOrder(ctx, principalID, appcheckout.PlaceOrderRequest{CartID: first.ID})
		require.NoError(t, err)

		second := seedCart(t, db, map[*catalog.Product]int{mug: 2})
		secondResp, err := service.PlaceOrder(ctx, principalID, appcheckout.PlaceOrderRequest{CartID: second.ID})
		require.NoError(t, err)

		assert.Equal(t, firstResp.CustomerID, secondResp.CustomerID)

		var custCount int64
		require.NoError(t, db.Model(&customer.Customer{}).Count(&custCount).Error)
		assert.Equal(t, int64(1), custCount)
	})

	t.Run("empty cart leaves everything untouched", func(t *testing.T) {
		db := newCheckoutTestDB(t)

		crt := seedCart(t, db, nil)
		service := appcheckout.NewCheckoutService(NewGormTransactionScope(db), zap.NewNop())

		_, err := service.PlaceOrder(ctx, uuid.New(), appcheckout.PlaceOrderRequest{CartID: crt.ID})
		assert.Equal(t, shared.ErrEmptyCart, err)

		// The cart survives
		_, err = NewGormCartRepository(db).FindByID(ctx, crt.ID)
		assert.NoError(t, err)

		var orderCount int64
		require.NoError(t, db.Model(&order.Order{}).Count(&orderCount).Error)
		assert.Equal(t, int64(0), orderCount)
	})
}

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls back all writes on error", func(t *testing.T) {
		db := newCheckoutTestDB(t)
		scope := NewGormTransactionScope(db)

		ord, err := order.NewOrder(uuid.New())
		require.NoError(t, err)

		boom := errors.New("late failure")
		err = scope.Execute(ctx, func(repos appcheckout.TransactionalRepositories) error {
			if err := repos.OrderRepo().Save(ctx, ord); err != nil {
				return err
			}
			return boom
		})
		assert.Equal(t, boom, err)

		var orderCount int64
		require.NoError(t, db.Model(&order.Order{}).Count(&orderCount).Error)
		assert.Equal(t, int64(0), orderCount)
	})

	t.Run("commits when the function succeeds", func(t *testing.T) {
		db := newCheckoutTestDB(t)
		scope := NewGormTransactionScope(db)

		ord, err := order.NewOrder(uuid.New())
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appcheckout.TransactionalRepositories) error {
			return repos.OrderRepo().Save(ctx, ord)
		})
		require.NoError(t, err)

		var orderCount int64
		require.NoError(t, db.Model(&order.Order{}).Count(&orderCount).Error)
		assert.Equal(t, int64(1), orderCount)
	})
}
