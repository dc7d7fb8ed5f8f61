package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/breezehub/backend/internal/domain/order"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

// newPersistedOrder builds a pending order as it would look after loading
// from the database.
func newPersistedOrder(t *testing.T) *order.Order {
	t.Helper()

	addr, err := valueobject.NewAddress("12 Main St", "Springfield", "IL", "62701", "USA")
	require.NoError(t, err)

	item, err := order.NewOrderItem(uuid.New(), uuid.New(), "Tower Fan", "medium", "white", 2, decimal.NewFromInt(80))
	require.NoError(t, err)

	o, err := order.NewOrder(uuid.New(), []order.OrderItem{*item}, addr)
	require.NoError(t, err)

	o.ClearDomainEvents()
	return o
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, o)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("finds existing order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		userID := uuid.New()
		itemID := uuid.New()

		orderRows := sqlmock.NewRows([]string{
			"id", "user_id", "total_amount", "status", "version",
		}).AddRow(orderID, userID, decimal.NewFromInt(160), "pending", 1)

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "product_name", "quantity", "price",
		}).AddRow(itemID, orderID, "Tower Fan", 2, decimal.NewFromInt(80))

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, order.OrderStatusPending, o.Status)
		require.Len(t, o.Items, 1)
		assert.Equal(t, int64(2), o.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindByRiderID(t *testing.T) {
	t.Run("restricts results to rider visible statuses", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		riderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE rider_id = \$1 AND status IN \(\$2,\$3,\$4\)`).
			WithArgs(riderID, order.OrderStatusShipped, order.OrderStatusDelivered, order.OrderStatusUndelivered, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		orders, err := repo.FindByRiderID(context.Background(), riderID, shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("updates status fields when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := newPersistedOrder(t)
		require.NoError(t, o.MarkPaid())

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), o)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns concurrency conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := newPersistedOrder(t)
		require.NoError(t, o.MarkPaid())

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), o)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
