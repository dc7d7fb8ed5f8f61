package order

import (
	"testing"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("12 Lakeview Rd", "Austin", "TX", "78701", "USA")
	require.NoError(t, err)
	return addr
}

func testItem(t *testing.T, price float64, quantity int64) OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), uuid.New(), "Tower Fan", "medium", "white", quantity, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return *item
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), []OrderItem{testItem(t, 100, 1)}, testAddress(t))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestNewOrderItem(t *testing.T) {
	t.Run("fails with zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), uuid.New(), "Fan", "medium", "white", 0, decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), uuid.New(), "Fan", "medium", "white", 1, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("computes subtotal", func(t *testing.T) {
		item := testItem(t, 49.99, 3)
		assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(149.97)))
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order and sums total once", func(t *testing.T) {
		userID := uuid.New()
		items := []OrderItem{testItem(t, 100.50, 2), testItem(t, 49.99, 1)}

		o, err := NewOrder(userID, items, testAddress(t))
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.Equal(t, userID, o.UserID)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(250.99)))
		assert.Nil(t, o.RiderID)
		assert.Equal(t, 1, o.GetVersion())

		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("total is immune to later item price changes", func(t *testing.T) {
		items := []OrderItem{testItem(t, 100, 2)}
		o, err := NewOrder(uuid.New(), items, testAddress(t))
		require.NoError(t, err)

		items[0].Price = decimal.NewFromInt(999)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("publishes OrderCreated event", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), []OrderItem{testItem(t, 100, 2)}, testAddress(t))
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, o.UserID, event.UserID)
		assert.Equal(t, int64(2), event.ItemCount)
	})

	t.Run("fails with no items", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), []OrderItem{}, testAddress(t))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ITEMS", domainErr.Code)
	})

	t.Run("fails with empty address", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), []OrderItem{testItem(t, 100, 1)}, valueobject.EmptyAddress())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
	})

	t.Run("fails with empty user", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, []OrderItem{testItem(t, 100, 1)}, testAddress(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User ID")
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Run("pending to paid", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.MarkPaid())
		assert.Equal(t, OrderStatusPaid, o.Status)
		assert.Equal(t, 2, o.GetVersion())

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, OrderStatusPending, event.FromStatus)
		assert.Equal(t, OrderStatusPaid, event.ToStatus)
	})

	t.Run("paid to shipped with rider", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())
		o.ClearDomainEvents()

		riderID := uuid.New()
		require.NoError(t, o.Ship(&riderID))
		assert.Equal(t, OrderStatusShipped, o.Status)
		require.NotNil(t, o.RiderID)
		assert.Equal(t, riderID, *o.RiderID)

		events := o.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeOrderStatusChanged, events[0].EventType())
		assert.Equal(t, EventTypeRiderAssigned, events[1].EventType())
	})

	t.Run("paid to shipped without rider", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())

		require.NoError(t, o.Ship(nil))
		assert.Equal(t, OrderStatusShipped, o.Status)
		assert.Nil(t, o.RiderID)
	})

	t.Run("shipped to delivered", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(nil))

		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, OrderStatusDelivered, o.Status)
	})

	t.Run("shipped to undelivered", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(nil))

		require.NoError(t, o.MarkUndelivered())
		assert.Equal(t, OrderStatusUndelivered, o.Status)
	})

	t.Run("cannot skip paid", func(t *testing.T) {
		o := testOrder(t)

		err := o.Ship(nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("cannot pay twice", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())

		err := o.MarkPaid()
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("terminal states reject all transitions", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(nil))
		require.NoError(t, o.MarkDelivered())

		assert.Error(t, o.MarkPaid())
		assert.Error(t, o.Ship(nil))
		assert.Error(t, o.MarkDelivered())
		assert.Error(t, o.MarkUndelivered())
		assert.Equal(t, OrderStatusDelivered, o.Status)
	})
}

func TestOrderStatusTable(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusUndelivered, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusPaid, false},
		{OrderStatusPaid, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusUndelivered, true},
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusUndelivered, false},
		{OrderStatusUndelivered, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusPending, false},
	}

	for _, tt := range tests {
		name := tt.from.String() + "_to_" + tt.to.String()
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsAssignedTo(t *testing.T) {
	o := testOrder(t)
	riderID := uuid.New()

	assert.False(t, o.IsAssignedTo(riderID))

	require.NoError(t, o.MarkPaid())
	require.NoError(t, o.Ship(&riderID))

	assert.True(t, o.IsAssignedTo(riderID))
	assert.False(t, o.IsAssignedTo(uuid.New()))
}
