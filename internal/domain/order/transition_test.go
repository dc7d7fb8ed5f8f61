package order

import (
	"testing"

	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderInStatus(t *testing.T, status OrderStatus, riderID *uuid.UUID) *Order {
	t.Helper()
	o := testOrder(t)

	switch status {
	case OrderStatusPending:
	case OrderStatusPaid:
		require.NoError(t, o.MarkPaid())
	case OrderStatusShipped:
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(riderID))
	case OrderStatusDelivered:
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(riderID))
		require.NoError(t, o.MarkDelivered())
	case OrderStatusUndelivered:
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Ship(riderID))
		require.NoError(t, o.MarkUndelivered())
	}

	o.ClearDomainEvents()
	return o
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestTransitionPolicyAuthorize(t *testing.T) {
	policy := NewTransitionPolicy()
	admin := identity.Principal{ID: uuid.New(), Role: identity.RoleAdmin}
	customer := identity.Principal{ID: uuid.New(), Role: identity.RoleCustomer}

	t.Run("admin may request any defined status", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		for _, target := range []OrderStatus{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusUndelivered} {
			assert.NoError(t, policy.Authorize(admin, o, target, nil))
		}
	})

	t.Run("customer is always forbidden", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		for _, target := range []OrderStatus{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusUndelivered} {
			err := policy.Authorize(customer, o, target, nil)
			require.Error(t, err)
			assert.Equal(t, "FORBIDDEN", domainCode(t, err))
		}
	})

	t.Run("customer forbidden even for own order", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		owner := identity.Principal{ID: o.UserID, Role: identity.RoleCustomer}

		err := policy.Authorize(owner, o, OrderStatusPaid, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	})

	t.Run("assigned rider may deliver", func(t *testing.T) {
		riderID := uuid.New()
		o := orderInStatus(t, OrderStatusShipped, &riderID)
		rider := identity.Principal{ID: riderID, Role: identity.RoleRider}

		assert.NoError(t, policy.Authorize(rider, o, OrderStatusDelivered, nil))
		assert.NoError(t, policy.Authorize(rider, o, OrderStatusUndelivered, nil))
	})

	t.Run("unassigned rider is forbidden", func(t *testing.T) {
		riderID := uuid.New()
		o := orderInStatus(t, OrderStatusShipped, &riderID)
		other := identity.Principal{ID: uuid.New(), Role: identity.RoleRider}

		err := policy.Authorize(other, o, OrderStatusDelivered, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	})

	t.Run("rider on unassigned order is forbidden", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusShipped, nil)
		rider := identity.Principal{ID: uuid.New(), Role: identity.RoleRider}

		err := policy.Authorize(rider, o, OrderStatusDelivered, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	})

	t.Run("rider cannot pay or ship", func(t *testing.T) {
		riderID := uuid.New()
		o := orderInStatus(t, OrderStatusShipped, &riderID)
		rider := identity.Principal{ID: riderID, Role: identity.RoleRider}

		for _, target := range []OrderStatus{OrderStatusPaid, OrderStatusShipped} {
			err := policy.Authorize(rider, o, target, nil)
			require.Error(t, err)
			assert.Equal(t, "FORBIDDEN", domainCode(t, err))
		}
	})

	t.Run("rejects rider assignment outside shipping", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		riderID := uuid.New()

		err := policy.Authorize(admin, o, OrderStatusPaid, &riderID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_RIDER_ASSIGNMENT", domainCode(t, err))

		err = policy.Authorize(admin, o, OrderStatusDelivered, &riderID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_RIDER_ASSIGNMENT", domainCode(t, err))
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)

		err := policy.Authorize(admin, o, OrderStatus("returned"), nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATUS", domainCode(t, err))
	})
}

func TestTransitionPolicyApply(t *testing.T) {
	policy := NewTransitionPolicy()

	t.Run("applies the full lifecycle", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		riderID := uuid.New()

		require.NoError(t, policy.Apply(o, OrderStatusPaid, nil))
		require.NoError(t, policy.Apply(o, OrderStatusShipped, &riderID))
		require.NoError(t, policy.Apply(o, OrderStatusDelivered, nil))
		assert.Equal(t, OrderStatusDelivered, o.Status)
	})

	t.Run("wrong current state fails with INVALID_STATE", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)

		err := policy.Apply(o, OrderStatusDelivered, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
	})

	t.Run("rejects pending as target", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPaid, nil)

		err := policy.Apply(o, OrderStatusPending, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
	})
}

func TestTransitionPolicyCanView(t *testing.T) {
	policy := NewTransitionPolicy()

	t.Run("admin sees everything", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		admin := identity.Principal{ID: uuid.New(), Role: identity.RoleAdmin}
		assert.True(t, policy.CanView(admin, o))
	})

	t.Run("customer sees only own orders", func(t *testing.T) {
		o := orderInStatus(t, OrderStatusPending, nil)
		owner := identity.Principal{ID: o.UserID, Role: identity.RoleCustomer}
		stranger := identity.Principal{ID: uuid.New(), Role: identity.RoleCustomer}

		assert.True(t, policy.CanView(owner, o))
		assert.False(t, policy.CanView(stranger, o))
	})

	t.Run("rider sees assigned orders only once shipped", func(t *testing.T) {
		riderID := uuid.New()
		rider := identity.Principal{ID: riderID, Role: identity.RoleRider}

		paid := orderInStatus(t, OrderStatusPaid, nil)
		assert.False(t, policy.CanView(rider, paid))

		shipped := orderInStatus(t, OrderStatusShipped, &riderID)
		assert.True(t, policy.CanView(rider, shipped))

		delivered := orderInStatus(t, OrderStatusDelivered, &riderID)
		assert.True(t, policy.CanView(rider, delivered))

		otherShipped := orderInStatus(t, OrderStatusShipped, nil)
		assert.False(t, policy.CanView(rider, otherShipped))
	})
}
