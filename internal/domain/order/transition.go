package order

import (
	"fmt"

	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransitionPolicy decides whether a principal may drive an order to a
// target status. Role and assignment checks fail with FORBIDDEN; a
// permitted actor in the wrong current state fails with INVALID_STATE
// inside the aggregate. The rule set is closed: anything not listed
// here is rejected.
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new transition policy
func NewTransitionPolicy() *TransitionPolicy {
	return &TransitionPolicy{}
}

// riderTargets are the only statuses a rider may set
var riderTargets = map[OrderStatus]bool{
	OrderStatusDelivered:   true,
	OrderStatusUndelivered: true,
}

// Authorize checks role and assignment rules for a requested transition.
// It does not inspect the current status; that stays with the aggregate.
func (p *TransitionPolicy) Authorize(principal identity.Principal, o *Order, target OrderStatus, riderID *uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Unknown order status: %s", target))
	}

	if riderID != nil && target != OrderStatusShipped {
		return shared.NewDomainError("INVALID_RIDER_ASSIGNMENT",
			"A rider can only be assigned when shipping an order")
	}

	switch principal.Role {
	case identity.RoleAdmin:
		return nil

	case identity.RoleRider:
		if !riderTargets[target] {
			return shared.NewDomainError("FORBIDDEN",
				fmt.Sprintf("Riders cannot set order status to %s", target))
		}
		if !o.IsAssignedTo(principal.ID) {
			return shared.NewDomainError("FORBIDDEN", "Order is not assigned to this rider")
		}
		return nil

	case identity.RoleCustomer:
		return shared.NewDomainError("FORBIDDEN", "Customers cannot change order status")
	}

	return shared.NewDomainError("FORBIDDEN",
		fmt.Sprintf("Unknown role: %s", principal.Role))
}

// Apply performs the transition on the aggregate after authorization
func (p *TransitionPolicy) Apply(o *Order, target OrderStatus, riderID *uuid.UUID) error {
	switch target {
	case OrderStatusPaid:
		return o.MarkPaid()
	case OrderStatusShipped:
		return o.Ship(riderID)
	case OrderStatusDelivered:
		return o.MarkDelivered()
	case OrderStatusUndelivered:
		return o.MarkUndelivered()
	case OrderStatusPending:
		return shared.NewDomainError("INVALID_STATE", "Orders cannot return to pending")
	}
	return shared.NewDomainError("INVALID_STATUS",
		fmt.Sprintf("Unknown order status: %s", target))
}

// CanView applies the read visibility rules for the given principal
func (p *TransitionPolicy) CanView(principal identity.Principal, o *Order) bool {
	switch principal.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleCustomer:
		return o.UserID == principal.ID
	case identity.RoleRider:
		return o.IsAssignedTo(principal.ID) &&
			(o.Status == OrderStatusShipped || o.Status.IsTerminal())
	}
	return false
}
