package order

import (
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the order domain
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeRiderAssigned      = "order.rider_assigned"
)

// OrderCreatedEvent is emitted when a new order is built
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int64           `json:"item_count"`
}

func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		ItemCount:       o.ItemCount(),
	}
}

// OrderStatusChangedEvent is emitted on every successful status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		FromStatus:      from,
		ToStatus:        to,
	}
}

// RiderAssignedEvent is emitted when a rider is attached during shipping
type RiderAssignedEvent struct {
	shared.BaseDomainEvent
	RiderID uuid.UUID `json:"rider_id"`
}

func NewRiderAssignedEvent(o *Order, riderID uuid.UUID) *RiderAssignedEvent {
	return &RiderAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRiderAssigned, "Order", o.ID),
		RiderID:         riderID,
	}
}
