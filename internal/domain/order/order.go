package order

import (
	"fmt"
	"time"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem represents a line item of an order. Price is a snapshot of the
// variant price at creation time; later catalog changes never touch it.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"size:200;not null"`
	Size        string          `gorm:"size:50;not null"`
	Color       string          `gorm:"size:50;not null"`
	Quantity    int64           `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price multiplied by quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// NewOrderItem creates a new order line item
func NewOrderItem(productID, variantID uuid.UUID, productName, size, color string, quantity int64, price decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		Size:        size,
		Color:       color,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now(),
	}, nil
}

// Order represents an order aggregate root. TotalAmount is computed once at
// creation; every later mutation goes through a status transition method.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status          OrderStatus         `gorm:"size:20;not null;default:pending;index"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb;not null"`
	RiderID         *uuid.UUID          `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in pending status from already reserved items
func NewOrder(userID uuid.UUID, items []OrderItem, shippingAddress valueobject.Address) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}
	if shippingAddress.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             items,
		TotalAmount:       total,
		Status:            OrderStatusPending,
		ShippingAddress:   shippingAddress,
	}

	for idx := range o.Items {
		o.Items[idx].OrderID = o.ID
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// MarkPaid transitions the order from pending to paid
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}

	o.Status = OrderStatusPaid
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusPending, OrderStatusPaid))

	return nil
}

// Ship transitions the order from paid to shipped, optionally assigning a rider
func (o *Order) Ship(riderID *uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}
	if riderID != nil && *riderID == uuid.Nil {
		return shared.NewDomainError("INVALID_RIDER", "Rider ID cannot be empty")
	}

	o.Status = OrderStatusShipped
	if riderID != nil {
		o.RiderID = riderID
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusPaid, OrderStatusShipped))
	if riderID != nil {
		o.AddDomainEvent(NewRiderAssignedEvent(o, *riderID))
	}

	return nil
}

// MarkDelivered transitions the order from shipped to delivered
func (o *Order) MarkDelivered() error {
	return o.completeDelivery(OrderStatusDelivered)
}

// MarkUndelivered transitions the order from shipped to undelivered
func (o *Order) MarkUndelivered() error {
	return o.completeDelivery(OrderStatusUndelivered)
}

func (o *Order) completeDelivery(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark order %s in %s status", target, o.Status))
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// IsAssignedTo returns true if the order is assigned to the given rider
func (o *Order) IsAssignedTo(riderID uuid.UUID) bool {
	return o.RiderID != nil && *o.RiderID == riderID
}

// ItemCount returns the total quantity across all items
func (o *Order) ItemCount() int64 {
	var count int64
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
