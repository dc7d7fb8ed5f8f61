package catalog

import (
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated = "catalog.product.created"
	EventTypeStockReserved  = "catalog.stock.reserved"
	EventTypeStockAdjusted  = "catalog.stock.adjusted"
)

// ProductCreatedEvent is emitted when a new product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductName string   `json:"product_name"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
}

func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID),
		ProductName:     product.Name,
		Category:        product.Category,
		Brand:           product.Brand,
	}
}

// StockReservedEvent is emitted when variant stock is decremented by a reservation
type StockReservedEvent struct {
	shared.BaseDomainEvent
	VariantID      uuid.UUID `json:"variant_id"`
	Size           string    `json:"size"`
	Color          string    `json:"color"`
	Quantity       int64     `json:"quantity"`
	RemainingStock int64     `json:"remaining_stock"`
}

func NewStockReservedEvent(product *Product, variant *Variant, quantity int64) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, "Product", product.ID),
		VariantID:       variant.ID,
		Size:            variant.Size,
		Color:           variant.Color,
		Quantity:        quantity,
		RemainingStock:  variant.Stock,
	}
}

// StockAdjustedEvent is emitted when an administrator overwrites variant stock
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	VariantID uuid.UUID `json:"variant_id"`
	OldStock  int64     `json:"old_stock"`
	NewStock  int64     `json:"new_stock"`
}

func NewStockAdjustedEvent(product *Product, variant *Variant, oldStock, newStock int64) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "Product", product.ID),
		VariantID:       variant.ID,
		OldStock:        oldStock,
		NewStock:        newStock,
	}
}
