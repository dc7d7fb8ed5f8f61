package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a product category
type Category string

const (
	CategoryFan Category = "fan"
	CategoryAC  Category = "ac"
)

// IsValid checks if the category is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryFan, CategoryAC:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Variant represents a specific size/color configuration of a product,
// carrying its own price and stock count.
// Size + color are unique within a product.
type Variant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_product_size_color,priority:1"`
	Size      string          `gorm:"size:50;not null;uniqueIndex:idx_variant_product_size_color,priority:2"`
	Color     string          `gorm:"size:50;not null;uniqueIndex:idx_variant_product_size_color,priority:3"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Stock     int64           `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a new variant for a product
func NewVariant(productID uuid.UUID, size, color string, price valueobject.Money, stock int64) (*Variant, error) {
	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)

	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE", "Variant size cannot be empty")
	}
	if color == "" {
		return nil, shared.NewDomainError("INVALID_COLOR", "Variant color cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Variant stock cannot be negative")
	}

	now := time.Now()
	return &Variant{
		ID:        uuid.New(),
		ProductID: productID,
		Size:      size,
		Color:     color,
		Price:     price.Amount(),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Matches returns true if the variant has the given size and color
func (v *Variant) Matches(size, color string) bool {
	return v.Size == size && v.Color == color
}

// CanFulfill returns true if the stock can cover the requested quantity
func (v *Variant) CanFulfill(quantity int64) bool {
	return v.Stock >= quantity
}

// reserve decrements the variant stock.
// Callers must go through Product so the aggregate version advances.
func (v *Variant) reserve(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}
	if v.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for variant (%s, %s): have %d, want %d", v.Size, v.Color, v.Stock, quantity))
	}

	v.Stock -= quantity
	v.UpdatedAt = time.Now()
	return nil
}

// GetPriceMoney returns the variant price as Money value object
func (v *Variant) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(v.Price)
}

// Product represents a product aggregate root.
// Variant stock is mutated only through ReserveVariant and SetVariantStock
// so that every stock change advances the aggregate version.
type Product struct {
	shared.BaseAggregateRoot
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text;not null"`
	Category    Category  `gorm:"size:20;not null;index"`
	Brand       string    `gorm:"size:100;not null;index"`
	Variants    []Variant `gorm:"foreignKey:ProductID;references:ID"`
	Images      []string  `gorm:"serializer:json"`
	Features    []string  `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description, brand string, category Category) (*Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	brand = strings.TrimSpace(brand)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Product brand cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY",
			fmt.Sprintf("Category must be one of: %s, %s", CategoryFan, CategoryAC))
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Category:          category,
		Brand:             brand,
		Variants:          make([]Variant, 0),
		Images:            make([]string, 0),
		Features:          make([]string, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// AddVariant adds a new variant to the product.
// The size+color pair must be unique within the product.
func (p *Product) AddVariant(size, color string, price valueobject.Money, stock int64) (*Variant, error) {
	for _, v := range p.Variants {
		if v.Matches(strings.TrimSpace(size), strings.TrimSpace(color)) {
			return nil, shared.NewDomainError("DUPLICATE_VARIANT",
				fmt.Sprintf("Variant (%s, %s) already exists for this product", size, color))
		}
	}

	variant, err := NewVariant(p.ID, size, color, price, stock)
	if err != nil {
		return nil, err
	}

	p.Variants = append(p.Variants, *variant)
	p.UpdatedAt = time.Now()

	return variant, nil
}

// FindVariant returns the variant matching the given size and color, or nil
func (p *Product) FindVariant(size, color string) *Variant {
	for idx := range p.Variants {
		if p.Variants[idx].Matches(size, color) {
			return &p.Variants[idx]
		}
	}
	return nil
}

// FindVariantByID returns the variant with the given ID, or nil
func (p *Product) FindVariantByID(variantID uuid.UUID) *Variant {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return &p.Variants[idx]
		}
	}
	return nil
}

// ReserveVariant decrements stock for the variant matching size+color.
// Fails if the variant does not exist or stock is insufficient.
func (p *Product) ReserveVariant(size, color string, quantity int64) error {
	variant := p.FindVariant(size, color)
	if variant == nil {
		return shared.NewDomainError("VARIANT_NOT_FOUND",
			fmt.Sprintf("Variant not found for product %s (%s, %s)", p.Name, size, color))
	}

	if err := variant.reserve(quantity); err != nil {
		return err
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReservedEvent(p, variant, quantity))

	return nil
}

// SetVariantStock overwrites the stock of a variant (administrative correction).
// Bypasses reservation semantics; the only validation is newStock >= 0.
func (p *Product) SetVariantStock(variantID uuid.UUID, newStock int64) error {
	if newStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	variant := p.FindVariantByID(variantID)
	if variant == nil {
		return shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
	}

	oldStock := variant.Stock
	variant.Stock = newStock
	variant.UpdatedAt = time.Now()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockAdjustedEvent(p, variant, oldStock, newStock))

	return nil
}

// UpdateDetails updates the display fields of the product
func (p *Product) UpdateDetails(name, description, brand string, category Category) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	brand = strings.TrimSpace(brand)

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if brand == "" {
		return shared.NewDomainError("INVALID_BRAND", "Product brand cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY",
			fmt.Sprintf("Category must be one of: %s, %s", CategoryFan, CategoryAC))
	}

	p.Name = name
	p.Description = description
	p.Brand = brand
	p.Category = category
	p.UpdatedAt = time.Now()

	return nil
}

// SetImages replaces the product image URLs
func (p *Product) SetImages(images []string) {
	p.Images = images
	p.UpdatedAt = time.Now()
}

// SetFeatures replaces the product feature list
func (p *Product) SetFeatures(features []string) {
	p.Features = features
	p.UpdatedAt = time.Now()
}

// TotalStock returns the stock summed across all variants
func (p *Product) TotalStock() int64 {
	var total int64
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// HasVariants returns true if the product has at least one variant
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}
