package inventory

import (
	"context"
	"fmt"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationService is a domain service that coordinates stock reservation
// across multiple Product aggregates. A reservation succeeds only if every
// requested line can be fulfilled; on any failure no aggregate is modified.
//
// The service mutates the Product aggregates in-place but does NOT persist
// them. The caller is responsible for:
// 1. Retrieving Products from the repository
// 2. Calling ReserveStock
// 3. Persisting the modified Products inside a single transaction
// 4. Publishing the domain events
type ReservationService struct{}

// NewReservationService creates a new reservation service
func NewReservationService() *ReservationService {
	return &ReservationService{}
}

// ReservationLine represents a single variant quantity to reserve
type ReservationLine struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int64
}

// ReservationRequest represents a request to reserve stock for multiple lines
type ReservationRequest struct {
	Lines      []ReservationLine
	SourceType string // Source document type (e.g., "ORDER", "ADMIN")
	SourceID   string // Source document ID
}

// Validate validates the reservation request
func (r *ReservationRequest) Validate() error {
	if len(r.Lines) == 0 {
		return shared.NewDomainError("INVALID_REQUEST", "At least one line is required for reservation")
	}
	if r.SourceType == "" {
		return shared.NewDomainError("INVALID_SOURCE_TYPE", "Source type is required")
	}

	for i, line := range r.Lines {
		if line.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_LINE",
				fmt.Sprintf("Product ID at index %d is empty", i))
		}
		if line.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY",
				fmt.Sprintf("Quantity at index %d must be positive", i))
		}
	}

	return nil
}

// ReservationLineResult captures the outcome and price snapshot for one line
type ReservationLineResult struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ReservationResult represents the result of an all-or-nothing reservation
type ReservationResult struct {
	CorrelationID uuid.UUID               `json:"correlation_id"`
	SourceType    string                  `json:"source_type"`
	SourceID      string                  `json:"source_id"`
	Lines         []ReservationLineResult `json:"lines"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	Products      []*catalog.Product      `json:"-"` // Modified aggregates to persist
}

// ReserveStock attempts to reserve stock for all lines in the request.
// It works in two passes: first every line is checked against the loaded
// aggregates, then the decrements are applied. Because the first pass
// rejects the whole request on any missing variant or shortfall, the
// second pass cannot leave a partial reservation behind.
//
// The products map must contain every product referenced by the request,
// keyed by product ID; a missing entry is reported as NOT_FOUND.
func (s *ReservationService) ReserveStock(
	ctx context.Context,
	products map[uuid.UUID]*catalog.Product,
	req ReservationRequest,
) (*ReservationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// First pass: resolve every line and check stock. Quantities for the
	// same variant are accumulated so duplicate lines cannot oversell.
	requested := make(map[uuid.UUID]int64)
	resolved := make([]*catalog.Variant, len(req.Lines))
	for i, line := range req.Lines {
		product, ok := products[line.ProductID]
		if ok && product == nil {
			ok = false
		}
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("Product %s not found", line.ProductID))
		}

		variant := product.FindVariant(line.Size, line.Color)
		if variant == nil {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("Variant (%s, %s) not found for product %s", line.Size, line.Color, product.Name))
		}

		requested[variant.ID] += line.Quantity
		if !variant.CanFulfill(requested[variant.ID]) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %s (%s, %s): have %d, want %d",
					product.Name, line.Size, line.Color, variant.Stock, requested[variant.ID]))
		}
		resolved[i] = variant
	}

	result := &ReservationResult{
		CorrelationID: uuid.New(),
		SourceType:    req.SourceType,
		SourceID:      req.SourceID,
		Lines:         make([]ReservationLineResult, len(req.Lines)),
		TotalAmount:   decimal.Zero,
	}

	// Second pass: apply the decrements through the aggregates so each
	// touched product bumps its version and records its events.
	touched := make(map[uuid.UUID]*catalog.Product)
	for i, line := range req.Lines {
		product := products[line.ProductID]
		if err := product.ReserveVariant(line.Size, line.Color, line.Quantity); err != nil {
			// Unreachable after the first pass; surface it rather than hide it.
			return nil, err
		}
		touched[product.ID] = product

		variant := resolved[i]
		lineTotal := variant.Price.Mul(decimal.NewFromInt(line.Quantity))
		result.TotalAmount = result.TotalAmount.Add(lineTotal)
		result.Lines[i] = ReservationLineResult{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			Size:        variant.Size,
			Color:       variant.Color,
			Quantity:    line.Quantity,
			UnitPrice:   variant.Price,
		}
	}

	result.Products = make([]*catalog.Product, 0, len(touched))
	for _, product := range touched {
		result.Products = append(result.Products, product)
	}

	return result, nil
}
