package inventory

import (
	"github.com/breezehub/backend/internal/domain/inventory"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReserveLine is one variantful quantity in a reservation request
type ReserveLine struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
}

// ReserveRequest asks the ledger to decrement stock for every line or none
type ReserveRequest struct {
	Lines      []ReserveLine `json:"lines"`
	SourceType string        `json:"source_type"`
	SourceID   string        `json:"source_id"`
}

func (r ReserveRequest) toDomain() (inventory.ReservationRequest, error) {
	req := inventory.ReservationRequest{
		SourceType: r.SourceType,
		SourceID:   r.SourceID,
		Lines:      make([]inventory.ReservationLine, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return req, shared.NewDomainError("INVALID_PRODUCT", "Product ID is not a valid UUID")
		}
		req.Lines = append(req.Lines, inventory.ReservationLine{
			ProductID: productID,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		})
	}
	return req, nil
}
