package order

import (
	"context"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)

	// FindByUserID returns orders placed by the given user
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*Order, error)

	// FindByRiderID returns orders assigned to the given rider,
	// restricted to statuses visible to riders
	FindByRiderID(ctx context.Context, riderID uuid.UUID, filter shared.Filter) ([]*Order, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists an order and its items
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists an order using optimistic locking on Version.
	// Returns shared.ErrConcurrencyConflict if the stored version differs.
	SaveWithLock(ctx context.Context, o *Order) error
}
