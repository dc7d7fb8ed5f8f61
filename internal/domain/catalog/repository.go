package catalog

import (
	"context"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByID loads a product with its variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs loads multiple products with their variants in a single query
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// FindAll returns products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, error)

	// Count returns the number of products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a product and its variants
	Save(ctx context.Context, product *Product) error

	// SaveWithLock persists a product using optimistic locking on Version.
	// Returns shared.ErrConcurrencyConflict if the stored version differs.
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete removes a product and its variants
	Delete(ctx context.Context, id uuid.UUID) error
}
