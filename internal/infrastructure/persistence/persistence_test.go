package persistence

import (
	"testing"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newPersistedProduct builds a product with a single variant carrying the
// given stock, as it would look after loading from the database.
func newPersistedProduct(t *testing.T, stock int64) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct("Window AC", "Compact window unit", "Breeze", catalog.CategoryAC)
	require.NoError(t, err)

	_, err = product.AddVariant("small", "white", valueobject.NewMoneyUSD(decimal.NewFromInt(250)), stock)
	require.NoError(t, err)

	product.ClearDomainEvents()
	return product
}
