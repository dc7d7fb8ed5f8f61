package catalog

import (
	"strings"
	"testing"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Breeze Tower Fan", "Quiet oscillating tower fan", "Breeze", CategoryFan)
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Breeze Tower Fan", "Quiet oscillating tower fan", "Breeze", CategoryFan)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Breeze Tower Fan", product.Name)
		assert.Equal(t, "Quiet oscillating tower fan", product.Description)
		assert.Equal(t, "Breeze", product.Brand)
		assert.Equal(t, CategoryFan, product.Category)
		assert.Empty(t, product.Variants)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		product, err := NewProduct("  Breeze Tower Fan  ", " desc ", " Breeze ", CategoryFan)
		require.NoError(t, err)
		assert.Equal(t, "Breeze Tower Fan", product.Name)
		assert.Equal(t, "Breeze", product.Brand)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product := makeProduct(t)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.Name, event.ProductName)
		assert.Equal(t, product.Category, event.Category)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", "desc", "Breeze", CategoryFan)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		longName := strings.Repeat("a", 201)
		_, err := NewProduct(longName, "desc", "Breeze", CategoryFan)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("fails with empty description", func(t *testing.T) {
		_, err := NewProduct("Fan", "", "Breeze", CategoryFan)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description cannot be empty")
	})

	t.Run("fails with empty brand", func(t *testing.T) {
		_, err := NewProduct("Fan", "desc", "", CategoryFan)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "brand cannot be empty")
	})

	t.Run("fails with unknown category", func(t *testing.T) {
		_, err := NewProduct("Fan", "desc", "Breeze", Category("heater"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestAddVariant(t *testing.T) {
	t.Run("adds variant with valid inputs", func(t *testing.T) {
		product := makeProduct(t)

		variant, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 10)
		require.NoError(t, err)
		require.NotNil(t, variant)

		assert.Equal(t, "medium", variant.Size)
		assert.Equal(t, "white", variant.Color)
		assert.Equal(t, int64(10), variant.Stock)
		assert.True(t, variant.Price.Equal(valueobject.NewMoneyUSDFromFloat(89.99).Amount()))
		assert.Len(t, product.Variants, 1)
	})

	t.Run("rejects duplicate size and color", func(t *testing.T) {
		product := makeProduct(t)

		_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 10)
		require.NoError(t, err)

		_, err = product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(99.99), 5)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_VARIANT", domainErr.Code)
	})

	t.Run("allows same size in different color", func(t *testing.T) {
		product := makeProduct(t)

		_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 10)
		require.NoError(t, err)
		_, err = product.AddVariant("medium", "black", valueobject.NewMoneyUSDFromFloat(89.99), 4)
		require.NoError(t, err)
		assert.Len(t, product.Variants, 2)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product := makeProduct(t)
		_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(-1), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		product := makeProduct(t)
		_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock cannot be negative")
	})
}

func TestReserveVariant(t *testing.T) {
	newProductWithStock := func(t *testing.T, stock int64) *Product {
		product := makeProduct(t)
		_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), stock)
		require.NoError(t, err)
		product.ClearDomainEvents()
		return product
	}

	t.Run("decrements stock and bumps version", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		versionBefore := product.GetVersion()

		err := product.ReserveVariant("medium", "white", 3)
		require.NoError(t, err)

		assert.Equal(t, int64(7), product.FindVariant("medium", "white").Stock)
		assert.Equal(t, versionBefore+1, product.GetVersion())
	})

	t.Run("publishes StockReserved event", func(t *testing.T) {
		product := newProductWithStock(t, 10)

		err := product.ReserveVariant("medium", "white", 3)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*StockReservedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(3), event.Quantity)
		assert.Equal(t, int64(7), event.RemainingStock)
	})

	t.Run("allows reserving exactly the remaining stock", func(t *testing.T) {
		product := newProductWithStock(t, 5)

		err := product.ReserveVariant("medium", "white", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(0), product.FindVariant("medium", "white").Stock)
	})

	t.Run("fails when stock is insufficient", func(t *testing.T) {
		product := newProductWithStock(t, 2)

		err := product.ReserveVariant("medium", "white", 3)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, int64(2), product.FindVariant("medium", "white").Stock)
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		err := product.ReserveVariant("medium", "white", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("fails when variant does not exist", func(t *testing.T) {
		product := newProductWithStock(t, 10)

		err := product.ReserveVariant("large", "red", 1)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VARIANT_NOT_FOUND", domainErr.Code)
	})
}

func TestSetVariantStock(t *testing.T) {
	t.Run("overwrites stock regardless of current value", func(t *testing.T) {
		product := makeProduct(t)
		variant, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 2)
		require.NoError(t, err)
		product.ClearDomainEvents()

		err = product.SetVariantStock(variant.ID, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), product.FindVariantByID(variant.ID).Stock)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*StockAdjustedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(2), event.OldStock)
		assert.Equal(t, int64(100), event.NewStock)
	})

	t.Run("allows setting stock to zero", func(t *testing.T) {
		product := makeProduct(t)
		variant, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 5)
		require.NoError(t, err)

		require.NoError(t, product.SetVariantStock(variant.ID, 0))
		assert.Equal(t, int64(0), product.FindVariantByID(variant.ID).Stock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		product := makeProduct(t)
		variant, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 5)
		require.NoError(t, err)

		err = product.SetVariantStock(variant.ID, -1)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STOCK", domainErr.Code)
	})
}

func TestTotalStock(t *testing.T) {
	product := makeProduct(t)
	_, err := product.AddVariant("medium", "white", valueobject.NewMoneyUSDFromFloat(89.99), 4)
	require.NoError(t, err)
	_, err = product.AddVariant("large", "black", valueobject.NewMoneyUSDFromFloat(109.99), 6)
	require.NoError(t, err)

	assert.Equal(t, int64(10), product.TotalStock())
}
