package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelpify/backend/internal/domain"
)

func TestApplySalesSubtractsUnappliedQuantity(t *testing.T) {
	products := []domain.Product{
		{ID: 4701, Name: "Tomato 1kg", UnitPrice: 40, TotalQuantity: 10},
	}
	sales := []domain.SaleRecord{
		{ProductID: 4701, QuantitySold: 3},
	}

	snapshot := ApplySales(products, sales)

	require.Len(t, snapshot, 1)
	assert.Equal(t, float64(7), snapshot[0].TotalQuantity)
	assert.Equal(t, 3, snapshot[0].AppliedSalesTotal)
	assert.Equal(t, float64(280), snapshot[0].TotalAmount)

	// Inputs stay untouched.
	assert.Equal(t, float64(10), products[0].TotalQuantity)
	assert.Equal(t, 0, products[0].AppliedSalesTotal)
}

func TestApplySalesIsIdempotent(t *testing.T) {
	products := []domain.Product{
		{ID: 4701, UnitPrice: 40, TotalQuantity: 10},
	}
	sales := []domain.SaleRecord{
		{ProductID: 4701, QuantitySold: 4},
	}

	once := ApplySales(products, sales)
	twice := ApplySales(once, sales)

	assert.Equal(t, once, twice)
	assert.Equal(t, float64(6), twice[0].TotalQuantity)
}

func TestApplySalesFloorsQuantityAtZero(t *testing.T) {
	products := []domain.Product{
		{ID: 4701, UnitPrice: 40, TotalQuantity: 2},
	}
	sales := []domain.SaleRecord{
		{ProductID: 4701, QuantitySold: 9},
	}

	snapshot := ApplySales(products, sales)

	assert.Equal(t, float64(0), snapshot[0].TotalQuantity)
	assert.Equal(t, 9, snapshot[0].AppliedSalesTotal)
	assert.Equal(t, float64(0), snapshot[0].TotalAmount)
}

func TestApplySalesHandlesTruncatedSalesLedger(t *testing.T) {
	// AppliedSalesTotal exceeds what the sales ledger now shows (rows were
	// lost). The delta goes negative and the quantity is restored.
	products := []domain.Product{
		{ID: 4701, UnitPrice: 40, TotalQuantity: 5, AppliedSalesTotal: 5},
	}

	snapshot := ApplySales(products, nil)

	assert.Equal(t, float64(10), snapshot[0].TotalQuantity)
	assert.Equal(t, 0, snapshot[0].AppliedSalesTotal)
}

func TestApplySalesIgnoresRowsWithoutProductID(t *testing.T) {
	products := []domain.Product{
		{ID: 4701, UnitPrice: 40, TotalQuantity: 10},
	}
	sales := []domain.SaleRecord{
		{ProductID: 0, QuantitySold: 3},
		{ProductID: -1, QuantitySold: 2},
	}

	snapshot := ApplySales(products, sales)

	assert.Equal(t, float64(10), snapshot[0].TotalQuantity)
}

func TestLastSalePriceBreaksDateTiesByInsertionOrder(t *testing.T) {
	day := domain.NewDate(2026, time.March, 5)
	sales := []domain.SaleRecord{
		{ProductID: 4701, DateOfSale: day, UnitPrice: 90},
		{ProductID: 4701, DateOfSale: day, UnitPrice: 95},
		{ProductID: 4702, DateOfSale: day.AddDays(1), UnitPrice: 10},
	}

	price, ok := lastSalePrice(sales, 4701)
	require.True(t, ok)
	assert.Equal(t, float64(95), price)

	_, ok = lastSalePrice(sales, 4999)
	assert.False(t, ok)
}
