package inventory

import (
	"shelpify/backend/internal/domain"
)

// ApplySales derives the effective on-hand quantity for every product by
// subtracting cumulative sold quantity that has not been applied yet.
// AppliedSalesTotal on each row records how much has already been
// subtracted, so running this any number of times without new sales is a
// no-op. The input slices are not modified and nothing is persisted; the
// caller decides whether the snapshot goes back to storage.
func ApplySales(products []domain.Product, sales []domain.SaleRecord) []domain.Product {
	soldTotals := soldTotalsByProduct(sales)

	snapshot := make([]domain.Product, len(products))
	copy(snapshot, products)

	for i := range snapshot {
		p := &snapshot[i]
		sold := soldTotals[p.ID]
		delta := sold - p.AppliedSalesTotal
		if delta == 0 {
			continue
		}
		qty := p.TotalQuantity - float64(delta)
		if qty < 0 {
			qty = 0
		}
		p.TotalQuantity = qty
		p.AppliedSalesTotal = sold
		p.TotalAmount = qty * p.UnitPrice
	}
	return snapshot
}

// soldTotalsByProduct sums quantity sold per product ID. Rows without a
// usable product ID are excluded.
func soldTotalsByProduct(sales []domain.SaleRecord) map[int]int {
	totals := make(map[int]int)
	for _, sale := range sales {
		if sale.ProductID <= 0 {
			continue
		}
		totals[sale.ProductID] += sale.QuantitySold
	}
	return totals
}

// lastSalePrice returns the unit price of the most recent sale of the
// product. Among sales on the same date, the one appended last wins.
func lastSalePrice(sales []domain.SaleRecord, productID int) (float64, bool) {
	bestIdx := -1
	for i, sale := range sales {
		if sale.ProductID != productID {
			continue
		}
		if bestIdx < 0 || !sale.DateOfSale.Before(sales[bestIdx].DateOfSale) {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return sales[bestIdx].UnitPrice, true
}

// lastSoldDates maps each product ID to its most recent sale date.
func lastSoldDates(sales []domain.SaleRecord) map[int]domain.Date {
	last := make(map[int]domain.Date)
	for _, sale := range sales {
		if sale.ProductID <= 0 || sale.DateOfSale.IsZero() {
			continue
		}
		if current, ok := last[sale.ProductID]; !ok || current.Before(sale.DateOfSale) {
			last[sale.ProductID] = sale.DateOfSale
		}
	}
	return last
}
