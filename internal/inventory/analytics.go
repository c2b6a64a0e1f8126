package inventory

import (
	"context"
	"sort"

	"shelpify/backend/internal/classify"
	"shelpify/backend/internal/domain"
)

// Analytics classifies the reconciled snapshot and returns it with KPI
// counters. Statuses come out of pure functions of (row, today); nothing
// derived is written back.
func (s *Service) Analytics(ctx context.Context) (domain.AnalyticsResponse, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.AnalyticsResponse{}, err
	}

	today := s.today()
	classified := make([]domain.ClassifiedProduct, 0, len(snapshot))
	for _, p := range snapshot {
		classified = append(classified, classify.Product(p, today))
	}

	return domain.AnalyticsResponse{
		KPIs:     kpisFor(classified),
		Products: classified,
	}, nil
}

// Alerts partitions the classified snapshot into the expired and
// near-expiry tables shown on the updates screen.
func (s *Service) Alerts(ctx context.Context) (domain.AlertsResponse, error) {
	analytics, err := s.Analytics(ctx)
	if err != nil {
		return domain.AlertsResponse{}, err
	}

	resp := domain.AlertsResponse{KPIs: analytics.KPIs}
	for _, p := range analytics.Products {
		switch p.ExpiryStatus {
		case classify.ExpiryExpired:
			resp.Expired = append(resp.Expired, p)
		case classify.ExpiryNear:
			resp.NearExpiry = append(resp.NearExpiry, p)
		}
	}
	return resp, nil
}

func kpisFor(products []domain.ClassifiedProduct) domain.InventoryKPIs {
	kpis := domain.InventoryKPIs{TotalProducts: len(products)}
	for _, p := range products {
		switch p.ExpiryStatus {
		case classify.ExpiryExpired:
			kpis.Expired++
		case classify.ExpiryNear:
			kpis.NearExpiry++
		}
		switch p.StockStatus {
		case classify.StockUnderstock:
			kpis.Understock++
		case classify.StockOverstock:
			kpis.Overstock++
		case classify.StockOutOfStock:
			kpis.OutOfStock++
		}
	}
	return kpis
}

// ListTransactions returns sale rows matching the filter plus their
// revenue total.
func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (domain.TransactionListResponse, error) {
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return domain.TransactionListResponse{}, err
	}

	matched := make([]domain.SaleRecord, 0, len(sales))
	total := 0.0
	for _, sale := range sales {
		if filter.ProductID > 0 && sale.ProductID != filter.ProductID {
			continue
		}
		if filter.CustomerID != nil && (sale.CustomerID == nil || *sale.CustomerID != *filter.CustomerID) {
			continue
		}
		if !filter.Date.IsZero() && sale.DateOfSale != filter.Date {
			continue
		}
		matched = append(matched, sale)
		total += sale.TotalSaleAmount
	}

	return domain.TransactionListResponse{Transactions: matched, TotalRevenue: total}, nil
}

// SalesAggregates groups the sales ledger by product ID: units sold, last
// sold date, and revenue.
func (s *Service) SalesAggregates(ctx context.Context) ([]domain.SalesAggregate, error) {
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int]*domain.SalesAggregate)
	for _, sale := range sales {
		if sale.ProductID <= 0 {
			continue
		}
		agg, ok := byProduct[sale.ProductID]
		if !ok {
			agg = &domain.SalesAggregate{ProductID: sale.ProductID}
			byProduct[sale.ProductID] = agg
		}
		agg.TotalSold += sale.QuantitySold
		agg.Revenue += sale.TotalSaleAmount
		if agg.LastSoldDate.Before(sale.DateOfSale) {
			agg.LastSoldDate = sale.DateOfSale
		}
	}

	aggregates := make([]domain.SalesAggregate, 0, len(byProduct))
	for _, agg := range byProduct {
		aggregates = append(aggregates, *agg)
	}
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].ProductID < aggregates[j].ProductID
	})
	return aggregates, nil
}

// RevenueSummary totals sale amounts overall and per product type. Sales
// whose product no longer exists in the master count toward the overall
// total only.
func (s *Service) RevenueSummary(ctx context.Context) (domain.RevenueSummary, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.RevenueSummary{}, err
	}
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return domain.RevenueSummary{}, err
	}

	typeByID := make(map[int]domain.ProductType, len(products))
	for _, p := range products {
		typeByID[p.ID] = p.Type
	}

	var summary domain.RevenueSummary
	for _, sale := range sales {
		summary.TotalRevenue += sale.TotalSaleAmount
		switch typeByID[sale.ProductID] {
		case domain.TypeVeg:
			summary.VegRevenue += sale.TotalSaleAmount
		case domain.TypeNonVeg:
			summary.NonVegRevenue += sale.TotalSaleAmount
		case domain.TypeInedible:
			summary.InedibleRevenue += sale.TotalSaleAmount
		}
	}
	return summary, nil
}

// DailyRevenue sums sale amounts per calendar day, oldest first.
func (s *Service) DailyRevenue(ctx context.Context) ([]domain.DailyRevenuePoint, error) {
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[domain.Date]float64)
	for _, sale := range sales {
		byDate[sale.DateOfSale] += sale.TotalSaleAmount
	}

	points := make([]domain.DailyRevenuePoint, 0, len(byDate))
	for date, revenue := range byDate {
		points = append(points, domain.DailyRevenuePoint{Date: date, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// BillSummary treats all rows of one customer on one day as a single bill
// and numbers the bills chronologically alongside the average bill amount.
func (s *Service) BillSummary(ctx context.Context) (domain.BillSummary, error) {
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return domain.BillSummary{}, err
	}

	type billKey struct {
		customer    int
		hasCustomer bool
		date        domain.Date
	}
	byKey := make(map[billKey]*domain.Bill)
	order := make([]billKey, 0)
	for _, sale := range sales {
		key := billKey{date: sale.DateOfSale}
		if sale.CustomerID != nil {
			key.customer = *sale.CustomerID
			key.hasCustomer = true
		}
		bill, ok := byKey[key]
		if !ok {
			bill = &domain.Bill{CustomerID: sale.CustomerID, Date: sale.DateOfSale}
			byKey[key] = bill
			order = append(order, key)
		}
		bill.Amount += sale.TotalSaleAmount
	}

	bills := make([]domain.Bill, 0, len(order))
	for _, key := range order {
		bills = append(bills, *byKey[key])
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].Date.Before(bills[j].Date)
	})

	total := 0.0
	for i := range bills {
		bills[i].SequenceNum = i + 1
		total += bills[i].Amount
	}

	summary := domain.BillSummary{Bills: bills}
	if len(bills) > 0 {
		summary.AverageAmount = total / float64(len(bills))
	}
	return summary, nil
}

// ProductsNotSoldSince lists reconciled rows with no sale in the last N
// days, including products never sold at all.
func (s *Service) ProductsNotSoldSince(ctx context.Context, days int) ([]domain.Product, error) {
	if days < 1 {
		days = 1
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := ApplySales(products, sales)
	last := lastSoldDates(sales)
	threshold := s.today().AddDays(-days)

	var stale []domain.Product
	for _, p := range snapshot {
		lastSold, sold := last[p.ID]
		if !sold || !lastSold.After(threshold) {
			stale = append(stale, p)
		}
	}
	return stale, nil
}
