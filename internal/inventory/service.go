// Package inventory owns the business rules on top of the two ledgers:
// sales reconciliation, the transaction writer, product maintenance, and
// the derived dashboard views. Every operation does a full ledger reload,
// an in-memory transform, and (when mutating) a full save; the ledgers on
// storage are the single source of truth between interactions.
package inventory

import (
	"context"
	"fmt"
	"log"
	"time"

	"shelpify/backend/internal/cache"
	"shelpify/backend/internal/domain"
	"shelpify/backend/internal/ledger"
)

type Service struct {
	products      ledger.ProductStore
	sales         ledger.SalesStore
	discountCache cache.DiscountCache
	discountTTL   time.Duration
	now           func() time.Time
}

func New(products ledger.ProductStore, sales ledger.SalesStore, discountCache cache.DiscountCache, discountTTL time.Duration) *Service {
	if discountCache == nil {
		discountCache = cache.NoopDiscountCache{}
	}
	if discountTTL <= 0 {
		discountTTL = 30 * time.Second
	}

	return &Service{
		products:      products,
		sales:         sales,
		discountCache: discountCache,
		discountTTL:   discountTTL,
		now:           time.Now,
	}
}

func (s *Service) today() domain.Date {
	return domain.DateOf(s.now())
}

// Snapshot returns the reconciled product table: nominal quantities minus
// any sold quantity that has not been applied yet.
func (s *Service) Snapshot(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ApplySales(products, sales), nil
}

// Reconcile persists the reconciled snapshot back to the product ledger.
// Safe to run repeatedly: without new sales it rewrites identical rows.
func (s *Service) Reconcile(ctx context.Context) ([]domain.Product, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// CreateTransaction appends one sale record and applies its effect to the
// product master. The sale row is saved before the product update so that
// a crash in between leaves state the reconciliation pass can repair.
func (s *Service) CreateTransaction(ctx context.Context, req domain.TransactionCreateRequest) (domain.TransactionCreateResponse, error) {
	if req.ProductID <= 0 {
		return domain.TransactionCreateResponse{}, fmt.Errorf("%w: product id is required", ledger.ErrValidation)
	}
	if req.QuantitySold < 1 {
		return domain.TransactionCreateResponse{}, fmt.Errorf("%w: quantity sold must be at least 1", ledger.ErrValidation)
	}
	if req.UnitPrice < 0 {
		return domain.TransactionCreateResponse{}, fmt.Errorf("%w: unit price must not be negative", ledger.ErrValidation)
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.TransactionCreateResponse{}, err
	}
	sales, err := s.sales.Load(ctx)
	if err != nil {
		return domain.TransactionCreateResponse{}, err
	}

	idx := indexByID(products, req.ProductID)
	if idx < 0 {
		return domain.TransactionCreateResponse{}, fmt.Errorf("%w: product %d", ledger.ErrNotFound, req.ProductID)
	}

	// Availability is judged on the reconciled quantity, not the raw
	// nominal one, so unapplied prior sales still count.
	available := ApplySales(products, sales)[idx].TotalQuantity
	if float64(req.QuantitySold) > available {
		return domain.TransactionCreateResponse{}, fmt.Errorf("%w: requested %d, available %v", ledger.ErrInsufficientStock, req.QuantitySold, available)
	}

	price := req.UnitPrice
	if price == 0 {
		if last, ok := lastSalePrice(sales, req.ProductID); ok {
			price = last
		} else {
			price = products[idx].UnitPrice
		}
	}

	saleDate := req.DateOfSale
	if saleDate.IsZero() {
		saleDate = s.today()
	}

	sale := domain.SaleRecord{
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		ProductName:     products[idx].Name,
		DateOfSale:      saleDate,
		QuantitySold:    req.QuantitySold,
		UnitPrice:       price,
		TotalSaleAmount: float64(req.QuantitySold) * price,
	}

	sales = append(sales, sale)
	if err := s.sales.Save(ctx, sales); err != nil {
		return domain.TransactionCreateResponse{}, err
	}

	p := &products[idx]
	p.TotalQuantity -= float64(req.QuantitySold)
	if p.TotalQuantity < 0 {
		p.TotalQuantity = 0
	}
	p.AppliedSalesTotal += req.QuantitySold
	p.TotalAmount = p.TotalQuantity * p.UnitPrice

	if err := s.products.Save(ctx, products); err != nil {
		// The sale is already durable; the next reconciliation run will
		// apply the missing decrement.
		log.Printf("[inventory] WARN: sale appended but product ledger save failed for product %d: %v", req.ProductID, err)
		return domain.TransactionCreateResponse{}, err
	}

	return domain.TransactionCreateResponse{Sale: sale, Product: *p}, nil
}

func indexByID(products []domain.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
