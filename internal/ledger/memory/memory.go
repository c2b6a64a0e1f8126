// Package memory holds both ledgers in process memory. It backs the dev
// mode (no CSV paths or DATABASE_URL configured) and the service tests.
package memory

import (
	"context"
	"sync"

	"shelpify/backend/internal/domain"
)

type ProductStore struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductStore(products []domain.Product) *ProductStore {
	s := &ProductStore{}
	s.products = cloneProducts(products)
	return s
}

func (s *ProductStore) Load(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products), nil
}

func (s *ProductStore) Save(_ context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = cloneProducts(products)
	return nil
}

type SalesStore struct {
	mu    sync.RWMutex
	sales []domain.SaleRecord
}

func NewSalesStore(sales []domain.SaleRecord) *SalesStore {
	s := &SalesStore{}
	s.sales = cloneSales(sales)
	return s
}

func (s *SalesStore) Load(_ context.Context) ([]domain.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSales(s.sales), nil
}

func (s *SalesStore) Save(_ context.Context, sales []domain.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = cloneSales(sales)
	return nil
}

// NewSeeded returns both stores preloaded with a small demo inventory
// spread across the three product types.
func NewSeeded() (*ProductStore, *SalesStore) {
	today := domain.Today()

	products := []domain.Product{
		{
			ID: 4701, Name: "Tomato 1kg", Category: "Vegetable", Type: domain.TypeVeg,
			UnitPrice: 40, TotalQuantity: 80, TotalAmount: 3200,
			ManufactureDate: today.AddDays(-1), ExpiryDays: 7, ExpiryDate: today.AddDays(6),
		},
		{
			ID: 4702, Name: "Fresh Milk 1L", Category: "Dairy/Eggs", Type: domain.TypeVeg,
			UnitPrice: 60, TotalQuantity: 40, TotalAmount: 2400,
			ManufactureDate: today, ExpiryDays: 3, ExpiryDate: today.AddDays(3),
		},
		{
			ID: 4703, Name: "Basmati Rice 5kg", Category: "Grain/Staple", Type: domain.TypeVeg,
			UnitPrice: 520, TotalQuantity: 30, TotalAmount: 15600,
			ManufactureDate: today.AddDays(-30), ExpiryDays: 365, ExpiryDate: today.AddDays(335),
		},
		{
			ID: 4201, Name: "Chicken Breast 500g", Category: "Meat/Protein", Type: domain.TypeNonVeg,
			UnitPrice: 220, TotalQuantity: 25, TotalAmount: 5500,
			ManufactureDate: today, ExpiryDays: 5, ExpiryDate: today.AddDays(5),
		},
		{
			ID: 4202, Name: "Prawns 250g", Category: "Seafood", Type: domain.TypeNonVeg,
			UnitPrice: 320, TotalQuantity: 12, TotalAmount: 3840,
			ManufactureDate: today, ExpiryDays: 3, ExpiryDate: today.AddDays(3),
		},
		{
			ID: 5701, Name: "Dish Soap 500ml", Category: "Cleaning", Type: domain.TypeInedible,
			UnitPrice: 85, TotalQuantity: 60, TotalAmount: 5100,
			ManufactureDate: today.AddDays(-60), ExpiryDays: 548, ExpiryDate: today.AddDays(488),
		},
	}

	return NewProductStore(products), NewSalesStore(nil)
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func cloneSales(sales []domain.SaleRecord) []domain.SaleRecord {
	out := make([]domain.SaleRecord, len(sales))
	copy(out, sales)
	return out
}
