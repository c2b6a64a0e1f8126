// Package ledger defines the whole-table persistence contracts for the two
// flat ledgers the dashboard runs on. Implementations load and save entire
// record tables; callers (the inventory service) do a full reload, an
// in-memory transform, and a full save per interaction.
package ledger

import (
	"context"
	"errors"

	"shelpify/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrIDExhausted       = errors.New("no product ids left in type range")
)

type ProductStore interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, products []domain.Product) error
}

type SalesStore interface {
	Load(ctx context.Context) ([]domain.SaleRecord, error)
	Save(ctx context.Context, sales []domain.SaleRecord) error
}
