// Package csvfile persists the product and sales ledgers as flat CSV
// tables. Reads are deliberately lenient: unparseable numbers and dates
// coerce to zero values instead of failing the load, so one bad row never
// blocks the dashboard. Unknown columns are dropped and missing columns
// come back as zero defaults.
package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"

	"shelpify/backend/internal/domain"
	"shelpify/backend/internal/xid"
)

// productRow mirrors the on-disk column set. Fields stay strings so that
// malformed cells survive unmarshalling and get coerced afterwards.
type productRow struct {
	ID                string `csv:"Product ID"`
	Name              string `csv:"Product Name"`
	Category          string `csv:"Category"`
	Type              string `csv:"Type"`
	UnitPrice         string `csv:"Unit Price"`
	TotalQuantity     string `csv:"Total Quantity"`
	TotalAmount       string `csv:"Total_Amount"`
	ManufactureDate   string `csv:"Manufacture_Date"`
	ExpiryDays        string `csv:"Expiry_Days"`
	ExpiryDate        string `csv:"Expiry_Date"`
	AppliedSalesTotal string `csv:"Applied_Sales_Total"`
}

type saleRow struct {
	CustomerID      string `csv:"Customer ID"`
	ProductID       string `csv:"Product ID"`
	ProductName     string `csv:"Product Name"`
	DateOfSale      string `csv:"Date of Sale"`
	QuantitySold    string `csv:"Quantity Sold"`
	UnitPrice       string `csv:"Unit Price"`
	TotalSaleAmount string `csv:"Total Sale Amount"`
}

type ProductStore struct {
	path string
}

func NewProductStore(path string) *ProductStore {
	return &ProductStore{path: path}
}

func (s *ProductStore) Load(_ context.Context) ([]domain.Product, error) {
	rows, err := readRows[productRow](s.path)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			ID:                toInt(row.ID),
			Name:              strings.TrimSpace(row.Name),
			Category:          strings.TrimSpace(row.Category),
			Type:              domain.ProductType(strings.TrimSpace(row.Type)),
			UnitPrice:         toFloat(row.UnitPrice),
			TotalQuantity:     toFloat(row.TotalQuantity),
			TotalAmount:       toFloat(row.TotalAmount),
			ManufactureDate:   toDate(row.ManufactureDate),
			ExpiryDays:        toInt(row.ExpiryDays),
			ExpiryDate:        toDate(row.ExpiryDate),
			AppliedSalesTotal: toInt(row.AppliedSalesTotal),
		})
	}
	return products, nil
}

func (s *ProductStore) Save(_ context.Context, products []domain.Product) error {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ID:                strconv.Itoa(p.ID),
			Name:              p.Name,
			Category:          p.Category,
			Type:              string(p.Type),
			UnitPrice:         formatFloat(p.UnitPrice),
			TotalQuantity:     formatFloat(p.TotalQuantity),
			TotalAmount:       formatFloat(p.TotalAmount),
			ManufactureDate:   p.ManufactureDate.String(),
			ExpiryDays:        strconv.Itoa(p.ExpiryDays),
			ExpiryDate:        p.ExpiryDate.String(),
			AppliedSalesTotal: strconv.Itoa(p.AppliedSalesTotal),
		})
	}
	return writeRows(s.path, rows)
}

type SalesStore struct {
	path string
}

func NewSalesStore(path string) *SalesStore {
	return &SalesStore{path: path}
}

func (s *SalesStore) Load(_ context.Context) ([]domain.SaleRecord, error) {
	rows, err := readRows[saleRow](s.path)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, domain.SaleRecord{
			CustomerID:      toOptionalInt(row.CustomerID),
			ProductID:       toInt(row.ProductID),
			ProductName:     strings.TrimSpace(row.ProductName),
			DateOfSale:      toDate(row.DateOfSale),
			QuantitySold:    toInt(row.QuantitySold),
			UnitPrice:       toFloat(row.UnitPrice),
			TotalSaleAmount: toFloat(row.TotalSaleAmount),
		})
	}
	return sales, nil
}

func (s *SalesStore) Save(_ context.Context, sales []domain.SaleRecord) error {
	rows := make([]saleRow, 0, len(sales))
	for _, sale := range sales {
		customer := ""
		if sale.CustomerID != nil {
			customer = strconv.Itoa(*sale.CustomerID)
		}
		rows = append(rows, saleRow{
			CustomerID:      customer,
			ProductID:       strconv.Itoa(sale.ProductID),
			ProductName:     sale.ProductName,
			DateOfSale:      sale.DateOfSale.String(),
			QuantitySold:    strconv.Itoa(sale.QuantitySold),
			UnitPrice:       formatFloat(sale.UnitPrice),
			TotalSaleAmount: formatFloat(sale.TotalSaleAmount),
		})
	}
	return writeRows(s.path, rows)
}

// readRows loads the whole table, creating an empty file with headers on
// first use so a fresh installation starts from a valid ledger.
func readRows[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeRows(path, []T{}); err != nil {
			return nil, err
		}
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var rows []T
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return rows, nil
}

// writeRows rewrites the whole table through a temp file plus rename so a
// crash mid-write never leaves a truncated ledger behind.
func writeRows[T any](path string, rows []T) error {
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("encode ledger %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+xid.New("tmp"))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace ledger %s: %w", path, err)
	}
	return nil
}

func toFloat(raw string) float64 {
	return cast.ToFloat64(strings.TrimSpace(raw))
}

func toInt(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if v, err := cast.ToIntE(trimmed); err == nil {
		return v
	}
	// Spreadsheet exports sometimes store integers as "4701.0".
	return int(cast.ToFloat64(trimmed))
}

func toOptionalInt(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	v, err := cast.ToFloat64E(trimmed)
	if err != nil {
		return nil
	}
	id := int(v)
	return &id
}

func toDate(raw string) domain.Date {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Date{}
	}
	t, err := dateparse.ParseAny(trimmed)
	if err != nil {
		return domain.Date{}
	}
	return domain.DateOf(t)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
