package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shelpify/backend/internal/domain"
)

func TestProductStoreCreatesFileOnFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	store := NewProductStore(path)

	products, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(products))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected ledger file to be created: %v", err)
	}
	if !strings.Contains(string(data), "Product ID") {
		t.Fatalf("expected header row in new ledger, got %q", string(data))
	}
}

func TestProductStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	store := NewProductStore(path)

	made := domain.NewDate(2026, time.January, 15)
	in := []domain.Product{
		{
			ID: 4701, Name: "Tomato 1kg", Category: "Vegetable", Type: domain.TypeVeg,
			UnitPrice: 40.5, TotalQuantity: 80, TotalAmount: 3240,
			ManufactureDate: made, ExpiryDays: 7, ExpiryDate: made.AddDays(7),
			AppliedSalesTotal: 3,
		},
		{
			ID: 4201, Name: "Chicken Breast 500g", Category: "Meat/Protein", Type: domain.TypeNonVeg,
			UnitPrice: 220, TotalQuantity: 25, TotalAmount: 5500,
		},
	}

	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0] != in[0] {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in[0], out[0])
	}
	if out[1].ManufactureDate != (domain.Date{}) {
		t.Fatalf("expected empty manufacture date to stay zero, got %s", out[1].ManufactureDate)
	}
}

func TestProductStoreLenientParsing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	raw := strings.Join([]string{
		"Product ID,Product Name,Category,Type,Unit Price,Total Quantity,Total_Amount,Manufacture_Date,Expiry_Days,Expiry_Date,Applied_Sales_Total",
		"4701.0,Tomato 1kg,Vegetable,Veg,40.5,eighty,not-a-number,2026-01-15,7,garbage-date,",
	}, "\n")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewProductStore(path)
	products, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 row, got %d", len(products))
	}

	p := products[0]
	if p.ID != 4701 {
		t.Fatalf("expected float-formatted id coerced to 4701, got %d", p.ID)
	}
	if p.TotalQuantity != 0 {
		t.Fatalf("expected unparseable quantity to coerce to 0, got %v", p.TotalQuantity)
	}
	if p.TotalAmount != 0 {
		t.Fatalf("expected unparseable amount to coerce to 0, got %v", p.TotalAmount)
	}
	if !p.ExpiryDate.IsZero() {
		t.Fatalf("expected garbage expiry date to coerce to zero, got %s", p.ExpiryDate)
	}
	if p.ManufactureDate != domain.NewDate(2026, time.January, 15) {
		t.Fatalf("expected manufacture date parsed, got %s", p.ManufactureDate)
	}
}

func TestProductStoreIgnoresUnknownColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	raw := strings.Join([]string{
		"Product ID,Product Name,Mystery Column,Unit Price",
		"4701,Tomato 1kg,whatever,40",
	}, "\n")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewProductStore(path)
	products, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 row, got %d", len(products))
	}
	if products[0].ID != 4701 || products[0].UnitPrice != 40 {
		t.Fatalf("unexpected row %+v", products[0])
	}
	// Columns absent from the file come back as zero values.
	if products[0].ExpiryDays != 0 || products[0].Category != "" {
		t.Fatalf("expected missing columns to default, got %+v", products[0])
	}
}

func TestSalesStoreRoundTripWithOptionalCustomer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	store := NewSalesStore(path)

	customer := 42
	day := domain.NewDate(2026, time.February, 1)
	in := []domain.SaleRecord{
		{CustomerID: &customer, ProductID: 4701, ProductName: "Tomato 1kg", DateOfSale: day, QuantitySold: 3, UnitPrice: 40, TotalSaleAmount: 120},
		{ProductID: 4201, ProductName: "Chicken Breast 500g", DateOfSale: day, QuantitySold: 1, UnitPrice: 220, TotalSaleAmount: 220},
	}

	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].CustomerID == nil || *out[0].CustomerID != 42 {
		t.Fatalf("expected customer 42, got %v", out[0].CustomerID)
	}
	if out[1].CustomerID != nil {
		t.Fatalf("expected anonymous sale to keep nil customer, got %v", *out[1].CustomerID)
	}
}

func TestSalesStoreLenientDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	raw := strings.Join([]string{
		"Customer ID,Product ID,Product Name,Date of Sale,Quantity Sold,Unit Price,Total Sale Amount",
		"1,4701,Tomato 1kg,01/15/2026,2,40,80",
		",4701,Tomato 1kg,next tuesday,1,40,40",
	}, "\n")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewSalesStore(path)
	sales, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sales))
	}
	if sales[0].DateOfSale != domain.NewDate(2026, time.January, 15) {
		t.Fatalf("expected US-format date parsed, got %s", sales[0].DateOfSale)
	}
	if !sales[1].DateOfSale.IsZero() {
		t.Fatalf("expected unparseable date to coerce to zero, got %s", sales[1].DateOfSale)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.csv")
	store := NewProductStore(path)

	if err := store.Save(context.Background(), []domain.Product{{ID: 4701, Name: "Tomato 1kg"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "products.csv" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only products.csv, got %v", names)
	}
}
