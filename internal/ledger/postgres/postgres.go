// Package postgres persists the ledgers in two SQL tables while keeping
// the same whole-table load/save contract as the CSV stores: a save
// rewrites the full table inside one transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"shelpify/backend/internal/domain"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			product_id          INT PRIMARY KEY,
			product_name        TEXT NOT NULL,
			category            TEXT NOT NULL DEFAULT '',
			product_type        TEXT NOT NULL DEFAULT 'Veg',
			unit_price          DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_quantity      DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount        DOUBLE PRECISION NOT NULL DEFAULT 0,
			manufacture_date    DATE,
			expiry_days         INT NOT NULL DEFAULT 0,
			expiry_date         DATE,
			applied_sales_total INT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS sales (
			position          BIGSERIAL PRIMARY KEY,
			customer_id       INT,
			product_id        INT NOT NULL,
			product_name      TEXT NOT NULL DEFAULT '',
			date_of_sale      DATE,
			quantity_sold     INT NOT NULL DEFAULT 0,
			unit_price        DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_sale_amount DOUBLE PRECISION NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}

// ProductStore and SalesStore share the one connection pool.
func (s *Store) Products() *ProductStore { return &ProductStore{db: s.db} }
func (s *Store) Sales() *SalesStore     { return &SalesStore{db: s.db} }

type ProductStore struct {
	db *sql.DB
}

func (s *ProductStore) Load(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, category, product_type, unit_price,
		       total_quantity, total_amount, manufacture_date, expiry_days,
		       expiry_date, applied_sales_total
		FROM products
		ORDER BY product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		var (
			p            domain.Product
			productType  string
			manufactured sql.NullTime
			expiry       sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &productType, &p.UnitPrice,
			&p.TotalQuantity, &p.TotalAmount, &manufactured, &p.ExpiryDays,
			&expiry, &p.AppliedSalesTotal); err != nil {
			return nil, err
		}
		p.Type = domain.ProductType(productType)
		if manufactured.Valid {
			p.ManufactureDate = domain.DateOf(manufactured.Time)
		}
		if expiry.Valid {
			p.ExpiryDate = domain.DateOf(expiry.Time)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductStore) Save(ctx context.Context, products []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (product_id, product_name, category, product_type,
				unit_price, total_quantity, total_amount, manufacture_date,
				expiry_days, expiry_date, applied_sales_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, p.ID, p.Name, p.Category, string(p.Type), p.UnitPrice, p.TotalQuantity,
			p.TotalAmount, nullDate(p.ManufactureDate), p.ExpiryDays,
			nullDate(p.ExpiryDate), p.AppliedSalesTotal)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

type SalesStore struct {
	db *sql.DB
}

func (s *SalesStore) Load(ctx context.Context) ([]domain.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_id, product_id, product_name, date_of_sale,
		       quantity_sold, unit_price, total_sale_amount
		FROM sales
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.SaleRecord, 0, 128)
	for rows.Next() {
		var (
			sale     domain.SaleRecord
			customer sql.NullInt64
			soldAt   sql.NullTime
		)
		if err := rows.Scan(&customer, &sale.ProductID, &sale.ProductName,
			&soldAt, &sale.QuantitySold, &sale.UnitPrice, &sale.TotalSaleAmount); err != nil {
			return nil, err
		}
		if customer.Valid {
			id := int(customer.Int64)
			sale.CustomerID = &id
		}
		if soldAt.Valid {
			sale.DateOfSale = domain.DateOf(soldAt.Time)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *SalesStore) Save(ctx context.Context, sales []domain.SaleRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Restart positions so insertion order keeps matching slice order.
	if _, err := tx.ExecContext(ctx, `TRUNCATE sales RESTART IDENTITY`); err != nil {
		return err
	}
	for _, sale := range sales {
		var customer any
		if sale.CustomerID != nil {
			customer = *sale.CustomerID
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (customer_id, product_id, product_name, date_of_sale,
				quantity_sold, unit_price, total_sale_amount)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, customer, sale.ProductID, sale.ProductName, nullDate(sale.DateOfSale),
			sale.QuantitySold, sale.UnitPrice, sale.TotalSaleAmount)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func nullDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}
