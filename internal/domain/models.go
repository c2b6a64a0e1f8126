package domain

// ProductType tells whether an item is edible and which kind. It drives
// product ID band allocation and the revenue-by-type summary.
type ProductType string

const (
	TypeVeg      ProductType = "Veg"
	TypeNonVeg   ProductType = "Non-Veg"
	TypeInedible ProductType = "Inedible"
)

// Product is one row of the product master ledger. TotalQuantity is the
// nominal quantity as last edited, not adjusted for sales; subtracting
// already-applied sales is the reconciliation engine's job, tracked via
// AppliedSalesTotal.
type Product struct {
	ID                int         `json:"product_id"`
	Name              string      `json:"product_name"`
	Category          string      `json:"category"`
	Type              ProductType `json:"type"`
	UnitPrice         float64     `json:"unit_price"`
	TotalQuantity     float64     `json:"total_quantity"`
	TotalAmount       float64     `json:"total_amount"`
	ManufactureDate   Date        `json:"manufacture_date"`
	ExpiryDays        int         `json:"expiry_days"`
	ExpiryDate        Date        `json:"expiry_date"`
	AppliedSalesTotal int         `json:"applied_sales_total"`
}

// SaleRecord is one row of the append-only sales ledger. Records are never
// mutated or deleted after being appended.
type SaleRecord struct {
	CustomerID      *int    `json:"customer_id,omitempty"`
	ProductID       int     `json:"product_id"`
	ProductName     string  `json:"product_name"`
	DateOfSale      Date    `json:"date_of_sale"`
	QuantitySold    int     `json:"quantity_sold"`
	UnitPrice       float64 `json:"unit_price"`
	TotalSaleAmount float64 `json:"total_sale_amount"`
}

type ProductCreateRequest struct {
	Name            string      `json:"product_name"`
	Category        string      `json:"category"`
	Type            ProductType `json:"type,omitempty"`
	UnitPrice       float64     `json:"unit_price"`
	TotalQuantity   float64     `json:"total_quantity"`
	ManufactureDate Date        `json:"manufacture_date"`
	ExpiryDays      int         `json:"expiry_days,omitempty"`
}

type ProductCreateResponse struct {
	Product Product `json:"product"`
	Warning string  `json:"warning,omitempty"`
}

type ProductUpdateRequest struct {
	Name          *string  `json:"product_name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	TotalQuantity *float64 `json:"total_quantity,omitempty"`
	ExpiryDays    *int     `json:"expiry_days,omitempty"`
}

type TransactionCreateRequest struct {
	CustomerID   *int    `json:"customer_id,omitempty"`
	ProductID    int     `json:"product_id"`
	DateOfSale   Date    `json:"date_of_sale,omitempty"`
	QuantitySold int     `json:"quantity_sold"`
	UnitPrice    float64 `json:"unit_price,omitempty"`
}

type TransactionCreateResponse struct {
	Sale    SaleRecord `json:"sale"`
	Product Product    `json:"product"`
}

// TransactionFilter narrows ListTransactions. Zero/nil fields match all.
type TransactionFilter struct {
	ProductID  int
	CustomerID *int
	Date       Date
}

type TransactionListResponse struct {
	Transactions []SaleRecord `json:"transactions"`
	TotalRevenue float64      `json:"total_revenue"`
}

// ClassifiedProduct is a reconciled product row with the derived statuses
// attached. Statuses are recomputed on every read, never persisted.
type ClassifiedProduct struct {
	Product
	StockStatus  string `json:"stock_status"`
	ExpiryStatus string `json:"expiry_status"`
	DaysLeft     int    `json:"days_left"`
}

type InventoryKPIs struct {
	TotalProducts int `json:"total_products"`
	Expired       int `json:"expired"`
	NearExpiry    int `json:"near_expiry"`
	Understock    int `json:"understock"`
	Overstock     int `json:"overstock"`
	OutOfStock    int `json:"out_of_stock"`
}

type AnalyticsResponse struct {
	KPIs     InventoryKPIs       `json:"kpis"`
	Products []ClassifiedProduct `json:"products"`
}

type AlertsResponse struct {
	KPIs       InventoryKPIs       `json:"kpis"`
	Expired    []ClassifiedProduct `json:"expired"`
	NearExpiry []ClassifiedProduct `json:"near_expiry"`
}

// SalesAggregate summarizes the sales ledger for one product ID.
type SalesAggregate struct {
	ProductID    int     `json:"product_id"`
	TotalSold    int     `json:"total_sold"`
	LastSoldDate Date    `json:"last_sold_date"`
	Revenue      float64 `json:"revenue"`
}

type RevenueSummary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	VegRevenue      float64 `json:"veg_revenue"`
	NonVegRevenue   float64 `json:"non_veg_revenue"`
	InedibleRevenue float64 `json:"inedible_revenue"`
}

type DailyRevenuePoint struct {
	Date    Date    `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Bill groups the sale rows of one customer on one day.
type Bill struct {
	SequenceNum int     `json:"sequence_num"`
	CustomerID  *int    `json:"customer_id,omitempty"`
	Date        Date    `json:"date"`
	Amount      float64 `json:"amount"`
}

type BillSummary struct {
	Bills         []Bill  `json:"bills"`
	AverageAmount float64 `json:"average_amount"`
}

type DiscountSuggestion struct {
	Product  Product `json:"product"`
	DaysLeft int     `json:"days_left"`
}

type DiscountSuggestionsResponse struct {
	Suggestions []DiscountSuggestion `json:"suggestions"`
}

type DiscountPreviewItem struct {
	Product         Product `json:"product"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountedPrice float64 `json:"discounted_price"`
}

type DiscountPreviewResponse struct {
	Items []DiscountPreviewItem `json:"items"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username string
	Password string
	Role     string
	Active   bool
}
