// Package classify derives stock-level and expiry statuses for reconciled
// product rows. Everything here is a pure function of its inputs (including
// "today"), so statuses are recomputed on every read and never stored.
package classify

import (
	"strings"

	"shelpify/backend/internal/domain"
)

const (
	StockOutOfStock = "Out of Stock"
	StockUnderstock = "Understock"
	StockOverstock  = "Overstock"
	StockNormal     = "Normal"
)

const (
	ExpiryExpired = "Expired"
	ExpiryNear    = "Near Expiry"
	ExpiryGood    = "Good"
)

const understockLimit = 25

// defaultOverstockThreshold applies to any category missing from the table.
const defaultOverstockThreshold = 100

var overstockThresholds = map[string]float64{
	"Canned/Processed":    100,
	"Car Care":            50,
	"Cleaning":            80,
	"Dairy/Eggs":          200,
	"Dry Fruit/Nuts":      50,
	"Frozen/Processed":    100,
	"Fruit":               150,
	"Grain/Staple":        200,
	"Household/Care":      100,
	"Meat/Protein":        75,
	"Paper Products":      100,
	"Personal Care":       70,
	"Seafood":             50,
	"Snack/Confectionery": 80,
	"Vegetable":           250,
	"Beverage":            100,
}

// StockStatus classifies a reconciled on-hand quantity.
func StockStatus(quantity float64, category string) string {
	if quantity <= 0 {
		return StockOutOfStock
	}
	if quantity <= understockLimit {
		return StockUnderstock
	}
	threshold, ok := overstockThresholds[category]
	if !ok {
		threshold = defaultOverstockThreshold
	}
	if quantity > threshold {
		return StockOverstock
	}
	return StockNormal
}

var (
	dairyShortLife = []string{"milk", "curd", "yogurt", "cream"}
	dairyLongLife  = []string{"cheese", "paneer", "butter"}

	shelfStableCategories = map[string]bool{
		"Snack/Confectionery": true,
		"Grain/Staple":        true,
		"Canned/Processed":    true,
		"Frozen/Processed":    true,
		"Beverage":            true,
	}
	householdCategories = map[string]bool{
		"Household/Care": true,
		"Cleaning":       true,
		"Car Care":       true,
		"Paper Products": true,
	}
)

// NearExpiryWindow resolves how many days before the expiry date a product
// is flagged "Near Expiry". Dairy/Eggs is refined by name keywords; fresh
// meat and seafood depend on the product's own shelf life.
func NearExpiryWindow(category string, productName string, expiryDays int) int {
	name := strings.ToLower(productName)

	if category == "Dairy/Eggs" {
		if containsAny(name, dairyShortLife) {
			return 2
		}
		if containsAny(name, dairyLongLife) {
			return 30
		}
		return 7
	}
	if category == "Fruit" || category == "Vegetable" {
		return 2
	}
	if category == "Meat/Protein" || category == "Seafood" {
		if expiryDays <= 7 {
			return 2
		}
		return 7
	}
	if shelfStableCategories[category] {
		return 30
	}
	if householdCategories[category] {
		return 15
	}
	return 30
}

// ExpiryStatus classifies a product's expiry date relative to today using
// the given near-expiry window in days. An unknown (zero) expiry date is
// treated as Good rather than long-expired.
func ExpiryStatus(expiryDate domain.Date, window int, today domain.Date) string {
	if expiryDate.IsZero() {
		return ExpiryGood
	}
	if expiryDate.Before(today) {
		return ExpiryExpired
	}
	if today.DaysUntil(expiryDate) <= window {
		return ExpiryNear
	}
	return ExpiryGood
}

// Product attaches both statuses and the days-left counter to a reconciled
// product row.
func Product(p domain.Product, today domain.Date) domain.ClassifiedProduct {
	window := NearExpiryWindow(p.Category, p.Name, p.ExpiryDays)
	daysLeft := 0
	if !p.ExpiryDate.IsZero() {
		daysLeft = today.DaysUntil(p.ExpiryDate)
	}
	return domain.ClassifiedProduct{
		Product:      p,
		StockStatus:  StockStatus(p.TotalQuantity, p.Category),
		ExpiryStatus: ExpiryStatus(p.ExpiryDate, window, today),
		DaysLeft:     daysLeft,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
