package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shelpify/backend/internal/domain"
	"shelpify/backend/internal/ledger"
)

// Each product type owns a fixed numeric ID band. IDs are never reused:
// allocation always continues past the highest ID seen in the band, and a
// full band is a hard error.
type idBand struct {
	start int
	end   int
}

var idBands = map[domain.ProductType]idBand{
	domain.TypeNonVeg:   {start: 4200, end: 4299},
	domain.TypeVeg:      {start: 4700, end: 4899},
	domain.TypeInedible: {start: 5700, end: 5799},
}

func bandForType(productType domain.ProductType) idBand {
	if band, ok := idBands[productType]; ok {
		return band
	}
	return idBands[domain.TypeVeg]
}

func nextProductID(products []domain.Product, productType domain.ProductType) (int, error) {
	band := bandForType(productType)

	highest := 0
	for _, p := range products {
		if p.ID >= band.start && p.ID <= band.end && p.ID > highest {
			highest = p.ID
		}
	}

	candidate := band.start + 1
	if highest > 0 {
		candidate = highest + 1
	}
	if candidate > band.end {
		return 0, fmt.Errorf("%w: type %q, range %d-%d", ledger.ErrIDExhausted, productType, band.start, band.end)
	}
	return candidate, nil
}

var (
	nonVegNameKeywords = []string{
		"chicken", "fish", "meat", "mutton", "prawn", "prawns",
		"nugget", "sausage", "ham", "salami", "cold cut", "bacon",
	}
	vegNameKeywords = []string{
		"fruit", "vegetable", "veg", "tomato", "potato", "greens",
	}
	inedibleNameKeywords = []string{
		"detergent", "cleaner", "liquid", "soap", "tissue",
		"paste", "sanitizer", "shampoo", "toothpaste",
	}
)

// DetectType guesses the product type from name keywords. Edible (Veg) is
// the default when nothing matches.
func DetectType(productName string) domain.ProductType {
	name := strings.ToLower(productName)

	if containsAnyKeyword(name, nonVegNameKeywords) {
		return domain.TypeNonVeg
	}
	if containsAnyKeyword(name, vegNameKeywords) {
		return domain.TypeVeg
	}
	if containsAnyKeyword(name, inedibleNameKeywords) {
		return domain.TypeInedible
	}
	return domain.TypeVeg
}

var (
	freshNonVegKeywords  = []string{"chicken", "meat", "fish", "prawn", "mutton"}
	coldCutKeywords      = []string{"sausage", "ham", "salami", "cold cut", "bacon"}
	freshProduceKeywords = []string{"fruit", "veg", "vegetable", "tomato", "potato"}
	juiceKeywords        = []string{"juice"}
	grainKeywords        = []string{"rice", "wheat", "cereal", "grain", "dal", "lentil"}
)

// SuggestExpiryDays proposes a shelf life in days when the caller did not
// supply one.
func SuggestExpiryDays(productName string, productType domain.ProductType) int {
	if productType == domain.TypeInedible {
		return 548 // roughly 1.5 years
	}

	name := strings.ToLower(productName)
	switch {
	case containsAnyKeyword(name, freshNonVegKeywords):
		return 7
	case containsAnyKeyword(name, coldCutKeywords):
		return 365
	case containsAnyKeyword(name, freshProduceKeywords):
		return 7
	case containsAnyKeyword(name, juiceKeywords):
		return 180
	case containsAnyKeyword(name, grainKeywords):
		return 365
	}
	return 7
}

func containsAnyKeyword(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// staleManufactureDays is the age past which an add succeeds with a
// warning instead of silently.
const staleManufactureDays = 182

// AddProduct validates the request, fills the type and expiry days when
// absent, allocates an ID from the type's band, and appends the row to the
// product master. Nothing persists when validation fails.
func (s *Service) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.ProductCreateResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: product name is required", ledger.ErrValidation)
	}
	if req.UnitPrice < 0 {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: unit price must not be negative", ledger.ErrValidation)
	}
	if req.TotalQuantity < 0 {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: total quantity must not be negative", ledger.ErrValidation)
	}
	if req.ManufactureDate.IsZero() {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: manufacture date is required", ledger.ErrValidation)
	}

	today := s.today()
	if req.ManufactureDate.After(today) {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: manufacture date cannot be in the future", ledger.ErrValidation)
	}

	productType := req.Type
	switch productType {
	case domain.TypeVeg, domain.TypeNonVeg, domain.TypeInedible:
	default:
		productType = DetectType(name)
	}

	expiryDays := req.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = SuggestExpiryDays(name, productType)
	}

	expiryDate := req.ManufactureDate.AddDays(expiryDays)
	if expiryDate.Before(today) {
		return domain.ProductCreateResponse{}, fmt.Errorf("%w: product already expired on %s", ledger.ErrValidation, expiryDate)
	}

	warning := ""
	if req.ManufactureDate.DaysUntil(today) > staleManufactureDays {
		warning = "product was manufactured over 6 months ago; it might be too old for certain purposes"
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.ProductCreateResponse{}, err
	}

	id, err := nextProductID(products, productType)
	if err != nil {
		return domain.ProductCreateResponse{}, err
	}

	product := domain.Product{
		ID:              id,
		Name:            name,
		Category:        strings.TrimSpace(req.Category),
		Type:            productType,
		UnitPrice:       req.UnitPrice,
		TotalQuantity:   req.TotalQuantity,
		TotalAmount:     req.TotalQuantity * req.UnitPrice,
		ManufactureDate: req.ManufactureDate,
		ExpiryDays:      expiryDays,
		ExpiryDate:      expiryDate,
	}

	products = append(products, product)
	if err := s.products.Save(ctx, products); err != nil {
		return domain.ProductCreateResponse{}, err
	}

	return domain.ProductCreateResponse{Product: product, Warning: warning}, nil
}

// UpdateProduct patches the master row in place. Expiry date is re-derived
// when expiry days change, and the nominal amount follows quantity and
// price edits.
func (s *Service) UpdateProduct(ctx context.Context, id int, req domain.ProductUpdateRequest) (domain.Product, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	idx := indexByID(products, id)
	if idx < 0 {
		return domain.Product{}, fmt.Errorf("%w: product %d", ledger.ErrNotFound, id)
	}

	p := &products[idx]
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, fmt.Errorf("%w: product name must not be empty", ledger.ErrValidation)
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return domain.Product{}, fmt.Errorf("%w: unit price must not be negative", ledger.ErrValidation)
		}
		p.UnitPrice = *req.UnitPrice
	}
	if req.TotalQuantity != nil {
		if *req.TotalQuantity < 0 {
			return domain.Product{}, fmt.Errorf("%w: total quantity must not be negative", ledger.ErrValidation)
		}
		p.TotalQuantity = *req.TotalQuantity
	}
	if req.ExpiryDays != nil {
		if *req.ExpiryDays < 1 {
			return domain.Product{}, fmt.Errorf("%w: expiry days must be at least 1", ledger.ErrValidation)
		}
		p.ExpiryDays = *req.ExpiryDays
		if !p.ManufactureDate.IsZero() {
			p.ExpiryDate = p.ManufactureDate.AddDays(p.ExpiryDays)
		}
	}
	p.TotalAmount = p.TotalQuantity * p.UnitPrice

	if err := s.products.Save(ctx, products); err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

// FindProducts searches the master by exact ID (numeric query) or
// case-insensitive name substring. No match is reported as ErrNotFound,
// which callers treat as a warning rather than a failure.
func (s *Service) FindProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ledger.ErrValidation)
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}

	var matches []domain.Product
	if id, err := strconv.Atoi(query); err == nil {
		for _, p := range products {
			if p.ID == id {
				matches = append(matches, p)
			}
		}
	} else {
		needle := strings.ToLower(query)
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matches = append(matches, p)
			}
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no product matches %q", ledger.ErrNotFound, query)
	}
	return matches, nil
}

// DeleteProducts removes rows matched by exact ID (numeric query) or exact
// case-insensitive name, returning what was deleted. A miss leaves the
// ledger untouched.
func (s *Service) DeleteProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: delete query is required", ledger.ErrValidation)
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}

	matchFn := func(p domain.Product) bool {
		return strings.EqualFold(p.Name, query)
	}
	if id, err := strconv.Atoi(query); err == nil {
		matchFn = func(p domain.Product) bool { return p.ID == id }
	}

	var deleted, kept []domain.Product
	for _, p := range products {
		if matchFn(p) {
			deleted = append(deleted, p)
		} else {
			kept = append(kept, p)
		}
	}

	if len(deleted) == 0 {
		return nil, fmt.Errorf("%w: no product matches %q", ledger.ErrNotFound, query)
	}
	if err := s.products.Save(ctx, kept); err != nil {
		return nil, err
	}
	return deleted, nil
}
