package inventory

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"shelpify/backend/internal/domain"
	"shelpify/backend/internal/ledger"
)

const discountCacheKey = "shelpify:discount-suggestions"

// discountWindowDays bounds which items show up as markdown candidates.
const discountWindowDays = 7

// DiscountSuggestions lists reconciled items within a week of expiry
// (including already-expired stock), nearest expiry first. The view is
// cached briefly; cache failures degrade to recomputation.
func (s *Service) DiscountSuggestions(ctx context.Context) (domain.DiscountSuggestionsResponse, error) {
	if cached, ok, err := s.discountCache.Get(ctx, discountCacheKey); err != nil {
		log.Printf("[inventory] WARN: discount cache read failed: %v", err)
	} else if ok {
		return *cached, nil
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.DiscountSuggestionsResponse{}, err
	}

	today := s.today()
	var suggestions []domain.DiscountSuggestion
	for _, p := range snapshot {
		if p.ExpiryDate.IsZero() {
			continue
		}
		daysLeft := today.DaysUntil(p.ExpiryDate)
		if daysLeft > discountWindowDays {
			continue
		}
		suggestions = append(suggestions, domain.DiscountSuggestion{Product: p, DaysLeft: daysLeft})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].DaysLeft < suggestions[j].DaysLeft
	})

	resp := domain.DiscountSuggestionsResponse{Suggestions: suggestions}
	if err := s.discountCache.Set(ctx, discountCacheKey, &resp, s.discountTTL); err != nil {
		log.Printf("[inventory] WARN: discount cache write failed: %v", err)
	}
	return resp, nil
}

// PreviewCategoryDiscount computes discounted prices for every product in
// a category. Preview only: prices in the master never change.
func (s *Service) PreviewCategoryDiscount(ctx context.Context, category string, percent float64) (domain.DiscountPreviewResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return domain.DiscountPreviewResponse{}, fmt.Errorf("%w: category is required", ledger.ErrValidation)
	}
	if err := validateDiscountPercent(percent); err != nil {
		return domain.DiscountPreviewResponse{}, err
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.DiscountPreviewResponse{}, err
	}

	var items []domain.DiscountPreviewItem
	for _, p := range products {
		if !strings.EqualFold(p.Category, category) {
			continue
		}
		items = append(items, discountPreviewItem(p, percent))
	}
	if len(items) == 0 {
		return domain.DiscountPreviewResponse{}, fmt.Errorf("%w: no products in category %q", ledger.ErrNotFound, category)
	}
	return domain.DiscountPreviewResponse{Items: items}, nil
}

// PreviewItemDiscount computes the discounted price for one product.
func (s *Service) PreviewItemDiscount(ctx context.Context, productID int, percent float64) (domain.DiscountPreviewItem, error) {
	if err := validateDiscountPercent(percent); err != nil {
		return domain.DiscountPreviewItem{}, err
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		return domain.DiscountPreviewItem{}, err
	}

	idx := indexByID(products, productID)
	if idx < 0 {
		return domain.DiscountPreviewItem{}, fmt.Errorf("%w: product %d", ledger.ErrNotFound, productID)
	}
	return discountPreviewItem(products[idx], percent), nil
}

func validateDiscountPercent(percent float64) error {
	if percent < 0 || percent > 90 {
		return fmt.Errorf("%w: discount percent must be between 0 and 90", ledger.ErrValidation)
	}
	return nil
}

func discountPreviewItem(p domain.Product, percent float64) domain.DiscountPreviewItem {
	return domain.DiscountPreviewItem{
		Product:         p,
		DiscountPercent: percent,
		DiscountedPrice: p.UnitPrice * (1 - percent/100),
	}
}
