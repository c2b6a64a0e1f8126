package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadCSVPathsRequireBothLedgers(t *testing.T) {
	t.Setenv("PRODUCTS_CSV", "products.csv")
	t.Setenv("SALES_CSV", "")

	if cfg := Load(); cfg.UseCSV() {
		t.Fatalf("expected UseCSV to be false with only one path set")
	}

	t.Setenv("SALES_CSV", "sales.csv")
	if cfg := Load(); !cfg.UseCSV() {
		t.Fatalf("expected UseCSV to be true with both paths set")
	}
}

func TestLoadFallsBackOnBadDiscountTTL(t *testing.T) {
	t.Setenv("DISCOUNT_CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.DiscountCacheTTLSeconds != 30 {
		t.Fatalf("expected default TTL 30, got %d", cfg.DiscountCacheTTLSeconds)
	}
}
