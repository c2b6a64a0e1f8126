package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	AllowedOrigin           string
	ProductsCSV             string
	SalesCSV                string
	DatabaseURL             string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	DiscountCacheTTLSeconds int
	AuthSecret              string
	AccessTokenTTLMinutes   int
	SeedAdminPassword       string
}

func Load() Config {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := strconv.Atoi(getEnv("DISCOUNT_CACHE_TTL_SECONDS", "30"))
	if err != nil || ttl < 1 {
		ttl = 30
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}

	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		AllowedOrigin:           getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		ProductsCSV:             os.Getenv("PRODUCTS_CSV"),
		SalesCSV:                os.Getenv("SALES_CSV"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 redisDB,
		DiscountCacheTTLSeconds: ttl,
		AuthSecret:              strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes:   tokenTTL,
		SeedAdminPassword:       os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// UseCSV reports whether the flat-file ledgers are configured. Both paths
// must be set; mixing one CSV ledger with another backend is not supported.
func (c Config) UseCSV() bool {
	return c.ProductsCSV != "" && c.SalesCSV != ""
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
