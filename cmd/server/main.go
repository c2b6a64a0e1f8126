package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelpify/backend/internal/cache"
	"shelpify/backend/internal/config"
	"shelpify/backend/internal/httpapi"
	"shelpify/backend/internal/inventory"
	"shelpify/backend/internal/ledger"
	"shelpify/backend/internal/ledger/csvfile"
	"shelpify/backend/internal/ledger/memory"
	pgledger "shelpify/backend/internal/ledger/postgres"
)

func main() {
	cfg := config.Load()
	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatalf("invalid security configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var products ledger.ProductStore
	var sales ledger.SalesStore
	closers := make([]func() error, 0, 2)

	switch {
	case cfg.UseCSV():
		products = csvfile.NewProductStore(cfg.ProductsCSV)
		sales = csvfile.NewSalesStore(cfg.SalesCSV)
		log.Printf("ledger: csv files (%s, %s)", cfg.ProductsCSV, cfg.SalesCSV)
	case cfg.DatabaseURL != "":
		pg, err := pgledger.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with in-memory fallback", err)
		}
		products = pg.Products()
		sales = pg.Sales()
		closers = append(closers, pg.Close)
		log.Println("ledger: postgres")
	default:
		products, sales = memory.NewSeeded()
		log.Println("ledger: in-memory (seeded demo data)")
	}

	discountCache := cache.DiscountCache(cache.NoopDiscountCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisDiscountCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			discountCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("cache: redis")
		}
	} else {
		log.Println("cache: noop")
	}

	svc := inventory.New(products, sales, discountCache, time.Duration(cfg.DiscountCacheTTLSeconds)*time.Second)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, httpapi.SeedAccounts(cfg.SeedAdminPassword))
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("inventory backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	return nil
}
