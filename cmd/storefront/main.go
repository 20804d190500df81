package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gogoldh/mobile-app/internal/cart"
	"github.com/gogoldh/mobile-app/internal/catalog"
	"github.com/gogoldh/mobile-app/internal/checkout"
	storefronthttp "github.com/gogoldh/mobile-app/internal/http"
	"github.com/gogoldh/mobile-app/internal/orders"
	"github.com/gogoldh/mobile-app/internal/settings"
)

type Config struct {
	HTTPPort        string
	OrdersStore     string // sqlite | redis | memory
	OrdersDBPath    string
	RedisAddr       string
	RedisPassword   string
	CatalogURL      string
	CatalogToken    string
	CatalogCacheTTL time.Duration
	UndoWindow      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		OrdersStore:     getEnv("ORDERS_STORE", "sqlite"),
		OrdersDBPath:    getEnv("ORDERS_DB_PATH", "./data/storefront.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogURL:      getEnv("CATALOG_URL", ""),
		CatalogToken:    getEnv("CATALOG_TOKEN", ""),
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL", catalog.DefaultCacheTTL),
		UndoWindow:      getDurationEnv("CART_UNDO_WINDOW", cart.DefaultUndoWindow),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return d
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	if cfg.CatalogURL == "" {
		log.Fatal("CATALOG_URL is required")
	}

	// Durable order storage
	var blobStore orders.BlobStore
	switch cfg.OrdersStore {
	case "sqlite":
		store, err := orders.OpenSQLite(cfg.OrdersDBPath)
		if err != nil {
			log.Fatalf("Failed to open orders database: %v", err)
		}
		defer store.Close()
		blobStore = store
		log.Printf("Orders stored in SQLite at %s", cfg.OrdersDBPath)
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		blobStore = orders.NewRedisStore(redisClient)
		log.Printf("Orders stored in Redis at %s", cfg.RedisAddr)
	case "memory":
		blobStore = orders.NewMemoryStore()
		log.Println("Orders stored in memory (volatile)")
	default:
		log.Fatalf("unknown ORDERS_STORE %q", cfg.OrdersStore)
	}

	orderLog := orders.NewLog(blobStore)
	cartStore := cart.NewStore(cfg.UndoWindow)
	settingsStore := settings.NewStore()
	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.CatalogToken, cfg.CatalogCacheTTL)
	checkoutService := checkout.NewService(cartStore, orderLog)

	router := storefronthttp.NewRouter(storefronthttp.Handlers{
		Products: storefronthttp.NewProductsHandler(catalogClient),
		Cart:     storefronthttp.NewCartHandler(cartStore, catalogClient),
		Checkout: storefronthttp.NewCheckoutHandler(checkoutService),
		Orders:   storefronthttp.NewOrdersHandler(orderLog),
		Settings: storefronthttp.NewSettingsHandler(settingsStore),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
