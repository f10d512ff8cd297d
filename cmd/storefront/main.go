package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/events"
	"github.com/fjod/go_storefront/internal/gateway"
	h "github.com/fjod/go_storefront/internal/http"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/fjod/go_storefront/pkg/logger"
)

type Config struct {
	HTTPPort        string
	CommerceAPIURL  string
	PaymentAPIURL   string
	TokenFile       string
	RedisAddr       string
	KafkaBrokers    []string
	EventsTopic     string
	Env             string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CommerceAPIURL:  getEnv("COMMERCE_API_URL", "http://localhost:8000"),
		PaymentAPIURL:   getEnv("PAYMENT_API_URL", "https://api.payment.example"),
		TokenFile:       getEnv("TOKEN_FILE", ".storefront/token"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		EventsTopic:     getEnv("EVENTS_TOPIC", "storefront-checkout"),
		Env:             getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
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

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	tokenStore := session.NewFileStore(cfg.TokenFile)
	api := gateway.NewClient(cfg.CommerceAPIURL, tokenStore, log)
	payments := payment.NewClient(cfg.PaymentAPIURL, log)

	var productCache catalog.ProductCache
	if cfg.RedisAddr != "" {
		productCache = catalog.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	catalogService := catalog.NewService(api, productCache, log)

	var publisher checkout.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.KafkaBrokers, cfg.EventsTopic, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	sessions := session.NewManager(api, tokenStore, log)
	cartManager := cart.NewManager(api, log)
	sessions.OnIdentityChange(cartManager.HandleIdentityChange)

	coordinator := checkout.NewCoordinator(api, payments, cartManager, publisher, log)

	// The startup restore must settle before protected content is
	// served; a failed restore just means an unauthenticated start.
	restoreCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := sessions.Restore(restoreCtx); err != nil {
		log.Warn("starting unauthenticated", "error", err)
	}
	cancel()

	router := h.NewRouter(h.RouterDeps{
		Sessions:    sessions,
		Cart:        cartManager,
		Catalog:     catalogService,
		Coordinator: coordinator,
		Orders:      api,
		Timeout:     cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
