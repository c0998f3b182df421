package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/freshkart/storefront/internal/cart"
	"github.com/freshkart/storefront/internal/catalog"
	"github.com/freshkart/storefront/internal/checkout"
	"github.com/freshkart/storefront/internal/messaging"
	"github.com/freshkart/storefront/internal/orders"
	"github.com/freshkart/storefront/internal/pricing"
	"github.com/freshkart/storefront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		logger.Error("REDIS_ADDR environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var publisher checkout.Publisher
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		producer := messaging.NewProducer(strings.Split(kafkaBrokers, ","), messaging.TopicOrderPlaced)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events will not be published")
	}

	products := catalog.NewProductRepository(db)
	carts := cart.NewRedisStore(redisClient)
	orderStore := orders.NewOrderRepository(db)

	cartService := cart.NewService(carts, products)
	checkoutService := checkout.NewService(carts, orderStore, publisher, logger)

	catalogHandler := catalog.NewHandler(products, logger)
	cartHandler := cart.NewHandler(cartService, logger)
	pricingHandler := pricing.NewHandler(logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)
	ordersHandler := orders.NewHandler(orderStore, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", catalogHandler.HandleList)
	mux.HandleFunc("GET /products/{id}", catalogHandler.HandleGet)
	mux.HandleFunc("GET /cart/{userID}", cartHandler.HandleGet)
	mux.HandleFunc("POST /cart/{userID}/items", cartHandler.HandleAddItem)
	mux.HandleFunc("PUT /cart/{userID}/items/{productID}", cartHandler.HandleSetQuantity)
	mux.HandleFunc("DELETE /cart/{userID}/items/{productID}", cartHandler.HandleRemoveItem)
	mux.HandleFunc("DELETE /cart/{userID}", cartHandler.HandleClear)
	mux.HandleFunc("GET /pricing/quote", pricingHandler.HandleQuote)
	mux.HandleFunc("POST /checkout", checkoutHandler.HandlePlaceOrder)
	mux.HandleFunc("GET /orders", ordersHandler.HandleListByUser)
	mux.HandleFunc("GET /orders/{id}", ordersHandler.HandleGet)
	mux.HandleFunc("PATCH /orders/{id}/status", ordersHandler.HandleUpdateStatus)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
