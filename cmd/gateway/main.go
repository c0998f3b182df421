package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/freshkart/storefront/internal/gateway"
	"github.com/freshkart/storefront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "gateway", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	storefrontServiceURL := os.Getenv("STOREFRONT_SERVICE_URL")
	if storefrontServiceURL == "" {
		logger.Error("STOREFRONT_SERVICE_URL is required")
		os.Exit(1)
	}

	trackerServiceURL := os.Getenv("TRACKER_SERVICE_URL")
	if trackerServiceURL == "" {
		logger.Error("TRACKER_SERVICE_URL is required")
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	storefrontProxy := gateway.NewServiceProxy(storefrontServiceURL, httpClient)
	trackerProxy := gateway.NewServiceProxy(trackerServiceURL, httpClient)
	handler := gateway.NewHandler(storefrontProxy, trackerProxy, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /cart/{userID}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("POST /cart/{userID}/items", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("PUT /cart/{userID}/items/{productID}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("DELETE /cart/{userID}/items/{productID}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("DELETE /cart/{userID}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /pricing/quote", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("POST /checkout", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /orders", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("PATCH /orders/{id}/status", telemetry.WithHTTPRoute(handler.HandleStorefront))
	mux.HandleFunc("GET /tracking/{orderID}", telemetry.WithHTTPRoute(handler.HandleTracking))

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "gateway",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting gateway service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
