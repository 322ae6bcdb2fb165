package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ads-gateway/internal/adapter/googleads"
	httpadapter "ads-gateway/internal/adapter/http"
	"ads-gateway/internal/adapter/usecase"
	"ads-gateway/internal/config"
)

// main is the entry point of the ads-gateway service. It loads
// configuration, initializes the Google Ads client and the gateway
// usecase, then starts the HTTP server. On receiving a termination signal
// it gracefully shuts down the server.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialise structured logger based on configuration.
	logger := slog.New(cfg.Log.Handler(os.Stdout))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ads := googleads.New(cfg.Ads, logger)
	svc := usecase.NewGatewayUseCase(ads, cfg.Ads.CustomerID(), logger)

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("root_customer_id", cfg.Ads.CustomerID()))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
