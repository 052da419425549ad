package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sealjuli/Library/internal/api"
	"github.com/sealjuli/Library/internal/store"
	"github.com/sealjuli/Library/pkg/config"
	"github.com/sealjuli/Library/pkg/database"
	"github.com/sealjuli/Library/pkg/logging"
	"github.com/sealjuli/Library/pkg/rabbitmq"
	"github.com/sealjuli/Library/pkg/reporting"

	_ "github.com/sealjuli/Library/docs"
)

// @title           Library API
// @version         1.0
// @description     A REST API for a library: books, users and checkouts. Writes publish domain events to RabbitMQ.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting api-service")

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if cfg.AutoMigrate {
		if err := database.RunMigrations(db, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Connect to RabbitMQ
	var publisher api.EventPublisher
	if cfg.RabbitMQURL != "" {
		rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rmqConn.Close() //nolint:errcheck

		pub, err := rabbitmq.NewPublisher(rmqConn, logger)
		if err != nil {
			logger.Fatal("failed to create publisher", zap.Error(err))
		}
		defer pub.Close() //nolint:errcheck
		publisher = pub
	} else {
		logger.Info("RABBITMQ_URL not set, event publishing disabled")
	}

	reporters := []reporting.Reporter{reporting.NewZap(logger)}
	if cfg.PostHogAPIKey != "" {
		ph, err := reporting.NewPostHog(cfg.PostHogAPIKey, cfg.PostHogEndpoint, logger)
		if err != nil {
			logger.Fatal("failed to create PostHog client", zap.Error(err))
		}
		reporters = append(reporters, ph)
	}
	reporter := reporting.Multi(reporters...)
	defer func() {
		if err := reporter.Close(); err != nil {
			logger.Warn("failed to close reporters", zap.Error(err))
		}
	}()

	// Setup handlers and router
	handler := api.NewHandler(
		store.NewBookRepository(db),
		store.NewUserRepository(db),
		publisher,
		reporter,
		logger,
	)
	router := api.NewRouter(handler)

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server exited gracefully")
}
