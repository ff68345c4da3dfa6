// Package main initializes and starts the pharmacy admin gateway,
// setting up configuration, logging, the session store, the backend
// client, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/config"
	"github.com/medixpharma/pharmadmin/internal/db"
	"github.com/medixpharma/pharmadmin/internal/logger"
	"github.com/medixpharma/pharmadmin/internal/repository"
	"github.com/medixpharma/pharmadmin/internal/server/handler/http"
	"github.com/medixpharma/pharmadmin/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the PostgreSQL session store.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Expire abandoned sessions in the background.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Backend client and session repository.
	client := backend.New(options.BackendURL, zapLogger)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)

	// Business-logic services.
	authService := service.NewAuthService(client, sessionRepo, nil)
	dashboardService := service.NewDashboardService(client, options.LowStockThreshold, options.ExpiringDays, nil)
	searcher := service.NewSearcher(client, time.Duration(options.DebounceMs)*time.Millisecond)

	// Shared failure policy: a backend 401 tears the session down.
	errs := &http.Errors{Log: zapLogger, Sessions: authService, Searches: searcher}

	handlers := http.Handlers{
		Auth: &http.AuthHandler{Auth: authService, Errs: errs},
		Dashboard: &http.DashboardHandler{
			Dashboard:         dashboardService,
			Staff:             client,
			Errs:              errs,
			LowStockThreshold: options.LowStockThreshold,
			ExpiringDays:      options.ExpiringDays,
		},
		Products: &http.ProductHandler{Backend: client, Errs: errs},
		Stocks: &http.StockHandler{
			Backend:           client,
			Errs:              errs,
			LowStockThreshold: options.LowStockThreshold,
			ExpiringDays:      options.ExpiringDays,
		},
		Sales:     &http.SaleHandler{Backend: client, Errs: errs},
		Suppliers: &http.SupplierHandler{Backend: client, Errs: errs},
		Users:     &http.UserHandler{Backend: client, Errs: errs},
		Reports: &http.ReportHandler{
			Backend:           client,
			Errs:              errs,
			LowStockThreshold: options.LowStockThreshold,
			ExpiringDays:      options.ExpiringDays,
		},
		Search: &http.SearchHandler{Search: searcher, Errs: errs},
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
