package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/dkapoor/netsales-dashboard/internal/api/handlers"
	"github.com/dkapoor/netsales-dashboard/internal/api/middleware"
	"github.com/dkapoor/netsales-dashboard/internal/config"
	"github.com/dkapoor/netsales-dashboard/internal/insights"
	"github.com/dkapoor/netsales-dashboard/internal/logger"
	"github.com/dkapoor/netsales-dashboard/internal/warehouse"
)

func main() {
	// Initialize logger
	log := logger.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Initialize the warehouse gateway
	gateway, err := warehouse.NewClient(ctx, cfg.WarehouseOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create warehouse client")
	}
	defer gateway.Close()

	if cfg.ExportBucket == "" {
		log.Warn().Msg("No export bucket configured - snapshot export will be disabled")
	}

	var summarizer handlers.Summarizer
	if cfg.InsightModel != "" {
		summarizer = insights.NewSummarizer(cfg.InsightModel)
	} else {
		log.Warn().Msg("No insight model configured - insight summaries will be disabled")
	}

	// Initialize handlers
	dataHandler := handlers.NewDataHandler(gateway, log)
	dashboardHandler := handlers.NewDashboardHandler(gateway, log)
	exportHandler := handlers.NewExportHandler(gateway, cfg.ExportBucket, log)
	insightHandler := handlers.NewInsightHandler(gateway, summarizer, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/data", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dataHandler.GetData(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/dashboard/sales", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.GetSales(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/dashboard/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.GetMetrics(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/dashboard/aum", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.GetAUM(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/dashboard/branches", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.GetBranches(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/dashboard/insight", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightHandler.GetInsight(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			exportHandler.Export(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Browser origins are an explicit allow-list, never a wildcard.
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         3600,
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				corsHandler(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("table_ref", cfg.TableRef).
			Str("allowed_origin", cfg.AllowedOrigin).
			Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
