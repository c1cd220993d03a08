package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/sumatra-gis/hazard-sentinel/internal/aggregator"
	"github.com/sumatra-gis/hazard-sentinel/internal/api"
	"github.com/sumatra-gis/hazard-sentinel/internal/config"
	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/ingestion"
	"github.com/sumatra-gis/hazard-sentinel/internal/logging"
	"github.com/sumatra-gis/hazard-sentinel/internal/observability"
	"github.com/sumatra-gis/hazard-sentinel/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	metrics := observability.New()
	forecaster := weather.NewClient(cfg.Weather.URL, cfg.Weather.Timeout, slog.Default())

	// Source order fixes the merge accumulation order: local agency
	// first, then the global feeds, then the synthetic flood scan.
	sources := []ingestion.Source{
		ingestion.NewBMKGSource(cfg.Sources.BMKGLatestURL, cfg.Sources.BMKGFeltURL, cfg.Sources.FetchTimeout),
		ingestion.NewEONETSource(cfg.Sources.EONETURL, geo.SumatraBounds, cfg.Sources.FetchTimeout),
		ingestion.NewUSGSSource(cfg.Sources.USGSURL, cfg.Sources.FetchTimeout),
		ingestion.NewFloodRiskSource(forecaster, geo.MajorCities),
	}

	cache := aggregator.NewCache(cfg.Cache.TTL, clockwork.NewRealClock())
	agg := aggregator.New(sources, forecaster, cache, metrics, cfg.Enrich.Workers, cfg.Sources.FillerEnabled)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.API.RateLimitRPS))

	handler := api.NewHandler(agg, metrics.Registry)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	// Prime the cache so the first client request is served warm.
	go func() {
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 2*cfg.Sources.FetchTimeout)
		defer warmCancel()
		agg.Points(warmCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
