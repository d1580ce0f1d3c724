package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frostdev-ops/sales-insights-go/internal/api"
	"github.com/frostdev-ops/sales-insights-go/internal/api/handlers"
	"github.com/frostdev-ops/sales-insights-go/internal/config"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dashboard"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/export"
	"github.com/frostdev-ops/sales-insights-go/internal/core/insights"
	"github.com/frostdev-ops/sales-insights-go/internal/core/metrics"
	"github.com/frostdev-ops/sales-insights-go/internal/core/system"
	"github.com/frostdev-ops/sales-insights-go/pkg/logger"
	"github.com/frostdev-ops/sales-insights-go/pkg/version"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.SetLevel(log, cfg.Logging.Level)

	log.WithFields(map[string]interface{}{
		"version": version.GetFullVersion(),
		"mode":    cfg.Server.Mode,
	}).Info("Starting sales insights service")

	store := dataset.NewStore()
	collector := metrics.NewCollector(cfg.Metrics.Enabled)

	// The service starts without a dataset; endpoints report 503 until one loads.
	snap, err := dataset.Load(cfg.Data.Path, log)
	if err != nil {
		log.WithError(err).WithField("path", cfg.Data.Path).Warn("Failed to load dataset on startup")
	} else {
		store.Set(snap)
		view := snap.All()
		collector.SetDatasetInfo(snap.RowCount(), len(snap.Columns()), view.MemoryFootprintMB())
	}

	engine := insights.NewEngine(log)
	exporter := export.NewManager(log, cfg.Export.HistoryLimit)
	renderer := dashboard.NewRenderer(engine, log, cfg.Dashboard.Title, cfg.Dashboard.Theme)
	sysService := system.NewService(log)

	sampler := metrics.NewSampler(collector, log, cfg.Metrics.SampleSchedule)
	if cfg.Metrics.Enabled {
		if err := sampler.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start resource sampler")
		}
	}

	h := handlers.New(cfg, store, engine, exporter, renderer, collector, sysService, log)
	router := api.NewRouter(cfg, h, collector, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		sampler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
