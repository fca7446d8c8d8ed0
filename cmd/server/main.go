package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	comparisonHandler "github.com/ENEASJO/sistema-de-filtro/internal/comparison/handler"
	comparisonService "github.com/ENEASJO/sistema-de-filtro/internal/comparison/service"
	transport "github.com/ENEASJO/sistema-de-filtro/internal/http"
	"github.com/ENEASJO/sistema-de-filtro/internal/platform/config"
	"github.com/ENEASJO/sistema-de-filtro/internal/platform/httpserver"
	"github.com/ENEASJO/sistema-de-filtro/internal/platform/logger"
	"github.com/ENEASJO/sistema-de-filtro/internal/registry/adapters"
	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	relationshipMetrics "github.com/ENEASJO/sistema-de-filtro/internal/relationship/metrics"
	screeningHandler "github.com/ENEASJO/sistema-de-filtro/internal/screening/handler"
	screeningMetrics "github.com/ENEASJO/sistema-de-filtro/internal/screening/metrics"
	screeningService "github.com/ENEASJO/sistema-de-filtro/internal/screening/service"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/ports"
)

// main wires dependencies and keeps the server lifecycle small. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.SourceTimeout}
	sunat := adapters.NewSUNAT(cfg.SunatBaseURL, httpClient)
	osce := adapters.NewOSCE(cfg.OsceBaseURL, httpClient)
	relatives := adapters.NewRelatives(cfg.RelativesBaseURL, httpClient)

	checker, err := relationship.NewChecker(relatives, cfg.LookupDelay,
		relationship.WithLogger(log),
		relationship.WithMetrics(relationshipMetrics.New()),
	)
	if err != nil {
		log.Error("build relationship checker", "error", err)
		os.Exit(1)
	}

	screeningSvc, err := screeningService.New(
		[]ports.SourcePort{sunat, osce},
		checker,
		cfg.MaxBatchSize,
		screeningService.WithLogger(log),
		screeningService.WithMetrics(screeningMetrics.New()),
	)
	if err != nil {
		log.Error("build screening service", "error", err)
		os.Exit(1)
	}

	comparisonSvc, err := comparisonService.New(checker, comparisonService.WithLogger(log))
	if err != nil {
		log.Error("build comparison service", "error", err)
		os.Exit(1)
	}

	router := transport.NewRouter(
		screeningHandler.New(screeningSvc, log),
		comparisonHandler.New(comparisonSvc, log),
		log,
		cfg.RequestTimeout,
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
