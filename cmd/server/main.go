package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/handler"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/server"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/internal/workers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("backoffice-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	services := service.NewServices(storages, *cfg, recorder, log)

	if cfg.App.Admin.Enabled() {
		admin, err := services.AuthService.BootstrapAdmin(ctx, cfg.App.Admin)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating bootstrap admin")
		}
		log.Info().Str("user_id", admin.ID).Str("username", admin.Username).Msg("bootstrap admin ready")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, recorder, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}
	defer handlers.Close()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bgWorkers := workers.NewWorkers(services, cfg.Workers, log)
	bgWorkers.Run(ctx)

	if err := srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	bgWorkers.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
