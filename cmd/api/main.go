package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	api "taskapp/internal/adapter/http"
	"taskapp/pkg/config"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
	. "taskapp/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLogger, err := logger.New("taskapp")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer appLogger.Sync()

	telemetry, err := InitTelemetry(TelemetryConfig{
		ServiceName:    "taskapp",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(context.Background())

	appMetrics := metrics.NewAppMetrics(telemetry.PrometheusRegistry)
	appMetrics.StartSystemMetrics(ctx)

	if err := api.StartServer(ctx, cfg, appMetrics, appLogger); err != nil {
		log.Fatal("Server failed:", err)
	}

	appLogger.Info(ctx, "Shutting down gracefully")
}
