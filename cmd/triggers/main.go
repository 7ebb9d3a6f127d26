package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	lambdaapi "github.com/dtroode/idlink/internal/api/lambda"
	"github.com/dtroode/idlink/internal/config"
	"github.com/dtroode/idlink/internal/directory"
	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/metrics"
	"github.com/dtroode/idlink/internal/password"
	"github.com/dtroode/idlink/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, logger.Format(cfg.LogFormat))

	// Built once per container and reused across warm invocations.
	dir, err := directory.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open directory", "backend", cfg.Directory.Backend, "error", err)
	}
	defer dir.Close()

	// Lambda has no scrape endpoint; counters stay unregistered.
	var m *metrics.Metrics

	reconciler := service.NewReconciler(dir, password.NewGenerator(cfg.PasswordLength), m, logger)
	normalizer := service.NewNormalizer(dir, m, logger)
	handler := lambdaapi.NewHandler(reconciler, normalizer, logger)

	lambda.Start(handler.Handle)
}
