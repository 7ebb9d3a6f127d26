package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/idlink/internal/api/grpc/context"
	"github.com/dtroode/idlink/internal/api/grpc/router"
	grpcServer "github.com/dtroode/idlink/internal/api/grpc/server"
	httpapi "github.com/dtroode/idlink/internal/api/http"
	"github.com/dtroode/idlink/internal/config"
	"github.com/dtroode/idlink/internal/directory"
	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/metrics"
	"github.com/dtroode/idlink/internal/model"
	"github.com/dtroode/idlink/internal/password"
	"github.com/dtroode/idlink/internal/server"
	"github.com/dtroode/idlink/internal/service"
	"github.com/dtroode/idlink/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, logger.Format(cfg.LogFormat))

	dir, err := directory.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open directory", "backend", cfg.Directory.Backend, "error", err)
	}
	defer dir.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	reconciler := service.NewReconciler(dir, password.NewGenerator(cfg.PasswordLength), m, logger)
	normalizer := service.NewNormalizer(dir, m, logger)

	r := router.New(reconciler, normalizer, token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer), grpcctx.NewManager(), logger)
	gs := r.Register()
	reflection.Register(gs)

	servers := []model.Server{
		grpcServer.NewGRPCServer(gs, fmt.Sprintf(":%s", cfg.GRPC.Port)),
		httpapi.NewServer(httpapi.NewRouter(registry, dir, logger), cfg.Metrics.Address),
	}
	// TLS only fronts the trigger API; metrics are scraped in-cluster.
	layers := []model.SecurityLayer{
		server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName),
		server.NewPlainListener(),
	}

	var wg sync.WaitGroup
	for i, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s, layers[i])
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	r.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
