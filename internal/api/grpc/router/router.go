package router

import (
	"context"
	"strings"

	"github.com/dtroode/idlink/internal/api/grpc/handler"
	"github.com/dtroode/idlink/internal/api/grpc/middleware"
	"github.com/dtroode/idlink/internal/api/grpc/rpc"
	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/model"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Router wires trigger handlers, interceptors and the health service into a gRPC server.
type Router struct {
	reconciler     handler.Reconciler
	normalizer     handler.Normalizer
	verifier       middleware.TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
	health         *health.Server
}

// New creates new gRPC Router instance.
func New(
	reconciler handler.Reconciler,
	normalizer handler.Normalizer,
	verifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		reconciler:     reconciler,
		normalizer:     normalizer,
		verifier:       verifier,
		contextManager: contextManager,
		logger:         logger,
		health:         health.NewServer(),
	}
}

// requiresAuth exempts the health service from bearer authentication.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register builds the gRPC server with request logging and authentication interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	rpc.RegisterTriggersServer(s, handler.NewTriggers(r.reconciler, r.normalizer, r.contextManager, r.logger))
	healthpb.RegisterHealthServer(s, r.health)
	r.health.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Shutdown marks every service as not serving so load balancers drain the instance.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}
