package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenVerifier resolves the caller from a bearer token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate validates bearer tokens and injects the caller into context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns a context with the caller.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	caller, authErr := m.authenticateCaller(tokenString)
	if authErr != nil {
		m.logger.Warn("Authenticate: rejected request", "error", authErr.Error())
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetCallerToContext(ctx, caller), nil
}

func (m *Authenticate) authenticateCaller(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errMissingToken
	}

	caller, err := m.verifier.Verify(tokenString)
	if err != nil || caller == "" {
		return "", errInvalidToken
	}

	return caller, nil
}
