package context

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// callerKey is the metadata key holding the authenticated caller.
const callerKey = "x-idlink-caller"

// Manager stores the authenticated caller in incoming gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns ctx with caller set in its incoming metadata.
// Any caller value supplied by the client is overwritten.
func (m *Manager) SetCallerToContext(ctx context.Context, caller string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{callerKey: caller})
	} else {
		md = md.Copy()
		md.Set(callerKey, caller)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetCallerFromContext reads the caller set by SetCallerToContext.
func (m *Manager) GetCallerFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	callers := md.Get(callerKey)
	if len(callers) == 0 || callers[0] == "" {
		return "", false
	}

	return callers[0], true
}
