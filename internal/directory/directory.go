// Package directory opens the configured directory backend.
package directory

import (
	"context"
	"fmt"

	"github.com/dtroode/idlink/internal/config"
	"github.com/dtroode/idlink/internal/directory/cognito"
	"github.com/dtroode/idlink/internal/directory/postgres"
	"github.com/dtroode/idlink/internal/model"
)

// Backend is an open directory client together with its lifecycle hooks.
type Backend struct {
	model.Directory
	conn *postgres.Connection
}

// Open builds the backend selected by cfg.Directory.Backend. It is called once per
// process and the result shared by every invocation.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Directory.Backend {
	case config.BackendCognito:
		awsCfg, err := cognito.LoadAWSConfig(ctx, cognito.Options{
			Region:          cfg.Cognito.Region,
			AccessKeyID:     cfg.Cognito.AccessKeyID,
			SecretAccessKey: cfg.Cognito.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return &Backend{Directory: cognito.NewFromConfig(awsCfg, cfg.Cognito.Endpoint)}, nil
	case config.BackendPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return &Backend{Directory: postgres.NewDirectory(conn), conn: conn}, nil
	default:
		return nil, fmt.Errorf("unsupported directory backend %q", cfg.Directory.Backend)
	}
}

// Ping checks the backend connection. Cognito has no persistent connection and
// always reports ready.
func (b *Backend) Ping(ctx context.Context) error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Ping(ctx)
}

func (b *Backend) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
