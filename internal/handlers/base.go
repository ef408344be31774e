// Package handlers provides HTTP handlers for the services administration API.
package handlers

import (
	"context"

	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/pkg/metrics"
)

// Repository defines the interface for service record storage.
// This allows handlers to be tested without a real database.
type Repository interface {
	CreateService(ctx context.Context, s *database.Service) (*database.Service, error)
	GetService(ctx context.Context, serviceID string) (*database.Service, error)
	UpdateService(ctx context.Context, s *database.Service, expectedVersion int) (*database.Service, error)
}

// Handlers wraps dependencies for HTTP handlers.
type Handlers struct {
	db            Repository
	metricsReader *metrics.Reader
}

// NewHandlers creates a new handlers instance. The metrics reader may be nil
// when no Redis backend is configured.
func NewHandlers(db *database.DB, reader *metrics.Reader) *Handlers {
	return &Handlers{
		db:            db,
		metricsReader: reader,
	}
}

// NewHandlersWithDeps creates handlers with explicit interface dependencies.
// This constructor is primarily for testing.
func NewHandlersWithDeps(db Repository) *Handlers {
	return &Handlers{db: db}
}
