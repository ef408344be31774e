// Package handlers provides test mocks for handler dependencies.
package handlers

import (
	"context"

	"github.com/berez23/io-functions/internal/database"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	CreateServiceFn func(ctx context.Context, s *database.Service) (*database.Service, error)
	GetServiceFn    func(ctx context.Context, serviceID string) (*database.Service, error)
	UpdateServiceFn func(ctx context.Context, s *database.Service, expectedVersion int) (*database.Service, error)
}

func (m *mockRepository) CreateService(ctx context.Context, s *database.Service) (*database.Service, error) {
	if m.CreateServiceFn != nil {
		return m.CreateServiceFn(ctx, s)
	}
	return s, nil
}

func (m *mockRepository) GetService(ctx context.Context, serviceID string) (*database.Service, error) {
	if m.GetServiceFn != nil {
		return m.GetServiceFn(ctx, serviceID)
	}
	return &database.Service{ServiceID: serviceID}, nil
}

func (m *mockRepository) UpdateService(ctx context.Context, s *database.Service, expectedVersion int) (*database.Service, error) {
	if m.UpdateServiceFn != nil {
		return m.UpdateServiceFn(ctx, s, expectedVersion)
	}
	return s, nil
}
