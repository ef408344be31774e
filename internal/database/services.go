package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Service represents a sender service registered through the admin API.
type Service struct {
	ServiceID            string    `json:"service_id"`
	ServiceName          string    `json:"service_name"`
	DepartmentName       string    `json:"department_name"`
	OrganizationName     string    `json:"organization_name"`
	AuthorizedRecipients []string  `json:"authorized_recipients"`
	Version              int       `json:"version"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateService registers a new sender service.
func (db *DB) CreateService(ctx context.Context, s *Service) (*Service, error) {
	query := `
		INSERT INTO services (service_id, service_name, department_name, organization_name, authorized_recipients, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW(), NOW())
		RETURNING service_id, service_name, department_name, organization_name, authorized_recipients, version, created_at, updated_at
	`
	var created Service
	var recipients pq.StringArray
	err := db.conn.QueryRowContext(ctx, query,
		s.ServiceID,
		s.ServiceName,
		s.DepartmentName,
		s.OrganizationName,
		pq.Array(s.AuthorizedRecipients),
	).Scan(
		&created.ServiceID,
		&created.ServiceName,
		&created.DepartmentName,
		&created.OrganizationName,
		&recipients,
		&created.Version,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("service already exists: %s", s.ServiceID)
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	created.AuthorizedRecipients = recipients
	return &created, nil
}

// GetService retrieves a service by ID.
func (db *DB) GetService(ctx context.Context, serviceID string) (*Service, error) {
	query := `
		SELECT service_id, service_name, department_name, organization_name, authorized_recipients, version, created_at, updated_at
		FROM services
		WHERE service_id = $1
	`
	var s Service
	var recipients pq.StringArray
	err := db.conn.QueryRowContext(ctx, query, serviceID).Scan(
		&s.ServiceID,
		&s.ServiceName,
		&s.DepartmentName,
		&s.OrganizationName,
		&recipients,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service not found: %s", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	s.AuthorizedRecipients = recipients
	return &s, nil
}

// UpdateService updates a service with optimistic locking.
// Returns the updated service or an error if version mismatch.
func (db *DB) UpdateService(ctx context.Context, s *Service, expectedVersion int) (*Service, error) {
	query := `
		UPDATE services
		SET service_name = $2,
		    department_name = $3,
		    organization_name = $4,
		    authorized_recipients = $5,
		    version = version + 1,
		    updated_at = NOW()
		WHERE service_id = $1 AND version = $6
		RETURNING service_id, service_name, department_name, organization_name, authorized_recipients, version, created_at, updated_at
	`
	var updated Service
	var recipients pq.StringArray
	err := db.conn.QueryRowContext(ctx, query,
		s.ServiceID,
		s.ServiceName,
		s.DepartmentName,
		s.OrganizationName,
		pq.Array(s.AuthorizedRecipients),
		expectedVersion,
	).Scan(
		&updated.ServiceID,
		&updated.ServiceName,
		&updated.DepartmentName,
		&updated.OrganizationName,
		&recipients,
		&updated.Version,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// Check if service exists but version mismatch
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM services WHERE service_id = $1)`
		if err := db.conn.QueryRowContext(ctx, checkQuery, s.ServiceID).Scan(&exists); err == nil && exists {
			return nil, fmt.Errorf("service version mismatch: expected version %d", expectedVersion)
		}
		return nil, fmt.Errorf("service not found: %s", s.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	updated.AuthorizedRecipients = recipients
	return &updated, nil
}
