package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/berez23/io-functions/internal/database"
)

// ServicePayload represents the request body for creating or updating a
// service record.
type ServicePayload struct {
	ServiceID            string   `json:"service_id"`
	ServiceName          string   `json:"service_name"`
	DepartmentName       string   `json:"department_name"`
	OrganizationName     string   `json:"organization_name"`
	AuthorizedRecipients []string `json:"authorized_recipients"`
	Version              int      `json:"version"`
}

// validate checks that all required service fields are present.
func (p *ServicePayload) validate() string {
	if p.ServiceID == "" {
		return "service_id is required"
	}
	if p.ServiceName == "" {
		return "service_name is required"
	}
	if p.DepartmentName == "" {
		return "department_name is required"
	}
	if p.OrganizationName == "" {
		return "organization_name is required"
	}
	return ""
}

func (p *ServicePayload) toService() *database.Service {
	return &database.Service{
		ServiceID:            p.ServiceID,
		ServiceName:          p.ServiceName,
		DepartmentName:       p.DepartmentName,
		OrganizationName:     p.OrganizationName,
		AuthorizedRecipients: p.AuthorizedRecipients,
	}
}

// CreateService registers a new sender service.
func (h *Handlers) CreateService(w http.ResponseWriter, r *http.Request) {
	var payload ServicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := payload.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	created, err := h.db.CreateService(r.Context(), payload.toService())
	if err != nil {
		slog.Error("Failed to create service", "error", err, "service_id", payload.ServiceID)
		if strings.Contains(err.Error(), "already exists") {
			http.Error(w, "Service already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create service: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetService retrieves a service record by its path identifier.
func (h *Handlers) GetService(w http.ResponseWriter, r *http.Request, serviceID string) {
	if serviceID == "" {
		http.Error(w, "service id is required", http.StatusBadRequest)
		return
	}

	service, err := h.db.GetService(r.Context(), serviceID)
	if err != nil {
		slog.Error("Failed to get service", "error", err, "service_id", serviceID)
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// UpdateService updates a service record with optimistic concurrency control.
// The body service_id must match the path identifier.
func (h *Handlers) UpdateService(w http.ResponseWriter, r *http.Request, serviceID string) {
	if serviceID == "" {
		http.Error(w, "service id is required", http.StatusBadRequest)
		return
	}

	var payload ServicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := payload.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if payload.ServiceID != serviceID {
		http.Error(w, "service_id in body does not match path", http.StatusBadRequest)
		return
	}

	updated, err := h.db.UpdateService(r.Context(), payload.toService(), payload.Version)
	if err != nil {
		slog.Error("Failed to update service", "error", err, "service_id", serviceID)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		if strings.Contains(err.Error(), "version mismatch") {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to update service: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
