// Package router provides HTTP routing configuration for the services API.
// It sets up routes and applies middleware like CORS.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/berez23/io-functions/internal/handlers"
)

// Router wraps the HTTP mux and provides route configuration.
type Router struct {
	mux      *http.ServeMux
	handlers *handlers.Handlers
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *handlers.Handlers) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		handlers: h,
	}
	r.setupRoutes()
	return r
}

// setupRoutes configures all HTTP routes for the API.
func (r *Router) setupRoutes() {
	// Service collection endpoint
	r.mux.HandleFunc("/adm/services", func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			r.handlers.CreateService(w, req)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Single service endpoint: /adm/services/{serviceID}
	r.mux.HandleFunc("/adm/services/", func(w http.ResponseWriter, req *http.Request) {
		serviceID := strings.TrimPrefix(req.URL.Path, "/adm/services/")
		if serviceID == "" || strings.Contains(serviceID, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			r.handlers.GetService(w, req, serviceID)
		case http.MethodPut:
			r.handlers.UpdateService(w, req, serviceID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Platform metrics endpoint
	r.mux.HandleFunc("/api/v1/metrics", func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			r.handlers.GetMetrics(w, req)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Health check endpoint
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Handler returns the HTTP handler with CORS middleware applied.
func (r *Router) Handler() http.Handler {
	return corsMiddleware(r.mux)
}

// corsMiddleware applies CORS headers to all requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer creates a new HTTP server with the router configured.
func NewServer(port string, h *handlers.Handlers) *http.Server {
	router := NewRouter(h)
	return &http.Server{
		Addr:         ":" + port,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
