package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/berez23/io-functions/pkg/metrics"
)

// GetMetrics returns the last reported metrics of every known binary.
// Binaries that never reported are omitted from the response.
func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if h.metricsReader == nil {
		http.Error(w, "Metrics backend not configured", http.StatusServiceUnavailable)
		return
	}

	result := make(map[string]*metrics.ServiceMetrics)
	for _, name := range metrics.ServiceNames {
		m, err := h.metricsReader.GetServiceMetrics(r.Context(), name)
		if err != nil {
			continue
		}
		result[name] = m
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
