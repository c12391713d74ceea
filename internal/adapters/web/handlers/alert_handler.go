package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
)

const (
	defaultAlertLimit = 100
	maxAlertLimit     = 1000
)

// AlertHandler lists raised alerts
type AlertHandler struct {
	Repository ports.AlertRepository
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(repository ports.AlertRepository) *AlertHandler {
	return &AlertHandler{
		Repository: repository,
	}
}

// HandleList returns the alerts of one tenant, most recently seen first
func (h *AlertHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	organizationID, err := uuid.Parse(query.Get("organization_id"))
	if err != nil {
		http.Error(w, "Invalid organization_id", http.StatusBadRequest)
		return
	}
	tenantID, err := uuid.Parse(query.Get("tenant_id"))
	if err != nil {
		http.Error(w, "Invalid tenant_id", http.StatusBadRequest)
		return
	}

	limit := defaultAlertLimit
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(limit, maxAlertLimit)
	}

	alerts, err := h.Repository.ListAlerts(r.Context(), organizationID, tenantID, limit)
	if err != nil {
		slog.Error("Failed to list alerts", "organization_id", organizationID, "tenant_id", tenantID, "error", err)
		http.Error(w, "Failed to fetch alerts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"alerts": alerts,
	})
}
