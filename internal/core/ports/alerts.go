package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// AlertService receives raised alerts. Implementations must be safe for
// concurrent use; suppression of repeated alerts is their concern.
type AlertService interface {
	RaiseAlert(ctx context.Context, alert domain.Alert) error
}

// AlertRepository reads persisted alerts, most recently seen first.
type AlertRepository interface {
	ListAlerts(ctx context.Context, organizationID, tenantID uuid.UUID, limit int) ([]domain.AlertRecord, error)
}
