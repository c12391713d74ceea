package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlertStore persists detection alerts. An alert matching an existing one
// by identity only refreshes the stored row.
type AlertStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAlertStore(db *gorm.DB) *AlertStore {
	return &AlertStore{db: db, now: time.Now}
}

// RaiseAlert inserts the alert or bumps the row with the same identity.
func (s *AlertStore) RaiseAlert(ctx context.Context, alert domain.Alert) error {
	attributes, err := json.Marshal(alert.Attributes)
	if err != nil {
		return fmt.Errorf("%w: alert attributes: %w", domain.ErrSerialization, err)
	}

	now := s.now().UTC()
	m := AlertModel{
		UUID:                 uuid.New(),
		IdentityHash:         IdentityHash(alert),
		OrganizationID:       alert.OrganizationID,
		TenantID:             alert.TenantID,
		MonitoredNetworkUUID: alert.MonitoredNetworkUUID,
		TapUUID:              alert.TapUUID,
		DetectionType:        string(alert.DetectionType),
		Subsystem:            string(alert.Subsystem),
		Details:              alert.Message,
		Attributes:           string(attributes),
		SignalStrength:       alert.SignalStrength,
		Occurrences:          1,
		CreatedAt:            now,
		LastSeen:             now,
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "identity_hash"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_seen":       now,
			"signal_strength": alert.SignalStrength,
			"occurrences":     gorm.Expr("occurrences + 1"),
		}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("%w: raise alert: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListAlerts returns the alerts of a tenant, most recently seen first.
func (s *AlertStore) ListAlerts(ctx context.Context, organizationID, tenantID uuid.UUID, limit int) ([]domain.AlertRecord, error) {
	var models []AlertModel
	if err := s.db.WithContext(ctx).
		Where("organization_id = ? AND tenant_id = ?", organizationID, tenantID).
		Order("last_seen desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list alerts: %w", domain.ErrPersistence, err)
	}

	records := make([]domain.AlertRecord, 0, len(models))
	for _, m := range models {
		var attributes map[string]string
		if err := json.Unmarshal([]byte(m.Attributes), &attributes); err != nil {
			return nil, fmt.Errorf("%w: alert %s attributes: %w", domain.ErrSerialization, m.UUID, err)
		}

		records = append(records, domain.AlertRecord{
			UUID: m.UUID,
			Alert: domain.Alert{
				OrganizationID:       m.OrganizationID,
				TenantID:             m.TenantID,
				MonitoredNetworkUUID: m.MonitoredNetworkUUID,
				TapUUID:              m.TapUUID,
				DetectionType:        domain.DetectionType(m.DetectionType),
				Subsystem:            domain.Subsystem(m.Subsystem),
				Message:              m.Details,
				Attributes:           attributes,
				SignalStrength:       m.SignalStrength,
			},
			Occurrences: m.Occurrences,
			CreatedAt:   m.CreatedAt,
			LastSeen:    m.LastSeen,
		})
	}
	return records, nil
}

// IdentityHash identifies an alert by its origin, its type and the values of
// its identity attributes.
func IdentityHash(alert domain.Alert) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|", alert.OrganizationID, alert.TenantID, alert.TapUUID)
	if alert.MonitoredNetworkUUID != nil {
		fmt.Fprintf(h, "%s", *alert.MonitoredNetworkUUID)
	}
	fmt.Fprintf(h, "|%s|%s", alert.Subsystem, alert.DetectionType)

	keys := slices.Clone(alert.IdentityKeys)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "|%s=%s", k, alert.Attributes[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Ensure interface compliance
var (
	_ ports.AlertService    = (*AlertStore)(nil)
	_ ports.AlertRepository = (*AlertStore)(nil)
)
