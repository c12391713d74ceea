package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// MonitoredNetworkRepository reads the monitored network policy of tenants.
type MonitoredNetworkRepository interface {
	FindAllMonitoredSSIDs(ctx context.Context, organizationID, tenantID uuid.UUID) ([]domain.MonitoredNetwork, error)
	FindMonitoredBSSIDs(ctx context.Context, monitoredNetworkID int64) ([]domain.MonitoredBSSIDRecord, error)
	FindMonitoredFingerprints(ctx context.Context, monitoredBSSIDID int64) ([]string, error)
	FindMonitoredChannels(ctx context.Context, monitoredNetworkID int64) ([]int64, error)
	FindMonitoredSecuritySuites(ctx context.Context, monitoredNetworkID int64) ([]string, error)
	FindRestrictedSSIDSubstrings(ctx context.Context, monitoredNetworkID int64) ([]domain.RestrictedSSIDSubstring, error)
}

// CustomBanditRepository reads tenant-defined bandits.
type CustomBanditRepository interface {
	FindAllCustomBandits(ctx context.Context, organizationID, tenantID uuid.UUID, limit, offset int) ([]domain.CustomBandit, error)
	FindFingerprintsOfCustomBandit(ctx context.Context, banditID int64) ([]string, error)
}

// PolicyLoader builds the policy snapshot evaluated against one report.
type PolicyLoader interface {
	Load(ctx context.Context, organizationID, tenantID uuid.UUID) (*domain.PolicySnapshot, error)
}
