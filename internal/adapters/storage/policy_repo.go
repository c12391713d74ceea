package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"gorm.io/gorm"
)

// PolicyRepository reads monitored networks and custom bandits. Both are
// managed through the policy administration service.
type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) FindAllMonitoredSSIDs(ctx context.Context, organizationID, tenantID uuid.UUID) ([]domain.MonitoredNetwork, error) {
	var models []MonitoredNetworkModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND tenant_id = ?", organizationID, tenantID).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: find monitored networks: %w", domain.ErrPersistence, err)
	}

	networks := make([]domain.MonitoredNetwork, len(models))
	for i, m := range models {
		networks[i] = toMonitoredNetwork(m)
	}
	return networks, nil
}

func (r *PolicyRepository) FindMonitoredBSSIDs(ctx context.Context, monitoredNetworkID int64) ([]domain.MonitoredBSSIDRecord, error) {
	var models []MonitoredBSSIDModel
	if err := r.db.WithContext(ctx).Where("monitored_network_id = ?", monitoredNetworkID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: find monitored BSSIDs: %w", domain.ErrPersistence, err)
	}

	records := make([]domain.MonitoredBSSIDRecord, len(models))
	for i, m := range models {
		records[i] = domain.MonitoredBSSIDRecord{ID: m.ID, BSSID: m.BSSID}
	}
	return records, nil
}

func (r *PolicyRepository) FindMonitoredFingerprints(ctx context.Context, monitoredBSSIDID int64) ([]string, error) {
	var fingerprints []string
	if err := r.db.WithContext(ctx).Model(&MonitoredFingerprintModel{}).
		Where("monitored_network_bssid_id = ?", monitoredBSSIDID).
		Order("id").
		Pluck("fingerprint", &fingerprints).Error; err != nil {
		return nil, fmt.Errorf("%w: find monitored fingerprints: %w", domain.ErrPersistence, err)
	}
	return fingerprints, nil
}

func (r *PolicyRepository) FindMonitoredChannels(ctx context.Context, monitoredNetworkID int64) ([]int64, error) {
	var channels []int64
	if err := r.db.WithContext(ctx).Model(&MonitoredChannelModel{}).
		Where("monitored_network_id = ?", monitoredNetworkID).
		Order("id").
		Pluck("frequency", &channels).Error; err != nil {
		return nil, fmt.Errorf("%w: find monitored channels: %w", domain.ErrPersistence, err)
	}
	return channels, nil
}

func (r *PolicyRepository) FindMonitoredSecuritySuites(ctx context.Context, monitoredNetworkID int64) ([]string, error) {
	var suites []string
	if err := r.db.WithContext(ctx).Model(&MonitoredSecuritySuiteModel{}).
		Where("monitored_network_id = ?", monitoredNetworkID).
		Order("id").
		Pluck("security_suite", &suites).Error; err != nil {
		return nil, fmt.Errorf("%w: find monitored security suites: %w", domain.ErrPersistence, err)
	}
	return suites, nil
}

func (r *PolicyRepository) FindRestrictedSSIDSubstrings(ctx context.Context, monitoredNetworkID int64) ([]domain.RestrictedSSIDSubstring, error) {
	var models []RestrictedSSIDSubstringModel
	if err := r.db.WithContext(ctx).Where("monitored_network_id = ?", monitoredNetworkID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: find restricted substrings: %w", domain.ErrPersistence, err)
	}

	substrings := make([]domain.RestrictedSSIDSubstring, len(models))
	for i, m := range models {
		substrings[i] = domain.RestrictedSSIDSubstring{Substring: m.Substring, MonitoredSSIDID: m.MonitoredNetworkID}
	}
	return substrings, nil
}

func (r *PolicyRepository) FindAllCustomBandits(ctx context.Context, organizationID, tenantID uuid.UUID, limit, offset int) ([]domain.CustomBandit, error) {
	var models []CustomBanditModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND tenant_id = ?", organizationID, tenantID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: find custom bandits: %w", domain.ErrPersistence, err)
	}

	bandits := make([]domain.CustomBandit, len(models))
	for i, m := range models {
		bandits[i] = toCustomBandit(m)
	}
	return bandits, nil
}

func (r *PolicyRepository) FindFingerprintsOfCustomBandit(ctx context.Context, banditID int64) ([]string, error) {
	var fingerprints []string
	if err := r.db.WithContext(ctx).Model(&CustomBanditFingerprintModel{}).
		Where("bandit_id = ?", banditID).
		Order("id").
		Pluck("fingerprint", &fingerprints).Error; err != nil {
		return nil, fmt.Errorf("%w: find bandit fingerprints: %w", domain.ErrPersistence, err)
	}
	return fingerprints, nil
}

// Ensure interface compliance
var (
	_ ports.MonitoredNetworkRepository = (*PolicyRepository)(nil)
	_ ports.CustomBanditRepository     = (*PolicyRepository)(nil)
)
