package policy

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
)

// Loader builds per-report policy snapshots from the monitored network and
// custom bandit repositories.
type Loader struct {
	networks ports.MonitoredNetworkRepository
	bandits  ports.CustomBanditRepository
	builtIn  []domain.Bandit
}

// NewLoader creates a loader. builtIn is copied and prepended to the custom
// bandits of every snapshot.
func NewLoader(networks ports.MonitoredNetworkRepository, bandits ports.CustomBanditRepository, builtIn []domain.Bandit) *Loader {
	catalog := make([]domain.Bandit, len(builtIn))
	copy(catalog, builtIn)

	return &Loader{
		networks: networks,
		bandits:  bandits,
		builtIn:  catalog,
	}
}

// Load reads the enabled monitored networks and all bandits of a tenant.
func (l *Loader) Load(ctx context.Context, organizationID, tenantID uuid.UUID) (*domain.PolicySnapshot, error) {
	monitored, err := l.loadMonitoredSSIDs(ctx, organizationID, tenantID)
	if err != nil {
		return nil, err
	}

	bandits, err := l.loadBandits(ctx, organizationID, tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.PolicySnapshot{
		MonitoredSSIDs: monitored,
		Bandits:        bandits,
	}, nil
}

func (l *Loader) loadMonitoredSSIDs(ctx context.Context, organizationID, tenantID uuid.UUID) ([]domain.MonitoredSSID, error) {
	networks, err := l.networks.FindAllMonitoredSSIDs(ctx, organizationID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load monitored networks: %w", err)
	}

	var result []domain.MonitoredSSID
	for _, n := range networks {
		if !n.Enabled {
			continue
		}

		m, err := l.resolve(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to load monitored network %s: %w", n.UUID, err)
		}
		result = append(result, m)
	}
	return result, nil
}

func (l *Loader) resolve(ctx context.Context, n domain.MonitoredNetwork) (domain.MonitoredSSID, error) {
	records, err := l.networks.FindMonitoredBSSIDs(ctx, n.ID)
	if err != nil {
		return domain.MonitoredSSID{}, err
	}

	bssids := make(map[string]domain.MonitoredBSSID, len(records))
	for _, b := range records {
		fingerprints, err := l.networks.FindMonitoredFingerprints(ctx, b.ID)
		if err != nil {
			return domain.MonitoredSSID{}, err
		}
		bssids[b.BSSID] = domain.MonitoredBSSID{BSSID: b.BSSID, Fingerprints: fingerprints}
	}

	channels, err := l.networks.FindMonitoredChannels(ctx, n.ID)
	if err != nil {
		return domain.MonitoredSSID{}, err
	}

	suites, err := l.networks.FindMonitoredSecuritySuites(ctx, n.ID)
	if err != nil {
		return domain.MonitoredSSID{}, err
	}

	substrings, err := l.networks.FindRestrictedSSIDSubstrings(ctx, n.ID)
	if err != nil {
		return domain.MonitoredSSID{}, err
	}

	return domain.MonitoredSSID{
		ID:                   n.ID,
		UUID:                 n.UUID,
		SSID:                 n.SSID,
		BSSIDs:               bssids,
		Channels:             channels,
		SecuritySuites:       suites,
		RestrictedSubstrings: substrings,
		DetectionConfig:      n.Detection,
	}, nil
}

func (l *Loader) loadBandits(ctx context.Context, organizationID, tenantID uuid.UUID) ([]domain.Bandit, error) {
	custom, err := l.bandits.FindAllCustomBandits(ctx, organizationID, tenantID, math.MaxInt32, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom bandits: %w", err)
	}

	bandits := make([]domain.Bandit, 0, len(l.builtIn)+len(custom))
	bandits = append(bandits, l.builtIn...)
	for _, b := range custom {
		fingerprints, err := l.bandits.FindFingerprintsOfCustomBandit(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load fingerprints of bandit %s: %w", b.UUID, err)
		}

		bandits = append(bandits, domain.Bandit{
			ID:           b.UUID.String(),
			IsCustom:     true,
			Name:         b.Name,
			Description:  b.Description,
			Fingerprints: fingerprints,
		})
	}
	return bandits, nil
}

var _ ports.PolicyLoader = (*Loader)(nil)
