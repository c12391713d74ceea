package domain

import "github.com/google/uuid"

// Tap is a remote sensing probe. Its lifecycle is managed elsewhere.
type Tap struct {
	UUID           uuid.UUID
	OrganizationID uuid.UUID
	TenantID       uuid.UUID
}

// MonitoredBSSID is a trusted base station of a monitored network.
type MonitoredBSSID struct {
	BSSID        string
	Fingerprints []string
}

// HasFingerprint reports whether the fingerprint is expected for this BSSID.
func (b MonitoredBSSID) HasFingerprint(fingerprint string) bool {
	for _, f := range b.Fingerprints {
		if f == fingerprint {
			return true
		}
	}
	return false
}

// RestrictedSSIDSubstring must not appear in any SSID near a monitored network.
type RestrictedSSIDSubstring struct {
	Substring       string
	MonitoredSSIDID int64
}

// DetectionConfig toggles the detections of one monitored network.
type DetectionConfig struct {
	EnabledUnexpectedBSSID          bool
	EnabledUnexpectedChannel        bool
	EnabledUnexpectedSecuritySuites bool
	EnabledUnexpectedFingerprint    bool
	EnabledUnexpectedSignalTracks   bool // reserved, not evaluated
	EnabledSimilarLookingSSID       bool
	EnabledSSIDSubstring            bool

	// SimilarLookingSSIDThreshold is a similarity between 0 and 100.
	SimilarLookingSSIDThreshold float64
}

// MonitoredNetwork is a monitored network as stored, without its children.
type MonitoredNetwork struct {
	ID        int64
	UUID      uuid.UUID
	SSID      string
	Enabled   bool
	Detection DetectionConfig
}

// MonitoredBSSIDRecord is a stored monitored BSSID; its fingerprints are
// looked up by ID.
type MonitoredBSSIDRecord struct {
	ID    int64
	BSSID string
}

// MonitoredSSID is an enabled monitored network with all of its children
// resolved, as loaded for one report. SecuritySuites holds identifiers as
// built by SecuritySuitesToIdentifier.
type MonitoredSSID struct {
	ID                   int64
	UUID                 uuid.UUID
	SSID                 string
	BSSIDs               map[string]MonitoredBSSID
	Channels             []int64
	SecuritySuites       []string
	RestrictedSubstrings []RestrictedSSIDSubstring

	DetectionConfig
}

// HasChannel reports whether the frequency (MHz) is expected.
func (m MonitoredSSID) HasChannel(frequency int64) bool {
	for _, c := range m.Channels {
		if c == frequency {
			return true
		}
	}
	return false
}

// HasSecuritySuite reports whether the suite identifier is expected.
func (m MonitoredSSID) HasSecuritySuite(identifier string) bool {
	for _, s := range m.SecuritySuites {
		if s == identifier {
			return true
		}
	}
	return false
}

// PolicySnapshot is the read-only policy of one tenant, built per report.
type PolicySnapshot struct {
	MonitoredSSIDs []MonitoredSSID
	Bandits        []Bandit
}

// MonitoredSSID returns the monitored network with exactly this SSID.
func (p *PolicySnapshot) MonitoredSSID(ssid string) (MonitoredSSID, bool) {
	for _, m := range p.MonitoredSSIDs {
		if m.SSID == ssid {
			return m, true
		}
	}
	return MonitoredSSID{}, false
}
