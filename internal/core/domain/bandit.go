package domain

import "github.com/google/uuid"

// Pwnagotchi is reported by taps through a dedicated alert instead of a
// fingerprint match.
const (
	PwnagotchiBanditName        = "Pwnagotchi"
	PwnagotchiBanditDescription = "A Pwnagotchi is a small, AI-driven device that passively and actively " +
		"collects WPA key material from nearby networks."
)

// Bandit describes a known-malicious station identified by its fingerprints.
type Bandit struct {
	ID           string   `json:"id"`
	IsCustom     bool     `json:"is_custom"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Fingerprints []string `json:"fingerprints"`
}

// HasFingerprint reports whether the bandit is identified by the fingerprint.
func (b Bandit) HasFingerprint(fingerprint string) bool {
	for _, f := range b.Fingerprints {
		if f == fingerprint {
			return true
		}
	}
	return false
}

// CustomBandit is a tenant-defined bandit as stored; its fingerprints are
// looked up by ID.
type CustomBandit struct {
	ID          int64
	UUID        uuid.UUID
	Name        string
	Description string
}
