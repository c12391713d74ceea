// Package detection evaluates observations against the policy of a tenant.
// All functions are pure; the caller persists nothing here.
package detection

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// BanditContacts returns one finding per bandit identified by the fingerprint
// observed on the BSSID.
func BanditContacts(tapUUID uuid.UUID, bssid, fingerprint string, bandits []domain.Bandit) []Finding {
	var findings []Finding
	for _, b := range bandits {
		if !b.HasFingerprint(fingerprint) {
			continue
		}

		findings = append(findings, Finding{
			Type:    domain.DetectionBanditContact,
			Message: fmt.Sprintf("Bandit %q advertising BSSID %q detected in range.", b.Name, bssid),
			Attributes: map[string]string{
				"fingerprint":        fingerprint,
				"bssid":              bssid,
				"tap_uuid":           tapUUID.String(),
				"bandit_name":        b.Name,
				"bandit_description": b.Description,
				"bandit_is_custom":   strconv.FormatBool(b.IsCustom),
			},
			IdentityKeys: []string{"bssid", "fingerprint", "bandit_is_custom"},
		})
	}
	return findings
}

// Similarity is the Jaro-Winkler similarity of the lowercased strings,
// scaled to 0-100.
func Similarity(a, b string) float64 {
	return strutil.Similarity(strings.ToLower(a), strings.ToLower(b), metrics.NewJaroWinkler()) * 100
}

// SimilarSSIDs flags an SSID that looks like, but is not, a monitored SSID.
// A monitored network is never compared with an SSID of its own name.
func SimilarSSIDs(ssid string, snapshot *domain.PolicySnapshot) []Finding {
	var findings []Finding
	for _, m := range snapshot.MonitoredSSIDs {
		if m.SSID == ssid || !m.EnabledSimilarLookingSSID {
			continue
		}

		similarity := Similarity(m.SSID, ssid)
		if similarity <= m.SimilarLookingSSIDThreshold {
			continue
		}

		findings = append(findings, Finding{
			Type:                 domain.DetectionSimilarLookingSSID,
			MonitoredNetworkUUID: monitored(m),
			Message:              fmt.Sprintf("SSID %q looking similar to monitored network SSID %q", ssid, m.SSID),
			Attributes: map[string]string{
				"similar_ssid":         ssid,
				"similarity":           strconv.FormatFloat(similarity, 'f', -1, 64),
				"similarity_threshold": strconv.FormatFloat(m.SimilarLookingSSIDThreshold, 'f', -1, 64),
			},
			IdentityKeys: []string{"similar_ssid"},
		})
	}
	return findings
}

// RestrictedSubstrings flags an SSID containing a substring restricted by a
// monitored network, ignoring case.
func RestrictedSubstrings(ssid string, snapshot *domain.PolicySnapshot) []Finding {
	lower := strings.ToLower(ssid)

	var findings []Finding
	for _, m := range snapshot.MonitoredSSIDs {
		if m.SSID == ssid || !m.EnabledSSIDSubstring {
			continue
		}

		for _, r := range m.RestrictedSubstrings {
			if !strings.Contains(lower, strings.ToLower(r.Substring)) {
				continue
			}

			findings = append(findings, Finding{
				Type:                 domain.DetectionSSIDSubstring,
				MonitoredNetworkUUID: monitored(m),
				Message:              fmt.Sprintf("SSID %q contains restricted substring %q", ssid, r.Substring),
				Attributes: map[string]string{
					"ssid":                 ssid,
					"restricted_substring": r.Substring,
				},
				IdentityKeys: []string{"ssid", "restricted_substring"},
			})
		}
	}
	return findings
}

// MonitoredNetworkDeviations compares a network advertised under a monitored
// SSID with what the monitored network expects. Fingerprints are only
// compared for known BSSIDs.
func MonitoredNetworkDeviations(bssid string, network domain.AdvertisedNetwork, m domain.MonitoredSSID) []Finding {
	var findings []Finding

	known, ok := m.BSSIDs[bssid]
	switch {
	case !ok && m.EnabledUnexpectedBSSID:
		findings = append(findings, Finding{
			Type:                 domain.DetectionUnexpectedBSSID,
			MonitoredNetworkUUID: monitored(m),
			Message:              fmt.Sprintf("Monitored network %q advertised with unexpected BSSID %q", m.SSID, bssid),
			Attributes:           map[string]string{"bssid": bssid},
			IdentityKeys:         []string{"bssid"},
		})
	case ok && m.EnabledUnexpectedFingerprint:
		for _, fp := range network.Fingerprints {
			if known.HasFingerprint(fp) {
				continue
			}
			findings = append(findings, Finding{
				Type:                 domain.DetectionUnexpectedFingerprint,
				MonitoredNetworkUUID: monitored(m),
				Message:              fmt.Sprintf("Monitored network %q advertised with unexpected fingerprint %q.", m.SSID, fp),
				Attributes: map[string]string{
					"bssid":       bssid,
					"fingerprint": fp,
				},
				IdentityKeys: []string{"bssid", "fingerprint"},
			})
		}
	}

	if m.EnabledUnexpectedChannel {
		for _, frequency := range slices.Sorted(maps.Keys(network.ChannelStatistics)) {
			if m.HasChannel(frequency) {
				continue
			}
			findings = append(findings, Finding{
				Type:                 domain.DetectionUnexpectedChannel,
				MonitoredNetworkUUID: monitored(m),
				Message:              fmt.Sprintf("Monitored network %q advertised on unexpected frequency %dMHz", m.SSID, frequency),
				Attributes:           map[string]string{"frequency": strconv.FormatInt(frequency, 10)},
				IdentityKeys:         []string{"frequency"},
			})
		}
	}

	if m.EnabledUnexpectedSecuritySuites {
		for _, security := range network.Security {
			suite := domain.SecuritySuitesToIdentifier(security)
			if m.HasSecuritySuite(suite) {
				continue
			}
			findings = append(findings, Finding{
				Type:                 domain.DetectionUnexpectedSecuritySuite,
				MonitoredNetworkUUID: monitored(m),
				Message:              fmt.Sprintf("Monitored network %q advertised with unexpected security suites %q", m.SSID, suite),
				Attributes:           map[string]string{"suite": suite},
				IdentityKeys:         []string{"suite"},
			})
		}
	}

	return findings
}

// TapAlert translates an alert detected by the tap itself. ok is false for
// alert types this engine does not know.
func TapAlert(alert domain.TapAlert) (f Finding, ok bool) {
	switch alert.Type {
	case domain.TapAlertPwnagotchiDetected:
		attributes := make(map[string]string, len(alert.Attributes)+2)
		for k, v := range alert.Attributes {
			attributes[k] = v.String()
		}
		attributes["bandit_name"] = domain.PwnagotchiBanditName
		attributes["bandit_description"] = domain.PwnagotchiBanditDescription

		return Finding{
			Type:         domain.DetectionBanditContact,
			Message:      fmt.Sprintf("Bandit %q with name %q detected in range.", domain.PwnagotchiBanditName, attributes["name"]),
			Attributes:   attributes,
			IdentityKeys: []string{"identity"},
		}, true
	}
	return Finding{}, false
}
