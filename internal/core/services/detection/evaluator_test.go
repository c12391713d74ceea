package detection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpNet() domain.MonitoredSSID {
	return domain.MonitoredSSID{
		ID:   1,
		UUID: uuid.MustParse("7d3c6c0e-6a3f-4c1e-9d43-3a3b7f9f0d11"),
		SSID: "CorpNet",
		BSSIDs: map[string]domain.MonitoredBSSID{
			"11:11:11:11:11:11": {BSSID: "11:11:11:11:11:11", Fingerprints: []string{"good"}},
		},
		Channels:       []int64{2412},
		SecuritySuites: []string{"WPA2-CCMP-CCMP-PSK-Optional"},
		RestrictedSubstrings: []domain.RestrictedSSIDSubstring{
			{Substring: "Corp", MonitoredSSIDID: 1},
		},
		DetectionConfig: domain.DetectionConfig{
			EnabledUnexpectedBSSID:          true,
			EnabledUnexpectedChannel:        true,
			EnabledUnexpectedSecuritySuites: true,
			EnabledUnexpectedFingerprint:    true,
			EnabledSimilarLookingSSID:       true,
			EnabledSSIDSubstring:            true,
			SimilarLookingSSIDThreshold:     90,
		},
	}
}

func TestBanditContacts(t *testing.T) {
	tapUUID := uuid.New()
	bandits := []domain.Bandit{
		{ID: "rogue", Name: "Rogue", Description: "Rogue AP", Fingerprints: []string{"abc123"}},
		{ID: "other", Name: "Other", Fingerprints: []string{"def456"}},
	}

	findings := BanditContacts(tapUUID, "aa:bb:cc:dd:ee:ff", "abc123", bandits)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, domain.DetectionBanditContact, f.Type)
	assert.Nil(t, f.MonitoredNetworkUUID)
	assert.Equal(t, "Rogue", f.Attributes["bandit_name"])
	assert.Equal(t, "Rogue AP", f.Attributes["bandit_description"])
	assert.Equal(t, "false", f.Attributes["bandit_is_custom"])
	assert.Equal(t, tapUUID.String(), f.Attributes["tap_uuid"])
	assert.Equal(t, []string{"bssid", "fingerprint", "bandit_is_custom"}, f.IdentityKeys)
	assert.Equal(t, `Bandit "Rogue" advertising BSSID "aa:bb:cc:dd:ee:ff" detected in range.`, f.Message)

	assert.Empty(t, BanditContacts(tapUUID, "aa:bb:cc:dd:ee:ff", "nope", bandits))
}

func TestBanditContacts_EveryMatchingBandit(t *testing.T) {
	bandits := []domain.Bandit{
		{Name: "A", Fingerprints: []string{"shared"}},
		{Name: "B", IsCustom: true, Fingerprints: []string{"x", "shared"}},
	}

	findings := BanditContacts(uuid.New(), "aa:bb:cc:dd:ee:ff", "shared", bandits)
	require.Len(t, findings, 2)
	assert.Equal(t, "true", findings[1].Attributes["bandit_is_custom"])
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 100.0, Similarity("CorpNet", "corpnet"), 0.0001)
	assert.Greater(t, Similarity("CorpNet", "CorpN3t"), 90.0)
	assert.Less(t, Similarity("CorpNet", "GuestWiFi"), 60.0)
}

func TestSimilarSSIDs(t *testing.T) {
	snapshot := &domain.PolicySnapshot{MonitoredSSIDs: []domain.MonitoredSSID{corpNet()}}

	findings := SimilarSSIDs("CorpN3t", snapshot)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, domain.DetectionSimilarLookingSSID, f.Type)
	assert.Equal(t, "CorpN3t", f.Attributes["similar_ssid"])
	assert.Equal(t, "90", f.Attributes["similarity_threshold"])
	assert.NotEmpty(t, f.Attributes["similarity"])
	assert.Equal(t, []string{"similar_ssid"}, f.IdentityKeys)
	require.NotNil(t, f.MonitoredNetworkUUID)
	assert.Equal(t, corpNet().UUID, *f.MonitoredNetworkUUID)

	assert.Empty(t, SimilarSSIDs("Totally Different", snapshot))
}

func TestSimilarSSIDs_ThresholdIsExclusive(t *testing.T) {
	m := corpNet()
	m.SimilarLookingSSIDThreshold = Similarity("CorpNet", "CorpN3t")
	snapshot := &domain.PolicySnapshot{MonitoredSSIDs: []domain.MonitoredSSID{m}}

	assert.Empty(t, SimilarSSIDs("CorpN3t", snapshot))
}

func TestSimilarSSIDs_Disabled(t *testing.T) {
	m := corpNet()
	m.EnabledSimilarLookingSSID = false
	snapshot := &domain.PolicySnapshot{MonitoredSSIDs: []domain.MonitoredSSID{m}}

	assert.Empty(t, SimilarSSIDs("CorpN3t", snapshot))
}

func TestSimilarAndSubstring_SkipOnlySameName(t *testing.T) {
	corp := corpNet()
	corp2 := corpNet()
	corp2.UUID = uuid.New()
	corp2.SSID = "CorpNet2"
	snapshot := &domain.PolicySnapshot{MonitoredSSIDs: []domain.MonitoredSSID{corp, corp2}}

	similar := SimilarSSIDs("CorpNet", snapshot)
	require.Len(t, similar, 1)
	assert.Equal(t, corp2.UUID, *similar[0].MonitoredNetworkUUID)

	substrings := RestrictedSubstrings("CorpNet", snapshot)
	require.Len(t, substrings, 1)
	assert.Equal(t, corp2.UUID, *substrings[0].MonitoredNetworkUUID)
}

func TestRestrictedSubstrings(t *testing.T) {
	snapshot := &domain.PolicySnapshot{MonitoredSSIDs: []domain.MonitoredSSID{corpNet()}}

	findings := RestrictedSubstrings("Free CORP WiFi", snapshot)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.DetectionSSIDSubstring, findings[0].Type)
	assert.Equal(t, "Free CORP WiFi", findings[0].Attributes["ssid"])
	assert.Equal(t, "Corp", findings[0].Attributes["restricted_substring"])
	assert.Equal(t, []string{"ssid", "restricted_substring"}, findings[0].IdentityKeys)

	assert.Empty(t, RestrictedSubstrings("Guest", snapshot))
}

func TestMonitoredNetworkDeviations_UnexpectedBSSID(t *testing.T) {
	network := domain.AdvertisedNetwork{
		Fingerprints:      []string{"xyz"},
		ChannelStatistics: map[int64]map[string]domain.ChannelStatistics{2412: {"beacon": {Bytes: 10, Frames: 1}}},
	}

	findings := MonitoredNetworkDeviations("22:22:22:22:22:22", network, corpNet())
	require.Len(t, findings, 1)
	assert.Equal(t, domain.DetectionUnexpectedBSSID, findings[0].Type)
	assert.Equal(t, "22:22:22:22:22:22", findings[0].Attributes["bssid"])
	assert.Equal(t, `Monitored network "CorpNet" advertised with unexpected BSSID "22:22:22:22:22:22"`, findings[0].Message)
}

func TestMonitoredNetworkDeviations_UnexpectedFingerprint(t *testing.T) {
	network := domain.AdvertisedNetwork{
		Fingerprints:      []string{"good", "xyz"},
		ChannelStatistics: map[int64]map[string]domain.ChannelStatistics{2412: {"beacon": {}}},
	}

	findings := MonitoredNetworkDeviations("11:11:11:11:11:11", network, corpNet())
	require.Len(t, findings, 1)
	assert.Equal(t, domain.DetectionUnexpectedFingerprint, findings[0].Type)
	assert.Equal(t, "xyz", findings[0].Attributes["fingerprint"])
	assert.Equal(t, []string{"bssid", "fingerprint"}, findings[0].IdentityKeys)
}

func TestMonitoredNetworkDeviations_UnexpectedBSSIDDisabled(t *testing.T) {
	m := corpNet()
	m.EnabledUnexpectedBSSID = false
	network := domain.AdvertisedNetwork{Fingerprints: []string{"xyz"}}

	assert.Empty(t, MonitoredNetworkDeviations("22:22:22:22:22:22", network, m))
}

func TestMonitoredNetworkDeviations_ChannelAndSuite(t *testing.T) {
	network := domain.AdvertisedNetwork{
		ChannelStatistics: map[int64]map[string]domain.ChannelStatistics{
			2412: {"beacon": {}},
			5180: {"beacon": {}},
			2437: {"data": {}},
		},
		Security: []domain.SecurityInformation{
			{Protocols: []string{"WPA2"}, Suites: domain.CipherSuites{GroupCipher: "CCMP", PairwiseCiphers: []string{"CCMP"}, KeyManagementModes: []string{"PSK"}}, PMF: "Optional"},
			{Protocols: nil, Suites: domain.CipherSuites{GroupCipher: "None"}, PMF: "Disabled"},
		},
	}

	findings := MonitoredNetworkDeviations("11:11:11:11:11:11", network, corpNet())
	require.Len(t, findings, 3)

	assert.Equal(t, domain.DetectionUnexpectedChannel, findings[0].Type)
	assert.Equal(t, "2437", findings[0].Attributes["frequency"])
	assert.Equal(t, domain.DetectionUnexpectedChannel, findings[1].Type)
	assert.Equal(t, "5180", findings[1].Attributes["frequency"])
	assert.Equal(t, `Monitored network "CorpNet" advertised on unexpected frequency 5180MHz`, findings[1].Message)

	assert.Equal(t, domain.DetectionUnexpectedSecuritySuite, findings[2].Type)
	assert.Equal(t, "NONE-None---Disabled", findings[2].Attributes["suite"])
}

func TestTapAlert_Pwnagotchi(t *testing.T) {
	alert := domain.TapAlert{
		Type: domain.TapAlertPwnagotchiDetected,
		Attributes: map[string]domain.AlertAttribute{
			"name":     domain.StringAttribute("pwny"),
			"identity": domain.StringAttribute("abcdef"),
			"uptime":   domain.NumberAttribute(3600),
		},
		SignalStrength: -61,
	}

	f, ok := TapAlert(alert)
	require.True(t, ok)
	assert.Equal(t, domain.DetectionBanditContact, f.Type)
	assert.Equal(t, `Bandit "Pwnagotchi" with name "pwny" detected in range.`, f.Message)
	assert.Equal(t, domain.PwnagotchiBanditName, f.Attributes["bandit_name"])
	assert.Equal(t, domain.PwnagotchiBanditDescription, f.Attributes["bandit_description"])
	assert.Equal(t, "3600", f.Attributes["uptime"])
	assert.Equal(t, []string{"identity"}, f.IdentityKeys)
}

func TestTapAlert_Unknown(t *testing.T) {
	_, ok := TapAlert(domain.TapAlert{Type: "SomethingElse"})
	assert.False(t, ok)
}

func TestFinding_Alert(t *testing.T) {
	tap := domain.Tap{UUID: uuid.New(), OrganizationID: uuid.New(), TenantID: uuid.New()}
	f := Finding{Type: domain.DetectionUnexpectedBSSID, Message: "m", Attributes: map[string]string{"bssid": "x"}, IdentityKeys: []string{"bssid"}}

	alert := f.Alert(tap, -50)
	assert.Equal(t, tap.UUID, alert.TapUUID)
	assert.Equal(t, tap.OrganizationID, alert.OrganizationID)
	assert.Equal(t, tap.TenantID, alert.TenantID)
	assert.Equal(t, domain.SubsystemDot11, alert.Subsystem)
	assert.Equal(t, float32(-50), alert.SignalStrength)
}
