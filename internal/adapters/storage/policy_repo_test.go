package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tenantScope struct {
	org    uuid.UUID
	tenant uuid.UUID
}

func seedPolicy(t *testing.T, db *gorm.DB) tenantScope {
	t.Helper()
	tt := tenantScope{org: uuid.New(), tenant: uuid.New()}

	networks := []MonitoredNetworkModel{
		{
			UUID:                        uuid.New(),
			OrganizationID:              tt.org,
			TenantID:                    tt.tenant,
			SSID:                        "CorpNet",
			Enabled:                     true,
			EnabledUnexpectedBSSID:      true,
			EnabledSimilarLookingSSID:   true,
			SimilarLookingSSIDThreshold: 90,
			BSSIDs: []MonitoredBSSIDModel{
				{BSSID: "aa:bb:cc:dd:ee:ff", Fingerprints: []MonitoredFingerprintModel{{Fingerprint: "fp1"}, {Fingerprint: "fp2"}}},
			},
			Channels:   []MonitoredChannelModel{{Frequency: 2412}, {Frequency: 5180}},
			Suites:     []MonitoredSecuritySuiteModel{{SecuritySuite: "WPA2-PSK-CCMP"}},
			Substrings: []RestrictedSSIDSubstringModel{{UUID: uuid.New(), Substring: "corp"}},
		},
		{
			UUID:           uuid.New(),
			OrganizationID: tt.org,
			TenantID:       tt.tenant,
			SSID:           "Guest",
			Enabled:        false,
		},
		{
			UUID:           uuid.New(),
			OrganizationID: uuid.New(),
			TenantID:       uuid.New(),
			SSID:           "OtherTenant",
			Enabled:        true,
		},
	}
	require.NoError(t, db.Create(&networks).Error)

	bandits := []CustomBanditModel{
		{
			UUID:           uuid.New(),
			OrganizationID: tt.org,
			TenantID:       tt.tenant,
			Name:           "Evil AP",
			Description:    "custom",
			Fingerprints:   []CustomBanditFingerprintModel{{Fingerprint: "evil-fp"}},
		},
		{
			UUID:           uuid.New(),
			OrganizationID: uuid.New(),
			TenantID:       uuid.New(),
			Name:           "Elsewhere",
		},
	}
	require.NoError(t, db.Create(&bandits).Error)
	return tt
}

func TestPolicyRepository_MonitoredNetworks(t *testing.T) {
	db := setupInMemoryDB(t)
	repo := NewPolicyRepository(db)
	ctx := context.Background()
	tt := seedPolicy(t, db)

	networks, err := repo.FindAllMonitoredSSIDs(ctx, tt.org, tt.tenant)
	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, "CorpNet", networks[0].SSID)
	assert.True(t, networks[0].Enabled)
	assert.True(t, networks[0].Detection.EnabledUnexpectedBSSID)
	assert.False(t, networks[0].Detection.EnabledUnexpectedChannel)
	assert.Equal(t, 90.0, networks[0].Detection.SimilarLookingSSIDThreshold)
	assert.False(t, networks[1].Enabled)

	corp := networks[0].ID
	bssids, err := repo.FindMonitoredBSSIDs(ctx, corp)
	require.NoError(t, err)
	require.Len(t, bssids, 1)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", bssids[0].BSSID)

	fingerprints, err := repo.FindMonitoredFingerprints(ctx, bssids[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fp1", "fp2"}, fingerprints)

	channels, err := repo.FindMonitoredChannels(ctx, corp)
	require.NoError(t, err)
	assert.Equal(t, []int64{2412, 5180}, channels)

	suites, err := repo.FindMonitoredSecuritySuites(ctx, corp)
	require.NoError(t, err)
	assert.Equal(t, []string{"WPA2-PSK-CCMP"}, suites)

	substrings, err := repo.FindRestrictedSSIDSubstrings(ctx, corp)
	require.NoError(t, err)
	require.Len(t, substrings, 1)
	assert.Equal(t, "corp", substrings[0].Substring)
	assert.Equal(t, corp, substrings[0].MonitoredSSIDID)
}

func TestPolicyRepository_CustomBandits(t *testing.T) {
	db := setupInMemoryDB(t)
	repo := NewPolicyRepository(db)
	ctx := context.Background()
	tt := seedPolicy(t, db)

	bandits, err := repo.FindAllCustomBandits(ctx, tt.org, tt.tenant, 10, 0)
	require.NoError(t, err)
	require.Len(t, bandits, 1)
	assert.Equal(t, "Evil AP", bandits[0].Name)

	fingerprints, err := repo.FindFingerprintsOfCustomBandit(ctx, bandits[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"evil-fp"}, fingerprints)

	page, err := repo.FindAllCustomBandits(ctx, tt.org, tt.tenant, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPolicyRepository_LoaderSnapshot(t *testing.T) {
	db := setupInMemoryDB(t)
	repo := NewPolicyRepository(db)
	tt := seedPolicy(t, db)

	builtIn, err := policy.BuiltInBandits()
	require.NoError(t, err)

	snapshot, err := policy.NewLoader(repo, repo, builtIn).Load(context.Background(), tt.org, tt.tenant)
	require.NoError(t, err)

	require.Len(t, snapshot.MonitoredSSIDs, 1)
	corp := snapshot.MonitoredSSIDs[0]
	assert.Equal(t, "CorpNet", corp.SSID)
	assert.True(t, corp.BSSIDs["aa:bb:cc:dd:ee:ff"].HasFingerprint("fp2"))
	assert.True(t, corp.HasChannel(5180))
	assert.True(t, corp.HasSecuritySuite("WPA2-PSK-CCMP"))

	require.Len(t, snapshot.Bandits, len(builtIn)+1)
	custom := snapshot.Bandits[len(builtIn)]
	assert.True(t, custom.IsCustom)
	assert.Equal(t, "Evil AP", custom.Name)
	assert.Equal(t, []string{"evil-fp"}, custom.Fingerprints)
}
