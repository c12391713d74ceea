package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func banditAlert(org, tenant uuid.UUID, bssid string) domain.Alert {
	return domain.Alert{
		OrganizationID: org,
		TenantID:       tenant,
		TapUUID:        uuid.MustParse("6f1c2b8e-8f6e-4c57-9a43-0f6f1d2e3a4b"),
		DetectionType:  domain.DetectionBanditContact,
		Subsystem:      domain.SubsystemDot11,
		Message:        "Bandit detected",
		Attributes: map[string]string{
			"bssid":            bssid,
			"fingerprint":      "fp",
			"bandit_is_custom": "false",
		},
		IdentityKeys:   []string{"bssid", "fingerprint", "bandit_is_custom"},
		SignalStrength: -50,
	}
}

func TestIdentityHash(t *testing.T) {
	org, tenant := uuid.New(), uuid.New()
	a := banditAlert(org, tenant, "aa:bb:cc:dd:ee:ff")

	reordered := a
	reordered.IdentityKeys = []string{"bandit_is_custom", "fingerprint", "bssid"}
	assert.Equal(t, IdentityHash(a), IdentityHash(reordered))

	// Non-identity attributes and the message do not matter
	noisy := banditAlert(org, tenant, "aa:bb:cc:dd:ee:ff")
	noisy.Message = "different"
	noisy.Attributes["tap_uuid"] = "x"
	noisy.SignalStrength = -80
	assert.Equal(t, IdentityHash(a), IdentityHash(noisy))

	assert.NotEqual(t, IdentityHash(a), IdentityHash(banditAlert(org, tenant, "11:22:33:44:55:66")))
	assert.NotEqual(t, IdentityHash(a), IdentityHash(banditAlert(uuid.New(), tenant, "aa:bb:cc:dd:ee:ff")))

	monitored := a
	id := uuid.New()
	monitored.MonitoredNetworkUUID = &id
	assert.NotEqual(t, IdentityHash(a), IdentityHash(monitored))
}

func TestAlertStore_RaiseDeduplicates(t *testing.T) {
	db := setupInMemoryDB(t)
	store := NewAlertStore(db)
	ctx := context.Background()
	org, tenant := uuid.New(), uuid.New()

	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }
	require.NoError(t, store.RaiseAlert(ctx, banditAlert(org, tenant, "aa:bb:cc:dd:ee:ff")))

	later := first.Add(time.Hour)
	store.now = func() time.Time { return later }
	again := banditAlert(org, tenant, "aa:bb:cc:dd:ee:ff")
	again.SignalStrength = -42
	require.NoError(t, store.RaiseAlert(ctx, again))

	require.NoError(t, store.RaiseAlert(ctx, banditAlert(org, tenant, "11:22:33:44:55:66")))

	assert.Equal(t, int64(2), count(t, db, &AlertModel{}))

	records, err := store.ListAlerts(ctx, org, tenant, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var deduped domain.AlertRecord
	for _, r := range records {
		if r.Alert.Attributes["bssid"] == "aa:bb:cc:dd:ee:ff" {
			deduped = r
		}
	}
	assert.Equal(t, int64(2), deduped.Occurrences)
	assert.True(t, deduped.CreatedAt.Equal(first))
	assert.True(t, deduped.LastSeen.Equal(later))
	assert.Equal(t, float32(-42), deduped.Alert.SignalStrength)
	assert.Equal(t, domain.DetectionBanditContact, deduped.Alert.DetectionType)
	assert.Nil(t, deduped.Alert.MonitoredNetworkUUID)
}

func TestAlertStore_ListAlertsScopedAndLimited(t *testing.T) {
	db := setupInMemoryDB(t)
	store := NewAlertStore(db)
	ctx := context.Background()
	org, tenant := uuid.New(), uuid.New()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, bssid := range []string{"00:00:00:00:00:01", "00:00:00:00:00:02", "00:00:00:00:00:03"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return ts }
		require.NoError(t, store.RaiseAlert(ctx, banditAlert(org, tenant, bssid)))
	}
	require.NoError(t, store.RaiseAlert(ctx, banditAlert(uuid.New(), uuid.New(), "00:00:00:00:00:09")))

	records, err := store.ListAlerts(ctx, org, tenant, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "00:00:00:00:00:03", records[0].Alert.Attributes["bssid"])
	assert.Equal(t, "00:00:00:00:00:02", records[1].Alert.Attributes["bssid"])

	none, err := store.ListAlerts(ctx, uuid.New(), tenant, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
