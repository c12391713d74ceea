package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/adapters/storage"
	"github.com/lcalzada-xor/dot11ingest/internal/config"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Addr:                 "127.0.0.1:0",
		DBDriver:             storage.DriverSQLite,
		DBDSN:                filepath.Join(t.TempDir(), "dot11.db"),
		Workers:              1,
		QueueSize:            4,
		RetentionInterval:    time.Hour,
		RetentionDefaultDays: 30,
	}
}

func TestNew_SeedsRetention(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app, err := New(ctx, cfg)
	require.NoError(t, err)
	defer storage.Close(app.DB)

	registry := storage.NewRegistry(app.DB)
	value, ok, err := registry.GetValue(ctx, domain.Dot11RetentionTimeDays)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "30", value)

	// An operator value is never overwritten
	require.NoError(t, registry.SetValue(ctx, domain.Dot11RetentionTimeDays, "7"))
	require.NoError(t, app.seedRegistry(ctx, registry))
	value, _, err = registry.GetValue(ctx, domain.Dot11RetentionTimeDays)
	require.NoError(t, err)
	assert.Equal(t, "7", value)
}

func TestNew_MissingBanditCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.BanditsFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "bandit catalog")
}

func TestApplication_ReportToAlert(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	defer storage.Close(app.DB)

	tap := storage.TapModel{UUID: uuid.New(), OrganizationID: uuid.New(), TenantID: uuid.New(), Name: "lobby"}
	require.NoError(t, app.DB.Create(&tap).Error)
	require.NoError(t, app.DB.Create(&storage.MonitoredNetworkModel{
		UUID:                   uuid.New(),
		OrganizationID:         tap.OrganizationID,
		TenantID:               tap.TenantID,
		SSID:                   "CorpNet",
		Enabled:                true,
		EnabledUnexpectedBSSID: true,
		BSSIDs:                 []storage.MonitoredBSSIDModel{{BSSID: "aa:bb:cc:dd:ee:ff"}},
	}).Error)

	report := domain.Report{
		BSSIDs: map[string]domain.BSSIDObservation{
			"11:22:33:44:55:66": {
				SignalStrength:     domain.SignalStrength{Average: -61, Min: -70, Max: -55},
				AdvertisedNetworks: map[string]domain.AdvertisedNetwork{"CorpNet": {}},
			},
		},
		Alerts: []domain.TapAlert{{
			Type:           domain.TapAlertPwnagotchiDetected,
			Attributes:     map[string]domain.AlertAttribute{"identity": domain.StringAttribute("pwn-01")},
			SignalStrength: -40,
		}},
	}

	// Twice, so that the repeated alerts are deduplicated
	for range 2 {
		require.NoError(t, app.Coordinator.HandleReport(ctx, tap.UUID, time.Now(), report))
	}

	var bssids, ssids int64
	require.NoError(t, app.DB.Model(&storage.BSSIDModel{}).Count(&bssids).Error)
	require.NoError(t, app.DB.Model(&storage.SSIDModel{}).Count(&ssids).Error)
	assert.Equal(t, int64(2), bssids)
	assert.Equal(t, int64(2), ssids)

	records, err := storage.NewAlertStore(app.DB).ListAlerts(ctx, tap.OrganizationID, tap.TenantID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byType := map[domain.DetectionType]domain.AlertRecord{}
	for _, r := range records {
		byType[r.Alert.DetectionType] = r
	}
	require.Contains(t, byType, domain.DetectionUnexpectedBSSID)
	require.Contains(t, byType, domain.DetectionBanditContact)
	assert.Equal(t, int64(2), byType[domain.DetectionUnexpectedBSSID].Occurrences)
	assert.Equal(t, int64(2), byType[domain.DetectionBanditContact].Occurrences)
	assert.Equal(t, "pwn-01", byType[domain.DetectionBanditContact].Alert.Attributes["identity"])
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
}
