package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"gorm.io/gorm"
)

// Dot11Store writes 802.11 observations and removes them once they expire.
type Dot11Store struct {
	db *gorm.DB
}

// NewDot11Store creates a store on a migrated database.
func NewDot11Store(db *gorm.DB) *Dot11Store {
	return &Dot11Store{db: db}
}

func (s *Dot11Store) create(ctx context.Context, table string, value any) error {
	if err := s.db.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("%w: insert into %s: %w", domain.ErrPersistence, table, err)
	}
	return nil
}

// InsertBSSID writes a BSSID row. The OUI is resolved elsewhere and left NULL.
func (s *Dot11Store) InsertBSSID(ctx context.Context, row domain.BSSIDRow) (int64, error) {
	m := toBSSIDModel(row)
	if err := s.create(ctx, m.TableName(), &m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (s *Dot11Store) InsertBSSIDFingerprint(ctx context.Context, bssidID int64, fingerprint string) error {
	return s.create(ctx, "dot11_fingerprints", &FingerprintModel{Fingerprint: fingerprint, BSSIDID: &bssidID})
}

func (s *Dot11Store) InsertBSSIDClient(ctx context.Context, row domain.BSSIDClientRow) error {
	m := toBSSIDClientModel(row)
	return s.create(ctx, m.TableName(), &m)
}

func (s *Dot11Store) InsertSSID(ctx context.Context, row domain.SSIDRow) (int64, error) {
	m := toSSIDModel(row)
	if err := s.create(ctx, m.TableName(), &m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (s *Dot11Store) InsertSSIDSetting(ctx context.Context, ssidID int64, setting domain.SSIDSetting) error {
	return s.create(ctx, "dot11_ssid_settings", &SSIDSettingModel{
		SSIDID:    ssidID,
		Attribute: string(setting.Attribute),
		Value:     setting.Value,
	})
}

func (s *Dot11Store) InsertSSIDFingerprint(ctx context.Context, ssidID int64, fingerprint string) error {
	return s.create(ctx, "dot11_fingerprints", &FingerprintModel{Fingerprint: fingerprint, SSIDID: &ssidID})
}

func (s *Dot11Store) InsertRate(ctx context.Context, ssidID int64, rate float32) error {
	return s.create(ctx, "dot11_rates", &RateModel{SSIDID: ssidID, Rate: rate})
}

func (s *Dot11Store) InsertChannelStatistic(ctx context.Context, row domain.ChannelStatisticRow) error {
	return s.create(ctx, "dot11_channels", &ChannelModel{
		SSIDID:    row.SSIDID,
		Frequency: row.Frequency,
		FrameType: row.FrameType,
		Bytes:     row.Bytes,
		Frames:    row.Frames,
	})
}

func (s *Dot11Store) InsertChannelHistogramBucket(ctx context.Context, row domain.ChannelHistogramRow) error {
	return s.create(ctx, "dot11_channel_histograms", &ChannelHistogramModel{
		SSIDID:         row.SSIDID,
		Frequency:      row.Frequency,
		SignalStrength: row.SignalStrength,
		FrameCount:     row.FrameCount,
	})
}

func (s *Dot11Store) InsertInfrastructureType(ctx context.Context, ssidID int64, infrastructureType string) error {
	return s.create(ctx, "dot11_infrastructure_types", &InfrastructureTypeModel{
		SSIDID:             ssidID,
		InfrastructureType: infrastructureType,
	})
}

func (s *Dot11Store) InsertClient(ctx context.Context, row domain.ClientRow) (int64, error) {
	m := toClientModel(row)
	if err := s.create(ctx, m.TableName(), &m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (s *Dot11Store) InsertClientProbeRequest(ctx context.Context, row domain.ClientProbeRequestRow) error {
	return s.create(ctx, "dot11_client_probereq_ssids", &ClientProbeRequestModel{
		ClientID:   row.ClientID,
		TapUUID:    row.TapUUID,
		SSID:       row.SSID,
		FrameCount: row.FrameCount,
	})
}

func (s *Dot11Store) InsertDiscoActivity(ctx context.Context, row domain.DiscoActivityRow) (int64, error) {
	m := toDiscoActivityModel(row)
	if err := s.create(ctx, m.TableName(), &m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (s *Dot11Store) InsertDiscoReceiver(ctx context.Context, row domain.DiscoReceiverRow) error {
	return s.create(ctx, "dot11_disco_activity_receivers", &DiscoReceiverModel{
		DiscoActivityID: row.DiscoActivityID,
		BSSID:           row.BSSID,
		ReceivedFrames:  row.ReceivedFrames,
	})
}

func (s *Dot11Store) deleteBefore(ctx context.Context, model any, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(model)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrPersistence, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteBSSIDsBefore removes BSSIDs and, by cascade, their SSIDs, clients
// and fingerprints.
func (s *Dot11Store) DeleteBSSIDsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, &BSSIDModel{}, cutoff)
}

func (s *Dot11Store) DeleteClientsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, &ClientModel{}, cutoff)
}

func (s *Dot11Store) DeleteDiscoActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, &DiscoActivityModel{}, cutoff)
}

// Ensure interface compliance
var (
	_ ports.Dot11Writer    = (*Dot11Store)(nil)
	_ ports.RetentionStore = (*Dot11Store)(nil)
)
