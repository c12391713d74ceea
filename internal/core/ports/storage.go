package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// Dot11Writer persists 802.11 observations. Parent inserts return the
// generated row id; child inserts reference it.
type Dot11Writer interface {
	InsertBSSID(ctx context.Context, row domain.BSSIDRow) (int64, error)
	InsertBSSIDFingerprint(ctx context.Context, bssidID int64, fingerprint string) error
	InsertBSSIDClient(ctx context.Context, row domain.BSSIDClientRow) error

	InsertSSID(ctx context.Context, row domain.SSIDRow) (int64, error)
	InsertSSIDSetting(ctx context.Context, ssidID int64, setting domain.SSIDSetting) error
	InsertSSIDFingerprint(ctx context.Context, ssidID int64, fingerprint string) error
	InsertRate(ctx context.Context, ssidID int64, rate float32) error
	InsertChannelStatistic(ctx context.Context, row domain.ChannelStatisticRow) error
	InsertChannelHistogramBucket(ctx context.Context, row domain.ChannelHistogramRow) error
	InsertInfrastructureType(ctx context.Context, ssidID int64, infrastructureType string) error

	InsertClient(ctx context.Context, row domain.ClientRow) (int64, error)
	InsertClientProbeRequest(ctx context.Context, row domain.ClientProbeRequestRow) error

	InsertDiscoActivity(ctx context.Context, row domain.DiscoActivityRow) (int64, error)
	InsertDiscoReceiver(ctx context.Context, row domain.DiscoReceiverRow) error
}

// RetentionStore deletes top-level 802.11 rows created before a cutoff.
// Child rows are removed by the schema's cascades.
type RetentionStore interface {
	DeleteBSSIDsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteClientsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteDiscoActivityBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
