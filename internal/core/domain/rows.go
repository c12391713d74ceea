package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rows written for one report. Parent rows carry CreatedAt, the report
// timestamp; child rows reference the generated id of their parent.

type BSSIDRow struct {
	TapUUID          uuid.UUID
	BSSID            string
	SignalStrength   SignalStrength
	HiddenSSIDFrames int64
	CreatedAt        time.Time
}

type BSSIDClientRow struct {
	BSSIDID        int64
	ClientMAC      string
	TxFrames       int64
	TxBytes        int64
	RxFrames       int64
	RxBytes        int64
	SignalStrength SignalStrength
}

type SSIDRow struct {
	BSSIDID                     int64
	TapUUID                     uuid.UUID
	SSID                        string
	BSSID                       string
	SignalStrength              SignalStrength
	BeaconAdvertisements        int64
	ProbeResponseAdvertisements int64
	CreatedAt                   time.Time
}

type ChannelStatisticRow struct {
	SSIDID    int64
	Frequency int64
	FrameType string
	Bytes     int64
	Frames    int64
}

type ChannelHistogramRow struct {
	SSIDID         int64
	Frequency      int64
	SignalStrength int64
	FrameCount     int64
}

type ClientRow struct {
	TapUUID               uuid.UUID
	ClientMAC             string
	WildcardProbeRequests int64
	SignalStrength        SignalStrength
	CreatedAt             time.Time
}

type ClientProbeRequestRow struct {
	ClientID   int64
	TapUUID    uuid.UUID
	SSID       string
	FrameCount int64
}

type DiscoActivityRow struct {
	TapUUID    uuid.UUID
	Type       DiscoType
	BSSID      string
	SentFrames int64
	CreatedAt  time.Time
}

type DiscoReceiverRow struct {
	DiscoActivityID int64
	BSSID           string
	ReceivedFrames  int64
}
