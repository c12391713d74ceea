package storage

import (
	"time"

	"github.com/google/uuid"
)

// BSSIDModel is the GORM model for dot11_bssids.
type BSSIDModel struct {
	ID                    int64     `gorm:"primaryKey"`
	TapUUID               uuid.UUID `gorm:"column:tap_uuid;index"`
	BSSID                 string    `gorm:"column:bssid;index"`
	OUI                   *string   `gorm:"column:oui"`
	SignalStrengthAverage float32   `gorm:"column:signal_strength_average"`
	SignalStrengthMin     float32   `gorm:"column:signal_strength_min"`
	SignalStrengthMax     float32   `gorm:"column:signal_strength_max"`
	HiddenSSIDFrames      int64     `gorm:"column:hidden_ssid_frames"`
	CreatedAt             time.Time `gorm:"column:created_at;index"`

	Fingerprints []FingerprintModel `gorm:"foreignKey:BSSIDID;constraint:OnDelete:CASCADE"`
	Clients      []BSSIDClientModel `gorm:"foreignKey:BSSIDID;constraint:OnDelete:CASCADE"`
	SSIDs        []SSIDModel        `gorm:"foreignKey:BSSIDID;constraint:OnDelete:CASCADE"`
}

func (BSSIDModel) TableName() string { return "dot11_bssids" }

// FingerprintModel belongs to either a BSSID or an SSID.
type FingerprintModel struct {
	ID          int64  `gorm:"primaryKey"`
	Fingerprint string `gorm:"column:fingerprint;index"`
	BSSIDID     *int64 `gorm:"column:bssid_id;index"`
	SSIDID      *int64 `gorm:"column:ssid_id;index"`
}

func (FingerprintModel) TableName() string { return "dot11_fingerprints" }

type BSSIDClientModel struct {
	ID                    int64   `gorm:"primaryKey"`
	BSSIDID               int64   `gorm:"column:bssid_id;index"`
	ClientMAC             string  `gorm:"column:client_mac"`
	TxFrames              int64   `gorm:"column:tx_frames"`
	TxBytes               int64   `gorm:"column:tx_bytes"`
	RxFrames              int64   `gorm:"column:rx_frames"`
	RxBytes               int64   `gorm:"column:rx_bytes"`
	SignalStrengthAverage float32 `gorm:"column:signal_strength_average"`
	SignalStrengthMin     float32 `gorm:"column:signal_strength_min"`
	SignalStrengthMax     float32 `gorm:"column:signal_strength_max"`
}

func (BSSIDClientModel) TableName() string { return "dot11_bssid_clients" }

type SSIDModel struct {
	ID                          int64     `gorm:"primaryKey"`
	BSSIDID                     int64     `gorm:"column:bssid_id;index"`
	TapUUID                     uuid.UUID `gorm:"column:tap_uuid;index"`
	SSID                        string    `gorm:"column:ssid;index"`
	BSSID                       string    `gorm:"column:bssid"`
	SignalStrengthAverage       float32   `gorm:"column:signal_strength_average"`
	SignalStrengthMin           float32   `gorm:"column:signal_strength_min"`
	SignalStrengthMax           float32   `gorm:"column:signal_strength_max"`
	BeaconAdvertisements        int64     `gorm:"column:beacon_advertisements"`
	ProbeResponseAdvertisements int64     `gorm:"column:proberesp_advertisements"`
	CreatedAt                   time.Time `gorm:"column:created_at;index"`

	Settings            []SSIDSettingModel        `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
	Fingerprints        []FingerprintModel        `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
	Rates               []RateModel               `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
	Channels            []ChannelModel            `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
	ChannelHistograms   []ChannelHistogramModel   `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
	InfrastructureTypes []InfrastructureTypeModel `gorm:"foreignKey:SSIDID;constraint:OnDelete:CASCADE"`
}

func (SSIDModel) TableName() string { return "dot11_ssids" }

// SSIDSettingModel stores settings as attribute/value pairs.
type SSIDSettingModel struct {
	ID        int64   `gorm:"primaryKey"`
	SSIDID    int64   `gorm:"column:ssid_id;index"`
	Attribute string  `gorm:"column:attribute"`
	Value     *string `gorm:"column:value"`
}

func (SSIDSettingModel) TableName() string { return "dot11_ssid_settings" }

type RateModel struct {
	ID     int64   `gorm:"primaryKey"`
	SSIDID int64   `gorm:"column:ssid_id;index"`
	Rate   float32 `gorm:"column:rate"`
}

func (RateModel) TableName() string { return "dot11_rates" }

type ChannelModel struct {
	ID        int64  `gorm:"primaryKey"`
	SSIDID    int64  `gorm:"column:ssid_id;index"`
	Frequency int64  `gorm:"column:frequency"`
	FrameType string `gorm:"column:frame_type"`
	Bytes     int64  `gorm:"column:stats_bytes"`
	Frames    int64  `gorm:"column:stats_frames"`
}

func (ChannelModel) TableName() string { return "dot11_channels" }

type ChannelHistogramModel struct {
	ID             int64 `gorm:"primaryKey"`
	SSIDID         int64 `gorm:"column:ssid_id;index"`
	Frequency      int64 `gorm:"column:frequency"`
	SignalStrength int64 `gorm:"column:signal_strength"`
	FrameCount     int64 `gorm:"column:frame_count"`
}

func (ChannelHistogramModel) TableName() string { return "dot11_channel_histograms" }

type InfrastructureTypeModel struct {
	ID                 int64  `gorm:"primaryKey"`
	SSIDID             int64  `gorm:"column:ssid_id;index"`
	InfrastructureType string `gorm:"column:infrastructure_type"`
}

func (InfrastructureTypeModel) TableName() string { return "dot11_infrastructure_types" }

type ClientModel struct {
	ID                    int64     `gorm:"primaryKey"`
	TapUUID               uuid.UUID `gorm:"column:tap_uuid;index"`
	ClientMAC             string    `gorm:"column:client_mac;index"`
	WildcardProbeRequests int64     `gorm:"column:wildcard_probe_requests"`
	SignalStrengthAverage float32   `gorm:"column:signal_strength_average"`
	SignalStrengthMin     float32   `gorm:"column:signal_strength_min"`
	SignalStrengthMax     float32   `gorm:"column:signal_strength_max"`
	CreatedAt             time.Time `gorm:"column:created_at;index"`

	ProbeRequests []ClientProbeRequestModel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (ClientModel) TableName() string { return "dot11_clients" }

type ClientProbeRequestModel struct {
	ID         int64     `gorm:"primaryKey"`
	ClientID   int64     `gorm:"column:client_id;index"`
	TapUUID    uuid.UUID `gorm:"column:tap_uuid"`
	SSID       string    `gorm:"column:ssid"`
	FrameCount int64     `gorm:"column:frame_count"`
}

func (ClientProbeRequestModel) TableName() string { return "dot11_client_probereq_ssids" }

type DiscoActivityModel struct {
	ID         int64     `gorm:"primaryKey"`
	TapUUID    uuid.UUID `gorm:"column:tap_uuid;index"`
	DiscoType  int       `gorm:"column:disco_type"`
	BSSID      string    `gorm:"column:bssid"`
	SentFrames int64     `gorm:"column:sent_frames"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`

	Receivers []DiscoReceiverModel `gorm:"foreignKey:DiscoActivityID;constraint:OnDelete:CASCADE"`
}

func (DiscoActivityModel) TableName() string { return "dot11_disco_activity" }

type DiscoReceiverModel struct {
	ID              int64  `gorm:"primaryKey"`
	DiscoActivityID int64  `gorm:"column:disco_activity_id;index"`
	BSSID           string `gorm:"column:bssid"`
	ReceivedFrames  int64  `gorm:"column:received_frames"`
}

func (DiscoReceiverModel) TableName() string { return "dot11_disco_activity_receivers" }

// TapModel is the read side of tap registration.
type TapModel struct {
	UUID           uuid.UUID `gorm:"column:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;index"`
	TenantID       uuid.UUID `gorm:"column:tenant_id;index"`
	Name           string    `gorm:"column:name"`
}

func (TapModel) TableName() string { return "taps" }

// RegistryModel is one key/value pair of the runtime registry.
type RegistryModel struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (RegistryModel) TableName() string { return "registry" }

type MonitoredNetworkModel struct {
	ID                           int64     `gorm:"primaryKey"`
	UUID                         uuid.UUID `gorm:"column:uuid;uniqueIndex"`
	OrganizationID               uuid.UUID `gorm:"column:organization_id;index"`
	TenantID                     uuid.UUID `gorm:"column:tenant_id;index"`
	SSID                         string    `gorm:"column:ssid"`
	Enabled                      bool      `gorm:"column:enabled"`
	EnabledUnexpectedBSSID       bool      `gorm:"column:enabled_unexpected_bssid"`
	EnabledUnexpectedChannel     bool      `gorm:"column:enabled_unexpected_channel"`
	EnabledUnexpectedSecurity    bool      `gorm:"column:enabled_unexpected_security"`
	EnabledUnexpectedFingerprint bool      `gorm:"column:enabled_unexpected_fingerprint"`
	EnabledUnexpectedSignal      bool      `gorm:"column:enabled_unexpected_signal_tracks"`
	EnabledSimilarLookingSSID    bool      `gorm:"column:enabled_similar_looking_ssid"`
	EnabledSSIDSubstring         bool      `gorm:"column:enabled_ssid_substring"`
	SimilarLookingSSIDThreshold  float64   `gorm:"column:dconf_similar_looking_ssid_threshold"`
	CreatedAt                    time.Time
	UpdatedAt                    time.Time

	BSSIDs     []MonitoredBSSIDModel          `gorm:"foreignKey:MonitoredNetworkID;constraint:OnDelete:CASCADE"`
	Channels   []MonitoredChannelModel        `gorm:"foreignKey:MonitoredNetworkID;constraint:OnDelete:CASCADE"`
	Suites     []MonitoredSecuritySuiteModel  `gorm:"foreignKey:MonitoredNetworkID;constraint:OnDelete:CASCADE"`
	Substrings []RestrictedSSIDSubstringModel `gorm:"foreignKey:MonitoredNetworkID;constraint:OnDelete:CASCADE"`
}

func (MonitoredNetworkModel) TableName() string { return "dot11_monitored_networks" }

type MonitoredBSSIDModel struct {
	ID                 int64  `gorm:"primaryKey"`
	MonitoredNetworkID int64  `gorm:"column:monitored_network_id;index"`
	BSSID              string `gorm:"column:bssid"`

	Fingerprints []MonitoredFingerprintModel `gorm:"foreignKey:MonitoredBSSIDID;constraint:OnDelete:CASCADE"`
}

func (MonitoredBSSIDModel) TableName() string { return "dot11_monitored_networks_bssids" }

type MonitoredFingerprintModel struct {
	ID               int64  `gorm:"primaryKey"`
	MonitoredBSSIDID int64  `gorm:"column:monitored_network_bssid_id;index"`
	Fingerprint      string `gorm:"column:fingerprint"`
}

func (MonitoredFingerprintModel) TableName() string { return "dot11_monitored_networks_fingerprints" }

type MonitoredChannelModel struct {
	ID                 int64 `gorm:"primaryKey"`
	MonitoredNetworkID int64 `gorm:"column:monitored_network_id;index"`
	Frequency          int64 `gorm:"column:frequency"`
}

func (MonitoredChannelModel) TableName() string { return "dot11_monitored_networks_channels" }

type MonitoredSecuritySuiteModel struct {
	ID                 int64  `gorm:"primaryKey"`
	MonitoredNetworkID int64  `gorm:"column:monitored_network_id;index"`
	SecuritySuite      string `gorm:"column:security_suite"`
}

func (MonitoredSecuritySuiteModel) TableName() string { return "dot11_monitored_networks_security_suites" }

type RestrictedSSIDSubstringModel struct {
	ID                 int64     `gorm:"primaryKey"`
	UUID               uuid.UUID `gorm:"column:uuid"`
	MonitoredNetworkID int64     `gorm:"column:monitored_network_id;index"`
	Substring          string    `gorm:"column:substring"`
	CreatedAt          time.Time
}

func (RestrictedSSIDSubstringModel) TableName() string {
	return "dot11_monitored_networks_restricted_substrings"
}

type CustomBanditModel struct {
	ID             int64     `gorm:"primaryKey"`
	UUID           uuid.UUID `gorm:"column:uuid;uniqueIndex"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;index"`
	TenantID       uuid.UUID `gorm:"column:tenant_id;index"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	CreatedAt      time.Time

	Fingerprints []CustomBanditFingerprintModel `gorm:"foreignKey:BanditID;constraint:OnDelete:CASCADE"`
}

func (CustomBanditModel) TableName() string { return "dot11_bandits" }

type CustomBanditFingerprintModel struct {
	ID          int64  `gorm:"primaryKey"`
	BanditID    int64  `gorm:"column:bandit_id;index"`
	Fingerprint string `gorm:"column:fingerprint"`
}

func (CustomBanditFingerprintModel) TableName() string { return "dot11_bandit_fingerprints" }

// AlertModel is a raised detection. Repeated alerts with the same identity
// hash update the existing row.
type AlertModel struct {
	ID                   int64      `gorm:"primaryKey"`
	UUID                 uuid.UUID  `gorm:"column:uuid;uniqueIndex"`
	IdentityHash         string     `gorm:"column:identity_hash;uniqueIndex"`
	OrganizationID       uuid.UUID  `gorm:"column:organization_id;index"`
	TenantID             uuid.UUID  `gorm:"column:tenant_id;index"`
	MonitoredNetworkUUID *uuid.UUID `gorm:"column:dot11_monitored_network_id"`
	TapUUID              uuid.UUID  `gorm:"column:tap_id"`
	DetectionType        string     `gorm:"column:detection_type;index"`
	Subsystem            string     `gorm:"column:subsystem"`
	Details              string     `gorm:"column:details"`
	Attributes           string     `gorm:"column:attributes"`
	SignalStrength       float32    `gorm:"column:signal_strength"`
	Occurrences          int64      `gorm:"column:occurrences"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	LastSeen             time.Time  `gorm:"column:last_seen"`
}

func (AlertModel) TableName() string { return "detection_alerts" }

// models lists every table in migration order, parents first.
var models = []any{
	&TapModel{},
	&RegistryModel{},
	&BSSIDModel{},
	&SSIDModel{},
	&FingerprintModel{},
	&BSSIDClientModel{},
	&SSIDSettingModel{},
	&RateModel{},
	&ChannelModel{},
	&ChannelHistogramModel{},
	&InfrastructureTypeModel{},
	&ClientModel{},
	&ClientProbeRequestModel{},
	&DiscoActivityModel{},
	&DiscoReceiverModel{},
	&MonitoredNetworkModel{},
	&MonitoredBSSIDModel{},
	&MonitoredFingerprintModel{},
	&MonitoredChannelModel{},
	&MonitoredSecuritySuiteModel{},
	&RestrictedSSIDSubstringModel{},
	&CustomBanditModel{},
	&CustomBanditFingerprintModel{},
	&AlertModel{},
}
