package storage

import (
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// Timestamps are stored in UTC so that created_at comparisons do not depend
// on the zone of the caller.

func toBSSIDModel(r domain.BSSIDRow) BSSIDModel {
	return BSSIDModel{
		TapUUID:               r.TapUUID,
		BSSID:                 r.BSSID,
		SignalStrengthAverage: r.SignalStrength.Average,
		SignalStrengthMin:     r.SignalStrength.Min,
		SignalStrengthMax:     r.SignalStrength.Max,
		HiddenSSIDFrames:      r.HiddenSSIDFrames,
		CreatedAt:             r.CreatedAt.UTC(),
	}
}

func toBSSIDClientModel(r domain.BSSIDClientRow) BSSIDClientModel {
	return BSSIDClientModel{
		BSSIDID:               r.BSSIDID,
		ClientMAC:             r.ClientMAC,
		TxFrames:              r.TxFrames,
		TxBytes:               r.TxBytes,
		RxFrames:              r.RxFrames,
		RxBytes:               r.RxBytes,
		SignalStrengthAverage: r.SignalStrength.Average,
		SignalStrengthMin:     r.SignalStrength.Min,
		SignalStrengthMax:     r.SignalStrength.Max,
	}
}

func toSSIDModel(r domain.SSIDRow) SSIDModel {
	return SSIDModel{
		BSSIDID:                     r.BSSIDID,
		TapUUID:                     r.TapUUID,
		SSID:                        r.SSID,
		BSSID:                       r.BSSID,
		SignalStrengthAverage:       r.SignalStrength.Average,
		SignalStrengthMin:           r.SignalStrength.Min,
		SignalStrengthMax:           r.SignalStrength.Max,
		BeaconAdvertisements:        r.BeaconAdvertisements,
		ProbeResponseAdvertisements: r.ProbeResponseAdvertisements,
		CreatedAt:                   r.CreatedAt.UTC(),
	}
}

func toClientModel(r domain.ClientRow) ClientModel {
	return ClientModel{
		TapUUID:               r.TapUUID,
		ClientMAC:             r.ClientMAC,
		WildcardProbeRequests: r.WildcardProbeRequests,
		SignalStrengthAverage: r.SignalStrength.Average,
		SignalStrengthMin:     r.SignalStrength.Min,
		SignalStrengthMax:     r.SignalStrength.Max,
		CreatedAt:             r.CreatedAt.UTC(),
	}
}

func toDiscoActivityModel(r domain.DiscoActivityRow) DiscoActivityModel {
	return DiscoActivityModel{
		TapUUID:    r.TapUUID,
		DiscoType:  int(r.Type),
		BSSID:      r.BSSID,
		SentFrames: r.SentFrames,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func toTap(m TapModel) *domain.Tap {
	return &domain.Tap{
		UUID:           m.UUID,
		OrganizationID: m.OrganizationID,
		TenantID:       m.TenantID,
	}
}

func toMonitoredNetwork(m MonitoredNetworkModel) domain.MonitoredNetwork {
	return domain.MonitoredNetwork{
		ID:      m.ID,
		UUID:    m.UUID,
		SSID:    m.SSID,
		Enabled: m.Enabled,
		Detection: domain.DetectionConfig{
			EnabledUnexpectedBSSID:          m.EnabledUnexpectedBSSID,
			EnabledUnexpectedChannel:        m.EnabledUnexpectedChannel,
			EnabledUnexpectedSecuritySuites: m.EnabledUnexpectedSecurity,
			EnabledUnexpectedFingerprint:    m.EnabledUnexpectedFingerprint,
			EnabledUnexpectedSignalTracks:   m.EnabledUnexpectedSignal,
			EnabledSimilarLookingSSID:       m.EnabledSimilarLookingSSID,
			EnabledSSIDSubstring:            m.EnabledSSIDSubstring,
			SimilarLookingSSIDThreshold:     m.SimilarLookingSSIDThreshold,
		},
	}
}

func toCustomBandit(m CustomBanditModel) domain.CustomBandit {
	return domain.CustomBandit{
		ID:          m.ID,
		UUID:        m.UUID,
		Name:        m.Name,
		Description: m.Description,
	}
}
