package detection

import (
	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// Finding is a detection before it is bound to a tap and a signal strength.
type Finding struct {
	Type                 domain.DetectionType
	MonitoredNetworkUUID *uuid.UUID
	Message              string
	Attributes           map[string]string
	IdentityKeys         []string
}

// Alert binds the finding to the tap that observed it.
func (f Finding) Alert(tap domain.Tap, signal float32) domain.Alert {
	return domain.Alert{
		OrganizationID:       tap.OrganizationID,
		TenantID:             tap.TenantID,
		MonitoredNetworkUUID: f.MonitoredNetworkUUID,
		TapUUID:              tap.UUID,
		DetectionType:        f.Type,
		Subsystem:            domain.SubsystemDot11,
		Message:              f.Message,
		Attributes:           f.Attributes,
		IdentityKeys:         f.IdentityKeys,
		SignalStrength:       signal,
	}
}

func monitored(m domain.MonitoredSSID) *uuid.UUID {
	id := m.UUID
	return &id
}
