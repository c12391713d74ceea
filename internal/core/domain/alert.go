package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DetectionType defines the category of a raised alert.
type DetectionType string

const (
	DetectionBanditContact           DetectionType = "DOT11_BANDIT_CONTACT"
	DetectionUnexpectedBSSID         DetectionType = "DOT11_MONITOR_BSSID"
	DetectionUnexpectedFingerprint   DetectionType = "DOT11_MONITOR_FINGERPRINT"
	DetectionUnexpectedChannel       DetectionType = "DOT11_MONITOR_CHANNEL"
	DetectionUnexpectedSecuritySuite DetectionType = "DOT11_MONITOR_SECURITY_SUITE"
	DetectionSimilarLookingSSID      DetectionType = "DOT11_MONITOR_SIMILAR_LOOKING_SSID"
	DetectionSSIDSubstring           DetectionType = "DOT11_MONITOR_SSID_SUBSTRING"
)

// Subsystem that raised an alert.
type Subsystem string

const SubsystemDot11 Subsystem = "DOT11"

// Alert is a detection handed to the alert service. The service owns
// suppression; the same condition may be raised many times.
//
// MonitoredNetworkUUID is set for detections against a monitored SSID.
// IdentityKeys name the attributes that identify the same alert again.
type Alert struct {
	OrganizationID       uuid.UUID         `json:"organization_id"`
	TenantID             uuid.UUID         `json:"tenant_id"`
	MonitoredNetworkUUID *uuid.UUID        `json:"monitored_network_uuid,omitempty"`
	TapUUID              uuid.UUID         `json:"tap_uuid"`
	DetectionType        DetectionType     `json:"detection_type"`
	Subsystem            Subsystem         `json:"subsystem"`
	Message              string            `json:"message"`
	Attributes           map[string]string `json:"attributes"`
	IdentityKeys         []string          `json:"identity_keys"`
	SignalStrength       float32           `json:"signal_strength"`
}

// Validate checks that the alert can be attributed and deduplicated.
func (a Alert) Validate() error {
	switch {
	case a.TapUUID == uuid.Nil:
		return fmt.Errorf("%w: missing tap", ErrInvalidAlert)
	case a.DetectionType == "":
		return fmt.Errorf("%w: missing detection type", ErrInvalidAlert)
	case a.Subsystem == "":
		return fmt.Errorf("%w: missing subsystem", ErrInvalidAlert)
	case a.Message == "":
		return fmt.Errorf("%w: missing message", ErrInvalidAlert)
	}
	return nil
}

// TapAlertType is the kind of an alert forwarded by a tap.
type TapAlertType string

const TapAlertPwnagotchiDetected TapAlertType = "PwnagotchiDetected"

// TapAlert is an alert detected by a tap itself.
type TapAlert struct {
	Type           TapAlertType              `json:"alert_type"`
	Attributes     map[string]AlertAttribute `json:"attributes"`
	SignalStrength float32                   `json:"signal_strength"`
}

// AttributeKind tags the value held by an AlertAttribute.
type AttributeKind int

const (
	AttributeString AttributeKind = iota
	AttributeNumber
)

// AlertAttribute is either a number or a string.
type AlertAttribute struct {
	Kind   AttributeKind
	Number float64
	Text   string
}

// NumberAttribute builds a numeric attribute.
func NumberAttribute(n float64) AlertAttribute {
	return AlertAttribute{Kind: AttributeNumber, Number: n}
}

// StringAttribute builds a string attribute.
func StringAttribute(s string) AlertAttribute {
	return AlertAttribute{Kind: AttributeString, Text: s}
}

func (a AlertAttribute) String() string {
	if a.Kind == AttributeNumber {
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	}
	return a.Text
}

var errAttributeShape = errors.New("alert attribute must hold exactly one of Number or String")

// UnmarshalJSON accepts the tap encoding {"Number": 1} or {"String": "x"}.
func (a *AlertAttribute) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number *float64 `json:"Number"`
		String *string  `json:"String"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Number != nil && raw.String == nil:
		*a = NumberAttribute(*raw.Number)
	case raw.String != nil && raw.Number == nil:
		*a = StringAttribute(*raw.String)
	default:
		return errAttributeShape
	}
	return nil
}

// MarshalJSON writes the tap encoding.
func (a AlertAttribute) MarshalJSON() ([]byte, error) {
	if a.Kind == AttributeNumber {
		return json.Marshal(map[string]float64{"Number": a.Number})
	}
	return json.Marshal(map[string]string{"String": a.Text})
}

// AlertRecord is a persisted alert. Repeated raises of the same alert bump
// Occurrences and LastSeen.
type AlertRecord struct {
	UUID        uuid.UUID `json:"uuid"`
	Alert       Alert     `json:"alert"`
	Occurrences int64     `json:"occurrences"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
}
