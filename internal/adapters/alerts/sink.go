package alerts

import (
	"context"
	"log/slog"
	"maps"

	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"github.com/lcalzada-xor/dot11ingest/internal/telemetry"
)

// Sink normalizes detections before handing them to the alert service.
// Every identity key is guaranteed to be present in the attributes so that
// deduplication downstream sees a stable schema.
type Sink struct {
	next ports.AlertService
}

// NewSink wraps the alert service that receives normalized alerts.
func NewSink(next ports.AlertService) *Sink {
	return &Sink{next: next}
}

func (s *Sink) RaiseAlert(ctx context.Context, alert domain.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	attributes := make(map[string]string, len(alert.Attributes)+len(alert.IdentityKeys))
	maps.Copy(attributes, alert.Attributes)
	for _, key := range alert.IdentityKeys {
		if _, ok := attributes[key]; !ok {
			slog.Warn("Alert identity attribute missing",
				"detection_type", alert.DetectionType,
				"attribute", key,
				"tap_uuid", alert.TapUUID)
			attributes[key] = ""
		}
	}
	alert.Attributes = attributes

	slog.Info("Alert", "type", alert.DetectionType, "msg", alert.Message, "tap_uuid", alert.TapUUID)
	telemetry.AlertsRaised.WithLabelValues(string(alert.DetectionType)).Inc()

	return s.next.RaiseAlert(ctx, alert)
}

var _ ports.AlertService = (*Sink)(nil)
