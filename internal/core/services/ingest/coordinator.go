package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/detection"
	"github.com/lcalzada-xor/dot11ingest/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Coordinator persists the reports of taps and raises the alerts their
// observations trigger.
type Coordinator struct {
	taps   ports.TapRegistry
	policy ports.PolicyLoader
	writer ports.Dot11Writer
	alerts ports.AlertService
	tracer trace.Tracer
}

// NewCoordinator creates a new ingestion coordinator.
func NewCoordinator(taps ports.TapRegistry, policy ports.PolicyLoader, writer ports.Dot11Writer, alerts ports.AlertService) *Coordinator {
	return &Coordinator{
		taps:   taps,
		policy: policy,
		writer: writer,
		alerts: alerts,
		tracer: telemetry.Tracer("ingest"),
	}
}

// HandleReport runs the BSSID, client, disconnection and tap alert stages of
// one report, in that order. A failing stage does not stop the following
// ones; the failures are returned joined. Reports of unknown taps are
// dropped without error.
func (c *Coordinator) HandleReport(ctx context.Context, tapID uuid.UUID, timestamp time.Time, report domain.Report) error {
	start := time.Now()
	defer func() { telemetry.ReportDuration.Observe(time.Since(start).Seconds()) }()

	ctx, span := c.tracer.Start(ctx, "HandleReport", trace.WithAttributes(
		attribute.String("tap.uuid", tapID.String()),
		attribute.Int("report.bssids", len(report.BSSIDs)),
		attribute.Int("report.clients", len(report.Clients)),
	))
	defer span.End()

	tap, err := c.taps.FindTap(ctx, tapID)
	if err != nil {
		telemetry.ReportsIngested.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "tap lookup failed")
		return fmt.Errorf("failed to look up tap %s: %w", tapID, err)
	}
	if tap == nil {
		slog.Warn("Dropping 802.11 report of unknown tap", "tap_uuid", tapID, "error", domain.ErrUnknownTap)
		telemetry.ReportsIngested.WithLabelValues("unknown_tap").Inc()
		return nil
	}

	timestamp = timestamp.UTC()

	var errs []error
	if err := c.stage(ctx, "bssids", func(ctx context.Context) error {
		return c.writeBSSIDs(ctx, *tap, timestamp, report.BSSIDs)
	}); err != nil {
		errs = append(errs, fmt.Errorf("bssid stage: %w", err))
	}
	if err := c.stage(ctx, "clients", func(ctx context.Context) error {
		return c.writeClients(ctx, *tap, timestamp, report.Clients)
	}); err != nil {
		errs = append(errs, fmt.Errorf("client stage: %w", err))
	}
	if err := c.stage(ctx, "disco", func(ctx context.Context) error {
		return c.writeDisco(ctx, *tap, timestamp, report.Disco)
	}); err != nil {
		errs = append(errs, fmt.Errorf("disco stage: %w", err))
	}
	c.stage(ctx, "alerts", func(ctx context.Context) error {
		c.handleAlerts(ctx, *tap, report.Alerts)
		return nil
	})

	if err := errors.Join(errs...); err != nil {
		telemetry.ReportsIngested.WithLabelValues("partial").Inc()
		span.SetStatus(codes.Error, "report partially persisted")
		return err
	}
	telemetry.ReportsIngested.WithLabelValues("ok").Inc()
	return nil
}

func (c *Coordinator) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := c.tracer.Start(ctx, "stage."+name)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		slog.Error("802.11 report stage failed", "stage", name, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Coordinator) writeBSSIDs(ctx context.Context, tap domain.Tap, timestamp time.Time, bssids map[string]domain.BSSIDObservation) error {
	if len(bssids) == 0 {
		return nil
	}

	snapshot, err := c.policy.Load(ctx, tap.OrganizationID, tap.TenantID)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	for _, bssid := range slices.Sorted(maps.Keys(bssids)) {
		if err := c.writeBSSID(ctx, tap, timestamp, bssid, bssids[bssid], snapshot); err != nil {
			return fmt.Errorf("bssid %s: %w", bssid, err)
		}
	}
	return nil
}

func (c *Coordinator) writeBSSID(ctx context.Context, tap domain.Tap, timestamp time.Time, bssid string, obs domain.BSSIDObservation, snapshot *domain.PolicySnapshot) error {
	bssidID, err := c.writer.InsertBSSID(ctx, domain.BSSIDRow{
		TapUUID:          tap.UUID,
		BSSID:            bssid,
		SignalStrength:   obs.SignalStrength,
		HiddenSSIDFrames: obs.HiddenSSIDFrames,
		CreatedAt:        timestamp,
	})
	if err != nil {
		return err
	}

	for _, fp := range obs.Fingerprints {
		if err := c.writer.InsertBSSIDFingerprint(ctx, bssidID, fp); err != nil {
			return err
		}
		for _, f := range detection.BanditContacts(tap.UUID, bssid, fp, snapshot.Bandits) {
			c.raise(ctx, tap, f, obs.SignalStrength.Average)
		}
	}

	for _, mac := range slices.Sorted(maps.Keys(obs.Clients)) {
		// Base stations show up in their own traffic statistics.
		if strings.EqualFold(mac, bssid) {
			continue
		}

		stats := obs.Clients[mac]
		if err := c.writer.InsertBSSIDClient(ctx, domain.BSSIDClientRow{
			BSSIDID:        bssidID,
			ClientMAC:      mac,
			TxFrames:       stats.TxFrames,
			TxBytes:        stats.TxBytes,
			RxFrames:       stats.RxFrames,
			RxBytes:        stats.RxBytes,
			SignalStrength: stats.SignalStrength,
		}); err != nil {
			return err
		}
	}

	for _, ssid := range slices.Sorted(maps.Keys(obs.AdvertisedNetworks)) {
		if err := c.processSSID(ctx, tap, timestamp, bssidID, bssid, obs, ssid, obs.AdvertisedNetworks[ssid], snapshot); err != nil {
			telemetry.SSIDFailures.Inc()
			slog.Error("Could not write SSID", "tap_uuid", tap.UUID, "bssid", bssid, "ssid", ssid, "error", err)
		}
	}
	return nil
}

// processSSID writes one advertised network and evaluates it. Failures stay
// local to the network, panics included.
func (c *Coordinator) processSSID(ctx context.Context, tap domain.Tap, timestamp time.Time, bssidID int64, bssid string, obs domain.BSSIDObservation, raw string, network domain.AdvertisedNetwork, snapshot *domain.PolicySnapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing SSID: %v", r)
		}
	}()

	ssid := domain.SanitizeSSID(raw)
	if ssid == "" {
		// Hidden network.
		return nil
	}

	ssidID, err := c.writer.InsertSSID(ctx, domain.SSIDRow{
		BSSIDID:                     bssidID,
		TapUUID:                     tap.UUID,
		SSID:                        ssid,
		BSSID:                       bssid,
		SignalStrength:              network.SignalStrength,
		BeaconAdvertisements:        network.BeaconAdvertisements,
		ProbeResponseAdvertisements: network.ProbeResponseAdvertisements,
		CreatedAt:                   timestamp,
	})
	if err != nil {
		return err
	}

	if err := c.writeSSIDChildren(ctx, ssidID, network); err != nil {
		return err
	}

	signal := obs.SignalStrength.Average
	for _, f := range detection.SimilarSSIDs(ssid, snapshot) {
		c.raise(ctx, tap, f, signal)
	}
	for _, f := range detection.RestrictedSubstrings(ssid, snapshot) {
		c.raise(ctx, tap, f, signal)
	}
	if m, ok := snapshot.MonitoredSSID(ssid); ok {
		for _, f := range detection.MonitoredNetworkDeviations(bssid, network, m) {
			c.raise(ctx, tap, f, signal)
		}
	}
	return nil
}

func (c *Coordinator) writeSSIDChildren(ctx context.Context, ssidID int64, network domain.AdvertisedNetwork) error {
	for _, wps := range network.WPS {
		if err := c.writer.InsertSSIDSetting(ctx, ssidID, domain.WPSSetting(wps)); err != nil {
			return err
		}
	}

	for _, security := range network.Security {
		if len(security.Protocols) == 0 {
			if err := c.writer.InsertSSIDSetting(ctx, ssidID, domain.NoSecurityProtocolSetting()); err != nil {
				return err
			}
		}
		for _, protocol := range security.Protocols {
			if err := c.writer.InsertSSIDSetting(ctx, ssidID, domain.SecurityProtocolSetting(protocol)); err != nil {
				return err
			}
		}

		encoded, err := json.Marshal(security.Setting())
		if err != nil {
			slog.Error("Could not serialize security suite", "ssid_id", ssidID, "error", fmt.Errorf("%w: %w", domain.ErrSerialization, err))
			continue
		}
		if err := c.writer.InsertSSIDSetting(ctx, ssidID, domain.SecuritySuiteSetting(string(encoded))); err != nil {
			return err
		}
	}

	for _, fp := range network.Fingerprints {
		if err := c.writer.InsertSSIDFingerprint(ctx, ssidID, fp); err != nil {
			return err
		}
	}

	for _, rate := range network.Rates {
		if err := c.writer.InsertRate(ctx, ssidID, rate); err != nil {
			return err
		}
	}

	for _, frequency := range slices.Sorted(maps.Keys(network.ChannelStatistics)) {
		frameTypes := network.ChannelStatistics[frequency]
		for _, frameType := range slices.Sorted(maps.Keys(frameTypes)) {
			stats := frameTypes[frameType]
			if err := c.writer.InsertChannelStatistic(ctx, domain.ChannelStatisticRow{
				SSIDID:    ssidID,
				Frequency: frequency,
				FrameType: strings.ToLower(frameType),
				Bytes:     stats.Bytes,
				Frames:    stats.Frames,
			}); err != nil {
				return err
			}
		}
	}

	for _, frequency := range slices.Sorted(maps.Keys(network.SignalHistogram)) {
		buckets := network.SignalHistogram[frequency]
		for _, signal := range slices.Sorted(maps.Keys(buckets)) {
			if err := c.writer.InsertChannelHistogramBucket(ctx, domain.ChannelHistogramRow{
				SSIDID:         ssidID,
				Frequency:      frequency,
				SignalStrength: signal,
				FrameCount:     buckets[signal],
			}); err != nil {
				return err
			}
		}
	}

	for _, infrastructureType := range network.InfrastructureTypes {
		if err := c.writer.InsertInfrastructureType(ctx, ssidID, strings.ToLower(infrastructureType)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) writeClients(ctx context.Context, tap domain.Tap, timestamp time.Time, clients map[string]domain.ClientObservation) error {
	for _, mac := range slices.Sorted(maps.Keys(clients)) {
		obs := clients[mac]
		clientID, err := c.writer.InsertClient(ctx, domain.ClientRow{
			TapUUID:               tap.UUID,
			ClientMAC:             mac,
			WildcardProbeRequests: obs.WildcardProbeRequests,
			SignalStrength:        obs.SignalStrength,
			CreatedAt:             timestamp,
		})
		if err != nil {
			return fmt.Errorf("client %s: %w", mac, err)
		}

		for _, ssid := range slices.Sorted(maps.Keys(obs.ProbeRequestSSIDs)) {
			if err := c.writer.InsertClientProbeRequest(ctx, domain.ClientProbeRequestRow{
				ClientID:   clientID,
				TapUUID:    tap.UUID,
				SSID:       ssid,
				FrameCount: obs.ProbeRequestSSIDs[ssid],
			}); err != nil {
				return fmt.Errorf("client %s: %w", mac, err)
			}
		}
	}
	return nil
}

func (c *Coordinator) writeDisco(ctx context.Context, tap domain.Tap, timestamp time.Time, disco domain.DiscoReport) error {
	if err := c.writeDiscoActivity(ctx, tap, timestamp, domain.DiscoDeauthentication, disco.Deauthentication); err != nil {
		return err
	}
	return c.writeDiscoActivity(ctx, tap, timestamp, domain.DiscoDisassociation, disco.Disassociation)
}

func (c *Coordinator) writeDiscoActivity(ctx context.Context, tap domain.Tap, timestamp time.Time, discoType domain.DiscoType, transmitters map[string]domain.DiscoTransmitter) error {
	for _, key := range slices.Sorted(maps.Keys(transmitters)) {
		t := transmitters[key]
		activityID, err := c.writer.InsertDiscoActivity(ctx, domain.DiscoActivityRow{
			TapUUID:    tap.UUID,
			Type:       discoType,
			BSSID:      t.BSSID,
			SentFrames: t.SentFrames,
			CreatedAt:  timestamp,
		})
		if err != nil {
			return fmt.Errorf("%s activity of %s: %w", discoType, t.BSSID, err)
		}

		for _, receiver := range slices.Sorted(maps.Keys(t.Receivers)) {
			if err := c.writer.InsertDiscoReceiver(ctx, domain.DiscoReceiverRow{
				DiscoActivityID: activityID,
				BSSID:           receiver,
				ReceivedFrames:  t.Receivers[receiver],
			}); err != nil {
				return fmt.Errorf("%s activity of %s: %w", discoType, t.BSSID, err)
			}
		}
	}
	return nil
}

func (c *Coordinator) handleAlerts(ctx context.Context, tap domain.Tap, alerts []domain.TapAlert) {
	for _, a := range alerts {
		f, ok := detection.TapAlert(a)
		if !ok {
			slog.Warn("Dropping tap alert", "tap_uuid", tap.UUID, "alert_type", a.Type, "error", domain.ErrUnknownTapAlert)
			continue
		}
		c.raise(ctx, tap, f, a.SignalStrength)
	}
}

func (c *Coordinator) raise(ctx context.Context, tap domain.Tap, f detection.Finding, signal float32) {
	if err := c.alerts.RaiseAlert(ctx, f.Alert(tap, signal)); err != nil {
		slog.Error("Could not raise alert", "tap_uuid", tap.UUID, "detection_type", f.Type, "error", err)
	}
}

var _ ports.ReportHandler = (*Coordinator)(nil)
