package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"github.com/lcalzada-xor/dot11ingest/internal/telemetry"
)

// Sweeper removes 802.11 data older than the configured retention time.
type Sweeper struct {
	store    ports.RetentionStore
	registry ports.KeyValueRegistry
	now      func() time.Time
}

// NewSweeper creates a new retention sweeper.
func NewSweeper(store ports.RetentionStore, registry ports.KeyValueRegistry) *Sweeper {
	return &Sweeper{
		store:    store,
		registry: registry,
		now:      time.Now,
	}
}

// Clean deletes BSSIDs, clients and disconnection activity created before
// now minus the retention time. The deletes are independent: one failing
// does not stop the others.
func (s *Sweeper) Clean(ctx context.Context) error {
	days, err := s.retentionDays(ctx)
	if err != nil {
		return err
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)

	deletes := []struct {
		table string
		fn    func(context.Context, time.Time) (int64, error)
	}{
		{"dot11_bssids", s.store.DeleteBSSIDsBefore},
		{"dot11_clients", s.store.DeleteClientsBefore},
		{"dot11_disco_activity", s.store.DeleteDiscoActivityBefore},
	}

	var errs []error
	for _, d := range deletes {
		n, err := d.fn(ctx, cutoff)
		if err != nil {
			slog.Error("Retention cleaning failed", "table", d.table, "cutoff", cutoff, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.table, err))
			continue
		}
		telemetry.RetentionDeleted.WithLabelValues(d.table).Add(float64(n))
		slog.Debug("Retention cleaning", "table", d.table, "cutoff", cutoff, "deleted", n)
	}
	return errors.Join(errs...)
}

func (s *Sweeper) retentionDays(ctx context.Context) (int, error) {
	value, ok, err := s.registry.GetValue(ctx, domain.Dot11RetentionTimeDays)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", domain.Dot11RetentionTimeDays, err)
	}
	if !ok {
		value = domain.RegistryMissingMarker
	}

	days, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", domain.ErrConfigurationMissing, domain.Dot11RetentionTimeDays, value, err)
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", domain.ErrConfigurationMissing, domain.Dot11RetentionTimeDays, days)
	}
	return days, nil
}

// Run cleans once immediately and then on every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.Clean(ctx); err != nil {
			slog.Error("Retention run failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
