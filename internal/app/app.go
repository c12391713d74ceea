package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lcalzada-xor/dot11ingest/internal/adapters/alerts"
	"github.com/lcalzada-xor/dot11ingest/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/dot11ingest/internal/adapters/web/server"
	"github.com/lcalzada-xor/dot11ingest/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/dot11ingest/internal/config"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/ingest"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/policy"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/retention"
	"github.com/lcalzada-xor/dot11ingest/internal/telemetry"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Application holds the core components of the application.
// It wires storage, ingestion, retention and the web server together.
type Application struct {
	Config      *config.Config
	DB          *gorm.DB
	Coordinator *ingest.Coordinator
	Queue       *ingest.Queue
	Sweeper     *retention.Sweeper
	WebServer   *webserver.Server
}

// New creates a new Application instance and bootstraps its components.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(ctx); err != nil {
		if app.DB != nil {
			storage.Close(app.DB)
		}
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	db, err := storage.Open(app.Config.DBDriver, app.Config.DBDSN, app.Config.Tracing)
	if err != nil {
		return err
	}
	app.DB = db

	registry := storage.NewRegistry(db)
	if err := app.seedRegistry(ctx, registry); err != nil {
		return err
	}

	// 2. Policy
	bandits, err := app.loadBandits()
	if err != nil {
		return err
	}
	policies := storage.NewPolicyRepository(db)
	loader := policy.NewLoader(policies, policies, bandits)

	// 3. Alerts: normalize, broadcast, then persist
	alertStore := storage.NewAlertStore(db)
	feed := websocket.NewAlertFeed(alertStore)
	sink := alerts.NewSink(feed)

	// 4. Ingestion & Retention
	dot11 := storage.NewDot11Store(db)
	app.Coordinator = ingest.NewCoordinator(storage.NewTapRepository(db), loader, dot11, sink)
	app.Queue = ingest.NewQueue(app.Coordinator, app.Config.Workers, app.Config.QueueSize)
	app.Sweeper = retention.NewSweeper(dot11, registry)

	// 5. Servers
	app.WebServer = webserver.NewServer(app.Config.Addr, app.Config.ReportRateLimit, app.Queue, alertStore, feed)

	return nil
}

// seedRegistry stores the default retention when none is configured yet.
func (app *Application) seedRegistry(ctx context.Context, registry ports.KeyValueRegistry) error {
	if app.Config.RetentionDefaultDays == 0 {
		return nil
	}

	_, ok, err := registry.GetValue(ctx, domain.Dot11RetentionTimeDays)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	slog.Info("Seeding retention time", "key", domain.Dot11RetentionTimeDays, "days", app.Config.RetentionDefaultDays)
	return registry.SetValue(ctx, domain.Dot11RetentionTimeDays, strconv.Itoa(app.Config.RetentionDefaultDays))
}

func (app *Application) loadBandits() ([]domain.Bandit, error) {
	bandits, err := policy.BuiltInBandits()
	if err != nil {
		return nil, err
	}

	if app.Config.BanditsFile != "" {
		extra, err := policy.LoadBanditCatalog(app.Config.BanditsFile)
		if err != nil {
			return nil, err
		}
		bandits = append(bandits, extra...)
	}

	slog.Info("Loaded built-in bandits", "count", len(bandits))
	return bandits, nil
}

// Run starts the application components and blocks until ctx is done or one
// of them fails. Queued reports are drained before it returns.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting dot11ingest components...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Queue.Run(gctx)
	})

	g.Go(func() error {
		return app.Sweeper.Run(gctx, app.Config.RetentionInterval)
	})

	g.Go(func() error {
		if err := app.WebServer.Run(gctx); err != nil {
			return fmt.Errorf("web server error: %w", err)
		}
		return nil
	})

	slog.Info("dot11ingest ready", "addr", app.Config.Addr, "workers", app.Config.Workers)

	err := g.Wait()
	return app.cleanup(err)
}

func (app *Application) cleanup(runErr error) error {
	slog.Info("Cleaning up resources...")

	if err := storage.Close(app.DB); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
	return runErr
}
