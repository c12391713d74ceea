package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Addr                 string
	DBDriver             string
	DBDSN                string
	Workers              int
	QueueSize            int
	ReportRateLimit      int // reports per minute and remote host, 0 disables
	RetentionInterval    time.Duration
	RetentionDefaultDays int // seeded into the registry when unset, 0 disables
	BanditsFile          string
	Tracing              bool
	Debug                bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("DOT11_ADDR", ":8080")
	cfg.DBDriver = getEnv("DOT11_DB_DRIVER", "sqlite")
	cfg.DBDSN = getEnv("DOT11_DB_DSN", "")
	cfg.Workers = getEnvInt("DOT11_WORKERS", 4)
	cfg.QueueSize = getEnvInt("DOT11_QUEUE_SIZE", 256)
	cfg.ReportRateLimit = getEnvInt("DOT11_REPORT_RATE_LIMIT", 600)
	cfg.RetentionInterval = getEnvDuration("DOT11_RETENTION_INTERVAL", time.Hour)
	cfg.RetentionDefaultDays = getEnvInt("DOT11_RETENTION_DEFAULT_DAYS", 30)
	cfg.BanditsFile = getEnv("DOT11_BANDITS_FILE", "")
	cfg.Tracing = getEnvBool("DOT11_TRACING", false)
	cfg.Debug = getEnvBool("DOT11_DEBUG", false)

	// Command Line Flags (Override Env)
	fs := flag.NewFlagSet("dot11d", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Database driver (sqlite or postgres)")
	fs.StringVar(&cfg.DBDSN, "db", cfg.DBDSN, "Database DSN (defaults to ~/.dot11ingest/dot11.db for sqlite)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of report workers")
	fs.IntVar(&cfg.QueueSize, "queue", cfg.QueueSize, "Number of reports buffered before rejecting")
	fs.IntVar(&cfg.ReportRateLimit, "rate-limit", cfg.ReportRateLimit, "Reports accepted per minute and host (0 disables)")
	fs.DurationVar(&cfg.RetentionInterval, "retention-interval", cfg.RetentionInterval, "Interval between retention runs")
	fs.IntVar(&cfg.RetentionDefaultDays, "retention-default-days", cfg.RetentionDefaultDays, "Retention days stored when the registry has none (0 to skip)")
	fs.StringVar(&cfg.BanditsFile, "bandits", cfg.BanditsFile, "JSON file with additional built-in bandits")
	fs.BoolVar(&cfg.Tracing, "tracing", cfg.Tracing, "Export OpenTelemetry traces to stdout")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.DBDSN == "" && cfg.DBDriver == "sqlite" {
		cfg.DBDSN = getDefaultDBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("queue size must be positive, got %d", c.QueueSize))
	}
	if c.ReportRateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %d", c.ReportRateLimit))
	}
	if c.RetentionInterval <= 0 {
		errs = append(errs, fmt.Errorf("retention interval must be positive, got %s", c.RetentionInterval))
	}
	if c.RetentionDefaultDays < 0 {
		errs = append(errs, fmt.Errorf("retention days must not be negative, got %d", c.RetentionDefaultDays))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		slog.Warn("Ignoring invalid integer in environment", "key", key, "value", value)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Ignoring invalid duration in environment", "key", key, "value", value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Could not get user home directory, using current dir", "error", err)
		return "dot11.db"
	}
	return filepath.Join(home, ".dot11ingest", "dot11.db")
}
