// PadBridge Core - virtual controller mapping service
//
// This is the main entry point for PadBridge Core. It owns the
// device/settings registry mapping physical input devices to virtual
// controller output slots:
//   - Loads persisted devices, slot settings and profiles from SQLite
//   - Exposes the registry to the polling and interactive components
//   - Publishes registry events over MQTT for external collaborators
//   - Writes advisory telemetry to InfluxDB
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/padbridge-core/migrations"

	"github.com/nerrad567/padbridge-core/internal/driver"
	"github.com/nerrad567/padbridge-core/internal/events"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/config"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/database"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/logging"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/padbridge-core/internal/registry"
	"github.com/nerrad567/padbridge-core/internal/store"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// saveTimeout bounds the shutdown snapshot write.
const saveTimeout = 10 * time.Second

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting PadBridge Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open the settings database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise the registry from persisted state
	settingsStore := store.New(db.DB)
	reg := registry.New()
	reg.SetLogger(log.With("component", "registry"))

	state, err := settingsStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading registry state: %w", err)
	}
	reg.Restore(state)
	summary := reg.Summary()
	log.Info("registry loaded",
		"devices", summary.TotalDevices,
		"settings", summary.TotalSettings,
	)

	// Optional MQTT event publishing
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT broker: %w", err)
		}
		defer mqttClient.Disconnect()
		log.Info("MQTT connected",
			"host", cfg.MQTT.Broker.Host,
			"port", cfg.MQTT.Broker.Port,
		)
	}

	// Optional InfluxDB telemetry
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil && !errors.Is(err, influxdb.ErrDisabled) {
			// Telemetry is advisory: log and continue without it.
			log.Warn("InfluxDB unavailable, telemetry disabled", "error", err)
			influxClient = nil
		}
		if influxClient != nil {
			defer influxClient.Close()
			log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL)
		}
	}

	if mqttClient != nil || influxClient != nil {
		publisher := events.New(mqttClient, influxClient, byte(cfg.MQTT.QoS),
			log.With("component", "events"))
		reg.SetNotifier(publisher)
		go events.RunSummaryLoop(ctx, reg, influxClient, cfg.GetSummaryInterval())
	}

	reportDriverVersions(cfg.Driver.PayloadDir, log.With("component", "driver"))

	log.Info("PadBridge Core running")
	<-ctx.Done()
	log.Info("shutting down")

	// Persist the final registry snapshot. The parent context is
	// already cancelled, so use a fresh bounded one.
	saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := settingsStore.Save(saveCtx, reg.Snapshot()); err != nil {
		return fmt.Errorf("saving registry state: %w", err)
	}
	log.Info("registry state saved")

	return nil
}

// reportDriverVersions logs the installed version of each supported
// driver. Absence is normal on a fresh install and on platforms
// without driver support; the interactive component prompts for
// installation when needed.
func reportDriverVersions(payloadDir string, log *logging.Logger) {
	mgr := driver.NewManager(payloadDir, log)
	for _, d := range []driver.Driver{driver.VirtualBus, driver.HidFilter} {
		version, err := mgr.Version(d)
		switch {
		case errors.Is(err, driver.ErrUnsupported):
			return
		case errors.Is(err, driver.ErrDriverNotFound):
			log.Info("driver not installed", "driver", string(d))
		case err != nil:
			log.Warn("driver version query failed", "driver", string(d), "error", err)
		default:
			log.Info("driver installed", "driver", string(d), "version", version)
		}
	}
}

// getConfigPath returns the configuration file path from the
// PADBRIDGE_CONFIG environment variable, or the default.
func getConfigPath() string {
	if path := os.Getenv("PADBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
