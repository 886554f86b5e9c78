package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != "./data/padbridge.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.Database.WALMode {
		t.Error("WALMode should default to true")
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT should default to disabled")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT QoS = %d, want 1", cfg.MQTT.QoS)
	}
	if cfg.InfluxDB.Enabled {
		t.Error("InfluxDB should default to disabled")
	}
	if cfg.Driver.PayloadDir != "./drivers" {
		t.Errorf("Driver.PayloadDir = %q", cfg.Driver.PayloadDir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "/var/lib/padbridge/settings.db"
  wal_mode: false
mqtt:
  enabled: true
  broker:
    host: "broker.local"
    port: 8883
    tls: true
  qos: 2
driver:
  payload_dir: "/opt/padbridge/drivers"
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != "/var/lib/padbridge/settings.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.WALMode {
		t.Error("WALMode should be overridden to false")
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker.Host != "broker.local" || cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if !cfg.MQTT.Broker.TLS || cfg.MQTT.QoS != 2 {
		t.Errorf("MQTT TLS/QoS = %v/%d", cfg.MQTT.Broker.TLS, cfg.MQTT.QoS)
	}
	if cfg.Driver.PayloadDir != "/opt/padbridge/drivers" {
		t.Errorf("Driver.PayloadDir = %q", cfg.Driver.PayloadDir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	envVars := map[string]string{
		"PADBRIDGE_DATABASE_PATH":      "/env/settings.db",
		"PADBRIDGE_MQTT_HOST":          "env-broker",
		"PADBRIDGE_MQTT_USERNAME":      "env-user",
		"PADBRIDGE_MQTT_PASSWORD":      "env-pass",
		"PADBRIDGE_DRIVER_PAYLOAD_DIR": "/env/drivers",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	path := writeConfig(t, `
database:
  path: "/file/settings.db"
mqtt:
  broker:
    host: "file-broker"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != "/env/settings.db" {
		t.Errorf("Database.Path = %q, env should win over file", cfg.Database.Path)
	}
	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT host = %q, env should win over file", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Auth.Username != "env-user" || cfg.MQTT.Auth.Password != "env-pass" {
		t.Errorf("MQTT auth = %+v", cfg.MQTT.Auth)
	}
	if cfg.Driver.PayloadDir != "/env/drivers" {
		t.Errorf("Driver.PayloadDir = %q", cfg.Driver.PayloadDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [not: valid\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "qos out of range",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled without host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Host = ""
			},
			wantErr: "mqtt.broker.host",
		},
		{
			name: "influxdb enabled without token",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
			},
			wantErr: "influxdb.token",
		},
		{
			name: "influxdb enabled without url",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Token = "secret"
				c.InfluxDB.URL = ""
			},
			wantErr: "influxdb.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetSummaryInterval(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.GetSummaryInterval().Seconds(); got != 30 {
		t.Errorf("GetSummaryInterval() = %vs, want 30s", got)
	}
}
