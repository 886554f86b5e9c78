// Package config loads and validates PadBridge Core configuration.
//
// Configuration comes from a YAML file with hardcoded defaults
// underneath and PADBRIDGE_* environment variable overrides on top.
// Secrets (MQTT password, InfluxDB token) should be supplied via the
// environment rather than the file.
package config
