// Package influxdb wraps the InfluxDB v2 client for PadBridge
// telemetry.
//
// The data written here is advisory: registry occupancy summaries and
// device connect/disconnect edges for long-term dashboards. Nothing in
// the core reads it back.
package influxdb
