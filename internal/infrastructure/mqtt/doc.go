// Package mqtt wraps the paho MQTT client for publishing PadBridge
// registry events.
//
// External collaborators (the profile auto-switch policy, remote
// dashboards) subscribe to the padbridge/# hierarchy instead of polling
// the registry. The connection carries a retained status message plus a
// Last Will so subscribers can tell a live instance from a dead one.
package mqtt
