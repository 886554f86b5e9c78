// Package events bridges registry change notifications to the optional
// MQTT and InfluxDB sinks.
//
// The registry knows only the Notifier interface; this package supplies
// the concrete fan-out so external collaborators (profile auto-switch
// policies, dashboards) can react to device and slot changes without
// polling.
package events
