package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteRegistrySummary records registry occupancy counts.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Called on a ticker by the telemetry loop.
func (c *Client) WriteRegistrySummary(onlineDevices, totalDevices, totalSettings int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"registry_summary",
		map[string]string{},
		map[string]interface{}{
			"online_devices": onlineDevices,
			"total_devices":  totalDevices,
			"total_settings": totalSettings,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDeviceTransition records a device connect/disconnect edge.
func (c *Client) WriteDeviceTransition(instanceGUID string, online bool) {
	if !c.IsConnected() {
		return
	}

	value := 0
	if online {
		value = 1
	}
	point := write.NewPoint(
		"device_transition",
		map[string]string{
			"instance_guid": instanceGUID,
		},
		map[string]interface{}{
			"online": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
