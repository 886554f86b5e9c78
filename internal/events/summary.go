package events

import (
	"context"
	"time"

	"github.com/nerrad567/padbridge-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/padbridge-core/internal/registry"
)

// RunSummaryLoop periodically writes the registry's advisory summary
// to InfluxDB until the context is cancelled. It blocks; run it in its
// own goroutine.
func RunSummaryLoop(ctx context.Context, reg *registry.Registry, client *influxdb.Client, interval time.Duration) {
	if client == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := reg.Summary()
			client.WriteRegistrySummary(s.OnlineDevices, s.TotalDevices, s.TotalSettings)
		}
	}
}
