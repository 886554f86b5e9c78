package events

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/padbridge-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/padbridge-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/padbridge-core/internal/registry"
)

// Logger is the minimal logging interface the publisher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Publisher fans registry change notifications out to MQTT and
// InfluxDB. Either sink may be nil when disabled in configuration; a
// publisher with both sinks nil is a valid no-op.
//
// Publisher implements registry.Notifier. Notifications are advisory:
// publish failures are logged and dropped, never surfaced to the
// registry operation that triggered them.
type Publisher struct {
	mqttClient   *mqtt.Client
	influxClient *influxdb.Client
	qos          byte
	logger       Logger
}

// New creates a publisher over the given sinks. Pass nil for a sink
// that is disabled.
func New(mqttClient *mqtt.Client, influxClient *influxdb.Client, qos byte, logger Logger) *Publisher {
	return &Publisher{
		mqttClient:   mqttClient,
		influxClient: influxClient,
		qos:          qos,
		logger:       logger,
	}
}

// deviceEvent is the JSON payload for device lifecycle topics.
type deviceEvent struct {
	InstanceGUID string    `json:"instance_guid"`
	ProductName  string    `json:"product_name,omitempty"`
	Online       bool      `json:"online"`
	At           time.Time `json:"at"`
}

// slotEvent is the JSON payload for slot assignment topics.
type slotEvent struct {
	InstanceGUID string    `json:"instance_guid,omitempty"`
	Slot         int       `json:"slot"`
	OtherSlot    *int      `json:"other_slot,omitempty"`
	At           time.Time `json:"at"`
}

// profileEvent is the JSON payload for profile topics.
type profileEvent struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// DeviceOnline implements registry.Notifier.
func (p *Publisher) DeviceOnline(d registry.UserDevice) {
	p.publish(mqtt.Topics{}.DeviceEvent(d.InstanceGUID, "online"), deviceEvent{
		InstanceGUID: d.InstanceGUID,
		ProductName:  d.ProductName,
		Online:       true,
		At:           time.Now().UTC(),
	}, true)
	if p.influxClient != nil {
		p.influxClient.WriteDeviceTransition(d.InstanceGUID, true)
	}
}

// DeviceOffline implements registry.Notifier.
func (p *Publisher) DeviceOffline(d registry.UserDevice) {
	p.publish(mqtt.Topics{}.DeviceEvent(d.InstanceGUID, "online"), deviceEvent{
		InstanceGUID: d.InstanceGUID,
		ProductName:  d.ProductName,
		Online:       false,
		At:           time.Now().UTC(),
	}, true)
	if p.influxClient != nil {
		p.influxClient.WriteDeviceTransition(d.InstanceGUID, false)
	}
}

// DeviceRemoved implements registry.Notifier.
func (p *Publisher) DeviceRemoved(instanceGUID string, settingsRemoved int) {
	p.publish(mqtt.Topics{}.DeviceEvent(instanceGUID, "removed"), struct {
		InstanceGUID    string    `json:"instance_guid"`
		SettingsRemoved int       `json:"settings_removed"`
		At              time.Time `json:"at"`
	}{instanceGUID, settingsRemoved, time.Now().UTC()}, false)
}

// SlotAssigned implements registry.Notifier.
func (p *Publisher) SlotAssigned(s registry.UserSetting) {
	p.publish(mqtt.Topics{}.SlotEvent(s.MapTo, "assigned"), slotEvent{
		InstanceGUID: s.InstanceGUID,
		Slot:         s.MapTo,
		At:           time.Now().UTC(),
	}, false)
}

// SlotUnassigned implements registry.Notifier.
func (p *Publisher) SlotUnassigned(instanceGUID string, slot int) {
	p.publish(mqtt.Topics{}.SlotEvent(slot, "unassigned"), slotEvent{
		InstanceGUID: instanceGUID,
		Slot:         slot,
		At:           time.Now().UTC(),
	}, false)
}

// SlotsSwapped implements registry.Notifier.
func (p *Publisher) SlotsSwapped(a, b int) {
	p.publish(mqtt.Topics{}.SlotEvent(a, "swapped"), slotEvent{
		Slot:      a,
		OtherSlot: &b,
		At:        time.Now().UTC(),
	}, false)
}

// ProfileChanged implements registry.Notifier.
func (p *Publisher) ProfileChanged(id string) {
	p.publish(mqtt.Topics{}.ProfileEvent("changed"), profileEvent{
		ID: id,
		At: time.Now().UTC(),
	}, true)
}

// publish marshals and sends one event. Failures are logged and
// dropped.
func (p *Publisher) publish(topic string, payload any, retained bool) {
	if p.mqttClient == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("encoding event payload failed", "topic", topic, "error", err)
		return
	}
	if err := p.mqttClient.Publish(topic, data, p.qos, retained); err != nil {
		p.logger.Warn("publishing event failed", "topic", topic, "error", err)
		return
	}
	p.logger.Debug("event published", "topic", topic)
}
