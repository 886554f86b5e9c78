package mqtt

import "fmt"

// Topic prefixes for the PadBridge event hierarchy.
//
// All topics use the scheme: padbridge/{category}/{id}/{event}
const (
	// TopicPrefix is the base for all PadBridge topics.
	TopicPrefix = "padbridge"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "padbridge/system"
)

// Topics provides builders for PadBridge MQTT topics.
// Using these helpers ensures consistent topic naming across the
// codebase and its external subscribers (auto-switch policies,
// dashboards).
type Topics struct{}

// SystemStatus returns the retained instance status topic.
//
// Example: padbridge/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// DeviceEvent returns the topic for device lifecycle events.
//
// Example: padbridge/device/6f1c.../online
func (Topics) DeviceEvent(instanceGUID, event string) string {
	return fmt.Sprintf("%s/device/%s/%s", TopicPrefix, instanceGUID, event)
}

// SlotEvent returns the topic for slot assignment events.
//
// Example: padbridge/slot/3/assigned
func (Topics) SlotEvent(slot int, event string) string {
	return fmt.Sprintf("%s/slot/%d/%s", TopicPrefix, slot, event)
}

// ProfileEvent returns the topic for profile switch events.
//
// Example: padbridge/profile/changed
func (Topics) ProfileEvent(event string) string {
	return fmt.Sprintf("%s/profile/%s", TopicPrefix, event)
}
