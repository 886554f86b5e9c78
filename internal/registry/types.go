package registry

import (
	"time"

	"github.com/nerrad567/padbridge-core/internal/mapping"
)

// MaxPads is the number of virtual controller output slots: four legacy
// Xbox-compatible slots plus the extended range. Fixed at compile time,
// not user-configurable.
const MaxPads = 8

// UserDevice is one physically enumerated input device. A record exists
// for as long as the device is known to the registry: disconnecting
// merely flips IsOnline, only RemoveDevice deletes the record.
type UserDevice struct {
	// InstanceGUID is the stable identity key, unique per physical
	// device instance, assigned at discovery.
	InstanceGUID string `json:"instance_guid"`

	// ProductName is the human-readable device name as enumerated.
	ProductName string `json:"product_name"`

	// IsOnline is true while the device is currently connected.
	IsOnline bool `json:"is_online"`

	// CapabilityClass selects the default-mapping strategy for the
	// device.
	CapabilityClass mapping.CapabilityClass `json:"capability_class"`

	// ConnectedAt is when the device was first enumerated.
	ConnectedAt time.Time `json:"connected_at"`
}

// UserSetting binds one device to one output slot. In multi-slot mode
// the (InstanceGUID, MapTo) pair is unique: a device has at most one
// setting per slot but may hold settings across many distinct slots.
type UserSetting struct {
	// InstanceGUID references the owning UserDevice.
	InstanceGUID string `json:"instance_guid"`

	// MapTo is the output slot index, 0 <= MapTo < MaxPads.
	MapTo int `json:"map_to"`

	// Pad is the mapping table for this binding. It is attached lazily
	// by the caller after assignment; a nil Pad means no mapping has
	// been synthesized or captured yet.
	Pad *mapping.PadSetting `json:"pad,omitempty"`
}

// clone returns an independent copy of the setting. The Pad is deep
// copied so snapshots never alias registry-owned state.
func (s UserSetting) clone() UserSetting {
	cpy := s
	cpy.Pad = s.Pad.Clone()
	return cpy
}

// Profile is a named configuration snapshot referencing a subset of
// settings. Profiles are passive registry state; an external switch
// policy decides which one is active.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SettingGUIDs lists the instance GUIDs whose settings belong to
	// this profile.
	SettingGUIDs []string `json:"setting_guids,omitempty"`
}

// clone returns an independent copy of the profile.
func (p Profile) clone() Profile {
	cpy := p
	if p.SettingGUIDs != nil {
		cpy.SettingGUIDs = make([]string, len(p.SettingGUIDs))
		copy(cpy.SettingGUIDs, p.SettingGUIDs)
	}
	return cpy
}

// Summary is an advisory view of registry occupancy. The two counts are
// computed under separate locks, so they are not mutually consistent;
// do not base control decisions on them.
type Summary struct {
	OnlineDevices int `json:"online_devices"`
	TotalDevices  int `json:"total_devices"`
	TotalSettings int `json:"total_settings"`
}

// ToggleResult is the outcome of ToggleDeviceSlotAssignment: either the
// pair transitioned to Assigned (Setting holds the new binding) or to
// Unassigned (Setting is the zero value).
type ToggleResult struct {
	Assigned bool
	Setting  UserSetting
}

// State is a consistent export of all registry collections, used by the
// persistence collaborator for startup load and shutdown save.
type State struct {
	Devices         []UserDevice  `json:"devices"`
	Settings        []UserSetting `json:"settings"`
	SlotCreated     [MaxPads]bool `json:"slot_created"`
	SlotEnabled     [MaxPads]bool `json:"slot_enabled"`
	Profiles        []Profile     `json:"profiles"`
	ActiveProfileID string        `json:"active_profile_id"`
}
