package registry

import (
	"fmt"
	"sort"

	"github.com/nerrad567/padbridge-core/internal/mapping"
)

// validateSlot rejects slot indices outside [0, MaxPads).
func validateSlot(slot int) error {
	if slot < 0 || slot >= MaxPads {
		return fmt.Errorf("%w: %d (valid range 0-%d)", ErrSlotOutOfRange, slot, MaxPads-1)
	}
	return nil
}

// removeSettingsLocked deletes every setting owned by instanceGUID and
// returns how many were removed. Caller must hold setMu.
func (r *Registry) removeSettingsLocked(instanceGUID string) int {
	kept := r.settings[:0]
	removed := 0
	for _, s := range r.settings {
		if s.InstanceGUID == instanceGUID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	// Zero the tail so dropped Pad pointers are collectable.
	for i := len(kept); i < len(r.settings); i++ {
		r.settings[i] = UserSetting{}
	}
	r.settings = kept
	return removed
}

// AssignDeviceToSlot binds a device to an output slot. If the exact
// (device, slot) binding already exists it is returned unchanged;
// otherwise a new setting is created with no PadSetting attached.
// Default-mapping synthesis is deliberately the caller's
// responsibility, so assignment policy and mapping policy can evolve
// independently.
//
// A device may occupy several slots at once: each call with a distinct
// slot produces a distinct setting.
func (r *Registry) AssignDeviceToSlot(instanceGUID string, slot int) (UserSetting, error) {
	if err := validateSlot(slot); err != nil {
		return UserSetting{}, err
	}

	r.setMu.Lock()
	for _, s := range r.settings {
		if s.InstanceGUID == instanceGUID && s.MapTo == slot {
			cpy := s.clone()
			r.setMu.Unlock()
			return cpy, nil
		}
	}
	setting := UserSetting{InstanceGUID: instanceGUID, MapTo: slot}
	r.settings = append(r.settings, setting)
	r.setMu.Unlock()

	r.logger.Info("device assigned to slot",
		"instance_guid", instanceGUID, "slot", slot)
	r.notifier.SlotAssigned(setting)
	return setting, nil
}

// ToggleDeviceSlotAssignment flips the assignment state of the exact
// (device, slot) pair: an existing binding is removed, a missing one is
// created with no PadSetting attached. The result reports which
// transition happened.
func (r *Registry) ToggleDeviceSlotAssignment(instanceGUID string, slot int) (ToggleResult, error) {
	if err := validateSlot(slot); err != nil {
		return ToggleResult{}, err
	}

	r.setMu.Lock()
	for i, s := range r.settings {
		if s.InstanceGUID == instanceGUID && s.MapTo == slot {
			r.settings = append(r.settings[:i], r.settings[i+1:]...)
			r.setMu.Unlock()

			r.logger.Info("device unassigned from slot",
				"instance_guid", instanceGUID, "slot", slot)
			r.notifier.SlotUnassigned(instanceGUID, slot)
			return ToggleResult{Assigned: false}, nil
		}
	}
	setting := UserSetting{InstanceGUID: instanceGUID, MapTo: slot}
	r.settings = append(r.settings, setting)
	r.setMu.Unlock()

	r.logger.Info("device assigned to slot",
		"instance_guid", instanceGUID, "slot", slot)
	r.notifier.SlotAssigned(setting)
	return ToggleResult{Assigned: true, Setting: setting}, nil
}

// UnassignDevice removes every setting for the device across all slots,
// fully disconnecting it from virtual output. Returns how many settings
// were removed.
func (r *Registry) UnassignDevice(instanceGUID string) int {
	r.setMu.Lock()
	removed := r.removeSettingsLocked(instanceGUID)
	r.setMu.Unlock()

	if removed > 0 {
		r.logger.Info("device unassigned from all slots",
			"instance_guid", instanceGUID, "settings_removed", removed)
	}
	return removed
}

// GetAssignedSlots returns the sorted, deduplicated slot indices the
// device is currently bound to.
func (r *Registry) GetAssignedSlots(instanceGUID string) []int {
	r.setMu.RLock()
	seen := make(map[int]struct{})
	for _, s := range r.settings {
		if s.InstanceGUID == instanceGUID {
			seen[s.MapTo] = struct{}{}
		}
	}
	r.setMu.RUnlock()

	slots := make([]int, 0, len(seen))
	for slot := range seen {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}

// FindSettingByInstanceGUIDAndSlot returns the setting for the exact
// (device, slot) pair. If the device has settings but none for that
// slot, the first setting found in iteration order is returned instead;
// this fallback serves callers that need a setting for the device
// rather than the setting for a specific slot. Absence is (zero,
// false), not an error.
func (r *Registry) FindSettingByInstanceGUIDAndSlot(instanceGUID string, slot int) (UserSetting, bool) {
	r.setMu.RLock()
	defer r.setMu.RUnlock()

	var fallback *UserSetting
	for i := range r.settings {
		s := &r.settings[i]
		if s.InstanceGUID != instanceGUID {
			continue
		}
		if s.MapTo == slot {
			return s.clone(), true
		}
		if fallback == nil {
			fallback = s
		}
	}
	if fallback != nil {
		return fallback.clone(), true
	}
	return UserSetting{}, false
}

// GetSettingsForSlot returns copies of every setting bound to the slot.
// The output backend calls this each output cycle; an empty result
// means the slot has no active mapping.
func (r *Registry) GetSettingsForSlot(slot int) ([]UserSetting, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	r.setMu.RLock()
	defer r.setMu.RUnlock()

	var settings []UserSetting
	for _, s := range r.settings {
		if s.MapTo == slot {
			settings = append(settings, s.clone())
		}
	}
	return settings, nil
}

// AttachPadSetting stores a mapping table on the exact (device, slot)
// binding. The pad is copied; the caller's instance is not retained.
// Returns ErrSettingNotFound if the binding does not exist.
func (r *Registry) AttachPadSetting(instanceGUID string, slot int, pad *mapping.PadSetting) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	r.setMu.Lock()
	defer r.setMu.Unlock()

	for i := range r.settings {
		if r.settings[i].InstanceGUID == instanceGUID && r.settings[i].MapTo == slot {
			r.settings[i].Pad = pad.Clone()
			return nil
		}
	}
	return fmt.Errorf("%w: device %s slot %d", ErrSettingNotFound, instanceGUID, slot)
}

// SwapSlots exchanges two slots atomically under the settings lock:
// the created and enabled flags swap, and every setting mapped to a is
// remapped to b and vice versa in a single pass, so no setting is
// remapped twice. Swapping a slot with itself is a no-op.
func (r *Registry) SwapSlots(a, b int) error {
	if err := validateSlot(a); err != nil {
		return err
	}
	if err := validateSlot(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}

	r.setMu.Lock()
	r.slotCreated[a], r.slotCreated[b] = r.slotCreated[b], r.slotCreated[a]
	r.slotEnabled[a], r.slotEnabled[b] = r.slotEnabled[b], r.slotEnabled[a]
	for i := range r.settings {
		switch r.settings[i].MapTo {
		case a:
			r.settings[i].MapTo = b
		case b:
			r.settings[i].MapTo = a
		}
	}
	r.setMu.Unlock()

	r.logger.Info("slots swapped", "a", a, "b", b)
	r.notifier.SlotsSwapped(a, b)
	return nil
}

// SetSlotCreated records explicit user creation of a slot.
func (r *Registry) SetSlotCreated(slot int, created bool) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	r.setMu.Lock()
	r.slotCreated[slot] = created
	r.setMu.Unlock()
	return nil
}

// SlotCreated reports whether the slot has been explicitly created.
func (r *Registry) SlotCreated(slot int) (bool, error) {
	if err := validateSlot(slot); err != nil {
		return false, err
	}
	r.setMu.RLock()
	defer r.setMu.RUnlock()
	return r.slotCreated[slot], nil
}

// SetSlotEnabled records whether virtualization is enabled for a slot.
func (r *Registry) SetSlotEnabled(slot int, enabled bool) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	r.setMu.Lock()
	r.slotEnabled[slot] = enabled
	r.setMu.Unlock()
	return nil
}

// SlotEnabled reports whether virtualization is enabled for the slot.
func (r *Registry) SlotEnabled(slot int) (bool, error) {
	if err := validateSlot(slot); err != nil {
		return false, err
	}
	r.setMu.RLock()
	defer r.setMu.RUnlock()
	return r.slotEnabled[slot], nil
}

// Settings returns a snapshot copy of every setting.
func (r *Registry) Settings() []UserSetting {
	r.setMu.RLock()
	defer r.setMu.RUnlock()

	settings := make([]UserSetting, 0, len(r.settings))
	for _, s := range r.settings {
		settings = append(settings, s.clone())
	}
	return settings
}
