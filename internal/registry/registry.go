package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/padbridge-core/internal/mapping"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Notifier receives registry change events. Implementations are invoked
// after the mutating lock has been released and must not call back into
// the Registry from the notification path if they need both locks in
// reverse order.
type Notifier interface {
	DeviceOnline(d UserDevice)
	DeviceOffline(d UserDevice)
	DeviceRemoved(instanceGUID string, settingsRemoved int)
	SlotAssigned(s UserSetting)
	SlotUnassigned(instanceGUID string, slot int)
	SlotsSwapped(a, b int)
	ProfileChanged(id string)
}

// noopNotifier is a notifier that does nothing.
type noopNotifier struct{}

func (noopNotifier) DeviceOnline(UserDevice)       {}
func (noopNotifier) DeviceOffline(UserDevice)      {}
func (noopNotifier) DeviceRemoved(string, int)     {}
func (noopNotifier) SlotAssigned(UserSetting)      {}
func (noopNotifier) SlotUnassigned(string, int)    {}
func (noopNotifier) SlotsSwapped(int, int)         {}
func (noopNotifier) ProfileChanged(string)         {}

// Registry owns the device and setting collections, the slot table and
// the profile store. It is the single piece of shared state between the
// background device-polling thread and the foreground interactive
// thread.
//
// Each collection is guarded by its own lock. Operations touching only
// one collection hold only that lock; operations touching both (such as
// RemoveDevice) acquire the device lock first, release it, then acquire
// the settings lock. The two mutations are deliberately not atomic
// relative to each other: a racing reader can observe the device gone
// while its settings have not yet cascaded. That window is an accepted
// tradeoff in favour of lock striping over a single coarse lock.
//
// Lock order when multiple locks are needed: devices, then settings,
// then profiles. All critical sections are O(n) scans over small
// in-memory lists; no operation performs I/O or blocks on another
// thread's work.
//
// All public methods are thread-safe. Returned records are always
// copies; callers never observe concurrent mutation of a returned
// value.
type Registry struct {
	devMu   sync.RWMutex
	devices []UserDevice

	setMu       sync.RWMutex
	settings    []UserSetting
	slotCreated [MaxPads]bool
	slotEnabled [MaxPads]bool

	profMu          sync.RWMutex
	profiles        []Profile
	activeProfileID string

	logger   Logger
	notifier Notifier
}

// New creates an empty registry. Construct exactly one per process and
// hand the same instance to the polling and interactive components; the
// registry lives for the process lifetime and has no teardown.
func New() *Registry {
	return &Registry{
		logger:   noopLogger{},
		notifier: noopNotifier{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// SetNotifier sets the change notifier for the registry.
func (r *Registry) SetNotifier(n Notifier) {
	if n != nil {
		r.notifier = n
	}
}

// AddOrGetDevice inserts a device record, or returns the existing
// record unchanged if one with the same InstanceGUID is already known.
// A second enumeration of a known device is therefore a no-op.
//
// A device with no InstanceGUID is assigned a fresh one; a device with
// an unrecognised capability class is rejected with
// ErrInvalidCapabilityClass and an empty class defaults to
// CapabilityOther. The insert is a single atomic section under the
// device lock; no partial record is ever visible to a concurrent
// reader.
func (r *Registry) AddOrGetDevice(d *UserDevice) (UserDevice, error) {
	if d == nil {
		return UserDevice{}, ErrNilDevice
	}

	rec := *d
	if rec.InstanceGUID == "" {
		rec.InstanceGUID = uuid.New().String()
	}
	if rec.CapabilityClass == "" {
		rec.CapabilityClass = mapping.CapabilityOther
	}
	if !rec.CapabilityClass.Valid() {
		return UserDevice{}, ErrInvalidCapabilityClass
	}
	if rec.ConnectedAt.IsZero() {
		rec.ConnectedAt = time.Now().UTC()
	}

	r.devMu.Lock()
	for _, existing := range r.devices {
		if existing.InstanceGUID == rec.InstanceGUID {
			r.devMu.Unlock()
			return existing, nil
		}
	}
	r.devices = append(r.devices, rec)
	r.devMu.Unlock()

	r.logger.Info("device added",
		"instance_guid", rec.InstanceGUID,
		"product", rec.ProductName,
		"class", rec.CapabilityClass,
	)
	return rec, nil
}

// RemoveDevice deletes the device record and cascades to every setting
// owned by it across all slots. The cascade runs regardless of whether
// the device record itself was found. Returns whether the device record
// was removed.
//
// The two collection mutations are each atomic but not mutually atomic;
// see the Registry doc comment.
func (r *Registry) RemoveDevice(instanceGUID string) bool {
	r.devMu.Lock()
	removed := false
	for i, d := range r.devices {
		if d.InstanceGUID == instanceGUID {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			removed = true
			break
		}
	}
	r.devMu.Unlock()

	r.setMu.Lock()
	cascaded := r.removeSettingsLocked(instanceGUID)
	r.setMu.Unlock()

	if removed || cascaded > 0 {
		r.logger.Info("device removed",
			"instance_guid", instanceGUID,
			"record_found", removed,
			"settings_removed", cascaded,
		)
		r.notifier.DeviceRemoved(instanceGUID, cascaded)
	}
	return removed
}

// SetDeviceOnline flips the online flag of a device. Returns false if
// the device is unknown. Used by the discovery collaborator on
// connect/disconnect; the record itself survives a disconnect.
func (r *Registry) SetDeviceOnline(instanceGUID string, online bool) bool {
	r.devMu.Lock()
	var changed *UserDevice
	for i := range r.devices {
		if r.devices[i].InstanceGUID == instanceGUID {
			if r.devices[i].IsOnline != online {
				r.devices[i].IsOnline = online
				cpy := r.devices[i]
				changed = &cpy
			} else {
				r.devMu.Unlock()
				return true
			}
			break
		}
	}
	r.devMu.Unlock()

	if changed == nil {
		return false
	}
	if online {
		r.notifier.DeviceOnline(*changed)
	} else {
		r.notifier.DeviceOffline(*changed)
	}
	r.logger.Debug("device online state changed",
		"instance_guid", instanceGUID, "online", online)
	return true
}

// FindDeviceByInstanceGUID returns a copy of the device record, or
// (zero, false) if the device is unknown. Absence is not an error.
func (r *Registry) FindDeviceByInstanceGUID(instanceGUID string) (UserDevice, bool) {
	r.devMu.RLock()
	defer r.devMu.RUnlock()

	for _, d := range r.devices {
		if d.InstanceGUID == instanceGUID {
			return d, true
		}
	}
	return UserDevice{}, false
}

// GetOnlineDevices returns a snapshot of all currently connected
// devices. The returned slice is freshly allocated and never aliases
// internal storage, so it is safe to iterate after the lock is
// released even while the live collection changes.
func (r *Registry) GetOnlineDevices() []UserDevice {
	r.devMu.RLock()
	defer r.devMu.RUnlock()

	devices := make([]UserDevice, 0, len(r.devices))
	for _, d := range r.devices {
		if d.IsOnline {
			devices = append(devices, d)
		}
	}
	return devices
}

// Devices returns a snapshot of every device record, connected or not.
func (r *Registry) Devices() []UserDevice {
	r.devMu.RLock()
	defer r.devMu.RUnlock()

	devices := make([]UserDevice, len(r.devices))
	copy(devices, r.devices)
	return devices
}

// Summary returns advisory occupancy counts. The device counts and the
// setting count are taken under their own locks independently; no
// cross-collection consistency is implied.
func (r *Registry) Summary() Summary {
	var s Summary

	r.devMu.RLock()
	s.TotalDevices = len(r.devices)
	for _, d := range r.devices {
		if d.IsOnline {
			s.OnlineDevices++
		}
	}
	r.devMu.RUnlock()

	r.setMu.RLock()
	s.TotalSettings = len(r.settings)
	r.setMu.RUnlock()

	return s
}
