package registry

import "errors"

// Domain errors for the registry package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, registry.ErrSlotOutOfRange) {
//	    // handle invalid slot index
//	}
var (
	// ErrNilDevice is returned when a nil device is passed to insertion.
	ErrNilDevice = errors.New("registry: nil device")

	// ErrInvalidCapabilityClass is returned when a device carries an
	// unrecognised capability class.
	ErrInvalidCapabilityClass = errors.New("registry: invalid capability class")

	// ErrSlotOutOfRange is returned when a slot index falls outside
	// [0, MaxPads). The registry state is left unchanged.
	ErrSlotOutOfRange = errors.New("registry: slot index out of range")

	// ErrSettingNotFound is returned when a mutation targets a
	// device/slot binding that does not exist.
	ErrSettingNotFound = errors.New("registry: setting not found")

	// ErrProfileNotFound is returned when an unknown profile ID is
	// activated.
	ErrProfileNotFound = errors.New("registry: profile not found")
)
