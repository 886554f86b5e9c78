package mapping

// CapabilityClass classifies how a physical device reports its controls.
// The class selects which default mapping table the synthesizer produces;
// it says nothing about which slot the device is assigned to.
type CapabilityClass string

// Capability class constants.
const (
	// CapabilityXInput marks devices that report through the legacy
	// bitmask protocol: six axes in fixed order and buttons encoded as
	// bit positions of a 16-bit mask.
	CapabilityXInput CapabilityClass = "xinput"

	// CapabilityStandardGamepad marks devices that follow the
	// standardized gamepad ordering (A=0, B=1, ... with triggers
	// interleaved into the axis list).
	CapabilityStandardGamepad CapabilityClass = "standard_gamepad"

	// CapabilityOther marks unclassified devices. No default mapping is
	// synthesized; sources must be captured manually.
	CapabilityOther CapabilityClass = "other"
)

// AllCapabilityClasses returns all valid capability classes.
func AllCapabilityClasses() []CapabilityClass {
	return []CapabilityClass{
		CapabilityXInput,
		CapabilityStandardGamepad,
		CapabilityOther,
	}
}

// Valid reports whether c is a recognised capability class.
func (c CapabilityClass) Valid() bool {
	switch c {
	case CapabilityXInput, CapabilityStandardGamepad, CapabilityOther:
		return true
	default:
		return false
	}
}
