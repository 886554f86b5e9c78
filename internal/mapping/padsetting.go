package mapping

import (
	"fmt"
	"hash/crc32"
)

// Neutral defaults for shaping and force-feedback parameters.
// Shaping parameters default to 0 (off); strengths default to full.
const (
	DefaultStrength = 100
)

// PadSetting is the mapping table binding raw device controls to the
// canonical controller layout, plus per-axis shaping parameters and
// force-feedback gains.
//
// All assignment fields hold source strings in the capture format
// ("Axis 0", "Button 12", "POV 0"); an empty string means unmapped.
// Shaping and strength values are percentages.
//
// PadSetting is immutable once committed: any mutation must be followed
// by RefreshChecksum before the setting is handed to other components,
// otherwise drift detection downstream will falsely report the setting
// as unsaved.
type PadSetting struct {
	// Face and system buttons.
	ButtonA     string `json:"button_a"`
	ButtonB     string `json:"button_b"`
	ButtonX     string `json:"button_x"`
	ButtonY     string `json:"button_y"`
	ButtonBack  string `json:"button_back"`
	ButtonStart string `json:"button_start"`
	ButtonGuide string `json:"button_guide"`

	// Shoulder and stick-click buttons.
	LeftShoulder     string `json:"left_shoulder"`
	RightShoulder    string `json:"right_shoulder"`
	LeftThumbButton  string `json:"left_thumb_button"`
	RightThumbButton string `json:"right_thumb_button"`

	// D-pad source. Derived from a POV hat where the device has one.
	DPad string `json:"dpad"`

	// Stick and trigger axes.
	LeftThumbAxisX  string `json:"left_thumb_axis_x"`
	LeftThumbAxisY  string `json:"left_thumb_axis_y"`
	RightThumbAxisX string `json:"right_thumb_axis_x"`
	RightThumbAxisY string `json:"right_thumb_axis_y"`
	LeftTrigger     string `json:"left_trigger"`
	RightTrigger    string `json:"right_trigger"`

	// Dead-zone shaping, percent of axis range. 0 disables.
	LeftDeadZoneX  int `json:"left_dead_zone_x"`
	LeftDeadZoneY  int `json:"left_dead_zone_y"`
	RightDeadZoneX int `json:"right_dead_zone_x"`
	RightDeadZoneY int `json:"right_dead_zone_y"`

	// Anti-dead-zone and linearity shaping, percent. 0 disables.
	LeftAntiDeadZone  int `json:"left_anti_dead_zone"`
	RightAntiDeadZone int `json:"right_anti_dead_zone"`
	LeftLinear        int `json:"left_linear"`
	RightLinear       int `json:"right_linear"`

	// Force feedback gains, percent of motor range.
	ForceEnabled       bool `json:"force_enabled"`
	ForceOverall       int  `json:"force_overall"`
	LeftMotorStrength  int  `json:"left_motor_strength"`
	RightMotorStrength int  `json:"right_motor_strength"`

	// Checksum is the CRC-32 (IEEE) of all fields above, recomputed by
	// RefreshChecksum. Used by external components to detect unsaved or
	// corrupted configuration.
	Checksum uint32 `json:"checksum"`
}

// AxisSource returns the capture-format source string for axis index i.
func AxisSource(i int) string { return fmt.Sprintf("Axis %d", i) }

// ButtonSource returns the capture-format source string for button index i.
// For bitmask-protocol devices the index is the bit position within the
// 16-bit button mask, not an enumeration order.
func ButtonSource(i int) string { return fmt.Sprintf("Button %d", i) }

// POVSource returns the capture-format source string for POV hat index i.
func POVSource(i int) string { return fmt.Sprintf("POV %d", i) }

// NewPadSetting returns a PadSetting with every assignment unmapped and
// all parameters at their neutral defaults, checksum computed.
func NewPadSetting() *PadSetting {
	ps := &PadSetting{
		ForceOverall:       DefaultStrength,
		LeftMotorStrength:  DefaultStrength,
		RightMotorStrength: DefaultStrength,
	}
	ps.RefreshChecksum()
	return ps
}

// Clone returns an independent copy of the PadSetting.
func (p *PadSetting) Clone() *PadSetting {
	if p == nil {
		return nil
	}
	cpy := *p
	return &cpy
}

// RefreshChecksum recomputes and stores the integrity checksum.
// Call this as the final step after any field mutation.
func (p *PadSetting) RefreshChecksum() {
	p.Checksum = p.ComputeChecksum()
}

// ComputeChecksum returns the CRC-32 over the setting's fields without
// storing it. A mismatch against the stored Checksum means the setting
// has been mutated since it was last committed.
func (p *PadSetting) ComputeChecksum() uint32 {
	h := crc32.NewIEEE()

	// Field order is fixed; changing it invalidates every stored
	// checksum, so append only.
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%s|",
		p.ButtonA, p.ButtonB, p.ButtonX, p.ButtonY,
		p.ButtonBack, p.ButtonStart, p.ButtonGuide)
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|",
		p.LeftShoulder, p.RightShoulder,
		p.LeftThumbButton, p.RightThumbButton, p.DPad)
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|",
		p.LeftThumbAxisX, p.LeftThumbAxisY,
		p.RightThumbAxisX, p.RightThumbAxisY,
		p.LeftTrigger, p.RightTrigger)
	fmt.Fprintf(h, "%d|%d|%d|%d|%d|%d|%d|%d|",
		p.LeftDeadZoneX, p.LeftDeadZoneY,
		p.RightDeadZoneX, p.RightDeadZoneY,
		p.LeftAntiDeadZone, p.RightAntiDeadZone,
		p.LeftLinear, p.RightLinear)
	fmt.Fprintf(h, "%t|%d|%d|%d",
		p.ForceEnabled, p.ForceOverall,
		p.LeftMotorStrength, p.RightMotorStrength)

	return h.Sum32()
}

// Committed reports whether the stored checksum matches the current
// field values. False means the setting has unsaved drift.
func (p *PadSetting) Committed() bool {
	return p.Checksum == p.ComputeChecksum()
}
