package mapping

// Bitmask-protocol button bit positions.
//
// Devices in the xinput capability class report buttons as a 16-bit
// mask; the default mapping assigns each button by its bit position.
// This table is load-bearing: every component that decodes bitmask
// reports must use the identical assignment or mappings silently
// desync. Do not reorder.
const (
	xiBitStart         = 4
	xiBitBack          = 5
	xiBitLeftThumb     = 6
	xiBitRightThumb    = 7
	xiBitLeftShoulder  = 8
	xiBitRightShoulder = 9
	xiBitGuide         = 10
	xiBitA             = 12
	xiBitB             = 13
	xiBitX             = 14
	xiBitY             = 15
)

// Standard gamepad button enumeration order.
const (
	sgButtonA          = 0
	sgButtonB          = 1
	sgButtonX          = 2
	sgButtonY          = 3
	sgLeftShoulder     = 4
	sgRightShoulder    = 5
	sgButtonBack       = 6
	sgButtonStart      = 7
	sgLeftThumbButton  = 8
	sgRightThumbButton = 9
	sgButtonGuide      = 10
)

// CreateDefaultPadSetting synthesizes a default mapping table for a
// device of the given capability class. The function is pure: the same
// class always yields an identical setting.
//
// Classes:
//   - CapabilityXInput: axes 0-5 in LX, LY, RX, RY, LT, RT order,
//     D-pad from POV 0, buttons by bitmask bit position
//   - CapabilityStandardGamepad: axes 0-5 in LX, LY, LT, RX, RY, RT
//     order, D-pad from POV 0, buttons by enumeration order
//   - any other class: all assignments left unmapped; sources must be
//     captured manually
//
// Shaping parameters default to neutral and strengths to full; the
// checksum is computed as the final step, so the returned setting is
// committed.
func CreateDefaultPadSetting(class CapabilityClass) *PadSetting {
	ps := NewPadSetting()

	switch class {
	case CapabilityXInput:
		ps.LeftThumbAxisX = AxisSource(0)
		ps.LeftThumbAxisY = AxisSource(1)
		ps.RightThumbAxisX = AxisSource(2)
		ps.RightThumbAxisY = AxisSource(3)
		ps.LeftTrigger = AxisSource(4)
		ps.RightTrigger = AxisSource(5)

		ps.DPad = POVSource(0)

		ps.ButtonStart = ButtonSource(xiBitStart)
		ps.ButtonBack = ButtonSource(xiBitBack)
		ps.LeftThumbButton = ButtonSource(xiBitLeftThumb)
		ps.RightThumbButton = ButtonSource(xiBitRightThumb)
		ps.LeftShoulder = ButtonSource(xiBitLeftShoulder)
		ps.RightShoulder = ButtonSource(xiBitRightShoulder)
		ps.ButtonGuide = ButtonSource(xiBitGuide)
		ps.ButtonA = ButtonSource(xiBitA)
		ps.ButtonB = ButtonSource(xiBitB)
		ps.ButtonX = ButtonSource(xiBitX)
		ps.ButtonY = ButtonSource(xiBitY)

	case CapabilityStandardGamepad:
		ps.LeftThumbAxisX = AxisSource(0)
		ps.LeftThumbAxisY = AxisSource(1)
		ps.LeftTrigger = AxisSource(2)
		ps.RightThumbAxisX = AxisSource(3)
		ps.RightThumbAxisY = AxisSource(4)
		ps.RightTrigger = AxisSource(5)

		ps.DPad = POVSource(0)

		ps.ButtonA = ButtonSource(sgButtonA)
		ps.ButtonB = ButtonSource(sgButtonB)
		ps.ButtonX = ButtonSource(sgButtonX)
		ps.ButtonY = ButtonSource(sgButtonY)
		ps.LeftShoulder = ButtonSource(sgLeftShoulder)
		ps.RightShoulder = ButtonSource(sgRightShoulder)
		ps.ButtonBack = ButtonSource(sgButtonBack)
		ps.ButtonStart = ButtonSource(sgButtonStart)
		ps.LeftThumbButton = ButtonSource(sgLeftThumbButton)
		ps.RightThumbButton = ButtonSource(sgRightThumbButton)
		ps.ButtonGuide = ButtonSource(sgButtonGuide)

	default:
		// Unclassified device: leave every assignment unmapped.
	}

	ps.RefreshChecksum()
	return ps
}
