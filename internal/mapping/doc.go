// Package mapping defines the PadSetting mapping table and the default
// mapping synthesizer for PadBridge Core.
//
// A PadSetting translates raw device reports (axis indices, button
// indices, POV hats) into the canonical controller state consumed by the
// virtual output backend. Assignments are recorded as source strings in
// the capture format used throughout PadBridge ("Axis 0", "Button 12",
// "POV 0"); an empty string means the control is unmapped.
//
// # Key Types
//
//   - PadSetting: The mapping table plus shaping and force-feedback
//     parameters and an integrity checksum
//   - CapabilityClass: Coarse classification of a device's reporting
//     protocol, used to select a default mapping table
//
// # Checksum Contract
//
// PadSetting carries a CRC-32 checksum over its mapping and parameter
// fields. External components compare the stored checksum against a fresh
// computation to detect unsaved drift, so RefreshChecksum must be the
// last operation performed before a PadSetting is treated as committed:
//
//	ps := mapping.CreateDefaultPadSetting(mapping.CapabilityXInput)
//	ps.LeftDeadZoneX = 10
//	ps.RefreshChecksum() // recompute before handing the setting on
package mapping
