// Package registry provides the device/settings registry for PadBridge
// Core.
//
// The registry is the central catalogue mapping physical input devices
// to virtual controller output slots. It is mutated concurrently by the
// background device-polling component and the foreground interactive
// component, and read every output cycle by the virtualization backend.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                          Registry                             │
//	│                                                               │
//	│   UserDevices ──── device lock                                │
//	│   UserSettings ─── settings lock ── SlotCreated/SlotEnabled   │
//	│   Profiles ─────── profile lock ─── ActiveProfileID           │
//	└───────────────────────────────────────────────────────────────┘
//	     ▲                    ▲                      ▲
//	     │ AddOrGetDevice     │ AssignDeviceToSlot   │ GetSettingsForSlot
//	     │ RemoveDevice       │ SwapSlots            │ (every output cycle)
//	  polling backend     interactive UI        output backend
//
// # Concurrency Contract
//
// Each collection has its own lock; operations touching one collection
// hold only that lock. RemoveDevice touches both collections under
// separate lock acquisitions, so its device removal and settings
// cascade are individually atomic but not mutually atomic, an accepted
// tradeoff favouring lock striping. Lock order is always devices before
// settings before profiles. Multi-element reads return disconnected
// snapshot copies, never aliases of live storage.
//
// # Usage
//
//	reg := registry.New()
//	reg.SetLogger(log)
//
//	dev, err := reg.AddOrGetDevice(&registry.UserDevice{
//	    InstanceGUID:    guid,
//	    CapabilityClass: mapping.CapabilityXInput,
//	})
//	if err != nil {
//	    return err
//	}
//	if _, err := reg.AssignDeviceToSlot(dev.InstanceGUID, 0); err != nil {
//	    return err
//	}
//	pad := mapping.CreateDefaultPadSetting(dev.CapabilityClass)
//	if err := reg.AttachPadSetting(dev.InstanceGUID, 0, pad); err != nil {
//	    return err
//	}
package registry
