package registry

// Snapshot exports a deep copy of all registry collections. The three
// locks are acquired in the canonical order (devices, settings,
// profiles) and held together, so the export is mutually consistent.
// This is the one operation that needs a consistent multi-collection
// view, used by the persistence collaborator on save.
func (r *Registry) Snapshot() State {
	r.devMu.RLock()
	r.setMu.RLock()
	r.profMu.RLock()
	defer r.profMu.RUnlock()
	defer r.setMu.RUnlock()
	defer r.devMu.RUnlock()

	s := State{
		Devices:         make([]UserDevice, len(r.devices)),
		Settings:        make([]UserSetting, 0, len(r.settings)),
		SlotCreated:     r.slotCreated,
		SlotEnabled:     r.slotEnabled,
		Profiles:        make([]Profile, 0, len(r.profiles)),
		ActiveProfileID: r.activeProfileID,
	}
	copy(s.Devices, r.devices)
	for _, setting := range r.settings {
		s.Settings = append(s.Settings, setting.clone())
	}
	for _, p := range r.profiles {
		s.Profiles = append(s.Profiles, p.clone())
	}
	return s
}

// Restore replaces all registry state with the given export. Intended
// for the persistence collaborator at startup, before the polling and
// interactive components attach. Settings bound to out-of-range slots
// are dropped rather than restored.
func (r *Registry) Restore(s State) {
	r.devMu.Lock()
	r.setMu.Lock()
	r.profMu.Lock()
	defer r.profMu.Unlock()
	defer r.setMu.Unlock()
	defer r.devMu.Unlock()

	r.devices = make([]UserDevice, len(s.Devices))
	copy(r.devices, s.Devices)

	r.settings = r.settings[:0]
	dropped := 0
	for _, setting := range s.Settings {
		if setting.MapTo < 0 || setting.MapTo >= MaxPads {
			dropped++
			continue
		}
		r.settings = append(r.settings, setting.clone())
	}
	r.slotCreated = s.SlotCreated
	r.slotEnabled = s.SlotEnabled

	r.profiles = make([]Profile, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		r.profiles = append(r.profiles, p.clone())
	}
	r.activeProfileID = s.ActiveProfileID

	if dropped > 0 {
		r.logger.Warn("dropped settings with out-of-range slots on restore", "count", dropped)
	}
	r.logger.Info("registry state restored",
		"devices", len(r.devices),
		"settings", len(r.settings),
		"profiles", len(r.profiles),
	)
}
