package registry

import (
	"fmt"

	"github.com/google/uuid"
)

// Profiles returns a snapshot copy of all named profiles.
func (r *Registry) Profiles() []Profile {
	r.profMu.RLock()
	defer r.profMu.RUnlock()

	profiles := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p.clone())
	}
	return profiles
}

// UpsertProfile inserts the profile, or replaces the existing profile
// with the same ID. A profile without an ID is assigned a fresh one.
// Returns the stored profile.
func (r *Registry) UpsertProfile(p Profile) Profile {
	stored := p.clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	r.profMu.Lock()
	replaced := false
	for i := range r.profiles {
		if r.profiles[i].ID == stored.ID {
			r.profiles[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		r.profiles = append(r.profiles, stored)
	}
	r.profMu.Unlock()

	r.logger.Info("profile stored", "id", stored.ID, "name", stored.Name, "replaced", replaced)
	return stored.clone()
}

// RemoveProfile deletes a profile. If the removed profile was active,
// the active pointer falls back to the unnamed root profile. Returns
// whether a profile was removed.
func (r *Registry) RemoveProfile(id string) bool {
	r.profMu.Lock()
	removed := false
	for i, p := range r.profiles {
		if p.ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			removed = true
			break
		}
	}
	cleared := removed && r.activeProfileID == id
	if cleared {
		r.activeProfileID = ""
	}
	r.profMu.Unlock()

	if removed {
		r.logger.Info("profile removed", "id", id)
		if cleared {
			r.notifier.ProfileChanged("")
		}
	}
	return removed
}

// SetActiveProfile switches the in-effect profile. An empty id selects
// the unnamed root profile; any other id must name an existing profile
// or ErrProfileNotFound is returned. The external auto-switch policy
// drives this; the registry only records the pointer.
func (r *Registry) SetActiveProfile(id string) error {
	r.profMu.Lock()
	if id != "" {
		found := false
		for _, p := range r.profiles {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			r.profMu.Unlock()
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
	}
	changed := r.activeProfileID != id
	r.activeProfileID = id
	r.profMu.Unlock()

	if changed {
		r.logger.Info("active profile changed", "id", id)
		r.notifier.ProfileChanged(id)
	}
	return nil
}

// ActiveProfileID returns the id of the in-effect profile; empty means
// the unnamed root profile.
func (r *Registry) ActiveProfileID() string {
	r.profMu.RLock()
	defer r.profMu.RUnlock()
	return r.activeProfileID
}

// ActiveProfile returns a copy of the in-effect named profile, or
// (zero, false) when the root profile is active.
func (r *Registry) ActiveProfile() (Profile, bool) {
	r.profMu.RLock()
	defer r.profMu.RUnlock()

	if r.activeProfileID == "" {
		return Profile{}, false
	}
	for _, p := range r.profiles {
		if p.ID == r.activeProfileID {
			return p.clone(), true
		}
	}
	return Profile{}, false
}
