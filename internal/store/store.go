package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/padbridge-core/internal/mapping"
	"github.com/nerrad567/padbridge-core/internal/registry"
)

// activeProfileKey is the app_state row holding the active profile
// pointer. An absent row means the unnamed root profile.
const activeProfileKey = "active_profile_id"

// Store persists registry state to SQLite. It implements the
// persistence collaborator contract: Load populates the registry on
// startup, Save writes a consistent snapshot back. The registry itself
// never touches the database.
type Store struct {
	db *sql.DB
}

// New creates a SQLite-backed store.
// The db parameter should be an open, migrated SQLite connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the full persisted state. An empty database yields an
// empty state, not an error.
func (s *Store) Load(ctx context.Context) (registry.State, error) {
	var state registry.State

	devices, err := s.loadDevices(ctx)
	if err != nil {
		return registry.State{}, err
	}
	state.Devices = devices

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return registry.State{}, err
	}
	state.Settings = settings

	if err := s.loadSlots(ctx, &state); err != nil {
		return registry.State{}, err
	}

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return registry.State{}, err
	}
	state.Profiles = profiles

	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, activeProfileKey,
	).Scan(&state.ActiveProfileID)
	if err != nil && err != sql.ErrNoRows {
		return registry.State{}, fmt.Errorf("querying active profile: %w", err)
	}

	return state, nil
}

// Save replaces the persisted state with the given snapshot in a
// single transaction.
func (s *Store) Save(ctx context.Context, state registry.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	for _, table := range []string{"devices", "settings", "slots", "profiles", "app_state"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := saveDevices(ctx, tx, state.Devices); err != nil {
		return err
	}
	if err := saveSettings(ctx, tx, state.Settings); err != nil {
		return err
	}
	if err := saveSlots(ctx, tx, state); err != nil {
		return err
	}
	if err := saveProfiles(ctx, tx, state.Profiles); err != nil {
		return err
	}
	if state.ActiveProfileID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO app_state (key, value) VALUES (?, ?)`,
			activeProfileKey, state.ActiveProfileID,
		); err != nil {
			return fmt.Errorf("saving active profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

func (s *Store) loadDevices(ctx context.Context) ([]registry.UserDevice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_guid, product_name, is_online, capability_class, connected_at
		FROM devices
		ORDER BY connected_at`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []registry.UserDevice
	for rows.Next() {
		var (
			d           registry.UserDevice
			online      int
			class       string
			connectedAt string
		)
		if err := rows.Scan(&d.InstanceGUID, &d.ProductName, &online, &class, &connectedAt); err != nil {
			return nil, fmt.Errorf("scanning device row: %w", err)
		}
		d.IsOnline = online != 0
		d.CapabilityClass = mapping.CapabilityClass(class)
		d.ConnectedAt, _ = time.Parse(time.RFC3339, connectedAt) //nolint:errcheck // Format is controlled
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}
	return devices, nil
}

func (s *Store) loadSettings(ctx context.Context) ([]registry.UserSetting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_guid, map_to, pad
		FROM settings
		ORDER BY instance_guid, map_to`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	var settings []registry.UserSetting
	for rows.Next() {
		var (
			setting registry.UserSetting
			padJSON sql.NullString
		)
		if err := rows.Scan(&setting.InstanceGUID, &setting.MapTo, &padJSON); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		if padJSON.Valid && padJSON.String != "" {
			pad := &mapping.PadSetting{}
			if err := json.Unmarshal([]byte(padJSON.String), pad); err != nil {
				return nil, fmt.Errorf("decoding pad setting for %s slot %d: %w",
					setting.InstanceGUID, setting.MapTo, err)
			}
			setting.Pad = pad
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return settings, nil
}

func (s *Store) loadSlots(ctx context.Context, state *registry.State) error {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, created, enabled FROM slots`)
	if err != nil {
		return fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx, created, enabled int
		if err := rows.Scan(&idx, &created, &enabled); err != nil {
			return fmt.Errorf("scanning slot row: %w", err)
		}
		if idx < 0 || idx >= registry.MaxPads {
			continue // schema CHECK keeps idx in range
		}
		state.SlotCreated[idx] = created != 0
		state.SlotEnabled[idx] = enabled != 0
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating slots: %w", err)
	}
	return nil
}

func (s *Store) loadProfiles(ctx context.Context) ([]registry.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, setting_guids FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []registry.Profile
	for rows.Next() {
		var (
			p     registry.Profile
			guids string
		)
		if err := rows.Scan(&p.ID, &p.Name, &guids); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		if guids != "" {
			if err := json.Unmarshal([]byte(guids), &p.SettingGUIDs); err != nil {
				return nil, fmt.Errorf("decoding setting guids for profile %s: %w", p.ID, err)
			}
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func saveDevices(ctx context.Context, tx *sql.Tx, devices []registry.UserDevice) error {
	for _, d := range devices {
		online := 0
		if d.IsOnline {
			online = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO devices (instance_guid, product_name, is_online, capability_class, connected_at)
			VALUES (?, ?, ?, ?, ?)`,
			d.InstanceGUID,
			d.ProductName,
			online,
			string(d.CapabilityClass),
			d.ConnectedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("saving device %s: %w", d.InstanceGUID, err)
		}
	}
	return nil
}

func saveSettings(ctx context.Context, tx *sql.Tx, settings []registry.UserSetting) error {
	for _, setting := range settings {
		var padJSON any
		if setting.Pad != nil {
			data, err := json.Marshal(setting.Pad)
			if err != nil {
				return fmt.Errorf("encoding pad setting for %s slot %d: %w",
					setting.InstanceGUID, setting.MapTo, err)
			}
			padJSON = string(data)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (instance_guid, map_to, pad)
			VALUES (?, ?, ?)`,
			setting.InstanceGUID, setting.MapTo, padJSON,
		); err != nil {
			return fmt.Errorf("saving setting %s slot %d: %w",
				setting.InstanceGUID, setting.MapTo, err)
		}
	}
	return nil
}

func saveSlots(ctx context.Context, tx *sql.Tx, state registry.State) error {
	for idx := 0; idx < registry.MaxPads; idx++ {
		if !state.SlotCreated[idx] && !state.SlotEnabled[idx] {
			continue
		}
		created, enabled := 0, 0
		if state.SlotCreated[idx] {
			created = 1
		}
		if state.SlotEnabled[idx] {
			enabled = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO slots (idx, created, enabled) VALUES (?, ?, ?)`,
			idx, created, enabled,
		); err != nil {
			return fmt.Errorf("saving slot %d: %w", idx, err)
		}
	}
	return nil
}

func saveProfiles(ctx context.Context, tx *sql.Tx, profiles []registry.Profile) error {
	for _, p := range profiles {
		guids, err := json.Marshal(p.SettingGUIDs)
		if err != nil {
			return fmt.Errorf("encoding setting guids for profile %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, name, setting_guids) VALUES (?, ?, ?)`,
			p.ID, p.Name, string(guids),
		); err != nil {
			return fmt.Errorf("saving profile %s: %w", p.ID, err)
		}
	}
	return nil
}
