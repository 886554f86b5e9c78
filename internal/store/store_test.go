package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/nerrad567/padbridge-core/migrations"

	"github.com/nerrad567/padbridge-core/internal/infrastructure/database"
	"github.com/nerrad567/padbridge-core/internal/mapping"
	"github.com/nerrad567/padbridge-core/internal/registry"
)

// openTestStore creates a migrated SQLite database in a temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     false,
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return New(db.DB)
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	state, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on empty database failed: %v", err)
	}
	if len(state.Devices) != 0 || len(state.Settings) != 0 || len(state.Profiles) != 0 {
		t.Errorf("empty database yielded non-empty state: %+v", state)
	}
	if state.ActiveProfileID != "" {
		t.Errorf("ActiveProfileID = %q, want empty", state.ActiveProfileID)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pad := mapping.CreateDefaultPadSetting(mapping.CapabilityXInput)
	connectedAt := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	in := registry.State{
		Devices: []registry.UserDevice{
			{
				InstanceGUID:    "guid-1",
				ProductName:     "Test Pad",
				IsOnline:        true,
				CapabilityClass: mapping.CapabilityXInput,
				ConnectedAt:     connectedAt,
			},
			{
				InstanceGUID:    "guid-2",
				ProductName:     "Second Pad",
				CapabilityClass: mapping.CapabilityOther,
				ConnectedAt:     connectedAt.Add(time.Minute),
			},
		},
		Settings: []registry.UserSetting{
			{InstanceGUID: "guid-1", MapTo: 0, Pad: pad},
			{InstanceGUID: "guid-1", MapTo: 3},
			{InstanceGUID: "guid-2", MapTo: 1},
		},
		Profiles: []registry.Profile{
			{ID: "prof-1", Name: "Racing", SettingGUIDs: []string{"guid-1"}},
		},
		ActiveProfileID: "prof-1",
	}
	in.SlotCreated[0] = true
	in.SlotEnabled[0] = true
	in.SlotEnabled[3] = true

	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(out.Devices) != 2 {
		t.Fatalf("loaded %d devices, want 2", len(out.Devices))
	}
	d := out.Devices[0]
	if d.InstanceGUID != "guid-1" || d.ProductName != "Test Pad" || !d.IsOnline {
		t.Errorf("device[0] = %+v", d)
	}
	if d.CapabilityClass != mapping.CapabilityXInput {
		t.Errorf("CapabilityClass = %q, want %q", d.CapabilityClass, mapping.CapabilityXInput)
	}
	if !d.ConnectedAt.Equal(connectedAt) {
		t.Errorf("ConnectedAt = %v, want %v", d.ConnectedAt, connectedAt)
	}

	if len(out.Settings) != 3 {
		t.Fatalf("loaded %d settings, want 3", len(out.Settings))
	}
	withPad := out.Settings[0]
	if withPad.InstanceGUID != "guid-1" || withPad.MapTo != 0 {
		t.Errorf("settings[0] = %+v", withPad)
	}
	if withPad.Pad == nil {
		t.Fatal("pad lost in round trip")
	}
	if withPad.Pad.ButtonA != pad.ButtonA || withPad.Pad.Checksum != pad.Checksum {
		t.Errorf("pad round trip mismatch: got %+v", withPad.Pad)
	}
	if !withPad.Pad.Committed() {
		t.Error("loaded pad should still be committed")
	}
	if out.Settings[1].Pad != nil {
		t.Error("padless setting gained a pad")
	}

	if !out.SlotCreated[0] || !out.SlotEnabled[0] || !out.SlotEnabled[3] {
		t.Errorf("slot flags lost: created=%v enabled=%v", out.SlotCreated, out.SlotEnabled)
	}
	if out.SlotCreated[3] {
		t.Error("slot 3 created flag set unexpectedly")
	}

	if len(out.Profiles) != 1 {
		t.Fatalf("loaded %d profiles, want 1", len(out.Profiles))
	}
	p := out.Profiles[0]
	if p.ID != "prof-1" || p.Name != "Racing" {
		t.Errorf("profile = %+v", p)
	}
	if len(p.SettingGUIDs) != 1 || p.SettingGUIDs[0] != "guid-1" {
		t.Errorf("SettingGUIDs = %v, want [guid-1]", p.SettingGUIDs)
	}
	if out.ActiveProfileID != "prof-1" {
		t.Errorf("ActiveProfileID = %q, want prof-1", out.ActiveProfileID)
	}
}

// Save replaces the previous state entirely.
func TestSaveReplacesPreviousState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := registry.State{
		Devices: []registry.UserDevice{
			{InstanceGUID: "old-guid", CapabilityClass: mapping.CapabilityOther, ConnectedAt: time.Now().UTC()},
		},
		Settings:        []registry.UserSetting{{InstanceGUID: "old-guid", MapTo: 7}},
		ActiveProfileID: "",
	}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}

	second := registry.State{
		Devices: []registry.UserDevice{
			{InstanceGUID: "new-guid", CapabilityClass: mapping.CapabilityStandardGamepad, ConnectedAt: time.Now().UTC()},
		},
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(out.Devices) != 1 || out.Devices[0].InstanceGUID != "new-guid" {
		t.Errorf("devices = %+v, want only new-guid", out.Devices)
	}
	if len(out.Settings) != 0 {
		t.Errorf("settings = %+v, want empty", out.Settings)
	}
}

// Round trip through the registry itself: snapshot, save, load,
// restore.
func TestRegistryPersistenceCycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	src := registry.New()
	if _, err := src.AddOrGetDevice(&registry.UserDevice{
		InstanceGUID:    "guid-1",
		ProductName:     "Cycle Pad",
		CapabilityClass: mapping.CapabilityStandardGamepad,
	}); err != nil {
		t.Fatalf("AddOrGetDevice() failed: %v", err)
	}
	if _, err := src.AssignDeviceToSlot("guid-1", 2); err != nil {
		t.Fatalf("AssignDeviceToSlot() failed: %v", err)
	}
	pad := mapping.CreateDefaultPadSetting(mapping.CapabilityStandardGamepad)
	if err := src.AttachPadSetting("guid-1", 2, pad); err != nil {
		t.Fatalf("AttachPadSetting() failed: %v", err)
	}

	if err := s.Save(ctx, src.Snapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	state, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	dst := registry.New()
	dst.Restore(state)

	setting, found := dst.FindSettingByInstanceGUIDAndSlot("guid-1", 2)
	if !found || setting.Pad == nil {
		t.Fatal("setting with pad lost in persistence cycle")
	}
	if setting.Pad.ButtonA != "Button 0" {
		t.Errorf("pad ButtonA = %q, want %q", setting.Pad.ButtonA, "Button 0")
	}
}
