package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Domain errors for driver operations.
var (
	// ErrUnknownDriver is returned for a driver name outside the
	// supported set.
	ErrUnknownDriver = errors.New("driver: unknown driver")

	// ErrUnsupported is returned on platforms without driver support.
	ErrUnsupported = errors.New("driver: not supported on this platform")

	// ErrPayloadMissing is returned when the bundled installer archive
	// is absent from the payload directory.
	ErrPayloadMissing = errors.New("driver: installer payload missing")

	// ErrInstallerNotFound is returned when the extracted payload
	// contains no installer package.
	ErrInstallerNotFound = errors.New("driver: no installer package in payload")

	// ErrDriverNotFound is returned by Version when no installed-software
	// entry matches the driver across all registry views.
	ErrDriverNotFound = errors.New("driver: not installed")
)

// Driver identifies one of the supported kernel drivers.
type Driver string

// Supported drivers.
const (
	// VirtualBus is the virtual controller bus driver that backs the
	// output slots.
	VirtualBus Driver = "virtual_bus"

	// HidFilter is the HID filter driver that hides mapped physical
	// devices from other applications.
	HidFilter Driver = "hid_filter"
)

// spec describes where a driver's installer lives and how its
// installed-software entry is named.
type spec struct {
	// productName is matched case-insensitively against DisplayName
	// entries in the installed-software registry.
	productName string

	// payloadArchive is the bundled zip in the payload directory.
	payloadArchive string

	// installerName is the well-known installer filename inside the
	// archive. When absent, the first *.exe or *.msi found is used.
	installerName string
}

var specs = map[Driver]spec{
	VirtualBus: {
		productName:    "PadBridge Virtual Bus Driver",
		payloadArchive: "padbridge-virtual-bus.zip",
		installerName:  "VirtualBusSetup.exe",
	},
	HidFilter: {
		productName:    "PadBridge HID Filter",
		payloadArchive: "padbridge-hid-filter.zip",
		installerName:  "HidFilterSetup.exe",
	},
}

// Logger is the minimal logging interface the manager needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Manager performs install, uninstall and version queries for the
// supported drivers.
type Manager struct {
	payloadDir string
	logger     Logger
}

// NewManager creates a driver manager reading installer payloads from
// payloadDir.
func NewManager(payloadDir string, logger Logger) *Manager {
	return &Manager{payloadDir: payloadDir, logger: logger}
}

// Install extracts the driver's bundled payload to a scratch directory
// and launches the installer elevated. The scratch directory is
// removed on every return path. The OS elevation prompt and installer
// exit code are the user-visible outcome; this method only reports
// launch failures.
func (m *Manager) Install(ctx context.Context, d Driver) error {
	return m.runInstaller(ctx, d, "/install")
}

// Uninstall launches the driver's installer elevated in uninstall
// mode. Payload handling matches Install.
func (m *Manager) Uninstall(ctx context.Context, d Driver) error {
	return m.runInstaller(ctx, d, "/uninstall")
}

// Version returns the installed display version of the driver, or
// ErrDriverNotFound if no installed-software entry matches across all
// registry views checked.
func (m *Manager) Version(d Driver) (string, error) {
	sp, ok := specs[d]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDriver, d)
	}
	return scanInstalledVersion(sp.productName)
}

// runInstaller is the shared payload-extract-and-launch path.
func (m *Manager) runInstaller(ctx context.Context, d Driver, arg string) error {
	sp, ok := specs[d]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDriver, d)
	}

	archive := filepath.Join(m.payloadDir, sp.payloadArchive)
	if _, err := os.Stat(archive); err != nil {
		return fmt.Errorf("%w: %s", ErrPayloadMissing, archive)
	}

	scratch, err := os.MkdirTemp("", "padbridge-driver-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch) //nolint:errcheck // Scratch cleanup runs on all paths

	if err := extractArchive(archive, scratch); err != nil {
		return fmt.Errorf("extracting payload: %w", err)
	}

	installer, err := locateInstaller(scratch, sp.installerName)
	if err != nil {
		return err
	}

	m.logger.Info("launching driver installer",
		"driver", string(d), "installer", installer, "arg", arg)
	if err := runElevated(ctx, installer, arg); err != nil {
		return fmt.Errorf("launching installer: %w", err)
	}
	return nil
}

// locateInstaller finds the installer package inside the extracted
// payload: the well-known primary filename if present, otherwise the
// first *.exe or *.msi encountered.
func locateInstaller(dir, primary string) (string, error) {
	var exact, wildcard string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		name := entry.Name()
		if strings.EqualFold(name, primary) {
			exact = path
			return filepath.SkipAll
		}
		if wildcard == "" {
			switch strings.ToLower(filepath.Ext(name)) {
			case ".exe", ".msi":
				wildcard = path
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scanning payload: %w", err)
	}
	if exact != "" {
		return exact, nil
	}
	if wildcard != "" {
		return wildcard, nil
	}
	return "", ErrInstallerNotFound
}
