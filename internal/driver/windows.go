//go:build windows

package driver

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// lookupStrategy is one installed-software registry view to check.
// Strategies are tried in order; a failure to open or read a view
// moves on to the next one rather than failing the query.
type lookupStrategy struct {
	name   string
	root   registry.Key
	path   string
	access uint32
}

// uninstallViews lists the registry views holding installed-software
// entries: the native view first, then the 32-bit view on 64-bit
// systems.
var uninstallViews = []lookupStrategy{
	{
		name:   "native",
		root:   registry.LOCAL_MACHINE,
		path:   `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
		access: registry.READ | registry.WOW64_64KEY,
	},
	{
		name:   "wow6432",
		root:   registry.LOCAL_MACHINE,
		path:   `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
		access: registry.READ | registry.WOW64_32KEY,
	},
}

// scanInstalledVersion walks the uninstall views looking for an entry
// whose DisplayName contains productName and returns its
// DisplayVersion. ErrDriverNotFound is returned only after every view
// has been tried.
func scanInstalledVersion(productName string) (string, error) {
	needle := strings.ToLower(productName)
	for _, view := range uninstallViews {
		if version, ok := view.find(needle); ok {
			return version, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDriverNotFound, productName)
}

// find scans one registry view. Any error on this view yields
// (_, false) so the caller can try the next strategy.
func (s lookupStrategy) find(needle string) (string, bool) {
	key, err := registry.OpenKey(s.root, s.path, s.access)
	if err != nil {
		return "", false
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return "", false
	}

	for _, name := range names {
		sub, err := registry.OpenKey(key, name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		displayName, _, err := sub.GetStringValue("DisplayName")
		if err != nil {
			sub.Close()
			continue
		}
		if !strings.Contains(strings.ToLower(displayName), needle) {
			sub.Close()
			continue
		}
		version, _, err := sub.GetStringValue("DisplayVersion")
		sub.Close()
		if err != nil {
			// Entry matches but carries no version string.
			return "", true
		}
		return version, true
	}
	return "", false
}

// runElevated launches the installer through the shell with the
// "runas" verb, triggering the OS elevation prompt. The launch is
// fire-and-forget: the installer's own UI and exit code are the
// user-visible outcome.
func runElevated(_ context.Context, path, arg string) error {
	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return err
	}
	exe, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	args, err := windows.UTF16PtrFromString(arg)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, exe, args, nil, windows.SW_NORMAL)
}
