//go:build !windows

package driver

import "context"

// scanInstalledVersion has no installed-software registry to scan off
// Windows.
func scanInstalledVersion(string) (string, error) {
	return "", ErrUnsupported
}

// runElevated has no elevation mechanism off Windows.
func runElevated(context.Context, string, string) error {
	return ErrUnsupported
}
