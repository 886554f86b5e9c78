// Package driver manages the kernel-mode drivers PadBridge depends on:
// the virtual controller bus driver and the HID filter driver.
//
// The registry core never touches this package; it is the
// install/uninstall/version-query collaborator. Install operations
// extract a bundled installer archive to a scratch directory, locate
// the installer package inside it and launch it elevated; the scratch
// directory is removed on success and failure alike. Version queries
// walk an ordered list of lookup strategies over the OS
// installed-software registry views and return the first match.
//
// Everything that touches the OS is Windows-only behind build tags;
// other platforms get ErrUnsupported.
package driver
