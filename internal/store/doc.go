// Package store implements the persistence collaborator for the
// PadBridge registry.
//
// On startup Load reads the persisted device records, slot settings,
// slot flags and profiles into a registry.State for Registry.Restore;
// on save it writes Registry.Snapshot back in a single transaction.
// The registry core stays unaware of the storage format.
package store
