// Package database provides SQLite connection management and schema
// migrations for the PadBridge settings database.
//
// The database holds the persisted registry contents: device records,
// slot settings, slot flags and profiles. It is opened once at startup
// with WAL mode and a busy timeout, migrated from embedded SQL files,
// and handed to the store package.
package database
