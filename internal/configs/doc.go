// Package configs manages device and workspace configuration for NoteMe.
//
// Configuration lives at two levels:
//
//   - Device config: <os config dir>/noteme/config.toml (device identity,
//     registered unlock credentials)
//   - Workspace: a .noteme directory rooting the note tree
//
// # Device Configuration
//
// The device config stores:
//   - Device identity (hostname, UUID, creation time)
//   - Registered biometric and passkey credential IDs
//
// The device UUID is auto-generated on first use. Credential IDs are
// opaque identifiers; the PIN hash is never stored here. It lives in a
// separate 0600 secret store file standing in for the platform keychain.
//
// # Workspace
//
// A workspace is any directory containing a .noteme subdirectory:
//
//	.noteme/
//	    notes/         one file per note
//	    files/         uploaded file blobs
//	    prefs.json     per-user preference document
//	    shares.json    share links and password hashes
//	    recovery.json  hashed one-time recovery codes
//	    audit.jsonl    append-only audit trail
//
// ResolveWorkspace walks up the directory tree from the working
// directory to find the nearest .noteme directory, so commands work
// from anywhere inside a workspace.
//
// # Settings
//
// UserSettings is constructed explicitly at session start (no package
// init), so tests and alternate sessions can point it at a temp
// directory with NewUserSettingsAt.
package configs
