// Package audit provides audit trail logging for NoteMe operations.
//
// Every security-relevant operation (vault enable/disable, lock and
// unlock, recovery code use, share password changes) is recorded in a
// workspace-level audit log. Entries record that something happened,
// never the secret involved: no passphrases, keys, PINs, or recovery
// codes ever reach the log.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	.noteme/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - User the operation ran as
//   - Operation name
//   - Operation-specific details (item counts, share IDs, outcomes)
//
// # Usage
//
// Construct a Trail once per session and log through it:
//
//	trail := audit.NewTrail(ws.AuditPath, username)
//	trail.Log(audit.Entry{Operation: "vault.enable", ItemsTotal: n})
//
// A Trail with an empty path discards entries, so callers can log
// unconditionally.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Operations should never
// fail just because audit logging failed.
//
// # Reading Logs
//
// Use Trail.ReadEntries to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
