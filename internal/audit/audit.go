package audit

import (
	"encoding/json"
	"os"
	"time"
)

// Entry represents a single audit log entry. Entries record the fact that an
// operation happened, never the passphrase, key, or code involved.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // User the operation ran as.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Outcome      string `json:"outcome,omitempty"`       // ok / failed / partial.
	ItemsTotal   int    `json:"items_total,omitempty"`   // For enable/disable migrations.
	ItemsFailed  int    `json:"items_failed,omitempty"`  // For partial migrations.
	Factor       string `json:"factor,omitempty"`        // For app lock unlocks.
	ShareID      string `json:"share_id,omitempty"`      // For share operations.
	ResourceID   string `json:"resource_id,omitempty"`   // For share operations.
	CodesIssued  int    `json:"codes_issued,omitempty"`  // For recovery generate.
	TimeoutMins  int    `json:"timeout_mins,omitempty"`  // For idle timeout changes.
	FilesEnabled *bool  `json:"files_enabled,omitempty"` // For file encryption toggle.
}

// Trail is an append-only JSON Lines log at a fixed path. A zero-path Trail
// discards entries, so callers can log unconditionally.
type Trail struct {
	path string
	user string
}

// NewTrail creates a trail writing to path, stamping entries with user.
func NewTrail(path, user string) *Trail {
	return &Trail{path: path, user: user}
}

// Log appends an entry. If logging fails it is silently dropped: operations
// should not fail just because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil || t.path == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = t.user
	}

	// #nosec G306 -- the audit log is informational, not secret.
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// Path returns the trail's file path. Empty for a discarding trail.
func (t *Trail) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// ReadEntries reads all entries from the trail.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	if t == nil || t.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
