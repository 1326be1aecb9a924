// Package store defines the subsystem's collaborator boundaries: the per-user
// preference document, the note content and file repositories, the
// device-local secret store, and the server-side share-link and recovery-code
// stores. Each boundary ships a file-backed implementation used by the CLI
// and an in-memory implementation used by tests.
package store

import "time"

// Preference document keys consumed by this subsystem. The document is shared
// with other NoteMe features, so writes must merge and never clobber
// unrelated keys.
const (
	KeyEncryptionEnabled  = "encryption_enabled"
	KeyEncryptionSalt     = "encryption_salt"
	KeyFileEncryption     = "file_encryption_enabled"
	KeyIdleTimeoutMinutes = "idle_timeout_minutes"
)

// PreferenceStore is the per-user key-value JSON document.
type PreferenceStore interface {
	// Get returns the full document, never nil.
	Get(userID string) (map[string]any, error)
	// Merge writes the patch keys into the document, leaving others intact.
	Merge(userID string, patch map[string]any) error
	// Delete removes keys entirely. Disabling encryption deletes its keys
	// rather than flagging them false.
	Delete(userID string, keys ...string) error
}

// EncryptionSettings is the subsystem's view over the preference document.
type EncryptionSettings struct {
	Enabled               bool
	SaltB64               string
	FileEncryptionEnabled bool
}

// ReadEncryptionSettings extracts the encryption fields from the document.
func ReadEncryptionSettings(prefs PreferenceStore, userID string) (EncryptionSettings, error) {
	doc, err := prefs.Get(userID)
	if err != nil {
		return EncryptionSettings{}, err
	}
	var s EncryptionSettings
	s.Enabled, _ = doc[KeyEncryptionEnabled].(bool)
	s.SaltB64, _ = doc[KeyEncryptionSalt].(string)
	s.FileEncryptionEnabled, _ = doc[KeyFileEncryption].(bool)
	return s, nil
}

// ReadIdleTimeoutMinutes extracts the app-lock idle timeout. Zero means the
// timer is disabled.
func ReadIdleTimeoutMinutes(prefs PreferenceStore, userID string) (int, error) {
	doc, err := prefs.Get(userID)
	if err != nil {
		return 0, err
	}
	switch v := doc[KeyIdleTimeoutMinutes].(type) {
	case int:
		return v, nil
	case float64: // JSON numbers decode as float64
		return int(v), nil
	default:
		return 0, nil
	}
}

// Item is one unit of note, meeting, or transcript content.
type Item struct {
	ID      string
	Content string
}

// ContentRepository is the note content collaborator. The subsystem assumes
// eventual consistency and performs no conflict resolution of its own.
type ContentRepository interface {
	List(userID string) ([]Item, error)
	Update(id, content string) error
}

// FileBlob is a stored binary attachment. ContentType lives beside the data,
// not inside it, because an encrypted stream cannot carry it.
type FileBlob struct {
	ID          string
	Data        []byte
	ContentType string
}

// FileRepository is the binary attachment collaborator.
type FileRepository interface {
	List(userID string) ([]FileBlob, error)
	Update(id string, data []byte) error
	Get(id string) (FileBlob, error)
}

// SecretStore is the device-scoped secure store. It holds only the PIN hash.
type SecretStore interface {
	PinHash() (hash string, ok bool, err error)
	SetPinHash(hash string) error
	DeletePinHash() error
}

// ShareLink is an externally shared file link. Owned by the files
// collaborator; this subsystem only consults and updates its password hash.
type ShareLink struct {
	ShareID      string     `json:"share_id"`
	ResourceID   string     `json:"resource_id"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	PasswordHash string     `json:"password_hash,omitempty"`
}

// ShareLinkStore lives on the server side of the RPC boundary; password
// hashes never cross to the client.
type ShareLinkStore interface {
	Create(link ShareLink) error
	Get(shareID string) (ShareLink, error)
	// SetPasswordHash updates every link for the resource. An empty hash
	// clears the password.
	SetPasswordHash(resourceID, hash string) error
}

// RecoveryCodeStore holds hashed one-time codes server-side.
type RecoveryCodeStore interface {
	// Replace installs a new batch, invalidating any previous one.
	Replace(userID, batchID string, hashes []string) error
	// Consume atomically marks the code matching hash as used. It returns
	// false if no unused code matches, so a replayed code cannot pass twice.
	Consume(userID, hash string) (bool, error)
}
