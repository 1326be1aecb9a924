// Package vault owns the encryption lifecycle: enabling and disabling content
// encryption with a bulk migration over the repository, and locking and
// unlocking the in-memory session key. The state machine is
// Disabled → Enabling → Enabled/Unlocked ⇄ Enabled/Locked → Disabling → Disabled.
//
// The enabled flag and salt are persisted before migration starts, so an
// interrupted migration leaves a recoverable mixed state: decryption passes
// plaintext items through unchanged, and re-running enable skips items that
// are already encrypted.
package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/ramiz7171/NoteMe-sub001/internal/crypto"
	"github.com/ramiz7171/NoteMe-sub001/internal/envelope"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	logger "github.com/ramiz7171/NoteMe-sub001/internal/logging"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// State is the observable lifecycle state.
type State int

const (
	StateDisabled State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "enabled, locked"
	case StateUnlocked:
		return "enabled, unlocked"
	default:
		return "disabled"
	}
}

// ProgressFunc receives a percentage in [0,100] after each migrated item. The
// sequence is monotonic and always ends at 100, including for an empty
// repository.
type ProgressFunc func(percent int)

// ItemFailure records a single item that could not be migrated.
type ItemFailure struct {
	ID  string
	Err error
}

// Report summarizes a bulk migration.
type Report struct {
	Total    int
	Migrated int
	Skipped  int
	Failed   []ItemFailure
}

// Manager orchestrates key derivation and the content ciphers across the
// content and file repositories. It is the exclusive owner of the session
// key: exactly one live key per signed-in session, nulled on lock, disable,
// and sign-out. Lifecycle operations are serialized internally; a second call
// while one is in flight fails with ErrOperationInFlight.
type Manager struct {
	userID string
	prefs  store.PreferenceStore
	notes  store.ContentRepository
	files  store.FileRepository // may be nil when the workspace has no attachments
	log    logger.Logger

	mu   sync.Mutex
	busy bool
	key  *crypto.SessionKey
}

func NewManager(userID string, prefs store.PreferenceStore, notes store.ContentRepository, files store.FileRepository, log logger.Logger) *Manager {
	return &Manager{userID: userID, prefs: prefs, notes: notes, files: files, log: log}
}

// Settings returns the persisted encryption settings.
func (m *Manager) Settings() (store.EncryptionSettings, error) {
	return store.ReadEncryptionSettings(m.prefs, m.userID)
}

// State reports the current lifecycle state.
func (m *Manager) State() (State, error) {
	settings, err := m.Settings()
	if err != nil {
		return StateDisabled, err
	}
	if !settings.Enabled {
		return StateDisabled, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key != nil {
		return StateUnlocked, nil
	}
	return StateLocked, nil
}

// Unlocked reports whether a live session key is held.
func (m *Manager) Unlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key != nil
}

func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return kerrors.ErrOperationInFlight
	}
	m.busy = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

func (m *Manager) setKey(key *crypto.SessionKey) {
	m.mu.Lock()
	old := m.key
	m.key = key
	m.mu.Unlock()
	if old != nil && old != key {
		old.Zero()
	}
}

func (m *Manager) sessionKey() *crypto.SessionKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key
}

// migration unit: either a text item or a file blob.
type unit struct {
	id   string
	text string
	blob []byte
	file bool
}

func (u unit) encrypted() bool {
	if u.file {
		return envelope.IsEncryptedBinary(u.blob)
	}
	return envelope.IsEncrypted(u.text)
}

func (m *Manager) collectUnits(includeFiles bool) ([]unit, error) {
	items, err := m.notes.List(m.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	units := make([]unit, 0, len(items))
	for _, it := range items {
		units = append(units, unit{id: it.ID, text: it.Content})
	}
	if includeFiles && m.files != nil {
		blobs, err := m.files.List(m.userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		for _, b := range blobs {
			units = append(units, unit{id: b.ID, blob: b.Data, file: true})
		}
	}
	return units, nil
}

// verifyAgainstFirstEncrypted test-decrypts the first already-encrypted unit.
// There is no stored passphrase verifier; a wrong passphrase is only
// detectable by an AEAD failure, and it must be detected before anything is
// written.
func verifyAgainstFirstEncrypted(units []unit, key *crypto.SessionKey) error {
	for _, u := range units {
		if !u.encrypted() {
			continue
		}
		var err error
		if u.file {
			_, err = crypto.DecryptFile(u.blob, key)
		} else {
			_, err = crypto.DecryptContent(u.text, key)
		}
		return err
	}
	return nil
}

// Enable turns content encryption on and migrates every plaintext item to an
// envelope. The enabled flag and salt are persisted before the first item is
// touched. Re-invoking Enable after an interruption is idempotent: the
// persisted salt is reused and already-encrypted items are skipped, but the
// passphrase is first checked against an already-encrypted item so a resume
// under a different passphrase fails loudly instead of splitting the
// repository across two keys.
func (m *Manager) Enable(ctx context.Context, passphrase []byte, onProgress ProgressFunc) (*Report, error) {
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	settings, err := m.Settings()
	if err != nil {
		return nil, err
	}

	resume := settings.Enabled
	var salt []byte
	if resume {
		if salt, err = crypto.DecodeSalt(settings.SaltB64); err != nil {
			return nil, err
		}
		m.log.Infof("Encryption already enabled, resuming migration with the stored salt")
	} else {
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
	}

	key := crypto.DeriveKey(passphrase, salt)

	units, err := m.collectUnits(settings.FileEncryptionEnabled)
	if err != nil {
		key.Zero()
		return nil, err
	}

	if resume {
		if err := verifyAgainstFirstEncrypted(units, key); err != nil {
			key.Zero()
			return nil, err
		}
	} else {
		// Flag and salt go down before the migration so a crash mid-loop
		// leaves a state Enable can resume from.
		if err := m.prefs.Merge(m.userID, map[string]any{
			store.KeyEncryptionEnabled: true,
			store.KeyEncryptionSalt:    crypto.EncodeSalt(salt),
		}); err != nil {
			key.Zero()
			return nil, fmt.Errorf("failed to persist encryption settings: %w", err)
		}
	}

	m.setKey(key)
	return m.migrate(ctx, units, key, true, onProgress)
}

// Disable decrypts every item back to plaintext and strips the persisted
// settings. The passphrase is verified implicitly: derivation uses the stored
// salt, and the first encrypted item touched either decrypts or the whole
// operation aborts with ErrDecryptionFailed before anything is written. The
// settings are only stripped when every item decrypted; otherwise they are
// retained so the remaining envelopes stay recoverable.
func (m *Manager) Disable(ctx context.Context, passphrase []byte, onProgress ProgressFunc) (*Report, error) {
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	settings, err := m.Settings()
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, kerrors.ErrVaultDisabled
	}

	salt, err := crypto.DecodeSalt(settings.SaltB64)
	if err != nil {
		return nil, err
	}
	key := crypto.DeriveKey(passphrase, salt)

	units, err := m.collectUnits(true)
	if err != nil {
		key.Zero()
		return nil, err
	}

	if err := verifyAgainstFirstEncrypted(units, key); err != nil {
		key.Zero()
		return nil, err
	}

	report, err := m.migrate(ctx, units, key, false, onProgress)
	if err != nil {
		key.Zero()
		m.setKey(nil)
		return report, err
	}
	if len(report.Failed) > 0 {
		// Keep flag, salt, and key: stripping them now would orphan the
		// envelopes that failed to decrypt or persist.
		m.setKey(key)
		return report, fmt.Errorf("%w: %d of %d items", kerrors.ErrMigrationIncomplete, len(report.Failed), report.Total)
	}

	if err := m.prefs.Delete(m.userID,
		store.KeyEncryptionEnabled,
		store.KeyEncryptionSalt,
		store.KeyFileEncryption,
	); err != nil {
		return report, fmt.Errorf("failed to clear encryption settings: %w", err)
	}
	key.Zero()
	m.setKey(nil)
	return report, nil
}

// migrate runs the sequential per-item loop. Items are committed one at a
// time and progress is reported after each commit, so the signal stays
// monotonic and an interruption loses at most the in-flight item. A persist
// failure is recorded and the loop continues; prior items are not rolled
// back.
func (m *Manager) migrate(ctx context.Context, units []unit, key *crypto.SessionKey, encrypting bool, onProgress ProgressFunc) (*Report, error) {
	progress := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	report := &Report{Total: len(units)}
	if len(units) == 0 {
		progress(100)
		return report, nil
	}

	for i, u := range units {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if u.encrypted() == encrypting {
			report.Skipped++
			progress((i + 1) * 100 / len(units))
			continue
		}

		out, err := m.transform(u, key, encrypting)
		if err == nil {
			err = m.persist(u, out)
		}
		if err != nil {
			m.log.Warnf("Item %s failed to migrate: %v", u.id, err)
			report.Failed = append(report.Failed, ItemFailure{ID: u.id, Err: err})
		} else {
			report.Migrated++
		}
		progress((i + 1) * 100 / len(units))
	}
	return report, nil
}

func (m *Manager) transform(u unit, key *crypto.SessionKey, encrypting bool) (unit, error) {
	var err error
	switch {
	case u.file && encrypting:
		u.blob, err = crypto.EncryptFile(u.blob, key)
	case u.file:
		u.blob, err = crypto.DecryptFile(u.blob, key)
	case encrypting:
		u.text, err = crypto.EncryptContent(u.text, key)
	default:
		u.text, err = crypto.DecryptContent(u.text, key)
	}
	return u, err
}

func (m *Manager) persist(u, out unit) error {
	if u.file {
		return m.files.Update(u.id, out.blob)
	}
	return m.notes.Update(u.id, out.text)
}

// Unlock re-derives the session key from the stored salt. It touches no
// content; a wrong passphrase is only discovered when an item later fails to
// decrypt.
func (m *Manager) Unlock(passphrase []byte) error {
	if len(passphrase) == 0 {
		return kerrors.ErrEmptyPassphrase
	}
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	settings, err := m.Settings()
	if err != nil {
		return err
	}
	if !settings.Enabled {
		return kerrors.ErrVaultDisabled
	}
	if m.sessionKey() != nil {
		return nil
	}
	salt, err := crypto.DecodeSalt(settings.SaltB64)
	if err != nil {
		return err
	}
	m.setKey(crypto.DeriveKey(passphrase, salt))
	return nil
}

// Lock zeroes and drops the session key. Content stays unreadable until
// Unlock succeeds again. Locking does not interrupt an operation that
// already captured the key.
func (m *Manager) Lock() {
	m.setKey(nil)
}

// OpenContent prepares stored content for display. Plaintext passes through;
// encrypted content requires the live key and surfaces ErrDecryptionFailed
// as-is so callers can show an unreadable-content sentinel instead of
// garbage.
func (m *Manager) OpenContent(content string) (string, error) {
	if !envelope.IsEncrypted(content) {
		return content, nil
	}
	key := m.sessionKey()
	if key == nil {
		return "", kerrors.ErrVaultLocked
	}
	return crypto.DecryptContent(content, key)
}

// DownloadFile fetches a blob, decrypting when possible. On a locked vault
// or an authentication failure it falls back to the stored blob rather than
// failing the download; the second return value reports whether the data is
// plaintext.
func (m *Manager) DownloadFile(id string) (store.FileBlob, bool, error) {
	blob, err := m.files.Get(id)
	if err != nil {
		return store.FileBlob{}, false, err
	}
	if !envelope.IsEncryptedBinary(blob.Data) {
		return blob, true, nil
	}
	key := m.sessionKey()
	if key == nil {
		return blob, false, nil
	}
	plain, err := crypto.DecryptFile(blob.Data, key)
	if err != nil {
		m.log.Warnf("File %s failed to decrypt, returning stored blob: %v", id, err)
		return blob, false, nil
	}
	blob.Data = plain
	return blob, true, nil
}

// SetFileEncryption toggles encryption of file blobs and migrates them in the
// requested direction. The vault must be enabled and unlocked, since the
// migration needs the live key.
func (m *Manager) SetFileEncryption(ctx context.Context, enabled bool, onProgress ProgressFunc) (*Report, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	settings, err := m.Settings()
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, kerrors.ErrVaultDisabled
	}
	key := m.sessionKey()
	if key == nil {
		return nil, kerrors.ErrVaultLocked
	}
	if m.files == nil {
		return &Report{}, nil
	}

	if enabled {
		// Persist the flag first, mirroring Enable's crash posture.
		if err := m.prefs.Merge(m.userID, map[string]any{store.KeyFileEncryption: true}); err != nil {
			return nil, err
		}
	}

	blobs, err := m.files.List(m.userID)
	if err != nil {
		return nil, err
	}
	units := make([]unit, 0, len(blobs))
	for _, b := range blobs {
		units = append(units, unit{id: b.ID, blob: b.Data, file: true})
	}

	report, err := m.migrate(ctx, units, key, enabled, onProgress)
	if err != nil {
		return report, err
	}
	if !enabled {
		if len(report.Failed) > 0 {
			return report, fmt.Errorf("%w: %d of %d files", kerrors.ErrMigrationIncomplete, len(report.Failed), report.Total)
		}
		if err := m.prefs.Merge(m.userID, map[string]any{store.KeyFileEncryption: false}); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Close zeroes the key at sign-out.
func (m *Manager) Close() {
	m.setKey(nil)
}
