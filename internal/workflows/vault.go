package workflows

import (
	"context"
	"fmt"

	"github.com/ramiz7171/NoteMe-sub001/internal/audit"
	"github.com/ramiz7171/NoteMe-sub001/internal/vault"
)

// EnableEncryptionOptions configures the enable workflow.
type EnableEncryptionOptions struct {
	// Passphrase derives the content key. The caller owns the slice and
	// should zero it after the call returns.
	Passphrase []byte

	// OnProgress receives migration progress percentages. May be nil.
	OnProgress vault.ProgressFunc
}

// EnableEncryptionResult contains the outcome of enabling encryption.
type EnableEncryptionResult struct {
	Report *vault.Report

	// Resumed indicates an earlier interrupted migration was completed
	// instead of starting from scratch.
	Resumed bool
}

// EnableEncryption turns on content encryption and migrates every stored
// item to ciphertext. If a previous enable was interrupted, the migration
// resumes: already-encrypted items are skipped and the stored salt is
// reused, so the passphrase must match the original.
//
// Returns ErrEmptyPassphrase for an empty passphrase.
// Returns ErrDecryptionFailed if a resume passphrase does not match.
// Returns ErrOperationInFlight if another lifecycle operation is running.
func (s *Session) EnableEncryption(ctx context.Context, opts EnableEncryptionOptions) (*EnableEncryptionResult, error) {
	settings, err := s.Vault.Settings()
	if err != nil {
		return nil, fmt.Errorf("reading encryption settings: %w", err)
	}
	resumed := settings.Enabled

	report, err := s.Vault.Enable(ctx, opts.Passphrase, opts.OnProgress)
	if err != nil {
		s.Trail.Log(audit.Entry{Operation: "vault.enable", Outcome: "failed"})
		return nil, err
	}

	s.Trail.Log(audit.Entry{
		Operation:   "vault.enable",
		Outcome:     outcomeOf(report),
		ItemsTotal:  report.Total,
		ItemsFailed: len(report.Failed),
	})
	return &EnableEncryptionResult{Report: report, Resumed: resumed}, nil
}

// DisableEncryptionOptions configures the disable workflow.
type DisableEncryptionOptions struct {
	Passphrase []byte
	OnProgress vault.ProgressFunc
}

// DisableEncryption decrypts every stored item back to plaintext and strips
// the encryption settings. The settings are removed only after every item
// decrypted cleanly; on partial failure they stay in place so the remaining
// ciphertext is still recoverable.
//
// Returns ErrVaultDisabled if encryption is not enabled.
// Returns ErrDecryptionFailed if the passphrase is wrong.
// Returns ErrMigrationIncomplete when some items failed to decrypt.
func (s *Session) DisableEncryption(ctx context.Context, opts DisableEncryptionOptions) (*vault.Report, error) {
	report, err := s.Vault.Disable(ctx, opts.Passphrase, opts.OnProgress)
	if err != nil {
		entry := audit.Entry{Operation: "vault.disable", Outcome: "failed"}
		if report != nil {
			entry.Outcome = "partial"
			entry.ItemsTotal = report.Total
			entry.ItemsFailed = len(report.Failed)
		}
		s.Trail.Log(entry)
		return report, err
	}

	s.Trail.Log(audit.Entry{
		Operation:  "vault.disable",
		Outcome:    "ok",
		ItemsTotal: report.Total,
	})
	return report, nil
}

// UnlockVault re-derives the session key from the passphrase. No content is
// read or written; a wrong passphrase is only detected when decryption is
// later attempted.
func (s *Session) UnlockVault(passphrase []byte) error {
	if err := s.Vault.Unlock(passphrase); err != nil {
		s.Trail.Log(audit.Entry{Operation: "vault.unlock", Outcome: "failed"})
		return err
	}
	s.Trail.Log(audit.Entry{Operation: "vault.unlock", Outcome: "ok"})
	return nil
}

// LockVault drops the session key. Encrypted content becomes unreadable
// until the next unlock.
func (s *Session) LockVault() {
	s.Vault.Lock()
	s.Trail.Log(audit.Entry{Operation: "vault.lock", Outcome: "ok"})
}

// VaultStatusResult describes the vault for status displays.
type VaultStatusResult struct {
	State                 vault.State
	FileEncryptionEnabled bool
}

// VaultStatus reports the lifecycle state and file encryption setting.
func (s *Session) VaultStatus() (*VaultStatusResult, error) {
	state, err := s.Vault.State()
	if err != nil {
		return nil, err
	}
	settings, err := s.Vault.Settings()
	if err != nil {
		return nil, err
	}
	return &VaultStatusResult{
		State:                 state,
		FileEncryptionEnabled: settings.FileEncryptionEnabled,
	}, nil
}

// SetFileEncryption toggles encryption of uploaded file blobs, migrating
// existing blobs in the chosen direction. Requires an enabled, unlocked
// vault.
func (s *Session) SetFileEncryption(ctx context.Context, enabled bool, onProgress vault.ProgressFunc) (*vault.Report, error) {
	report, err := s.Vault.SetFileEncryption(ctx, enabled, onProgress)
	if err != nil {
		s.Trail.Log(audit.Entry{Operation: "vault.files", Outcome: "failed", FilesEnabled: &enabled})
		return report, err
	}
	s.Trail.Log(audit.Entry{
		Operation:    "vault.files",
		Outcome:      outcomeOf(report),
		ItemsTotal:   report.Total,
		ItemsFailed:  len(report.Failed),
		FilesEnabled: &enabled,
	})
	return report, nil
}

func outcomeOf(report *vault.Report) string {
	if len(report.Failed) > 0 {
		return "partial"
	}
	return "ok"
}
