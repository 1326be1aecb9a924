package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/ramiz7171/NoteMe-sub001/internal/applock"
	"github.com/ramiz7171/NoteMe-sub001/internal/audit"
	"github.com/ramiz7171/NoteMe-sub001/internal/configs"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// SetPIN configures the app-lock PIN for this device. An existing PIN is
// replaced.
func (s *Session) SetPIN(pin string) error {
	if err := s.AppLock.SetPIN(pin); err != nil {
		return err
	}
	s.Trail.Log(audit.Entry{Operation: "lock.set_pin", Outcome: "ok"})
	return nil
}

// RemovePIN deletes the app-lock PIN. If no other factor is configured the
// app stops locking on relaunch.
func (s *Session) RemovePIN() error {
	if err := s.AppLock.RemovePIN(); err != nil {
		return err
	}
	s.Trail.Log(audit.Entry{Operation: "lock.remove_pin", Outcome: "ok"})
	return nil
}

// RegisterLockCredential records a biometric or passkey credential in the
// device config and mirrors it into the running lock, so it survives a
// relaunch and is usable immediately.
func (s *Session) RegisterLockCredential(factor applock.Factor, credentialID string) error {
	if factor != applock.FactorBiometric && factor != applock.FactorPasskey {
		return fmt.Errorf("%w: factor %q takes no credential", kerrors.ErrCredentialNotRegistered, factor)
	}
	if err := configs.RegisterCredential(s.Settings, s.Device, string(factor), credentialID); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	s.AppLock.RegisterCredential(factor, credentialID)
	s.Trail.Log(audit.Entry{Operation: "lock.register_credential", Outcome: "ok", Factor: string(factor)})
	return nil
}

// UnlockAppOptions selects the unlock factor and its secret.
type UnlockAppOptions struct {
	Factor applock.Factor
	// PIN or account password, depending on Factor.
	Secret string
	// CredentialID selects the registered biometric/passkey credential.
	CredentialID string
}

// UnlockApp attempts an app unlock with the chosen factor. Unlocking the
// app does not touch the vault: encrypted notes stay unreadable until the
// encryption passphrase is supplied separately.
//
// Returns ErrLockFactorMismatch when the secret is wrong.
// Returns ErrCredentialNotRegistered for an unknown credential ID.
func (s *Session) UnlockApp(ctx context.Context, opts UnlockAppOptions) error {
	var err error
	switch opts.Factor {
	case applock.FactorPIN:
		err = s.AppLock.UnlockWithPIN(opts.Secret)
	case applock.FactorPassword:
		err = s.AppLock.UnlockWithPassword(ctx, opts.Secret)
	case applock.FactorBiometric:
		err = s.AppLock.UnlockWithBiometric(ctx, opts.CredentialID)
	case applock.FactorPasskey:
		err = s.AppLock.UnlockWithPasskey(ctx, opts.CredentialID)
	default:
		return fmt.Errorf("%w: unknown factor %q", kerrors.ErrLockFactorMismatch, opts.Factor)
	}

	entry := audit.Entry{Operation: "lock.unlock", Factor: string(opts.Factor)}
	if err != nil {
		entry.Outcome = "failed"
		s.Trail.Log(entry)
		return err
	}
	entry.Outcome = "ok"
	s.Trail.Log(entry)
	return nil
}

// SetIdleTimeout persists the auto-lock timeout and applies it to the
// running lock. Zero minutes disables auto-lock.
func (s *Session) SetIdleTimeout(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("idle timeout must not be negative, got %d", minutes)
	}
	patch := map[string]any{store.KeyIdleTimeoutMinutes: minutes}
	if err := s.Prefs.Merge(s.UserID, patch); err != nil {
		return fmt.Errorf("saving idle timeout: %w", err)
	}
	s.AppLock.SetIdleTimeout(minutesToDuration(minutes))
	s.Trail.Log(audit.Entry{Operation: "lock.timeout", Outcome: "ok", TimeoutMins: minutes})
	return nil
}

// LockStatusResult describes the app lock for status displays.
type LockStatusResult struct {
	Locked             bool
	PinConfigured      bool
	IdleTimeoutMinutes int
}

// LockStatus reports the app-lock configuration and current state.
func (s *Session) LockStatus() (*LockStatusResult, error) {
	pinSet, err := s.AppLock.PinConfigured()
	if err != nil {
		return nil, err
	}
	minutes, err := store.ReadIdleTimeoutMinutes(s.Prefs, s.UserID)
	if err != nil {
		return nil, err
	}
	return &LockStatusResult{
		Locked:             s.AppLock.Locked(),
		PinConfigured:      pinSet,
		IdleTimeoutMinutes: minutes,
	}, nil
}

func minutesToDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
