// Package applock implements the coarse session lock that gates the whole
// app behind a PIN, account password, biometric, or passkey. It is
// deliberately independent of the encryption vault: unlocking the app
// restores UI access, not the content key, so encrypted notes stay unreadable
// until the encryption passphrase is supplied separately.
package applock

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	logger "github.com/ramiz7171/NoteMe-sub001/internal/logging"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// Factor identifies an unlock method.
type Factor string

const (
	FactorPIN       Factor = "pin"
	FactorPassword  Factor = "password"
	FactorBiometric Factor = "biometric"
	FactorPasskey   Factor = "passkey"
)

// IdentityVerifier checks the account password against the identity provider.
// The provider is an external collaborator; this package never sees stored
// password material.
type IdentityVerifier interface {
	VerifyPassword(ctx context.Context, userID, password string) (bool, error)
}

// PlatformAssertor performs a platform biometric or passkey assertion for a
// previously registered credential ID.
type PlatformAssertor interface {
	Assert(ctx context.Context, factor Factor, credentialID string) (bool, error)
}

// Config assembles a Manager's collaborators.
type Config struct {
	UserID   string
	Secrets  store.SecretStore
	Identity IdentityVerifier
	Assertor PlatformAssertor
	// IdleTimeout auto-locks after inactivity. Zero disables the timer.
	IdleTimeout time.Duration
	// Credentials are the registered biometric/passkey credential IDs.
	Credentials map[Factor][]string
	Log         logger.Logger
}

// Manager holds the process-local lock state. The lock defaults to Locked on
// relaunch whenever any unlock factor is configured; with no factor the app
// is permanently unlocked.
type Manager struct {
	cfg Config

	mu           sync.Mutex
	locked       bool
	factors      bool
	idle         time.Duration
	timer        *time.Timer
	lastActivity time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Credentials == nil {
		cfg.Credentials = make(map[Factor][]string)
	}
	m := &Manager{cfg: cfg, idle: cfg.IdleTimeout}

	configured, err := m.anyFactorConfigured()
	if err != nil {
		return nil, err
	}
	m.locked = configured
	m.factors = configured
	m.lastActivity = time.Now()
	return m, nil
}

func (m *Manager) anyFactorConfigured() (bool, error) {
	if _, ok, err := m.cfg.Secrets.PinHash(); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}
	for _, ids := range m.cfg.Credentials {
		if len(ids) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Locked reports the current lock state.
func (m *Manager) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// LastActivity returns the time of the most recent activity signal.
func (m *Manager) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// Touch is the shared activity signal. Every registered activity source
// (keystrokes, navigation, pointer movement) funnels into this one call,
// which resets the idle timer.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
	m.resetTimerLocked()
}

// SetIdleTimeout changes the inactivity window. Zero stops the timer.
func (m *Manager) SetIdleTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idle = d
	m.resetTimerLocked()
}

// IdleTimeout returns the configured inactivity window.
func (m *Manager) IdleTimeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.idle
}

func (m *Manager) resetTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	// A session with no unlock factor stays permanently unlocked; arming
	// the timer would lock the user out with nothing to unlock with.
	if m.idle <= 0 || m.locked || !m.factors {
		return
	}
	m.timer = time.AfterFunc(m.idle, m.autoLock)
}

func (m *Manager) autoLock() {
	m.mu.Lock()
	configured := m.factors
	m.mu.Unlock()
	if !configured {
		return
	}
	m.cfg.Log.Infof("Idle timeout reached, locking session")
	m.Lock()
}

// refreshFactors re-reads the configured factors after a credential change
// and re-evaluates the idle timer against the new state.
func (m *Manager) refreshFactors() error {
	configured, err := m.anyFactorConfigured()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factors = configured
	m.resetTimerLocked()
	return nil
}

// Lock transitions to Locked immediately. It is not transactional with
// in-flight work: an operation that already passed the gate completes.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = false
	m.lastActivity = time.Now()
	m.resetTimerLocked()
}

// UnlockWithPIN compares the PIN against the device-local credential hash.
func (m *Manager) UnlockWithPIN(pin string) error {
	hash, ok, err := m.cfg.Secrets.PinHash()
	if err != nil {
		return err
	}
	if !ok {
		return kerrors.ErrPinNotSet
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) != nil {
		return kerrors.ErrLockFactorMismatch
	}
	m.unlock()
	return nil
}

// UnlockWithPassword delegates to the identity provider.
func (m *Manager) UnlockWithPassword(ctx context.Context, password string) error {
	if m.cfg.Identity == nil {
		return kerrors.ErrFactorUnavailable
	}
	ok, err := m.cfg.Identity.VerifyPassword(ctx, m.cfg.UserID, password)
	if err != nil {
		return err
	}
	if !ok {
		return kerrors.ErrLockFactorMismatch
	}
	m.unlock()
	return nil
}

// UnlockWithBiometric runs a platform assertion for a registered biometric
// credential.
func (m *Manager) UnlockWithBiometric(ctx context.Context, credentialID string) error {
	return m.unlockWithAssertion(ctx, FactorBiometric, credentialID)
}

// UnlockWithPasskey runs a platform assertion for a registered passkey.
func (m *Manager) UnlockWithPasskey(ctx context.Context, credentialID string) error {
	return m.unlockWithAssertion(ctx, FactorPasskey, credentialID)
}

func (m *Manager) unlockWithAssertion(ctx context.Context, factor Factor, credentialID string) error {
	if m.cfg.Assertor == nil {
		return kerrors.ErrFactorUnavailable
	}
	if !m.credentialRegistered(factor, credentialID) {
		return kerrors.ErrCredentialNotRegistered
	}
	ok, err := m.cfg.Assertor.Assert(ctx, factor, credentialID)
	if err != nil {
		return err
	}
	if !ok {
		return kerrors.ErrLockFactorMismatch
	}
	m.unlock()
	return nil
}

func (m *Manager) credentialRegistered(factor Factor, credentialID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.cfg.Credentials[factor] {
		if id == credentialID {
			return true
		}
	}
	return false
}

// RegisterCredential records a biometric or passkey credential ID in the
// running lock. Persistence across relaunches is the caller's concern; the
// session layer registers through the device config and mirrors here.
func (m *Manager) RegisterCredential(factor Factor, credentialID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Credentials[factor] = append(m.cfg.Credentials[factor], credentialID)
	m.factors = true
	m.resetTimerLocked()
}

// SetPIN hashes and stores a PIN in the device secret store. Only the hash
// ever reaches storage.
func (m *Manager) SetPIN(pin string) error {
	if pin == "" {
		return kerrors.ErrLockFactorMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := m.cfg.Secrets.SetPinHash(string(hash)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factors = true
	m.resetTimerLocked()
	return nil
}

// RemovePIN deletes the device PIN credential. With the last factor gone the
// idle timer stops: there would be nothing left to unlock with.
func (m *Manager) RemovePIN() error {
	if err := m.cfg.Secrets.DeletePinHash(); err != nil {
		return err
	}
	return m.refreshFactors()
}

// PinConfigured reports whether a PIN credential exists on this device.
func (m *Manager) PinConfigured() (bool, error) {
	_, ok, err := m.cfg.Secrets.PinHash()
	return ok, err
}
