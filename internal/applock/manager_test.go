package applock

import (
	"context"
	"errors"
	"testing"
	"time"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	logger "github.com/ramiz7171/NoteMe-sub001/internal/logging"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

type stubIdentity struct {
	password string
	err      error
}

func (s stubIdentity) VerifyPassword(ctx context.Context, userID, password string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return password == s.password, nil
}

type stubAssertor struct {
	approve bool
}

func (s stubAssertor) Assert(ctx context.Context, factor Factor, credentialID string) (bool, error) {
	return s.approve, nil
}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	if cfg.Secrets == nil {
		cfg.Secrets = store.NewMemorySecretStore()
	}
	cfg.Log = logger.Logger{}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestInitialState_UnlockedWithoutFactors(t *testing.T) {
	m := newTestManager(t, Config{UserID: "u1"})
	if m.Locked() {
		t.Error("no factor configured, app must start unlocked")
	}
}

func TestInitialState_LockedWithPin(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	if err := seed.SetPIN("4821"); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}

	// Relaunch: a fresh manager over the same secret store starts locked.
	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	if !m.Locked() {
		t.Error("PIN configured, app must start locked")
	}
}

func TestInitialState_LockedWithRegisteredPasskey(t *testing.T) {
	m := newTestManager(t, Config{
		UserID:      "u1",
		Credentials: map[Factor][]string{FactorPasskey: {"cred-1"}},
	})
	if !m.Locked() {
		t.Error("passkey registered, app must start locked")
	}
}

func TestUnlockWithPIN(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	if err := seed.SetPIN("4821"); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}
	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets})

	if err := m.UnlockWithPIN("0000"); !errors.Is(err, kerrors.ErrLockFactorMismatch) {
		t.Errorf("wrong PIN error = %v, want ErrLockFactorMismatch", err)
	}
	if !m.Locked() {
		t.Fatal("wrong PIN unlocked the app")
	}

	// A mismatch is retryable.
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("correct PIN failed: %v", err)
	}
	if m.Locked() {
		t.Error("correct PIN did not unlock")
	}
}

func TestUnlockWithPIN_NotSet(t *testing.T) {
	m := newTestManager(t, Config{UserID: "u1"})
	if err := m.UnlockWithPIN("4821"); !errors.Is(err, kerrors.ErrPinNotSet) {
		t.Errorf("error = %v, want ErrPinNotSet", err)
	}
}

func TestUnlockWithPassword_DelegatesToIdentityProvider(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")
	m := newTestManager(t, Config{
		UserID:   "u1",
		Secrets:  secrets,
		Identity: stubIdentity{password: "hunter2"},
	})

	if err := m.UnlockWithPassword(context.Background(), "wrong"); !errors.Is(err, kerrors.ErrLockFactorMismatch) {
		t.Errorf("wrong password error = %v, want ErrLockFactorMismatch", err)
	}
	// Switchable to another factor after a mismatch.
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("PIN after password mismatch failed: %v", err)
	}

	m.Lock()
	if err := m.UnlockWithPassword(context.Background(), "hunter2"); err != nil {
		t.Fatalf("correct password failed: %v", err)
	}
	if m.Locked() {
		t.Error("correct password did not unlock")
	}
}

func TestUnlockWithPassword_NoIdentityProvider(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")
	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets})

	if err := m.UnlockWithPassword(context.Background(), "hunter2"); !errors.Is(err, kerrors.ErrFactorUnavailable) {
		t.Errorf("error = %v, want ErrFactorUnavailable", err)
	}
	if !m.Locked() {
		t.Error("unavailable factor must not unlock")
	}
}

func TestUnlockWithAssertion_NoAssertor(t *testing.T) {
	m := newTestManager(t, Config{
		UserID:      "u1",
		Credentials: map[Factor][]string{FactorPasskey: {"key-1"}},
	})

	if err := m.UnlockWithPasskey(context.Background(), "key-1"); !errors.Is(err, kerrors.ErrFactorUnavailable) {
		t.Errorf("error = %v, want ErrFactorUnavailable", err)
	}
	if !m.Locked() {
		t.Error("unavailable factor must not unlock")
	}
}

func TestUnlockWithAssertion(t *testing.T) {
	m := newTestManager(t, Config{
		UserID:      "u1",
		Assertor:    stubAssertor{approve: true},
		Credentials: map[Factor][]string{FactorBiometric: {"finger-1"}},
	})

	if err := m.UnlockWithBiometric(context.Background(), "unknown"); !errors.Is(err, kerrors.ErrCredentialNotRegistered) {
		t.Errorf("unregistered credential error = %v, want ErrCredentialNotRegistered", err)
	}
	if err := m.UnlockWithBiometric(context.Background(), "finger-1"); err != nil {
		t.Fatalf("biometric unlock failed: %v", err)
	}
	if m.Locked() {
		t.Error("assertion did not unlock")
	}

	m.Lock()
	denied := newTestManager(t, Config{
		UserID:      "u1",
		Assertor:    stubAssertor{approve: false},
		Credentials: map[Factor][]string{FactorPasskey: {"key-1"}},
	})
	if err := denied.UnlockWithPasskey(context.Background(), "key-1"); !errors.Is(err, kerrors.ErrLockFactorMismatch) {
		t.Errorf("denied assertion error = %v, want ErrLockFactorMismatch", err)
	}
}

func TestIdleTimer_AutoLocks(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")

	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets, IdleTimeout: 30 * time.Millisecond})
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)
	if !m.Locked() {
		t.Error("idle timer did not lock the session")
	}
}

func TestIdleTimer_TouchResets(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")

	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets, IdleTimeout: 60 * time.Millisecond})
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}

	// Keep touching more often than the timeout; the lock must not fire.
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		m.Touch()
	}
	if m.Locked() {
		t.Error("activity signals did not hold the timer off")
	}

	time.Sleep(120 * time.Millisecond)
	if !m.Locked() {
		t.Error("timer did not fire once activity stopped")
	}
}

func TestIdleTimer_NoFactorsNeverArms(t *testing.T) {
	m := newTestManager(t, Config{UserID: "u1", IdleTimeout: 20 * time.Millisecond})
	if m.Locked() {
		t.Fatal("no factor configured, app must start unlocked")
	}

	m.Touch()
	time.Sleep(60 * time.Millisecond)
	if m.Locked() {
		t.Error("factorless session must stay unlocked regardless of idle timeout")
	}

	// Changing the timeout must not arm the timer either.
	m.SetIdleTimeout(10 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	if m.Locked() {
		t.Error("setting a timeout without a factor locked the session")
	}
}

func TestIdleTimer_StopsWhenLastFactorRemoved(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")

	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets, IdleTimeout: 30 * time.Millisecond})
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if err := m.RemovePIN(); err != nil {
		t.Fatalf("RemovePIN failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)
	if m.Locked() {
		t.Error("timer locked the session after the last factor was removed")
	}
}

func TestIdleTimer_ArmsOnceFactorConfigured(t *testing.T) {
	m := newTestManager(t, Config{UserID: "u1", IdleTimeout: 20 * time.Millisecond})
	if err := m.SetPIN("4821"); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	if !m.Locked() {
		t.Error("idle timer did not arm after the first factor was configured")
	}
}

func TestIdleTimer_ZeroDisables(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	seed := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	_ = seed.SetPIN("4821")

	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets, IdleTimeout: 0})
	if err := m.UnlockWithPIN("4821"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if m.Locked() {
		t.Error("zero timeout must disable the idle timer")
	}
}

func TestRemovePIN(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	m := newTestManager(t, Config{UserID: "u1", Secrets: secrets})
	if err := m.SetPIN("4821"); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}
	if ok, _ := m.PinConfigured(); !ok {
		t.Fatal("PIN not reported configured")
	}
	if err := m.RemovePIN(); err != nil {
		t.Fatalf("RemovePIN failed: %v", err)
	}
	if ok, _ := m.PinConfigured(); ok {
		t.Error("PIN still reported configured after removal")
	}
	// Hash must not linger in the secret store.
	if hash, ok, _ := secrets.PinHash(); ok || hash != "" {
		t.Error("secret store retained the PIN hash")
	}
}
