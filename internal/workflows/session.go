package workflows

import (
	"fmt"

	"github.com/ramiz7171/NoteMe-sub001/internal/applock"
	"github.com/ramiz7171/NoteMe-sub001/internal/audit"
	"github.com/ramiz7171/NoteMe-sub001/internal/configs"
	logger "github.com/ramiz7171/NoteMe-sub001/internal/logging"
	"github.com/ramiz7171/NoteMe-sub001/internal/recovery"
	"github.com/ramiz7171/NoteMe-sub001/internal/share"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
	"github.com/ramiz7171/NoteMe-sub001/internal/vault"
)

// Session bundles the services a signed-in user operates through. It is
// constructed explicitly at command start and torn down with Close; nothing
// here lives in package-level state.
type Session struct {
	UserID    string
	Workspace *configs.Workspace
	Settings  *configs.UserSettings
	Device    *configs.DeviceConfig

	Prefs    store.PreferenceStore
	Vault    *vault.Manager
	AppLock  *applock.Manager
	Recovery *recovery.Manager
	Share    *share.Gate
	Trail    *audit.Trail
	Log      logger.Logger
}

// SessionOptions configures session construction.
type SessionOptions struct {
	// Identity verifies account passwords for the app lock. Nil disables the
	// password factor.
	Identity applock.IdentityVerifier
	// Assertor performs biometric/passkey assertions. Nil disables those
	// factors.
	Assertor applock.PlatformAssertor
	Log      logger.Logger
}

// NewSession wires the file-backed stores under the workspace into the
// domain services. The app lock starts locked whenever any unlock factor is
// configured on this device.
func NewSession(ws *configs.Workspace, settings *configs.UserSettings, opts SessionOptions) (*Session, error) {
	prefs := store.NewFSPreferenceStore(ws.PrefsPath)
	notes := store.NewFSContentRepository(ws.NotesDir)
	files := store.NewFSFileRepository(ws.FilesDir)
	secrets := store.NewFSSecretStore(settings.DeviceSecretsPath)
	links := store.NewFSShareLinkStore(ws.SharesPath)
	codes := store.NewFSRecoveryCodeStore(ws.RecoveryPath)

	userID := settings.Username

	deviceConfig, err := configs.EnsureDeviceConfig(settings)
	if err != nil {
		return nil, fmt.Errorf("loading device config: %w", err)
	}
	credentials := make(map[applock.Factor][]string, len(deviceConfig.Credentials))
	for kind, ids := range deviceConfig.Credentials {
		credentials[applock.Factor(kind)] = ids
	}

	timeoutMins, err := store.ReadIdleTimeoutMinutes(prefs, userID)
	if err != nil {
		return nil, fmt.Errorf("reading idle timeout: %w", err)
	}

	lock, err := applock.NewManager(applock.Config{
		UserID:      userID,
		Secrets:     secrets,
		Identity:    opts.Identity,
		Assertor:    opts.Assertor,
		IdleTimeout: minutesToDuration(timeoutMins),
		Credentials: credentials,
		Log:         opts.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app lock: %w", err)
	}

	return &Session{
		UserID:    userID,
		Workspace: ws,
		Settings:  settings,
		Device:    deviceConfig,
		Prefs:     prefs,
		Vault:     vault.NewManager(userID, prefs, notes, files, opts.Log),
		AppLock:   lock,
		Recovery:  recovery.NewManager(codes),
		Share:     share.NewGate(links),
		Trail:     audit.NewTrail(ws.AuditPath, userID),
		Log:       opts.Log,
	}, nil
}

// Close releases the session key and stops the idle timer. Safe to call on a
// nil session.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.Vault != nil {
		s.Vault.Close()
	}
	if s.AppLock != nil {
		s.AppLock.Lock()
	}
}
