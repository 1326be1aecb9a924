package configs

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// workspaceDirName is the marker directory that roots a NoteMe workspace.
const workspaceDirName = ".noteme"

// UserSettings locates the per-device configuration. Constructed explicitly
// at session start rather than through package-level init, so tests and
// alternate sessions can point it elsewhere.
type UserSettings struct {
	// ConfigDir holds device config and the local secret store.
	ConfigDir string
	// DeviceSecretsPath is the 0600 file standing in for the platform
	// keychain; it holds only the PIN hash.
	DeviceSecretsPath string
	Username          string
}

// NewUserSettings resolves the device paths under the OS config directory.
// NOTEME_CONFIG_DIR overrides the location, for tests and portable installs.
func NewUserSettings() (*UserSettings, error) {
	username, err := currentUsername()
	if err != nil {
		return nil, err
	}
	dir := os.Getenv("NOTEME_CONFIG_DIR")
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = filepath.Join(configDir, "noteme")
	}
	return &UserSettings{
		ConfigDir:         dir,
		DeviceSecretsPath: filepath.Join(dir, "device_secrets.toml"),
		Username:          username,
	}, nil
}

// NewUserSettingsAt roots the device configuration in an explicit directory.
// Used by tests.
func NewUserSettingsAt(dir, username string) *UserSettings {
	return &UserSettings{
		ConfigDir:         dir,
		DeviceSecretsPath: filepath.Join(dir, "device_secrets.toml"),
		Username:          username,
	}
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return u.Username, nil
}

// Workspace is a resolved NoteMe workspace: the directory tree holding the
// preference document, note content, file blobs, and the server-side stores
// this CLI plays locally.
type Workspace struct {
	Root         string
	NotemeDir    string
	NotesDir     string
	FilesDir     string
	PrefsPath    string
	SharesPath   string
	RecoveryPath string
	AuditPath    string
}

func workspaceAt(root string) *Workspace {
	dir := filepath.Join(root, workspaceDirName)
	return &Workspace{
		Root:         root,
		NotemeDir:    dir,
		NotesDir:     filepath.Join(dir, "notes"),
		FilesDir:     filepath.Join(dir, "files"),
		PrefsPath:    filepath.Join(dir, "prefs.json"),
		SharesPath:   filepath.Join(dir, "shares.json"),
		RecoveryPath: filepath.Join(dir, "recovery.json"),
		AuditPath:    filepath.Join(dir, "audit.jsonl"),
	}
}

// ResolveWorkspace walks up from startDir looking for a .noteme directory.
func ResolveWorkspace(startDir string) (*Workspace, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		marker := filepath.Join(dir, workspaceDirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return workspaceAt(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, kerrors.ErrWorkspaceNotInitialized
		}
		dir = parent
	}
}

// InitWorkspace creates the .noteme tree in dir.
func InitWorkspace(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	ws := workspaceAt(abs)
	if info, err := os.Stat(ws.NotemeDir); err == nil && info.IsDir() {
		return nil, kerrors.ErrWorkspaceAlreadyInitialized
	}
	for _, d := range []string{ws.NotemeDir, ws.NotesDir, ws.FilesDir} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return ws, nil
}
