package workflows

import (
	"github.com/ramiz7171/NoteMe-sub001/internal/configs"
)

// InitWorkspaceResult contains the outcome of workspace initialization.
type InitWorkspaceResult struct {
	Workspace *configs.Workspace
	// DeviceUUID identifies this installation; minted on first init.
	DeviceUUID string
}

// InitWorkspace creates the .noteme tree in dir and ensures the device has
// an identity. Run once per workspace before any other command.
//
// Returns ErrWorkspaceAlreadyInitialized if dir already has a workspace.
func InitWorkspace(dir string, settings *configs.UserSettings) (*InitWorkspaceResult, error) {
	ws, err := configs.InitWorkspace(dir)
	if err != nil {
		return nil, err
	}
	deviceConfig, err := configs.EnsureDeviceConfig(settings)
	if err != nil {
		return nil, err
	}
	return &InitWorkspaceResult{
		Workspace:  ws,
		DeviceUUID: deviceConfig.Device.UUID,
	}, nil
}
