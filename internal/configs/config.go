package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DeviceConfig is the device-local TOML document. It carries no secrets
// besides credential identifiers; the PIN hash lives in the secret store.
type DeviceConfig struct {
	Device      Device              `toml:"device"`
	Credentials map[string][]string `toml:"credentials"`
}

// Device identifies this installation.
type Device struct {
	Name      string    `toml:"name"`
	UUID      string    `toml:"device_uuid"`
	CreatedAt time.Time `toml:"created_at"`
}

func deviceConfigPath(settings *UserSettings) string {
	return filepath.Join(settings.ConfigDir, "config.toml")
}

// LoadDeviceConfig loads the device configuration, returning an empty config
// when none exists yet.
func LoadDeviceConfig(settings *UserSettings) (*DeviceConfig, error) {
	config := &DeviceConfig{Credentials: make(map[string][]string)}

	path := deviceConfigPath(settings)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}
	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load device config: %w", err)
	}
	if config.Credentials == nil {
		config.Credentials = make(map[string][]string)
	}
	return config, nil
}

// SaveDeviceConfig persists the device configuration.
func SaveDeviceConfig(settings *UserSettings, config *DeviceConfig) error {
	if err := SaveTOML(deviceConfigPath(settings), config, 0600); err != nil {
		return fmt.Errorf("failed to save device config: %w", err)
	}
	return nil
}

// EnsureDeviceConfig loads the device configuration, minting an identity on
// first run.
func EnsureDeviceConfig(settings *UserSettings) (*DeviceConfig, error) {
	config, err := LoadDeviceConfig(settings)
	if err != nil {
		return nil, err
	}
	if config.Device.UUID == "" {
		hostname, _ := os.Hostname()
		config.Device.UUID = uuid.New().String()
		config.Device.Name = hostname
		config.Device.CreatedAt = time.Now().UTC()
		if err := SaveDeviceConfig(settings, config); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// RegisterCredential appends a biometric or passkey credential ID and saves.
func RegisterCredential(settings *UserSettings, config *DeviceConfig, kind, credentialID string) error {
	config.Credentials[kind] = append(config.Credentials[kind], credentialID)
	return SaveDeviceConfig(settings, config)
}
