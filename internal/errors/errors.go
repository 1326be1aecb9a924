package errors

import "errors"

// Cryptographic errors indicate failures during key derivation or decryption.
var (
	// ErrDerivationFailed indicates the stored encryption salt is missing or malformed.
	ErrDerivationFailed = errors.New("key derivation failed: encryption salt is missing or malformed")

	// ErrDecryptionFailed indicates an authentication failure: wrong passphrase or corrupted ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed: wrong passphrase or corrupted data")

	// ErrMalformedEnvelope indicates a ciphertext envelope that carries the marker but cannot be decoded.
	ErrMalformedEnvelope = errors.New("ciphertext envelope is malformed")

	// ErrEmptyPassphrase indicates an empty passphrase was supplied.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
)

// Vault lifecycle errors indicate invalid encryption state transitions.
var (
	// ErrVaultDisabled indicates the operation requires encryption to be enabled.
	ErrVaultDisabled = errors.New("encryption is not enabled")

	// ErrVaultLocked indicates encrypted content was requested while no session key is held.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrOperationInFlight indicates another enable, disable, or unlock is already running.
	ErrOperationInFlight = errors.New("another vault operation is already in progress")

	// ErrMigrationIncomplete indicates a bulk migration finished with per-item failures.
	ErrMigrationIncomplete = errors.New("migration finished with item failures")
)

// App lock errors indicate failures of the coarse session lock.
var (
	// ErrLockFactorMismatch indicates the supplied PIN, password, or assertion did not match.
	ErrLockFactorMismatch = errors.New("unlock factor did not match")

	// ErrPinNotSet indicates no PIN credential exists on this device.
	ErrPinNotSet = errors.New("no PIN has been set up on this device")

	// ErrCredentialNotRegistered indicates the biometric or passkey credential is unknown.
	ErrCredentialNotRegistered = errors.New("credential has not been registered on this device")

	// ErrFactorUnavailable indicates the unlock factor has no collaborator wired on this device.
	ErrFactorUnavailable = errors.New("unlock factor is not available on this device")
)

// Share errors indicate failures of the shared-link password gate.
var (
	// ErrShareNotFound indicates the share link does not exist.
	ErrShareNotFound = errors.New("share link not found")

	// ErrResourceNotShared indicates the resource has no share link to protect.
	ErrResourceNotShared = errors.New("resource has no share link")
)

// Recovery errors indicate failures of the one-time backup codes.
var (
	// ErrNoRecoveryCodes indicates no recovery code batch has been generated.
	ErrNoRecoveryCodes = errors.New("no recovery codes have been generated")
)

// Workspace errors indicate issues with workspace discovery or initialization.
var (
	// ErrWorkspaceNotInitialized indicates no .noteme directory was found.
	ErrWorkspaceNotInitialized = errors.New("workspace has not been initialized")

	// ErrWorkspaceAlreadyInitialized indicates the directory already holds a workspace.
	ErrWorkspaceAlreadyInitialized = errors.New("workspace has already been initialized")
)
