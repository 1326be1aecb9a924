// Package errors provides typed error values for the NoteMe application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Crypto errors: derivation and decryption failures (ErrDerivationFailed,
//     ErrDecryptionFailed, ErrMalformedEnvelope)
//   - Vault errors: lifecycle state issues (ErrVaultDisabled, ErrVaultLocked,
//     ErrOperationInFlight, ErrMigrationIncomplete)
//   - App lock errors: factor failures (ErrLockFactorMismatch, ErrPinNotSet,
//     ErrCredentialNotRegistered, ErrFactorUnavailable)
//   - Share and recovery errors: (ErrShareNotFound, ErrNoRecoveryCodes)
//   - Workspace errors: (ErrWorkspaceNotInitialized)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !settings.Enabled {
//	    return nil, errors.ErrVaultDisabled
//	}
//
// Handle errors in the CLI layer:
//
//	_, err := session.DisableEncryption(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Show user-friendly wrong-passphrase message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("decoding stored salt: %w", errors.ErrDerivationFailed)
package errors
