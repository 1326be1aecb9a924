// Package workflows provides high-level orchestration for NoteMe commands.
//
// Workflows coordinate multiple operations across packages (configs, vault,
// applock, recovery, share, audit) to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow method
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Wiring the file-backed stores into the domain services
//   - Validating prerequisites
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Sessions
//
// Most workflows are methods on Session, which bundles the services for a
// signed-in user. A Session is constructed explicitly with NewSession and
// torn down with Close, which drops the in-memory session key. Nothing
// lives in package-level state, so tests run sessions against temp
// directories without global fixture juggling.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	_, err := session.EnableEncryption(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Resume passphrase did not match the original
//	}
//
// # Context Usage
//
// Workflows that migrate content accept a context.Context. Cancellation
// stops the migration between items, leaving a recoverable mixed state.
package workflows
