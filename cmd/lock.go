package cmd

import (
	"github.com/spf13/cobra"
)

// LockCmd groups the app-lock commands. The app lock is independent of the
// encryption vault: it gates the UI, not the content key.
var LockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Manage the app lock (PIN, idle timeout)",
	Long:  `Configures the coarse session lock that gates the whole app behind a PIN or platform credential, independent of note encryption.`,
}

func init() {
	registerVerbosityFlags(LockCmd)

	LockCmd.AddCommand(lockSetPinCmd)
	LockCmd.AddCommand(lockRemovePinCmd)
	LockCmd.AddCommand(lockUnlockCmd)
	LockCmd.AddCommand(lockTimeoutCmd)
	LockCmd.AddCommand(lockStatusCmd)
}
