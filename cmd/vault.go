package cmd

import (
	"github.com/spf13/cobra"
)

// VaultCmd groups the encryption lifecycle commands.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage end-to-end encryption of your notes",
	Long:  `Enables, disables, locks, and unlocks passphrase-based encryption of note content and uploaded files.`,
}

func init() {
	registerVerbosityFlags(VaultCmd)

	VaultCmd.AddCommand(vaultEnableCmd)
	VaultCmd.AddCommand(vaultDisableCmd)
	VaultCmd.AddCommand(vaultUnlockCmd)
	VaultCmd.AddCommand(vaultLockCmd)
	VaultCmd.AddCommand(vaultStatusCmd)
	VaultCmd.AddCommand(vaultFilesCmd)
}
