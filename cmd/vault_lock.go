package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var vaultLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Drop the content key from memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault lock command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Locking vault...", verbose)
		defer cleanup()

		session.LockVault()

		spinner.FinalMSG = color.GreenString("✓") + " Vault locked\n" +
			color.CyanString("→") + " Encrypted notes stay unreadable until " + color.YellowString("noteme vault unlock")
		return nil
	},
}
