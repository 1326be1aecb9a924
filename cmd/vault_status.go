package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var vaultStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the encryption lifecycle state",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault status command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Reading vault status...", verbose)
		defer cleanup()

		status, err := session.VaultStatus()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read vault status: %v", err)
		}

		lockStatus, err := session.LockStatus()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read lock status: %v", err)
		}

		files := color.RedString("off")
		if status.FileEncryptionEnabled {
			files = color.GreenString("on")
		}
		// The app lock and the vault are independent; show both so the
		// distinction stays visible.
		pin := color.RedString("no PIN")
		if lockStatus.PinConfigured {
			pin = color.GreenString("PIN set")
		}
		spinner.FinalMSG = color.CyanString("Vault: ") + status.State.String() + "\n" +
			color.CyanString("File encryption: ") + files + "\n" +
			color.CyanString("App lock: ") + pin
		return nil
	},
}
