package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	"github.com/ramiz7171/NoteMe-sub001/internal/ui"
	"github.com/ramiz7171/NoteMe-sub001/internal/workflows"
)

var vaultDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn off encryption and restore all notes to plaintext",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault disable command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		passphrase, err := getPassphrase("Enter encryption passphrase: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
		}
		defer zeroBytes(passphrase)

		spinner, cleanup := startSpinner("Decrypting notes...", verbose)
		defer cleanup()

		report, err := session.DisableEncryption(cmd.Context(), workflows.DisableEncryptionOptions{
			Passphrase: passphrase,
			OnProgress: func(percent int) {
				spinner.Suffix = " Decrypting notes... " + ui.ProgressBar(percent)
			},
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrVaultDisabled):
				spinner.FinalMSG = color.RedString("✗") + " Encryption is not enabled"
			case errors.Is(err, kerrors.ErrDecryptionFailed):
				spinner.FinalMSG = color.RedString("✗") + " Wrong passphrase; nothing was changed"
			case errors.Is(err, kerrors.ErrMigrationIncomplete):
				failed := 0
				if report != nil {
					failed = len(report.Failed)
				}
				spinner.FinalMSG = color.YellowString("⚠") + fmt.Sprintf(" %d items could not be decrypted; encryption stays enabled\n", failed) +
					color.CyanString("→") + " Re-run " + color.YellowString("noteme vault disable") + " to retry"
			default:
				return Logger.ErrorfAndReturn("failed to disable encryption: %v", err)
			}
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " Encryption disabled\n" +
			fmt.Sprintf("Restored %d items to plaintext", report.Migrated)
		return nil
	},
}
