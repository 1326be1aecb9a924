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

var vaultEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Turn on encryption and migrate all notes to ciphertext",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault enable command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		passphrase, err := getPassphraseWithConfirm("Enter encryption passphrase: ", "Confirm passphrase: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
		}
		defer zeroBytes(passphrase)

		spinner, cleanup := startSpinner("Encrypting notes...", verbose)
		defer cleanup()

		result, err := session.EnableEncryption(cmd.Context(), workflows.EnableEncryptionOptions{
			Passphrase: passphrase,
			OnProgress: func(percent int) {
				spinner.Suffix = " Encrypting notes... " + ui.ProgressBar(percent)
			},
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrEmptyPassphrase) {
				spinner.FinalMSG = color.RedString("✗") + " Passphrase must not be empty"
				return nil
			}
			if errors.Is(err, kerrors.ErrDecryptionFailed) {
				spinner.FinalMSG = color.RedString("✗") + " An earlier migration was started with a different passphrase\n" +
					color.CyanString("→") + " Re-run with the original passphrase to finish it"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to enable encryption: %v", err)
		}

		finalMessage := color.GreenString("✓") + " Encryption enabled"
		if result.Resumed {
			finalMessage += " " + color.CyanString("(resumed an interrupted migration)")
		}
		finalMessage += "\n" + fmt.Sprintf("Migrated %d items (%d already encrypted)",
			result.Report.Migrated, result.Report.Skipped)
		if failed := len(result.Report.Failed); failed > 0 {
			finalMessage += "\n" + color.YellowString("⚠") + fmt.Sprintf(" %d items could not be migrated; re-run %s to retry",
				failed, color.YellowString("noteme vault enable"))
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
