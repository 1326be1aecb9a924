package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	"github.com/ramiz7171/NoteMe-sub001/internal/ui"
)

var vaultFilesOn bool

var vaultFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "Toggle encryption of uploaded files",
	Long: `Turns encryption of uploaded file blobs on or off and migrates the
existing blobs in the chosen direction. Requires an enabled, unlocked vault;
the vault is unlocked with your passphrase first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault files command with on=%t", vaultFilesOn)

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
		if err := session.UnlockVault(passphrase); err != nil {
			if errors.Is(err, kerrors.ErrVaultDisabled) {
				fmt.Println(color.RedString("✗") + " Encryption is not enabled\n" +
					color.CyanString("→") + " Run " + color.YellowString("noteme vault enable") + " first")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to unlock vault: %v", err)
		}

		direction := "Decrypting"
		if vaultFilesOn {
			direction = "Encrypting"
		}
		spinner, cleanup := startSpinner(direction+" files...", verbose)
		defer cleanup()

		report, err := session.SetFileEncryption(cmd.Context(), vaultFilesOn, func(percent int) {
			spinner.Suffix = " " + direction + " files... " + ui.ProgressBar(percent)
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrDecryptionFailed) {
				spinner.FinalMSG = color.RedString("✗") + " Wrong passphrase; nothing was changed"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to toggle file encryption: %v", err)
		}

		state := "off"
		if vaultFilesOn {
			state = "on"
		}
		finalMessage := color.GreenString("✓") + " File encryption turned " + state + "\n" +
			fmt.Sprintf("Migrated %d files (%d already in the target state)", report.Migrated, report.Skipped)
		if failed := len(report.Failed); failed > 0 {
			finalMessage += "\n" + color.YellowString("⚠") + fmt.Sprintf(" %d files could not be migrated; re-run to retry", failed)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

func init() {
	vaultFilesCmd.Flags().BoolVar(&vaultFilesOn, "on", false, "enable file encryption (omit for off)")
}
