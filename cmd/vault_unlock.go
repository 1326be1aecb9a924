package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

var vaultUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Re-derive the content key from your passphrase",
	Long: `Derives the session key so encrypted notes become readable again.
No content is touched: a mistyped passphrase only surfaces when a note
fails to decrypt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault unlock command")

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

		spinner, cleanup := startSpinner("Unlocking vault...", verbose)
		defer cleanup()

		if err := session.UnlockVault(passphrase); err != nil {
			switch {
			case errors.Is(err, kerrors.ErrVaultDisabled):
				spinner.FinalMSG = color.RedString("✗") + " Encryption is not enabled\n" +
					color.CyanString("→") + " Run " + color.YellowString("noteme vault enable") + " first"
			case errors.Is(err, kerrors.ErrEmptyPassphrase):
				spinner.FinalMSG = color.RedString("✗") + " Passphrase must not be empty"
			default:
				return Logger.ErrorfAndReturn("failed to unlock vault: %v", err)
			}
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " Vault unlocked"
		return nil
	},
}
