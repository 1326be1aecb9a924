package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramiz7171/NoteMe-sub001/internal/applock"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	"github.com/ramiz7171/NoteMe-sub001/internal/workflows"
)

var lockUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the app with your PIN",
	Long: `Unlocks the app session. Unlocking the app restores UI access only:
encrypted notes stay unreadable until the encryption passphrase is supplied
with noteme vault unlock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock unlock command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		pin, err := getPassphrase("Enter PIN: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read PIN: %v", err)
		}
		defer zeroBytes(pin)

		spinner, cleanup := startSpinner("Unlocking...", verbose)
		defer cleanup()

		err = session.UnlockApp(cmd.Context(), workflows.UnlockAppOptions{
			Factor: applock.FactorPIN,
			Secret: string(pin),
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrPinNotSet):
				spinner.FinalMSG = color.RedString("✗") + " No PIN is set on this device\n" +
					color.CyanString("→") + " Run " + color.YellowString("noteme lock set-pin") + " first"
			case errors.Is(err, kerrors.ErrLockFactorMismatch):
				spinner.FinalMSG = color.RedString("✗") + " Wrong PIN"
			default:
				return Logger.ErrorfAndReturn("failed to unlock: %v", err)
			}
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " App unlocked\n" +
			color.CyanString("→") + " Encrypted notes still need " + color.YellowString("noteme vault unlock")
		return nil
	},
}
