package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lockSetPinCmd = &cobra.Command{
	Use:   "set-pin",
	Short: "Set or replace the app-lock PIN on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock set-pin command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		pin, err := getPassphraseWithConfirm("Enter PIN: ", "Confirm PIN: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read PIN: %v", err)
		}
		defer zeroBytes(pin)

		spinner, cleanup := startSpinner("Saving PIN...", verbose)
		defer cleanup()

		if err := session.SetPIN(string(pin)); err != nil {
			return Logger.ErrorfAndReturn("failed to set PIN: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " PIN set\n" +
			color.CyanString("→") + " The app will start locked from the next launch"
		return nil
	},
}

var lockRemovePinCmd = &cobra.Command{
	Use:   "remove-pin",
	Short: "Remove the app-lock PIN from this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock remove-pin command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Removing PIN...", verbose)
		defer cleanup()

		configured, err := session.AppLock.PinConfigured()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read PIN state: %v", err)
		}
		if !configured {
			spinner.FinalMSG = color.RedString("✗") + " No PIN is set on this device"
			return nil
		}

		if err := session.RemovePIN(); err != nil {
			return Logger.ErrorfAndReturn("failed to remove PIN: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " PIN removed"
		return nil
	},
}
