package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lockTimeoutCmd = &cobra.Command{
	Use:   "timeout <minutes>",
	Short: "Set the idle auto-lock timeout in minutes (0 disables)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock timeout command")

		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes < 0 {
			fmt.Println(color.RedString("✗") + " Timeout must be a non-negative number of minutes")
			return nil
		}

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Saving timeout...", verbose)
		defer cleanup()

		if err := session.SetIdleTimeout(minutes); err != nil {
			return Logger.ErrorfAndReturn("failed to set idle timeout: %v", err)
		}

		if minutes == 0 {
			spinner.FinalMSG = color.GreenString("✓") + " Idle auto-lock disabled"
		} else {
			spinner.FinalMSG = color.GreenString("✓") + fmt.Sprintf(" App locks after %d minutes of inactivity", minutes)
		}
		return nil
	},
}

var lockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the app-lock configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock status command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Reading lock status...", verbose)
		defer cleanup()

		status, err := session.LockStatus()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read lock status: %v", err)
		}

		pin := color.RedString("not set")
		if status.PinConfigured {
			pin = color.GreenString("set")
		}
		timeout := "disabled"
		if status.IdleTimeoutMinutes > 0 {
			timeout = fmt.Sprintf("%d minutes", status.IdleTimeoutMinutes)
		}
		spinner.FinalMSG = color.CyanString("PIN: ") + pin + "\n" +
			color.CyanString("Idle auto-lock: ") + timeout
		return nil
	},
}
