package cmd

import (
	"errors"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

var shareExpiresIn time.Duration

// ShareCmd groups the share-link commands.
var ShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Manage password-protected share links",
}

var shareCreateCmd = &cobra.Command{
	Use:   "create <file-id>",
	Short: "Create a share link for an uploaded file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting share create command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Creating share link...", verbose)
		defer cleanup()

		var expiresAt *time.Time
		if shareExpiresIn > 0 {
			t := time.Now().Add(shareExpiresIn)
			expiresAt = &t
		}
		link, err := session.CreateShare(args[0], expiresAt)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create share link: %v", err)
		}

		finalMessage := color.GreenString("✓") + " Share link created: " + color.YellowString(link.ShareID)
		if expiresAt != nil {
			finalMessage += "\n" + color.CyanString("→") + " Expires " + expiresAt.Format(time.RFC1123)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

var sharePasswordCmd = &cobra.Command{
	Use:   "password <file-id>",
	Short: "Set or clear the password on a file's share links",
	Long: `Prompts for a password and applies it to every share link of the file.
An empty password clears the gate. Only a hash is stored; the password
itself never reaches disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting share password command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		password, err := getPassphrase("Enter share password (empty to clear): ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		defer zeroBytes(password)

		spinner, cleanup := startSpinner("Updating share password...", verbose)
		defer cleanup()

		if err := session.SetSharePassword(args[0], string(password)); err != nil {
			return Logger.ErrorfAndReturn("failed to set share password: %v", err)
		}

		if len(password) == 0 {
			spinner.FinalMSG = color.GreenString("✓") + " Share password cleared"
		} else {
			spinner.FinalMSG = color.GreenString("✓") + " Share password set"
		}
		return nil
	},
}

var shareVerifyCmd = &cobra.Command{
	Use:   "verify <share-id>",
	Short: "Check a password against a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting share verify command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		password, err := getPassphrase("Enter share password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		defer zeroBytes(password)

		spinner, cleanup := startSpinner("Verifying share password...", verbose)
		defer cleanup()

		ok, err := session.VerifyShare(args[0], string(password))
		if err != nil {
			if errors.Is(err, kerrors.ErrShareNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " No such share link"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to verify share password: %v", err)
		}

		if ok {
			spinner.FinalMSG = color.GreenString("✓") + " Access granted"
		} else {
			spinner.FinalMSG = color.RedString("✗") + " Access denied"
		}
		return nil
	},
}

func init() {
	registerVerbosityFlags(ShareCmd)

	shareCreateCmd.Flags().DurationVar(&shareExpiresIn, "expires-in", 0, "optional link lifetime, e.g. 72h")

	ShareCmd.AddCommand(shareCreateCmd)
	ShareCmd.AddCommand(sharePasswordCmd)
	ShareCmd.AddCommand(shareVerifyCmd)
}
