package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// RecoveryCmd groups the one-time recovery code commands.
var RecoveryCmd = &cobra.Command{
	Use:   "recovery",
	Short: "Manage one-time account recovery codes",
}

var recoveryGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Mint a fresh batch of recovery codes",
	Long: `Generates a new batch of one-time recovery codes and invalidates any
previous batch. The codes are shown exactly once; only their hashes are
stored. Write them down now.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting recovery generate command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Generating recovery codes...", verbose)
		defer cleanup()

		codes, err := session.GenerateRecoveryCodes()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to generate recovery codes: %v", err)
		}

		finalMessage := color.GreenString("✓") + " Recovery codes generated. Each works exactly once:\n"
		for _, code := range codes {
			finalMessage += "  " + color.YellowString(code) + "\n"
		}
		finalMessage += color.CyanString("→") + " Store these somewhere safe; they will not be shown again"
		spinner.FinalMSG = finalMessage
		return nil
	},
}

var recoveryVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Consume a recovery code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting recovery verify command")

		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Verifying recovery code...", verbose)
		defer cleanup()

		ok, err := session.VerifyRecoveryCode(args[0])
		if err != nil {
			if errors.Is(err, kerrors.ErrNoRecoveryCodes) {
				spinner.FinalMSG = color.RedString("✗") + " No recovery codes have been generated\n" +
					color.CyanString("→") + " Run " + color.YellowString("noteme recovery generate") + " first"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to verify recovery code: %v", err)
		}

		if ok {
			spinner.FinalMSG = color.GreenString("✓") + " Recovery code accepted and consumed"
		} else {
			spinner.FinalMSG = color.RedString("✗") + " Recovery code rejected\n" +
				fmt.Sprintf("%s Codes are single-use; a code that worked before will not work again",
					color.CyanString("→"))
		}
		return nil
	},
}

func init() {
	registerVerbosityFlags(RecoveryCmd)

	RecoveryCmd.AddCommand(recoveryGenerateCmd)
	RecoveryCmd.AddCommand(recoveryVerifyCmd)
}
