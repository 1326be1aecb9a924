package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramiz7171/NoteMe-sub001/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "noteme",
	Short: "NoteMe - local encryption and access control for your notes.",
	Long: `NoteMe keeps your notes yours: passphrase-based encryption of note
content and uploaded files, an app lock with PIN and idle timeout, one-time
recovery codes, and password-protected share links.

Usage:
  noteme <command> [flags]

Available Commands:
  init       Initialize a workspace
  vault      Enable, disable, lock, and unlock encryption
  lock       Configure the app lock
  recovery   Manage one-time recovery codes
  share      Manage password-protected share links

Run 'noteme help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to NoteMe! Run 'noteme --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.InitCmd)
	rootCmd.AddCommand(cmd.VaultCmd)
	rootCmd.AddCommand(cmd.LockCmd)
	rootCmd.AddCommand(cmd.RecoveryCmd)
	rootCmd.AddCommand(cmd.ShareCmd)
	rootCmd.AddCommand(cmd.VersionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
