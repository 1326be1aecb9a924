package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// VersionCmd prints the CLI version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the noteme version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("noteme %s\n", Version)
	},
}
