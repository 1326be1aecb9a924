package cmd

import (
	"errors"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramiz7171/NoteMe-sub001/internal/configs"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
	"github.com/ramiz7171/NoteMe-sub001/internal/workflows"
)

// InitCmd creates the workspace in the current directory.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a NoteMe workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}
		settings, err := configs.NewUserSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve user settings: %v", err)
		}

		spinner, cleanup := startSpinner("Initializing workspace...", verbose)
		defer cleanup()

		result, err := workflows.InitWorkspace(wd, settings)
		if err != nil {
			if errors.Is(err, kerrors.ErrWorkspaceAlreadyInitialized) {
				spinner.FinalMSG = color.RedString("✗") + " A workspace already exists here"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to initialize workspace: %v", err)
		}

		spinner.Stop()
		banner := figure.NewColorFigure("NoteMe", "alligator2", "green", true)
		banner.Print()

		spinner.FinalMSG = color.GreenString("✓") + " Workspace initialized at " + color.YellowString(result.Workspace.NotemeDir) + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("noteme vault enable") + " to encrypt your notes"
		return nil
	},
}

func init() {
	registerVerbosityFlags(InitCmd)
}
