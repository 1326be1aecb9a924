package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ramiz7171/NoteMe-sub001/internal/configs"
	logger "github.com/ramiz7171/NoteMe-sub001/internal/logging"
	"github.com/ramiz7171/NoteMe-sub001/internal/ui"
	"github.com/ramiz7171/NoteMe-sub001/internal/workflows"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// registerVerbosityFlags binds the shared verbose/debug flags and logger
// setup onto a top-level command.
func registerVerbosityFlags(cmd *cobra.Command) {
	bindVerbosityFlags(cmd.PersistentFlags())
	existing := cmd.PersistentPreRun
	cmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
		if existing != nil {
			existing(c, args)
		}
	}
}

func bindVerbosityFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// openSession resolves the enclosing workspace and wires a session over it.
// The caller must defer session.Close().
func openSession() (*workflows.Session, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	ws, err := configs.ResolveWorkspace(wd)
	if err != nil {
		return nil, err
	}
	settings, err := configs.NewUserSettings()
	if err != nil {
		return nil, err
	}
	return workflows.NewSession(ws, settings, workflows.SessionOptions{Log: Logger})
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag shared by the top-level commands.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
