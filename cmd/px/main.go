package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fexplorer/internal/errors"
	"fexplorer/internal/logging"
	"fexplorer/internal/paths"
)

var (
	flagConfigDir string
	flagCacheDir  string
	flagLogFormat string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:           "px",
	Short:         "Project switcher ranked by frecency",
	Long:          "px discovers git repositories under configured scan roots, tracks how often you open them, and ranks them by frecency.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Override the user config directory")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Override the user cache directory")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "human", "Diagnostic format (json, human)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress diagnostics")
}

// resolveDirs applies the directory overrides, falling back to the
// platform conventions.
func resolveDirs() (paths.Dirs, error) {
	return paths.Dirs{ConfigDir: flagConfigDir, CacheDir: flagCacheDir}.Resolve()
}

// newLogger builds the diagnostic logger for one command run.
func newLogger() *logging.Logger {
	level := logging.InfoLevel
	if flagQuiet {
		level = logging.ErrorLevel
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(flagLogFormat),
		Level:  level,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
