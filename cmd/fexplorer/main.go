package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
	"fexplorer/internal/fswalk"
	"fexplorer/internal/logging"
	"fexplorer/internal/output"
	"fexplorer/internal/paths"
)

var (
	flagConfigDir string
	flagCacheDir  string
	flagLogFormat string
	flagQuiet     bool

	// Traversal flags shared by the walking commands.
	flagMaxDepth    int
	flagFollow      bool
	flagNoGitignore bool
	flagHidden      bool
	flagThreads     int
	flagFormat      string
)

var rootCmd = &cobra.Command{
	Use:           "fexplorer",
	Short:         "Fast directory traversal and query tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Override the user config directory")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Override the user cache directory")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "human", "Diagnostic format (json, human)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress diagnostics")
}

// addWalkFlags registers the traversal options on a walking command.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagMaxDepth, "max-depth", fswalk.UnlimitedDepth, "Maximum depth below the root")
	cmd.Flags().BoolVar(&flagFollow, "follow-symlinks", false, "Follow symlinked directories (cycle-bounded)")
	cmd.Flags().BoolVar(&flagNoGitignore, "no-gitignore", false, "Ignore .gitignore files")
	cmd.Flags().BoolVar(&flagHidden, "hidden", false, "Include hidden entries")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "Walker threads (default: CPUs, capped at 8)")
	cmd.Flags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json, ndjson, csv, yaml)")
}

func resolveDirs() (paths.Dirs, error) {
	return paths.Dirs{ConfigDir: flagConfigDir, CacheDir: flagCacheDir}.Resolve()
}

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

// walkConfig assembles the traversal config for root, including the
// user-global ignore file under the git config convention.
func walkConfig(root string) fswalk.Config {
	globalIgnore := ""
	if dirs, err := resolveDirs(); err == nil {
		globalIgnore = filepath.Join(dirs.ConfigDir, "git", "ignore")
	}
	return fswalk.Config{
		Roots:            []string{root},
		MaxDepth:         flagMaxDepth,
		FollowSymlinks:   flagFollow,
		RespectGitignore: !flagNoGitignore,
		IncludeHidden:    flagHidden,
		Threads:          flagThreads,
		GlobalIgnore:     globalIgnore,
	}
}

// signalContext cancels on interrupt so walks shut down cleanly.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// streamWalk drives a walk through the predicate test into the sink,
// relaying sideband diagnostics to the logger.
func streamWalk(ctx context.Context, cfg fswalk.Config, test func(entry.Entry) bool, sink output.EntrySink, logger *logging.Logger) error {
	w := fswalk.New(cfg)
	entries, diags := w.Start(ctx)

	for entries != nil || diags != nil {
		select {
		case e, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			if test != nil && !test(e) {
				continue
			}
			if err := sink.WriteEntry(e); err != nil {
				return errors.New(errors.IoError, "writing output", err)
			}
		case d, ok := <-diags:
			if !ok {
				diags = nil
				continue
			}
			logger.Warn("walk diagnostic", map[string]interface{}{
				"path":  d.Path,
				"error": d.Err.Error(),
			})
		}
	}

	if err := w.Err(); err != nil {
		return err
	}
	return sink.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
