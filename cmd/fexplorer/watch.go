package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fexplorer/internal/errors"
	"fexplorer/internal/watcher"
)

var flagWatchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Watch a tree and stream change events",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagWatchJSON, "json", false, "Emit NDJSON events")
	watchCmd.Flags().BoolVar(&flagHidden, "hidden", false, "Include hidden entries")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	w, err := watcher.New(root, flagHidden)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes... (Ctrl+C to stop)\n", root)

	enc := json.NewEncoder(os.Stdout)
	return w.Run(ctx, func(e watcher.Event) {
		if flagWatchJSON {
			if err := enc.Encode(e); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", errors.New(errors.IoError, "writing event", err))
			}
			return
		}
		fmt.Printf("%s  %-7s %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Path)
	})
}
