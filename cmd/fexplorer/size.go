package main

import (
	"os"

	"github.com/spf13/cobra"

	"fexplorer/internal/fswalk"
	"fexplorer/internal/output"
)

var flagSizeTop int

var sizeCmd = &cobra.Command{
	Use:   "size [root]",
	Short: "Aggregate directory sizes and show the largest entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSize,
}

func init() {
	addWalkFlags(sizeCmd)
	sizeCmd.Flags().IntVar(&flagSizeTop, "top", 20, "How many entries to show")
	rootCmd.AddCommand(sizeCmd)
}

func runSize(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	entries, diags, err := fswalk.Collect(ctx, walkConfig(root))
	if err != nil {
		return err
	}
	for _, d := range diags {
		logger.Warn("walk diagnostic", map[string]interface{}{
			"path":  d.Path,
			"error": d.Err.Error(),
		})
	}

	fswalk.ApplyDirSizes(entries, fswalk.AggregateDirSizes(entries))
	top := fswalk.TopBySize(entries, flagSizeTop)

	sink, err := output.NewEntrySink(format, os.Stdout)
	if err != nil {
		return err
	}
	for _, e := range top {
		if err := sink.WriteEntry(e); err != nil {
			return err
		}
	}
	return sink.Close()
}
