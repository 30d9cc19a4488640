package main

import (
	"os"

	"github.com/spf13/cobra"

	"fexplorer/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list [root]",
	Short: "Walk a tree and emit every entry",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	addWalkFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	sink, err := output.NewEntrySink(format, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	return streamWalk(ctx, walkConfig(root), nil, sink, logger)
}
