package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"fexplorer/internal/index"
	"fexplorer/internal/output"
)

var (
	flagListFilter string
	flagListFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed projects by frecency",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListFilter, "filter", "", "Filter (has-changes, inactive-30d, inactive-90d)")
	listCmd.Flags().StringVar(&flagListFormat, "format", "pretty", "Output format (pretty, json, ndjson, csv, yaml)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dirs, err := resolveDirs()
	if err != nil {
		return err
	}

	filter, err := index.ParseListFilter(flagListFilter)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(flagListFormat)
	if err != nil {
		return err
	}

	store := index.NewStore(dirs.IndexCacheFile())
	idx, err := store.Load()
	if err != nil {
		return err
	}

	sink, err := output.NewProjectSink(format, os.Stdout)
	if err != nil {
		return err
	}
	for _, p := range idx.List(filter, time.Now()) {
		if err := sink.WriteProject(p); err != nil {
			return err
		}
	}
	return sink.Close()
}
