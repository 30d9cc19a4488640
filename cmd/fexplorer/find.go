package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
	"fexplorer/internal/filter"
	"fexplorer/internal/output"
)

var (
	flagFindName     []string
	flagFindRegex    string
	flagFindExt      []string
	flagFindMinSize  string
	flagFindMaxSize  string
	flagFindAfter    string
	flagFindBefore   string
	flagFindKind     []string
	flagFindCategory string
)

var findCmd = &cobra.Command{
	Use:   "find [root]",
	Short: "Walk a tree and emit entries matching the filters",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

func init() {
	addWalkFlags(findCmd)
	findCmd.Flags().StringSliceVar(&flagFindName, "name", nil, "Glob patterns on the basename (any-of)")
	findCmd.Flags().StringVar(&flagFindRegex, "regex", "", "Regex on the basename")
	findCmd.Flags().StringSliceVar(&flagFindExt, "ext", nil, "Extensions to admit")
	findCmd.Flags().StringVar(&flagFindMinSize, "min-size", "", "Minimum size (e.g. 1MB, 10KiB)")
	findCmd.Flags().StringVar(&flagFindMaxSize, "max-size", "", "Maximum size")
	findCmd.Flags().StringVar(&flagFindAfter, "after", "", "Modified after (ISO date or '7 days ago')")
	findCmd.Flags().StringVar(&flagFindBefore, "before", "", "Modified before")
	findCmd.Flags().StringSliceVar(&flagFindKind, "kind", nil, "Kinds to admit (file, directory, symlink)")
	findCmd.Flags().StringVar(&flagFindCategory, "category", "", "Category to admit (source, config, docs, media, data, archive, executable)")
	rootCmd.AddCommand(findCmd)
}

// buildPipeline assembles the predicate pipeline from the find flags.
// Parse failures abort the query before the walk starts.
func buildPipeline(now time.Time) (filter.Pipeline, error) {
	var pipeline filter.Pipeline

	if len(flagFindName) > 0 {
		p, err := filter.NewGlob(flagFindName)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, p)
	}
	if flagFindRegex != "" {
		p, err := filter.NewRegex(flagFindRegex)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, p)
	}
	if len(flagFindExt) > 0 {
		pipeline = append(pipeline, filter.NewExtension(flagFindExt))
	}
	if flagFindMinSize != "" || flagFindMaxSize != "" {
		p, err := filter.NewSizeRange(flagFindMinSize, flagFindMaxSize)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, p)
	}
	if flagFindAfter != "" || flagFindBefore != "" {
		p, err := filter.NewDateRange(flagFindAfter, flagFindBefore, now)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, p)
	}
	if len(flagFindKind) > 0 {
		kinds, err := parseKinds(flagFindKind)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, filter.NewKind(kinds))
	}
	if flagFindCategory != "" {
		p, err := filter.NewCategory(flagFindCategory)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, p)
	}

	return pipeline, nil
}

func parseKinds(names []string) ([]entry.Kind, error) {
	kinds := make([]entry.Kind, 0, len(names))
	for _, name := range names {
		switch entry.Kind(name) {
		case entry.KindFile, entry.KindDir, entry.KindSymlink, entry.KindOther:
			kinds = append(kinds, entry.Kind(name))
		case "dir":
			kinds = append(kinds, entry.KindDir)
		default:
			return nil, errors.Newf(errors.ParseError, "unknown kind %q", name)
		}
	}
	return kinds, nil
}

func runFind(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	pipeline, err := buildPipeline(time.Now())
	if err != nil {
		return err
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

	return streamWalk(ctx, walkConfig(root), pipeline.Test, sink, logger)
}
