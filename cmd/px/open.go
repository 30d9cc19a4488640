package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fexplorer/internal/config"
	"fexplorer/internal/errors"
	"fexplorer/internal/fuzzy"
	"fexplorer/internal/index"
)

var openCmd = &cobra.Command{
	Use:   "open <query>",
	Short: "Pick the best-matching project and record the access",
	Long: `Fuzzy-matches the query against project names and paths, blends the
match quality with frecency, records an access on the winner, and
prints its path. Launching an editor or terminal is left to the shell
wrapper; px only emits the winning path.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	query := args[0]

	dirs, err := resolveDirs()
	if err != nil {
		return err
	}
	cfg, err := config.LoadPx(dirs)
	if err != nil {
		return err
	}

	store := index.NewStore(dirs.IndexCacheFile())
	idx, err := store.Load()
	if err != nil {
		return err
	}

	winner, err := bestMatch(idx, query)
	if err != nil {
		return err
	}

	if err := store.RecordAccess(winner.Path, time.Now()); err != nil {
		return err
	}

	fmt.Println(winner.Path)
	if cfg.DefaultEditor != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "editor: %s %s\n", cfg.DefaultEditor, winner.Path)
	}
	return nil
}

// bestMatch ranks the index against the query and returns the winner.
func bestMatch(idx *index.Index, query string) (*index.Project, error) {
	now := time.Now()
	projects := idx.List(index.FilterNone, now)

	candidates := make([]fuzzy.Candidate, len(projects))
	byPath := make(map[string]*index.Project, len(projects))
	for i, p := range projects {
		candidates[i] = fuzzy.Candidate{Name: p.Name, Path: p.Path, Frecency: p.FrecencyScore}
		byPath[p.Path] = p
	}

	ranked := fuzzy.Rank(query, candidates)
	if len(ranked) == 0 {
		return nil, errors.Newf(errors.NotFound, "no project matches %q", query)
	}
	return byPath[ranked[0].Path], nil
}
