package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fexplorer/internal/index"
)

var flagInfoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <query>",
	Short: "Show details for the best-matching project",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&flagInfoJSON, "json", false, "Emit JSON instead of text")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	dirs, err := resolveDirs()
	if err != nil {
		return err
	}

	store := index.NewStore(dirs.IndexCacheFile())
	idx, err := store.Load()
	if err != nil {
		return err
	}

	p, err := bestMatch(idx, args[0])
	if err != nil {
		return err
	}

	if flagInfoJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Printf("%s\n", p.Name)
	fmt.Printf("  path: %s\n", p.Path)
	if p.ReadmeExcerpt != "" {
		fmt.Printf("  about: %s\n", p.ReadmeExcerpt)
	}
	if p.Git != nil {
		fmt.Printf("  branch: %s\n", p.Git.CurrentBranch)
		if p.Git.HasUncommitted {
			fmt.Println("  status: uncommitted changes")
		} else {
			fmt.Println("  status: clean")
		}
		if p.Git.Ahead > 0 || p.Git.Behind > 0 {
			fmt.Printf("  upstream: %d ahead, %d behind\n", p.Git.Ahead, p.Git.Behind)
		}
		if c := p.Git.LastCommit; c != nil {
			fmt.Printf("  last commit: %s %s (%s, %s)\n",
				c.Hash, c.Message, c.Author, c.Timestamp.Format("2006-01-02"))
		}
	} else {
		fmt.Println("  git: unknown")
	}
	fmt.Printf("  accessed: %d times", p.AccessCount)
	if p.LastAccessed != nil {
		fmt.Printf(", last %s", p.LastAccessed.Format(time.RFC3339))
	}
	fmt.Println()
	fmt.Printf("  frecency: %.1f\n", p.FrecencyScore)
	return nil
}
