package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"fexplorer/internal/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved query profiles",
	RunE:  runProfiles,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one saved profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesShow,
}

func init() {
	profilesCmd.AddCommand(profilesShowCmd)
	rootCmd.AddCommand(profilesCmd)
}

func loadExplorerConfig() (*config.ExplorerConfig, error) {
	dirs, err := resolveDirs()
	if err != nil {
		return nil, err
	}
	return config.LoadExplorer(dirs)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadExplorerConfig()
	if err != nil {
		return err
	}

	names := cfg.ProfileNames()
	if len(names) == 0 {
		fmt.Println("No profiles saved.")
		return nil
	}
	sort.Strings(names)

	for _, name := range names {
		p := cfg.Profiles[name]
		if p.Description != "" {
			fmt.Printf("%-20s %s\n", name, p.Description)
		} else {
			fmt.Println(name)
		}
	}
	return nil
}

func runProfilesShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadExplorerConfig()
	if err != nil {
		return err
	}

	p, err := cfg.Profile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("command: %s\n", p.Command)
	if p.Description != "" {
		fmt.Printf("description: %s\n", p.Description)
	}
	if len(p.Args) > 0 {
		fmt.Println("args:")
		keys := make([]string, 0, len(p.Args))
		for k := range p.Args {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s = %v\n", k, p.Args[k])
		}
	}
	return nil
}
