package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fexplorer/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dirs, err := resolveDirs()
	if err != nil {
		return err
	}

	file, err := config.InitPx(dirs)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", file)
	fmt.Println("Edit scan_dirs, then run `px sync`.")
	return nil
}
