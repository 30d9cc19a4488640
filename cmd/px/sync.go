package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fexplorer/internal/config"
	"fexplorer/internal/index"
)

var flagSyncDepth int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the project index from the configured scan roots",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().IntVar(&flagSyncDepth, "depth", 0, "Scan depth under each root (default from config)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	dirs, err := resolveDirs()
	if err != nil {
		return err
	}
	cfg, err := config.LoadPx(dirs)
	if err != nil {
		return err
	}

	if len(cfg.ScanDirs) == 0 {
		fmt.Println("No scan directories configured. Run `px init` and edit:")
		fmt.Printf("  %s\n", dirs.PxConfigFile())
		return nil
	}

	depth := cfg.ScanDepth
	if flagSyncDepth > 0 {
		depth = flagSyncDepth
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning %d directories...\n", len(cfg.ScanDirs))
	for _, dir := range cfg.ScanDirs {
		fmt.Printf("  %s\n", dir)
	}

	store := index.NewStore(dirs.IndexCacheFile())
	summary, err := store.Sync(ctx, index.SyncConfig{
		ScanDirs: cfg.ScanDirs,
		MaxDepth: depth,
		Logger:   logger,
	}, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d projects in %.2fs\n", summary.Projects, summary.Duration.Seconds())
	return nil
}
