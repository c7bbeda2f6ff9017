package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kryft-Studios/parsee/internal/cache"
	"github.com/Kryft-Studios/parsee/internal/config"
	"github.com/Kryft-Studios/parsee/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-extract declarations whenever sources change",
	Long: `Watch observes the given directories (default: current directory) and
re-runs extraction for every debounced batch of changed TypeScript or
JavaScript files, printing each file's declarations as JSON. Unchanged file
content is served from the extraction cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(args)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-extracting")
	watchCmd.Flags().BoolVar(&extractPretty, "pretty", false, "indent JSON output")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	for _, warning := range cfg.Warnings() {
		log.Println(warning)
	}
	if extractPretty {
		cfg.Output.Pretty = true
	}
	fields := cfg.Projection()

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	store, err := cache.New(cache.DefaultCapacity)
	if err != nil {
		return err
	}
	defer store.Close()

	sw, err := watcher.New(dirs, watchDebounce)
	if err != nil {
		return err
	}
	defer sw.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("watching %v", dirs)
	sw.Run(ctx, func(files []string) {
		for _, file := range files {
			if _, err := os.Stat(file); err != nil {
				// Deleted or renamed away; nothing to extract.
				continue
			}
			items, err := extractFile(store, file, fields)
			if err != nil {
				log.Printf("skipping %s: %v", file, err)
				continue
			}
			data, err := encodeJSON(map[string]any{file: items}, cfg.Output.Pretty)
			if err != nil {
				log.Printf("encoding %s: %v", file, err)
				continue
			}
			os.Stdout.Write(append(data, '\n'))
		}
	})
	return nil
}
