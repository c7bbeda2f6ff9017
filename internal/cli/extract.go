package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kryft-Studios/parsee"
	"github.com/Kryft-Studios/parsee/extraction"
	"github.com/Kryft-Studios/parsee/internal/cache"
	"github.com/Kryft-Studios/parsee/internal/config"
	"github.com/Kryft-Studios/parsee/projection"
)

var (
	extractPretty bool
	extractQuiet  bool
	extractOutDir string
	extractFields []string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract declarations from TypeScript/JavaScript sources",
	Long: `Extract parses the given files or directories and emits their top-level
declarations as JSON. Without arguments it discovers sources in the current
directory using the configured include and ignore globs.

Field projection is controlled by the config file or repeated --field flags:

  parsee extract src/ --field doc=never --field position=never
  parsee extract index.ts --field name=only --field members=only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "indent JSON output")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "suppress progress output")
	extractCmd.Flags().StringVar(&extractOutDir, "out", "", "write per-file JSON into this directory instead of stdout")
	extractCmd.Flags().StringArrayVar(&extractFields, "field", nil, "projection override, name=never|include|only (repeatable)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(args []string) error {
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
	if extractOutDir != "" {
		cfg.Output.Dir = extractOutDir
	}

	fields, err := mergeFieldFlags(cfg.Projection(), extractFields)
	if err != nil {
		return err
	}

	files, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files matched")
	}

	store, err := cache.New(cache.DefaultCapacity)
	if err != nil {
		return err
	}
	defer store.Close()

	reporter := newExtractProgress(extractQuiet, len(files))
	results := make(map[string][]extraction.Item, len(files))
	for _, file := range files {
		items, err := extractFile(store, file, fields)
		if err != nil {
			// A broken file never aborts the batch.
			log.Printf("skipping %s: %v", file, err)
			reporter.step()
			continue
		}
		results[file] = items
		reporter.step()
	}
	reporter.finish()

	return emitResults(results, files, cfg.Output)
}

// extractFile reads, extracts (through the content cache), and projects one
// source file.
func extractFile(store *cache.Store, path string, fields projection.Config) ([]extraction.Item, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key := cache.Key(source, parsee.Dialect(path))
	items, ok := store.Get(key)
	if !ok {
		// Cache raw items; projection stays per-invocation.
		items, err = parsee.Extract(source, parsee.Options{Filename: path})
		if err != nil {
			return nil, err
		}
		store.Put(key, items)
	}

	if len(fields) == 0 {
		return items, nil
	}
	return projection.Apply(items, projection.Resolve(fields)), nil
}

// mergeFieldFlags layers --field overrides on top of the configured modes.
func mergeFieldFlags(base projection.Config, flags []string) (projection.Config, error) {
	merged := make(projection.Config, len(base)+len(flags))
	for field, mode := range base {
		merged[field] = mode
	}
	for _, flag := range flags {
		name, mode, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --field %q, expected name=mode", flag)
		}
		field := projection.Field(strings.TrimSpace(name))
		if !projection.Recognized(field) {
			log.Printf("unknown projection field: %s", name)
			continue
		}
		merged[field] = projection.Mode(strings.TrimSpace(mode))
	}
	return merged, nil
}

// resolvePaths expands the command arguments into a file list. Directories
// are walked with the configured globs; explicit files are taken as-is.
func resolvePaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		fd, err := newFileDiscovery(arg, cfg.Paths.Include, cfg.Paths.Ignore)
		if err != nil {
			return nil, err
		}
		discovered, err := fd.discover()
		if err != nil {
			return nil, err
		}
		files = append(files, discovered...)
	}
	return files, nil
}

// emitResults writes extraction output: per-file JSON files when an output
// directory is set, a bare item array for a single input, and a path-keyed
// object for a batch.
func emitResults(results map[string][]extraction.Item, files []string, out config.OutputConfig) error {
	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return err
		}
		for path, items := range results {
			name := strings.ReplaceAll(filepath.ToSlash(path), "/", "__") + ".json"
			data, err := encodeJSON(items, out.Pretty)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(out.Dir, name), data, 0o644); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := encodeJSON(payloadFor(results, files), out.Pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(data))
	return err
}

// payloadFor chooses the output shape: a bare item array for a single
// input, a path-keyed object for a batch. A single file that produced no
// result still emits an empty array rather than null.
func payloadFor(results map[string][]extraction.Item, files []string) any {
	if len(files) == 1 {
		items := results[files[0]]
		if items == nil {
			items = []extraction.Item{}
		}
		return items
	}
	return results
}

func encodeJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
