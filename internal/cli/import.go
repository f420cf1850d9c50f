package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/sidebar/internal/storage"
)

func NewImportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Apply store updates from files",
		Long: `Apply set/merge/remove updates to the entity store. Files hold either a JSON
array of updates or one update per line (JSONL).`,
		Example: `  # Apply a JSONL update file
  sidebar import updates.jsonl

  # Apply every *.jsonl file in a directory
  sidebar import --dir ~/.sidebar/feed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && dir == "" {
				return fmt.Errorf("either a file argument or --dir flag is required")
			}

			files := append([]string{}, args...)
			if dir != "" {
				matches, err := listFeedFiles(dir)
				if err != nil {
					return err
				}
				files = append(files, matches...)
			}
			return runImport(cmd, files)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Import every *.jsonl file in a directory")

	return cmd
}

func listFeedFiles(dir string) ([]string, error) {
	v := NewValidator()
	resolved, err := v.ResolvePath(dir)
	if err != nil {
		return nil, err
	}
	if err := v.ValidateDirectory(resolved); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jsonl") {
			files = append(files, filepath.Join(resolved, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no update files found in %s", resolved)
	}
	return files, nil
}

func runImport(cmd *cobra.Command, files []string) error {
	v := NewValidator()
	out := cmd.OutOrStdout()

	config, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	store, err := openStore(config)
	if err != nil {
		return err
	}
	defer store.Close()

	total := 0
	for _, file := range files {
		if err := v.ValidateFile(file); err != nil {
			return err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read update file: %w", err)
		}

		updates, err := storage.ParseUpdates(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}

		if err := store.ApplyAll(updates); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}

		fmt.Fprintf(out, "✓ Applied %d update(s) from %s\n", len(updates), filepath.Base(file))
		total += len(updates)
	}

	if len(files) > 1 {
		fmt.Fprintf(out, "\n✓ Successfully applied %d update(s) from %d file(s)\n", total, len(files))
	}

	return nil
}
