package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jasperwreed/sidebar/internal/models"
)

func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about the entity store",
		Long:  `Display entry counts and change versions for every collection.`,
		RunE:  runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	fmt.Fprintln(out, "Sidebar Store Statistics")
	fmt.Fprintln(out, "========================")
	fmt.Fprintf(out, "\nDatabase: %s\n\n", store.Path())

	for _, collection := range models.Collections {
		fmt.Fprintf(out, "  %-30s %8s entries  (version %s)\n",
			collection,
			humanize.Comma(int64(stats.Collections[collection])),
			humanize.Comma(int64(stats.Versions[collection])))
	}

	return nil
}
