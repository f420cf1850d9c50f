package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configFile string
	logLevel   string
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Terminal conversation sidebar",
		Long: `Sidebar - A windowed conversation list backed by a local entity store.
Rows are joined from conversations, actions, policies, contacts and transactions
as they scroll into view.`,
		Version:      "0.1.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default: ~/.sidebar/sidebar.db)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file (default: ~/.sidebar/config.json if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		NewBrowseCommand(),
		NewListCommand(),
		NewImportCommand(),
		NewStatsCommand(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
