package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jasperwreed/sidebar/internal/sidebar"
	"github.com/jasperwreed/sidebar/internal/tui"
)

type listOptions struct {
	mode   string
	locale string
	offset int
	height int
	width  int
	ids    string
}

func NewListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one window of the conversation list",
		Long: `Render a window of rows without a terminal UI. Only the rows inside the
window are joined.`,
		Example: `  # Print the first ten rows
  sidebar list

  # Print rows 20-29 in compact mode
  sidebar list --offset 20 --height 10 --mode compact

  # Print rows in an explicit order
  sidebar list --ids 42,17,99`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "Row density: default or compact")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale for list strings (e.g. en, es-MX)")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Index of the first row to print")
	cmd.Flags().IntVar(&opts.height, "height", 10, "Number of rows to print")
	cmd.Flags().IntVar(&opts.width, "width", 72, "Row width in cells")
	cmd.Flags().StringVar(&opts.ids, "ids", "", "Comma separated row order (default: most recent first)")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	v := NewValidator()
	if err := v.ValidateWindow(opts.offset, opts.height); err != nil {
		return err
	}

	config, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := applyListFlags(cmd, config, opts.mode, opts.locale); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}

	store, err := openStore(config)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	ids := v.ParseIDs(opts.ids)
	if len(ids) == 0 {
		ids, err = store.ListConversationIDs(0)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}
	}

	adapter := sidebar.NewAdapter(sidebar.AdapterOptions{
		Config: config.Sidebar,
		Logger: logger,
	})
	frame := adapter.Begin(sidebar.Pass{
		IDs:      ids,
		Snapshot: snapshot,
		Mode:     config.Mode,
		Locale:   config.Locale,
		Focused:  true,
	})

	return printWindow(cmd.OutOrStdout(), adapter, frame, config.Locale, opts)
}

func printWindow(out io.Writer, adapter *sidebar.Adapter, frame sidebar.Frame, locale string, opts listOptions) error {
	if frame.Empty {
		fmt.Fprintln(out, sidebar.EmptyStateTitle(locale))
		fmt.Fprintln(out, sidebar.EmptyStateSubtitle(locale))
		return nil
	}

	printed := 0
	for i := opts.offset; i < opts.offset+opts.height; i++ {
		row, ok := adapter.Row(i)
		if !ok {
			break
		}
		fmt.Fprintln(out, tui.RenderRow(row, opts.width, false))
		printed++
	}

	if printed == 0 {
		fmt.Fprintf(out, "No rows at offset %d (list has %s rows).\n", opts.offset, humanize.Comma(int64(frame.Count)))
		return nil
	}

	fmt.Fprintf(out, "\nRows %d-%d of %s · %s rows joined\n",
		opts.offset+1, opts.offset+printed, humanize.Comma(int64(frame.Count)), humanize.Comma(int64(adapter.Joins())))
	return nil
}
