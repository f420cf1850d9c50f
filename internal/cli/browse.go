package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jasperwreed/sidebar/internal/sidebar"
	"github.com/jasperwreed/sidebar/internal/storage"
	"github.com/jasperwreed/sidebar/internal/tui"
	"github.com/jasperwreed/sidebar/internal/watcher"
)

type browseOptions struct {
	mode     string
	locale   string
	platform string
	route    string
	watchDir string
	ids      string
}

func NewBrowseCommand() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse conversations in TUI",
		Long:  `Open an interactive terminal UI showing the conversation list.`,
		Example: `  # Browse the default database
  sidebar browse

  # Browse in compact mode with Spanish strings
  sidebar browse --mode compact --locale es

  # Apply updates dropped into a directory while browsing
  sidebar browse --watch ~/.sidebar/feed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "Row density: default or compact")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale for list strings (e.g. en, es-MX)")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Positioning behavior: web, desktop, ios or android")
	cmd.Flags().StringVar(&opts.route, "route", "home", "Route key scroll positions are saved under")
	cmd.Flags().StringVar(&opts.watchDir, "watch", "", "Directory of *.jsonl update feeds to apply live")
	cmd.Flags().StringVar(&opts.ids, "ids", "", "Comma separated row order (default: most recent first)")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts browseOptions) error {
	v := NewValidator()

	config, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := applyListFlags(cmd, config, opts.mode, opts.locale); err != nil {
		return err
	}
	if opts.platform != "" {
		platform, err := v.ValidatePlatform(opts.platform)
		if err != nil {
			return err
		}
		config.Sidebar.Platform = platform
	}

	watchDir := opts.watchDir
	if watchDir == "" {
		watchDir = config.WatchDir
	}
	if watchDir != "" {
		if watchDir, err = v.GetWatchDirectory(watchDir); err != nil {
			return err
		}
	}

	// The alt screen owns the terminal, so logs go to a file.
	logOut, err := openLogFile(config.LogFile)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger, err := newLogger(logOut, logLevel)
	if err != nil {
		return err
	}

	store, err := openStore(config)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("browse started", "db", store.Path(), "mode", config.Mode, "platform", config.Sidebar.Platform, "route", opts.route)

	browser := tui.NewBrowser(tui.Options{
		Source:  store,
		Config:  config.Sidebar,
		Mode:    config.Mode,
		Locale:  config.Locale,
		Route:   opts.route,
		IDs:     v.ParseIDs(opts.ids),
		Offsets: sidebar.NewScrollOffsetStore(),
		Logger:  logger,
		OnFirstPaint: func() {
			logger.Debug("first row painted", "route", opts.route)
		},
		OnSelect: func(id string) {
			logger.Debug("row selected", "id", id)
		},
	})

	if watchDir != "" {
		w, err := startFeedWatcher(watchDir, store, browser.Notify, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to watch %s: %v\n", watchDir, err)
		} else {
			defer func() {
				if err := w.Stop(); err != nil {
					logger.Error("failed to stop watcher", "err", err)
				}
			}()
		}
	}

	return browser.Run()
}

type updateApplier interface {
	Apply(u storage.Update) error
}

// startFeedWatcher applies feed batches one update at a time, so an update
// the store rejects is logged and skipped without losing the rest.
func startFeedWatcher(dir string, store updateApplier, notify func(), logger *log.Logger) (*watcher.UpdateWatcher, error) {
	w, err := watcher.NewUpdateWatcher(watcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	w.AddHandler(func(batch watcher.Batch) error {
		applied := 0
		for _, u := range batch.Updates {
			if err := store.Apply(u); err != nil {
				logger.Warn("skipping rejected update", "path", batch.Path, "collection", u.Collection, "key", u.Key, "err", err)
				continue
			}
			applied++
		}
		logger.Debug("applied feed batch", "path", batch.Path, "updates", applied, "skipped", len(batch.Updates)-applied)
		if applied > 0 && notify != nil {
			notify()
		}
		return nil
	})

	if err := w.WatchDirectory(dir, "*.jsonl"); err != nil {
		w.Stop()
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

// applyListFlags lets --mode and --locale override the config file.
func applyListFlags(cmd *cobra.Command, config *AppConfig, mode, locale string) error {
	if cmd.Flags().Changed("mode") || mode != "" {
		m, err := sidebar.ParseMode(mode)
		if err != nil {
			return err
		}
		config.Mode = m
	}
	if config.Mode == "" {
		config.Mode = sidebar.ModeDefault
	}
	if locale != "" {
		if err := NewValidator().ValidateLocale(locale); err != nil {
			return err
		}
		config.Locale = locale
	}
	return nil
}
