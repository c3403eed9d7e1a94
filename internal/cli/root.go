// Package cli implements the breedy command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrlokans/breedy/internal/config"
	"github.com/mrlokans/breedy/internal/entrypoint"
)

// ConfigLoader builds the configuration. Tests replace it.
type ConfigLoader func() *config.Config

type options struct {
	loadConfig   ConfigLoader
	databasePath string
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the HTTP server.
func NewRootCommand(version string, loadConfig ConfigLoader) *cobra.Command {
	if loadConfig == nil {
		loadConfig = config.NewConfig
	}
	opts := &options{loadConfig: loadConfig}

	serve := newServeCommand(opts, version)

	root := &cobra.Command{
		Use:   "breedy",
		Short: "Offline-capable cat breed catalog",
		Long: `Breedy keeps a local copy of a remote cat breed catalog, fetched page by
page and reconciled with the catalog on demand or on a schedule, and a list
of favorite breeds.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.databasePath, "db", "", "Path to the database file (default: $DATABASE_PATH or "+config.DefaultDatabasePath+")")

	root.AddCommand(
		serve,
		newFetchCommand(opts),
		newRefreshCommand(opts),
		newSearchCommand(opts),
		newFavouriteCommand(opts),
		newUnfavouriteCommand(opts),
		newFavouritesCommand(opts),
		newCursorCommand(opts),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version, nil).Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) config() *config.Config {
	cfg := o.loadConfig()
	if o.databasePath != "" {
		cfg.Database.Path = o.databasePath
	}
	return cfg
}

// withApp opens the application for a single command. The context is
// cancelled on SIGINT or SIGTERM.
func (o *options) withApp(cmd *cobra.Command, warm bool, fn func(ctx context.Context, app *entrypoint.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := entrypoint.NewApp(o.config())
	if err != nil {
		return err
	}
	defer app.Close()

	if warm {
		if err := app.WarmCache(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, app)
}
