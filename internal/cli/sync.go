package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/entrypoint"
	"github.com/mrlokans/breedy/internal/tasks"
)

func newFetchCommand(opts *options) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Store the next pages of the breed catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 || pages > browse.MaxFetchPages {
				return fmt.Errorf("--pages must be between 1 and %d", browse.MaxFetchPages)
			}
			return opts.withApp(cmd, false, func(ctx context.Context, app *entrypoint.App) error {
				fetched, err := app.List.FetchPages(ctx, pages)
				if err != nil {
					return fmt.Errorf("fetch page %d: %w", fetched+1, err)
				}
				if fetched < pages {
					fmt.Fprintf(cmd.OutOrStdout(), "Reached the end of the catalog after %d page(s)\n", fetched)
				}

				cursor, err := app.Breeds.Cursor(ctx)
				if err != nil {
					return err
				}
				count, err := app.BreedStore.Count(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d breeds, last page %d\n", count, cursor)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "Number of pages to fetch")
	return cmd
}

func newRefreshCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reconcile stored breeds with the catalog",
		Long: `Re-downloads every page fetched so far, stores changed and new breeds and
deletes stored breeds the catalog no longer lists. The outcome is recorded as
the last sync status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *entrypoint.App) error {
				result, err := tasks.RunRefresh(ctx, app.List, app.Settings)
				fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d, upserted %d, deleted %d, failed %d\n",
					result.Fetched, result.Upserted, result.Deleted, result.Failed)
				return err
			})
		},
	}
}

func newCursorCommand(opts *options) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Show or reset the last fetched catalog page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *entrypoint.App) error {
				if reset {
					if err := app.Breeds.ResetCursor(ctx); err != nil {
						return err
					}
				}
				cursor, err := app.Breeds.Cursor(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", cursor)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Forget pagination progress")
	return cmd
}
