package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/entrypoint"
	"github.com/mrlokans/breedy/internal/watch"
)

func newSearchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search breeds by name, falling back to stored breeds when offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *entrypoint.App) error {
				state, err := app.Search.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if state.Error {
					return fmt.Errorf("search failed: %s", state.ErrorMessage)
				}

				out := cmd.OutOrStdout()
				if state.Source == browse.SourceLocal {
					fmt.Fprintln(out, "Catalog unreachable, showing stored breeds")
				}
				printBreedItems(out, state.Breeds)
				return nil
			})
		},
	}
}

func newFavouriteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "favourite <id>",
		Short: "Mark a breed as favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *entrypoint.App) error {
				if err := app.Details.SetFavorite(ctx, args[0], true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Marked %s as favourite\n", args[0])
				return nil
			})
		},
	}
}

func newUnfavouriteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unfavourite <id>",
		Short: "Remove a breed from favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *entrypoint.App) error {
				if err := app.Details.SetFavorite(ctx, args[0], false); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s from favourites\n", args[0])
				return nil
			})
		},
	}
}

func newFavouritesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "favourites",
		Short: "List favourite breeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *entrypoint.App) error {
				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				favs, err := watch.First(ctx, app.Ledger.ObserveFavorites(ctx))
				if err != nil {
					return err
				}
				printBreeds(cmd.OutOrStdout(), favs)
				return nil
			})
		},
	}
}

func printBreedItems(out io.Writer, items []browse.BreedItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No breeds found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tORIGIN\tFAVOURITE")
	for _, item := range items {
		fav := ""
		if item.Favorite {
			fav = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Origin, fav)
	}
	w.Flush()
}

func printBreeds(out io.Writer, breeds []entities.Breed) {
	if len(breeds) == 0 {
		fmt.Fprintln(out, "No favourites yet")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tORIGIN\tLIFE SPAN")
	for _, b := range breeds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Origin, b.LifeSpan)
	}
	w.Flush()
}
