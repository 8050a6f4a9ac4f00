package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/unifind/internal/export"
	"github.com/jeanpaul/unifind/internal/favorites"
	"github.com/jeanpaul/unifind/internal/model"
	"github.com/jeanpaul/unifind/internal/output"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and manage favorite universities",
	}
	cmd.AddCommand(
		newFavoritesListCmd(a),
		newFavoritesAddCmd(a),
		newFavoritesRemoveCmd(a),
		newFavoritesExportCmd(a),
		newFavoritesImportCmd(a),
	)
	return cmd
}

func newFavoritesListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show saved favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			favs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(favs)
			}
			if len(favs) == 0 {
				a.printer.Info("No favorite universities yet.")
				return nil
			}
			return output.FavoriteTable(cmd.OutOrStdout(), favs).Render()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored list as JSON")
	return cmd
}

func newFavoritesAddCmd(a *app) *cobra.Command {
	var fav model.Favorite
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a university to favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			outcome, err := store.Add(cmd.Context(), fav)
			if err != nil {
				return err
			}
			if outcome == favorites.AlreadyExists {
				a.printer.Warning("%q is already in your favorites.", fav.Name)
				return nil
			}
			a.printer.Success("%q added to favorites.", fav.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&fav.Name, "name", "", "university name")
	cmd.Flags().StringVar(&fav.WebPage, "web-page", "", "university web page (identifies the favorite)")
	_ = cmd.MarkFlagRequired("web-page")
	return cmd
}

func newFavoritesRemoveCmd(a *app) *cobra.Command {
	var webPage string
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the favorite with the given web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			outcome, err := store.Remove(cmd.Context(), model.Favorite{WebPage: webPage})
			if err != nil {
				return err
			}
			if outcome == favorites.NotFound {
				a.printer.Warning("No favorite with web page %q.", webPage)
				return nil
			}
			a.printer.Success("%q was removed from favorites.", webPage)
			return nil
		},
	}
	cmd.Flags().StringVar(&webPage, "web-page", "", "web page of the favorite to remove")
	_ = cmd.MarkFlagRequired("web-page")
	return cmd
}

func newFavoritesExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write favorites to a json, yaml or xlsx file",
		Example: `  unifind favorites export --out favorites.yaml
  unifind favorites export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			favs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				if format == "" {
					format = export.FormatJSON
				}
				return export.Write(cmd.OutOrStdout(), format, favs)
			}
			if err := export.WriteFile(out, format, favs); err != nil {
				return err
			}
			a.printer.Success("Exported %d favorites to %s.", len(favs), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or xlsx (default: from --out extension, json on stdout)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func newFavoritesImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Merge favorites from a json, yaml or xlsx file",
		Long: `Merge favorites from a file written by "favorites export".

Entries whose web page is blank or already saved are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := export.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			store, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			added, err := store.Import(cmd.Context(), batch)
			if err != nil {
				return err
			}
			a.printer.Success("Imported %d of %d favorites.", added, len(batch))
			return nil
		},
	}
}
