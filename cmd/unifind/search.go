package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/unifind/internal/output"
)

func newSearchCmd(a *app) *cobra.Command {
	var country, name string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the university directory by country and/or name",
		Example: `  unifind search --country Brazil
  unifind search --name Harvard --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unis, err := a.client.Search(cmd.Context(), country, name)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(unis)
			}
			if len(unis) == 0 {
				a.printer.Info("No universities found for the given criteria.")
				return nil
			}
			return output.UniversityTable(cmd.OutOrStdout(), unis).Render()
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "country name (e.g. Brazil)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "university name or part of it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw results as JSON")
	return cmd
}
