package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/unifind/internal/health"
	"github.com/jeanpaul/unifind/internal/output"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the university directory and the storage backend are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			checks := []health.Status{health.CheckDirectory(ctx, nil, a.cfg.API.BaseURL)}

			backend := a.cfg.Storage.Backend
			if _, err := a.favorites(ctx); err != nil {
				checks = append(checks, health.Status{Name: "storage", Target: backend, Error: err.Error()})
			} else {
				checks = append(checks, health.CheckStorage(ctx, backend, a.store))
			}

			t := output.NewTable(cmd.OutOrStdout(), []string{"", "Check", "Target", "Latency", "Detail"})
			failed := 0
			for _, s := range checks {
				if !s.Reachable {
					failed++
				}
				t.AddRow(a.printer.Badge(s.Reachable), s.Name, s.Target, a.printer.Dim(s.Latency.Round(time.Millisecond).String()), s.Error)
			}
			if err := t.Render(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(checks))
			}
			a.printer.Success("All checks passed.")
			return nil
		},
	}
}
