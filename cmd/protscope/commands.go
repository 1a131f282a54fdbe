package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/ui"
)

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Show human proteins with their UniProt ids and processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.ctrl.Reset(cmd.Context()); err != nil {
				return err
			}
			v, err := a.ctrl.Render(a.view)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), v)
		},
	}
}

func searchCmd(a *app) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search proteins by name, UniProt id or biological process",
		Long: `Search Wikidata and render the matches in the selected view.

  protscope search insulin                      # proteins whose name contains "insulin"
  protscope search P01308 --mode uniprot        # exact UniProt accession
  protscope search apoptosis --mode process --view graph`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := models.ParseMode(mode)
			if err != nil {
				return err
			}

			sc := models.SearchContext{Mode: m, Term: strings.Join(args, " ")}
			if _, err := a.ctrl.Search(cmd.Context(), sc); err != nil {
				return err
			}
			v, err := a.ctrl.Render(a.view)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "name", "search mode: name, uniprot or process")
	return cmd
}

func organCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organ [id]",
		Short: "List organs, or show the proteins linked to one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				v, err := a.ctrl.Render(models.ViewHuman)
				if err != nil {
					return err
				}
				return a.emit(cmd.OutOrStdout(), v)
			}

			panel, err := a.ctrl.Organ(cmd.Context(), organ.ID(strings.ToLower(args[0])))
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), panel)
		},
	}

	cmd.AddCommand(organWarmCmd(a))
	return cmd
}

func organWarmCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch every organ concurrently and report the row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("concurrency") {
				concurrency = a.cfg.Organs.WarmConcurrency
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range a.ctrl.Organs().Warm(cmd.Context(), concurrency) {
				if r.Err != nil {
					failed++
					ui.Error(out, r.Err)
					continue
				}
				fmt.Fprintf(out, "%s %s %d rows\n", ui.Good.Sprint("✓"), r.ID, r.Rows)
			}
			if failed > 0 {
				return fmt.Errorf("%d organ(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "parallel fetches")
	return cmd
}

func categoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category <label>",
		Short: "Show the proteins of one process in the default result set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.ctrl.Reset(cmd.Context()); err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), a.ctrl.CategoryDetail(strings.Join(args, " ")))
		},
	}
}
