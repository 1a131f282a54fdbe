package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protscope/core/internal/export"
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/views"
)

func exportCmd(a *app) *cobra.Command {
	var (
		format string
		mode   string
		term   string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Save the bubble chart as an SVG or PNG snapshot",
		Long: `Render the process bubble chart of the default result set, or of a
search when --term is given, to a static image.

  protscope export processes.svg
  protscope export insulin.png --term insulin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := export.Format(path, format)
			if err != nil {
				return err
			}

			title := "Human proteins by biological process"
			if term != "" {
				m, err := models.ParseMode(mode)
				if err != nil {
					return err
				}
				if _, err := a.ctrl.Search(cmd.Context(), models.SearchContext{Mode: m, Term: term}); err != nil {
					return err
				}
				title = fmt.Sprintf("Search %s %q by biological process", m, strings.TrimSpace(term))
			} else if _, err := a.ctrl.Reset(cmd.Context()); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create parent dir: %w", err)
			}
			out, err := os.Create(path)
			if err != nil {
				return err
			}

			if err := export.Bubble(out, views.Bubble(a.ctrl.State().Rows), f, title); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "svg or png (default from the file extension)")
	cmd.Flags().StringVar(&term, "term", "", "search term; the default result set when empty")
	cmd.Flags().StringVarP(&mode, "mode", "m", "name", "search mode: name, uniprot or process")
	return cmd
}
