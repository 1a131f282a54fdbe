package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/query"
	"github.com/protscope/core/internal/ui"
)

const shellHelp = `commands:
  browse                        reload the default result set
  search <name|uniprot|process> <term>
  view <table|graph|bubble|human>
  organ <id>                    proteins linked to an organ
  category <label>              proteins of one process
  help
  quit`

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Explore interactively, switching views without refetching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			s := &shell{app: a, out: cmd.OutOrStdout(), view: a.view, interactive: isTerminal(in)}
			return s.loop(cmd.Context(), in)
		},
	}
}

type shell struct {
	app  *app
	out  io.Writer
	view models.View
	// interactive prints the banner and prompts; piped input runs silently.
	interactive bool
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *shell) loop(ctx context.Context, in io.Reader) error {
	if s.interactive {
		ui.Brand.Fprintln(s.out, "protscope shell")
		ui.Subtle.Fprintln(s.out, "type help for commands")
	}

	scanner := bufio.NewScanner(in)
	for {
		if s.interactive {
			fmt.Fprint(s.out, ui.Info.Sprint("> "))
		}
		if !scanner.Scan() {
			if s.interactive {
				fmt.Fprintln(s.out)
			}
			return scanner.Err()
		}

		quit, err := s.exec(ctx, scanner.Text())
		if err != nil {
			if errors.Is(err, query.ErrEmptyTerm) {
				ui.Warn.Fprintln(s.out, "enter a search term")
				continue
			}
			ui.Error(s.out, err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)

	case "browse", "reset":
		if _, err := s.app.ctrl.Reset(ctx); err != nil {
			return false, discardStale(err)
		}
		return false, s.render()

	case "search":
		if len(fields) < 2 {
			return false, query.ErrEmptyTerm
		}
		mode, err := models.ParseMode(fields[1])
		if err != nil {
			return false, err
		}
		term := strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
		if _, err := s.app.ctrl.Search(ctx, models.SearchContext{Mode: mode, Term: term}); err != nil {
			return false, discardStale(err)
		}
		return false, s.render()

	case "view":
		view, err := models.ParseView(rest)
		if err != nil {
			return false, err
		}
		s.view = view
		return false, s.render()

	case "organ":
		panel, err := s.app.ctrl.Organ(ctx, organ.ID(strings.ToLower(rest)))
		if err != nil {
			return false, err
		}
		return false, s.app.emit(s.out, panel)

	case "category":
		if rest == "" {
			return false, errors.New("category needs a label")
		}
		return false, s.app.emit(s.out, s.app.ctrl.CategoryDetail(rest))

	default:
		return false, fmt.Errorf("unknown command %q, type help", fields[0])
	}
	return false, nil
}

func (s *shell) render() error {
	if !s.app.ctrl.State().Loaded && s.view != models.ViewHuman {
		ui.Subtle.Fprintln(s.out, "nothing loaded yet, run browse or search")
		return nil
	}
	v, err := s.app.ctrl.Render(s.view)
	if err != nil {
		return err
	}
	return s.app.emit(s.out, v)
}

// discardStale drops superseded responses silently.
func discardStale(err error) error {
	if errors.Is(err, explorer.ErrStale) {
		return nil
	}
	return err
}
