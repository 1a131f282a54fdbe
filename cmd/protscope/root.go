package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/protscope/core/internal/config"
	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/logging"
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/sparql"
	"github.com/protscope/core/internal/ui"
)

var version = "0.3.0"

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	endpoint   string
	viewFlag   string
	output     string
	logLevel   string

	cfg    *config.Config
	log    *zap.Logger
	client *sparql.Client
	ctrl   *explorer.Controller
	view   models.View
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.endpoint != "" {
		a.cfg.Endpoint.URL = a.endpoint
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}

	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output %q (use text, json or yaml)", a.output)
	}

	a.view = a.cfg.View.Default
	if a.viewFlag != "" {
		if a.view, err = models.ParseView(a.viewFlag); err != nil {
			return err
		}
	}

	if a.log, err = logging.New(a.cfg.Log.Level, a.cfg.Log.Format); err != nil {
		return err
	}
	zap.ReplaceGlobals(a.log)

	a.client = sparql.New(sparql.Options{
		Endpoint:  a.cfg.Endpoint.URL,
		UserAgent: a.cfg.Endpoint.UserAgent,
		Timeout:   a.cfg.Endpoint.Timeout.Duration,
	}, a.log)
	a.ctrl = explorer.New(a.client, organ.NewCache(a.client, a.log), a.log)
	return nil
}

func (a *app) emit(w io.Writer, v any) error {
	return emit(w, a.output, v)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "protscope",
		Short: "protscope explores proteins and biological processes on Wikidata",
		Long: ui.Brand.Sprint("protscope") + " queries the Wikidata SPARQL endpoint for human proteins\n" +
			ui.Subtle.Sprint("and renders them as a table, a graph, a bubble chart or per organ"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.Path()+")")
	flags.StringVar(&a.endpoint, "endpoint", "", "SPARQL endpoint URL")
	flags.StringVar(&a.viewFlag, "view", "", "view: table, graph, bubble or human")
	flags.StringVarP(&a.output, "output", "o", "text", "output format: text, json or yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		browseCmd(a),
		searchCmd(a),
		organCmd(a),
		categoryCmd(a),
		shellCmd(a),
		exportCmd(a),
		serveCmd(a),
	)

	return root
}
