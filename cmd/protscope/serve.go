package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/protscope/core/cmd/protscope/middleware"
	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/handlers"
	"github.com/protscope/core/internal/models"
)

const shutdownTimeout = 5 * time.Second

// setupRouter mounts the health check and the explorer API behind CORS.
func setupRouter(ctrl *explorer.Controller, endpoint string, view models.View, origin string, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.Health(endpoint))
	handlers.NewExplorer(ctrl, view, log).Register(mux)
	return middleware.Cors(origin)(mux)
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer view models as a JSON API",
		Long: `Start an HTTP server exposing the explorer to a browser front end.

  GET /health
  GET /browse?view=table
  GET /search?mode=name&term=insulin&view=graph
  GET /view?view=bubble
  GET /organs
  GET /organs/{id}
  GET /categories?label=...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           setupRouter(a.ctrl, a.client.Endpoint(), a.view, a.cfg.Server.CORSAllowedOrigin, a.log),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return run(cmd.Context(), srv, a.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// run serves until ctx is canceled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
