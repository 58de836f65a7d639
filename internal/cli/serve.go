package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jselig/mentionet/internal/api"
	"github.com/jselig/mentionet/pkg/pipeline"
)

// serveCommand creates the serve command: expose the analysis over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mention network analysis over HTTP",
		Long: `Serve the mention network analysis over HTTP.

Endpoints:
  GET /healthz               liveness probe
  GET /api/summary           corpus statistics
  GET /api/top?k=10&kind=in  top-k ranking
  GET /api/graph             graph as JSON
  GET /api/graph.graphml     graph in GraphML format

The analysis is recomputed from the stored corpus per request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	server := api.New(pipeline.NewRunner(st), c.Logger)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Logger.Info("Shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}
