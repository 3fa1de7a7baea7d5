package cli

import (
	"context"

	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/model"
	"github.com/kolah/humbler/internal/render"
	"github.com/kolah/humbler/internal/server"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the operation catalog as a web page and a JSON API",
		Long: `Serve the catalog over HTTP. The document is loaded on every request.

  GET /                  HTML table
  GET /api/operations    JSON rows

Both accept repeated ?keyword= parameters, added to the configured filter.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: :4000)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logz.Sync(logger)

	renderer, err := render.New(cfg.Templates.Dir)
	if err != nil {
		return err
	}

	load := func(ctx context.Context) (*model.Document, error) {
		_, doc, err := loadDocument(ctx, cfg)
		return doc, err
	}

	srv, err := server.New(logger, load, renderer, server.Settings{
		SwaggerUIURL: cfg.SwaggerUIURL,
		Keywords:     cfg.FilterKeywords,
	})
	if err != nil {
		return err
	}

	cmd.PrintErrf("Serving catalog of %s on %s\n", cfg.Spec, cfg.Serve.Addr)
	return srv.Run(ctx, cfg.Serve.Addr)
}
