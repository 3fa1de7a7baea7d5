package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/kolah/humbler/internal/catalog"
	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/render"
	"github.com/spf13/cobra"
)

func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the operation catalog",
		Example: `  humbler catalog -s https://petstore3.swagger.io/api/v3/openapi.json \
    -u https://petstore3.swagger.io -k pet`,
		RunE: runCatalog,
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "", "Output format: markdown, html, json, yaml (default: markdown)")
	flags.StringP("output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logz.Sync(logger)

	result, doc, err := loadDocument(ctx, cfg)
	if err != nil {
		return err
	}

	cmd.PrintErrf("Loaded OpenAPI %s: %s v%s\n", result.Version, doc.Info.Title, doc.Info.Version)
	cmd.PrintErrf("  Paths: %d\n", doc.Paths.Len())

	infos, err := catalog.Build(doc, cfg.SwaggerUIURL,
		catalog.WithFilter(cfg.FilterKeywords...),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	cmd.PrintErrf("  Operations: %d\n", len(infos))

	renderer, err := render.New(cfg.Templates.Dir)
	if err != nil {
		return err
	}
	page := render.NewPage(doc.Info.Title, cfg.FilterKeywords, infos)

	if cfg.Output.File == "" {
		return renderer.Render(cmd.OutOrStdout(), cfg.Output.Format, page)
	}

	f, err := os.Create(cfg.Output.File)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.Output.File, err)
	}
	if err := writeAndClose(f, func(w io.Writer) error {
		return renderer.Render(w, cfg.Output.Format, page)
	}); err != nil {
		return err
	}

	cmd.PrintErrf("Written: %s\n", cfg.Output.File)
	return nil
}

func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close() // nolint
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
