package cli

import (
	"context"
	"fmt"

	"github.com/kolah/humbler/internal/config"
	"github.com/kolah/humbler/internal/loader"
	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setup loads the configuration and returns a context carrying a logger
// built from it. The caller syncs the logger.
func setup(cmd *cobra.Command) (*config.Config, context.Context, *zap.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logz.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	return cfg, logz.WithLogger(cmd.Context(), logger), logger, nil
}

func loadDocument(ctx context.Context, cfg *config.Config) (*loader.Result, *model.Document, error) {
	result, err := loader.Load(ctx, cfg.Spec,
		loader.WithTimeout(cfg.Fetch.Timeout),
		loader.WithUserAgent(cfg.Fetch.UserAgent),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}

	doc, err := loader.Transform(ctx, result)
	if err != nil {
		return nil, nil, fmt.Errorf("transforming spec: %w", err)
	}

	return result, doc, nil
}
