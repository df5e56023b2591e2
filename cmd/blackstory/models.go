package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lorenzotomasdiez/black-story/internal/config"
	"github.com/lorenzotomasdiez/black-story/internal/llm"
	"github.com/lorenzotomasdiez/black-story/internal/models"
	"github.com/lorenzotomasdiez/black-story/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List free OpenRouter models usable as 'openrouter <id>'",
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := freeRegistry(ctx, cfg, log)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), colorEnabled(cmd))
	for _, m := range registry.FreeModels() {
		printer.Line(output.ToneInfo, fmt.Sprintf("openrouter %s\t%s", m.ID, m.Name))
	}
	return nil
}

// freeRegistry fetches the live model list, falling back to the built-in
// defaults when it cannot be fetched or has no free models.
func freeRegistry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*models.Registry, error) {
	client, err := llm.NewOpenRouterClient(cfg, log)
	if err != nil {
		return nil, err
	}
	all, err := client.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch models, using defaults")
		all = models.DefaultFreeModels()
	}
	registry := models.NewRegistry(all)
	if len(registry.FreeModels()) == 0 {
		registry = models.NewRegistry(models.DefaultFreeModels())
	}
	return registry, nil
}
