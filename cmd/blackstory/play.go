package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/lorenzotomasdiez/black-story/internal/game"
	"github.com/lorenzotomasdiez/black-story/internal/llm"
	"github.com/lorenzotomasdiez/black-story/internal/models"
	"github.com/lorenzotomasdiez/black-story/internal/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one Black Story game",
		Example: `  blackstory play --m1 gemini-2.5-flash --m2 'ollama "qwen3"'
  blackstory play --m1 openrouter --m2 openrouter`,
		RunE: runPlay,
	}
	cmd.Flags().String("m1", "", `Judge model (e.g. 'ollama "gemma3:270m"' or 'gemini-2.5-flash')`)
	cmd.Flags().String("m2", "", `Detective model (e.g. 'ollama "qwen3"' or 'gemini-2.5-flash')`)
	cmd.Flags().Bool("pause", isTerminal(os.Stdin), "Wait for Enter after each message")
	cmd.MarkFlagRequired("m1")
	cmd.MarkFlagRequired("m2")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	m1, _ := cmd.Flags().GetString("m1")
	m2, _ := cmd.Flags().GetString("m2")
	pause, _ := cmd.Flags().GetBool("pause")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sessionID := uuid.New()
	log := newLogger(cfg.LogLevel).With().Str("session", sessionID.String()).Logger()

	judgeSel, err := models.ParseSelector(m1)
	if err != nil {
		return errors.Wrap(err, "judge model")
	}
	detectiveSel, err := models.ParseSelector(m2)
	if err != nil {
		return errors.Wrap(err, "detective model")
	}

	// Setup context with Ctrl+C cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sels := []models.Selector{judgeSel, detectiveSel}
	if judgeSel.Provider == models.ProviderOpenRouter && judgeSel.Model == "" ||
		detectiveSel.Provider == models.ProviderOpenRouter && detectiveSel.Model == "" {
		registry, err := freeRegistry(ctx, cfg, log)
		if err != nil {
			return err
		}
		var ok bool
		if sels, ok = registry.AssignFree(sels); !ok {
			return errors.New("no free OpenRouter models available")
		}
	}
	judgeSel, detectiveSel = sels[0], sels[1]

	printer := output.NewPrinter(cmd.OutOrStdout(), colorEnabled(cmd))
	printer.Line(output.ToneInfo, "Iniciando juego Black Story...")
	printer.Line(output.ToneJudge, "Juez (IA 1) usará: "+judgeSel.String())
	printer.Line(output.ToneDetective, "Detective (IA 2) usará: "+detectiveSel.String())

	judge, err := llm.Load(ctx, judgeSel, cfg, log)
	if err != nil {
		printer.Bubble(output.ToneError, game.SpeakerSystem, fmt.Sprintf("Error al cargar modelos: %v", err))
		return err
	}
	defer judge.Close()
	detective, err := llm.Load(ctx, detectiveSel, cfg, log)
	if err != nil {
		printer.Bubble(output.ToneError, game.SpeakerSystem, fmt.Sprintf("Error al cargar modelos: %v", err))
		return err
	}
	defer detective.Close()
	printer.Line(output.ToneInfo, "Modelos cargados correctamente. ¡Comienza el juego!")

	var wait func()
	if pause {
		wait = output.NewPause(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	if models.IsTinyModel(detectiveSel) {
		printer.Bubble(output.ToneWarn, game.SpeakerSystem, fmt.Sprintf(
			"Advertencia: el modelo '%s' es muy pequeño y puede tener dificultades para responder en el formato JSON requerido. Se recomienda usar un modelo más grande.",
			detectiveSel.Model))
		if wait != nil {
			wait()
		}
	}

	start := time.Now()
	transcript, err := output.NewTranscript(cfg.OutputDir, start)
	if err != nil {
		return err
	}
	recorder := output.NewRecorder(printer, transcript, wait, cfg.MaxTurns, log)

	engine := game.NewEngine(judge, detective,
		game.WithMaxTurns(cfg.MaxTurns),
		game.WithMatchThreshold(cfg.MatchThreshold),
		game.WithLogger(log),
	)
	engine.OnEvent = recorder.Handle

	printer.Line(output.ToneInfo, "Juez, por favor, crea una Black Story.")
	result, runErr := engine.Run(ctx)
	if result != nil {
		summary := output.Summary{
			SessionID: sessionID,
			StartedAt: start,
			EndedAt:   time.Now(),
			Judge:     judgeSel.String(),
			Detective: detectiveSel.String(),
			Result:    result,
		}
		if err := transcript.WriteSummary(summary); err != nil {
			log.Warn().Err(err).Msg("could not write session summary")
		}
	}
	if runErr != nil {
		return errors.Wrap(runErr, "play")
	}
	return recorder.Err()
}
