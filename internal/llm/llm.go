// Package llm adapts the supported model providers to game.Generator.
package llm

import (
	"context"
	"io"
	"time"

	"github.com/lorenzotomasdiez/black-story/internal/game"
	"github.com/rs/zerolog"
)

// Model is a Generator holding provider resources until closed.
type Model interface {
	game.Generator
	io.Closer
}

// logged traces every call at debug level.
type logged struct {
	Model
	provider string
	log      zerolog.Logger
}

func withLogging(m Model, provider string, log zerolog.Logger) Model {
	return &logged{Model: m, provider: provider, log: log}
}

func (l *logged) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := l.Model.Generate(ctx, prompt)
	ev := l.log.Debug()
	if err != nil {
		ev = l.log.Warn().Err(err)
	}
	ev.Str("provider", l.provider).
		Str("model", l.Name()).
		Dur("latency", time.Since(start)).
		Int("prompt_chars", len(prompt)).
		Int("reply_chars", len(text)).
		Msg("model call")
	return text, err
}
