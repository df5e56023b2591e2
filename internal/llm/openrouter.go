package llm

import (
	"context"

	"github.com/lorenzotomasdiez/black-story/internal/openrouter"
)

// OpenRouter generates text with an OpenRouter model.
type OpenRouter struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouter wraps client for one model.
func NewOpenRouter(client *openrouter.Client, model string) *OpenRouter {
	return &OpenRouter{client: client, model: model}
}

func (o *OpenRouter) Name() string { return o.model }

func (o *OpenRouter) Generate(ctx context.Context, prompt string) (string, error) {
	return o.client.Complete(ctx, o.model, prompt)
}

func (o *OpenRouter) Close() error { return nil }
