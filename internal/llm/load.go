package llm

import (
	"context"

	"github.com/lorenzotomasdiez/black-story/internal/config"
	"github.com/lorenzotomasdiez/black-story/internal/models"
	"github.com/lorenzotomasdiez/black-story/internal/openrouter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrMissingSetting is returned when the selected provider is not configured.
var ErrMissingSetting = errors.New("provider not configured")

// Load builds the Model a selector names. Only the settings of the selected
// provider are required.
func Load(ctx context.Context, sel models.Selector, cfg *config.Config, log zerolog.Logger) (Model, error) {
	if sel.Model == "" {
		return nil, errors.Errorf("llm: %s selector has no model", sel.Provider)
	}
	var m Model
	switch sel.Provider {
	case models.ProviderOllama:
		if cfg.OllamaBaseURL == "" {
			return nil, missing(config.EnvOllamaBaseURL, "Ollama")
		}
		m = NewOllama(cfg.OllamaBaseURL, sel.Model)
	case models.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, missing(config.EnvGeminiAPIKey, "Gemini")
		}
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, sel.Model)
		if err != nil {
			return nil, err
		}
		m = g
	case models.ProviderOpenRouter:
		client, err := NewOpenRouterClient(cfg, log)
		if err != nil {
			return nil, err
		}
		m = NewOpenRouter(client, sel.Model)
	case models.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, missing(config.EnvOpenAIAPIKey, "OpenAI")
		}
		m = NewOpenAI(cfg.OpenAIAPIKey, sel.Model)
	default:
		return nil, errors.Wrapf(models.ErrUnsupported, "llm: %q", sel.Provider)
	}
	return withLogging(m, string(sel.Provider), log), nil
}

// NewOpenRouterClient builds the OpenRouter client from cfg.
func NewOpenRouterClient(cfg *config.Config, log zerolog.Logger) (*openrouter.Client, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, missing(config.EnvOpenRouterAPIKey, "OpenRouter")
	}
	baseURL := cfg.OpenRouterBaseURL
	if baseURL == "" {
		baseURL = openrouter.DefaultBaseURL
	}
	client := openrouter.NewClientWithBaseURL(cfg.OpenRouterAPIKey, baseURL)
	client.SetLogger(log)
	return client, nil
}

func missing(env, provider string) error {
	return errors.Wrapf(ErrMissingSetting, "llm: %s is not set; required for %s models", env, provider)
}
