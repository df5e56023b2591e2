package models

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Provider names a model backend.
type Provider string

const (
	ProviderOllama     Provider = "ollama"
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
)

// Selector picks a backend and a model name on that backend.
type Selector struct {
	Provider Provider
	Model    string
}

// String renders the selector in the syntax ParseSelector accepts.
func (s Selector) String() string {
	switch s.Provider {
	case ProviderGemini:
		return s.Model
	case ProviderOllama:
		return string(s.Provider) + " " + strconv.Quote(s.Model)
	default:
		if s.Model == "" {
			return string(s.Provider)
		}
		return string(s.Provider) + " " + s.Model
	}
}

// ErrUnsupported is returned for selectors naming an unknown backend.
var ErrUnsupported = errors.New("unsupported model type")

// ParseSelector parses a model argument:
//
//	ollama "gemma3:270m"
//	gemini-2.5-flash
//	openrouter [model-id]
//	openai gpt-4o-mini
//
// The model name may be quoted. An OpenRouter selector without a model is
// resolved later to a free model.
func ParseSelector(arg string) (Selector, error) {
	arg = strings.TrimSpace(arg)
	kind, name, _ := strings.Cut(arg, " ")
	name = strings.Trim(strings.TrimSpace(name), `"'`)

	switch {
	case kind == string(ProviderOllama):
		if name == "" {
			return Selector{}, errors.Errorf("models: %q needs a model name, e.g. ollama \"qwen3\"", arg)
		}
		return Selector{Provider: ProviderOllama, Model: name}, nil
	case strings.HasPrefix(kind, string(ProviderGemini)):
		if name == "" {
			name = kind
		}
		return Selector{Provider: ProviderGemini, Model: name}, nil
	case kind == string(ProviderOpenRouter):
		return Selector{Provider: ProviderOpenRouter, Model: name}, nil
	case kind == string(ProviderOpenAI):
		if name == "" {
			return Selector{}, errors.Errorf("models: %q needs a model name, e.g. openai gpt-4o-mini", arg)
		}
		return Selector{Provider: ProviderOpenAI, Model: name}, nil
	default:
		return Selector{}, errors.Wrapf(ErrUnsupported, "models: %q (use ollama \"name\", gemini-<name>, openrouter [id] or openai <id>)", kind)
	}
}

// tinyModels struggle to follow the JSON reply format.
var tinyModels = map[string]bool{
	"gemma3:270m": true,
	"gemma3:1b":   true,
	"qwen3:0.6b":  true,
}

// IsTinyModel reports whether s names a model known to be too small to play
// the Detective reliably.
func IsTinyModel(s Selector) bool {
	return tinyModels[strings.ToLower(s.Model)]
}
