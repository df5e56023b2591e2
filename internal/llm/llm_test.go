package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/lorenzotomasdiez/black-story/internal/config"
	"github.com/lorenzotomasdiez/black-story/internal/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer answers every chat completion with content and records the
// last request.
func chatServer(t *testing.T, content string, last *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if last != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(last))
			(*last)["path"] = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadOllamaUsesOpenAICompatibleEndpoint(t *testing.T) {
	var last map[string]any
	server := chatServer(t, "No", &last)
	cfg := config.Default()
	cfg.OllamaBaseURL = server.URL

	m, err := Load(context.Background(), models.Selector{Provider: models.ProviderOllama, Model: "qwen3"}, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "qwen3", m.Name())
	got, err := m.Generate(context.Background(), "¿Sí o no?")
	require.NoError(t, err)
	assert.Equal(t, "No", got)
	assert.Equal(t, "/v1/chat/completions", last["path"])
	assert.Equal(t, "qwen3", last["model"])
}

func TestChatEmptyReply(t *testing.T) {
	server := chatServer(t, "   ", nil)
	_, err := NewOllama(server.URL+"/", "qwen3").Generate(context.Background(), "hola")
	assert.True(t, errors.Is(err, ErrEmptyReply))
}

func TestLoadOpenRouter(t *testing.T) {
	var last map[string]any
	server := chatServer(t, "Irrelevante", &last)
	cfg := config.Default()
	cfg.OpenRouterAPIKey = "or-key"
	cfg.OpenRouterBaseURL = server.URL

	m, err := Load(context.Background(), models.Selector{Provider: models.ProviderOpenRouter, Model: "free/model:free"}, cfg, zerolog.Nop())
	require.NoError(t, err)

	got, err := m.Generate(context.Background(), "pregunta")
	require.NoError(t, err)
	assert.Equal(t, "Irrelevante", got)
	assert.Equal(t, "/chat/completions", last["path"])
}

func TestLoadRequiresProviderSettings(t *testing.T) {
	cfg := config.Default()
	cfg.OllamaBaseURL = ""

	for _, sel := range []models.Selector{
		{Provider: models.ProviderOllama, Model: "qwen3"},
		{Provider: models.ProviderGemini, Model: "gemini-2.5-flash"},
		{Provider: models.ProviderOpenRouter, Model: "x"},
		{Provider: models.ProviderOpenAI, Model: "gpt-4o-mini"},
	} {
		_, err := Load(context.Background(), sel, cfg, zerolog.Nop())
		assert.True(t, errors.Is(err, ErrMissingSetting), sel.String())
	}
}

func TestLoadRejectsIncompleteSelector(t *testing.T) {
	_, err := Load(context.Background(), models.Selector{Provider: models.ProviderOpenRouter}, config.Default(), zerolog.Nop())
	assert.Error(t, err)

	_, err = Load(context.Background(), models.Selector{Provider: "claude", Model: "x"}, config.Default(), zerolog.Nop())
	assert.True(t, errors.Is(err, models.ErrUnsupported))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Sí"), genai.Text("")}},
		}},
	}
	got, err := responseText(resp, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "Sí", got)

	_, err = responseText(&genai.GenerateContentResponse{}, "gemini-2.5-flash")
	assert.True(t, errors.Is(err, ErrEmptyReply))

	_, err = responseText(&genai.GenerateContentResponse{
		PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
	}, "gemini-2.5-flash")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyReply))
}
