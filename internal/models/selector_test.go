package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		arg  string
		want Selector
	}{
		{`ollama "gemma3:270m"`, Selector{Provider: ProviderOllama, Model: "gemma3:270m"}},
		{`ollama qwen3`, Selector{Provider: ProviderOllama, Model: "qwen3"}},
		{`gemini-2.5-flash`, Selector{Provider: ProviderGemini, Model: "gemini-2.5-flash"}},
		{`  gemini-1.5-pro `, Selector{Provider: ProviderGemini, Model: "gemini-1.5-pro"}},
		{`openrouter`, Selector{Provider: ProviderOpenRouter}},
		{`openrouter qwen/qwen3-235b-a22b:free`, Selector{Provider: ProviderOpenRouter, Model: "qwen/qwen3-235b-a22b:free"}},
		{`openai gpt-4o-mini`, Selector{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseSelector(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSelectorErrors(t *testing.T) {
	_, err := ParseSelector("claude-3")
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = ParseSelector("ollama")
	assert.Error(t, err)

	_, err = ParseSelector(`openai ""`)
	assert.Error(t, err)

	_, err = ParseSelector("")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestSelectorStringRoundTrips(t *testing.T) {
	for _, arg := range []string{`ollama "gemma3:270m"`, "gemini-2.5-flash", "openrouter", "openai gpt-4o"} {
		sel, err := ParseSelector(arg)
		require.NoError(t, err)
		again, err := ParseSelector(sel.String())
		require.NoError(t, err)
		assert.Equal(t, sel, again)
	}
}

func TestIsTinyModel(t *testing.T) {
	assert.True(t, IsTinyModel(Selector{Provider: ProviderOllama, Model: "gemma3:270m"}))
	assert.False(t, IsTinyModel(Selector{Provider: ProviderOllama, Model: "qwen3"}))
}
