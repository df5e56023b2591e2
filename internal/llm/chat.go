package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyReply is returned when a provider answers without text.
var ErrEmptyReply = errors.New("llm: empty reply")

// Chat generates text through an OpenAI-compatible chat completions API.
// It serves OpenAI itself and Ollama's /v1 endpoint.
type Chat struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a Chat against the OpenAI API.
func NewOpenAI(apiKey, model string) *Chat {
	return &Chat{client: openai.NewClient(apiKey), model: model}
}

// NewOllama creates a Chat against an Ollama server at baseURL.
func NewOllama(baseURL, model string) *Chat {
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	return &Chat{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Chat) Name() string { return c.model }

func (c *Chat) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", errors.WithMessagef(ErrEmptyReply, "model %s", c.model)
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Chat) Close() error { return nil }
