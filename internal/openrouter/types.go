package openrouter

// Message is a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat completions call.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// ChatResponse is returned by the chat completions endpoint. OpenRouter may
// answer 200 with an Error body when the upstream provider fails.
type ChatResponse struct {
	Model   string    `json:"model,omitempty"`
	Choices []Choice  `json:"choices"`
	Usage   *Usage    `json:"usage,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice is a single completion choice.
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Usage reports token counts.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError is the error object embedded in OpenRouter responses.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Model is an entry of the models endpoint.
type Model struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ContextLength int      `json:"context_length,omitempty"`
	Pricing       *Pricing `json:"pricing"`
}

// Pricing is per-token model pricing, as decimal strings.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Free reports whether both prompt and completion are priced at zero.
func (p *Pricing) Free() bool {
	return p != nil && p.Prompt == "0" && p.Completion == "0"
}

// ModelsResponse is the body of the models endpoint.
type ModelsResponse struct {
	Data []Model `json:"data"`
}
