// Package openrouter is a minimal client for the OpenRouter chat and models
// endpoints.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public OpenRouter API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	maxRetries = 3
)

// ErrEmptyCompletion is returned when a response carries no usable text.
var ErrEmptyCompletion = errors.New("openrouter: empty completion")

// StatusError is a non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.StatusCode) + ": " + e.Body
}

// Client is an OpenRouter API client.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	backoffFunc func(attempt int) time.Duration
	log         zerolog.Logger
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// NewClient creates a Client for the public API.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a Client against a custom base URL.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 2 * time.Minute},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		backoffFunc: defaultBackoff,
		log:         zerolog.Nop(),
	}
}

// SetLogger sets the logger used for request tracing.
func (c *Client) SetLogger(l zerolog.Logger) {
	c.log = l
}

// ChatCompletion sends a chat completion request, retrying 429 and 5xx.
func (c *Client) ChatCompletion(ctx context.Context, model string, messages []Message) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Model: model, Messages: messages})
	if err != nil {
		return nil, errors.Wrap(err, "openrouter: encode request")
	}

	start := time.Now()
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, errors.Wrap(err, "openrouter")
	}
	defer resp.Body.Close()

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, errors.Wrap(err, "openrouter: decode response")
	}
	c.log.Debug().
		Str("model", model).
		Dur("latency", time.Since(start)).
		Int("choices", len(chatResp.Choices)).
		Msg("openrouter chat completion")
	if chatResp.Error != nil {
		return nil, errors.Errorf("openrouter: provider error %d: %s", chatResp.Error.Code, chatResp.Error.Message)
	}
	return &chatResp, nil
}

// Complete sends prompt as a single user message and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.ChatCompletion(ctx, model, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.WithMessagef(ErrEmptyCompletion, "model %s", model)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "black-story")
}

func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func (c *Client) doWithRetry(ctx context.Context, do func(context.Context) (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoffFunc(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := do(ctx)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
		if !isRetryable(resp.StatusCode) {
			return nil, statusErr
		}
		c.log.Debug().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("openrouter retrying")

		// Retry-After is waited on top of the backoff; zero backoff disables it.
		if resp.StatusCode == http.StatusTooManyRequests && c.backoffFunc(0) > 0 {
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				if err := sleep(ctx, time.Duration(secs)*time.Second); err != nil {
					return nil, err
				}
			}
		}
		lastErr = statusErr
	}
	return nil, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListModels retrieves the models OpenRouter currently offers.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, errors.Wrap(err, "openrouter")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "openrouter")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(&StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}, "openrouter")
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, errors.Wrap(err, "openrouter: decode models")
	}
	return modelsResp.Data, nil
}
