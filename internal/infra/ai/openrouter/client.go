package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/okandemirel/sales-analyst/internal/domain/analysis"
	"github.com/okandemirel/sales-analyst/internal/infra/ai/prompt"
)

const defaultModel = "deepseek/deepseek-chat-v3-0324:free"

// Options configures the OpenRouter-backed analyzer.
type Options struct {
	APIKey  string
	BaseURL string // e.g. https://openrouter.ai/api/v1
	Model   string
	Referer string // sent as HTTP-Referer, identifies the calling app
	Title   string // sent as X-Title
}

type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a chat-completion client pointed at an OpenAI-compatible
// endpoint. The OpenRouter identity headers ride on every request via the
// underlying transport.
func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			referer: opts.Referer,
			title:   opts.Title,
		},
	}

	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Analyze issues one synchronous completion with the fixed system role and
// the built prompt as user content, and returns the first choice's text.
func (c *Client) Analyze(ctx context.Context, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System()},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", analysis.ErrInference)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps provider errors onto the domain taxonomy so callers can
// distinguish auth, quota and oversized-prompt failures without string
// matching.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", analysis.ErrAuthFailed, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", analysis.ErrQuotaExceeded, apiErr.Message)
		case http.StatusBadRequest:
			if isContextLength(apiErr) {
				return fmt.Errorf("%w: %s", analysis.ErrContextTooLarge, apiErr.Message)
			}
		}
	}
	return fmt.Errorf("%w: %v", analysis.ErrInference, err)
}

func isContextLength(apiErr *openai.APIError) bool {
	if code, ok := apiErr.Code.(string); ok && code == "context_length_exceeded" {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "context length") || strings.Contains(msg, "maximum context")
}

// headerTransport adds the OpenRouter app-identity headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.referer != "" {
		clone.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		clone.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(clone)
}
