// Package llm sends a meta-prompt to a chat model and returns its JSON answer.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
)

// Completer answers a meta-prompt with a JSON document.
type Completer interface {
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// chatCompleter is satisfied by *openai.Client.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ chatCompleter = (*openai.Client)(nil)

// Defaults per provider.
const (
	DefaultOpenAIModel   = "o4-mini"
	DefaultDeepSeekModel = "deepseek-chat"

	deepSeekBaseURL = "https://api.deepseek.com/v1"

	// deepseek-chat caps output at 8K tokens; o4-mini leaves it unset.
	deepSeekMaxTokens = 8192
)

var _ Completer = (*Client)(nil)

// Client completes meta-prompts through an OpenAI-compatible chat API.
type Client struct {
	client    chatCompleter
	service   string
	model     string
	maxTokens int
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func withChatCompleter(cc chatCompleter) Option {
	return func(c *Client) {
		c.client = cc
	}
}

// NewOpenAI returns a Client backed by OpenAI.
func NewOpenAI(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	c := &Client{
		client:  openai.NewClient(apiKey),
		service: "openai",
		model:   DefaultOpenAIModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewDeepSeek returns a Client backed by DeepSeek's OpenAI-compatible API.
// baseURL may be empty for the public endpoint.
func NewDeepSeek(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = deepSeekBaseURL
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	c := &Client{
		client:    openai.NewClientWithConfig(cfg),
		service:   "deepseek",
		model:     DefaultDeepSeekModel,
		maxTokens: deepSeekMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete sends prompt as a single user message. The answer is stripped of
// Markdown code fences and must be a JSON document; it is returned as is,
// without being decoded.
func (c *Client) Complete(ctx context.Context, prompt string) ([]byte, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if c.maxTokens > 0 {
		req.MaxTokens = c.maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, c.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response: %w", c.service, apierr.ErrBadResponse)
	}

	answer := stripFences(resp.Choices[0].Message.Content)
	if !json.Valid(answer) {
		return nil, fmt.Errorf("%s answered %q: %w", c.service, preview(answer), ErrInvalidAnswer)
	}
	return answer, nil
}

// classify maps go-openai errors onto apierr sentinels.
func (c *Client) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(c.service, apiErr.HTTPStatusCode, []byte(apiErr.Message))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apierr.FromStatus(c.service, reqErr.HTTPStatusCode, []byte(reqErr.Error()))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out: %w", c.service, apierr.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", c.service, err)
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(s string) []byte {
	b := bytes.TrimSpace([]byte(s))
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		b = b[3:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

func preview(b []byte) string {
	const max = 80
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
