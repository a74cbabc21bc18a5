package imagegen

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
)

// DefaultGeminiModel is an image-capable Gemini model.
const DefaultGeminiModel = "gemini-2.5-flash-image"

const geminiService = "gemini"

// contentGenerator is satisfied by *genai.Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ contentGenerator = (*genai.Models)(nil)

var _ Generator = (*GeminiGenerator)(nil)

// GeminiGenerator generates images with the Gemini API.
type GeminiGenerator struct {
	models contentGenerator
	model  string
	retry  apierr.RetryConfig
	log    *zap.Logger
}

// GeminiOption configures a GeminiGenerator.
type GeminiOption func(*GeminiGenerator)

// WithGeminiModel overrides DefaultGeminiModel.
func WithGeminiModel(model string) GeminiOption {
	return func(g *GeminiGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithGeminiRetry overrides the retry policy.
func WithGeminiRetry(cfg apierr.RetryConfig) GeminiOption {
	return func(g *GeminiGenerator) {
		onRetry := g.retry.OnRetry
		g.retry = cfg
		if g.retry.OnRetry == nil {
			g.retry.OnRetry = onRetry
		}
	}
}

func withContentGenerator(cg contentGenerator) GeminiOption {
	return func(g *GeminiGenerator) {
		g.models = cg
	}
}

// NewGeminiGenerator creates a Gemini API client for apiKey.
func NewGeminiGenerator(ctx context.Context, apiKey string, log *zap.Logger, opts ...GeminiOption) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &GeminiGenerator{
		model: DefaultGeminiModel,
		retry: retryConfig(log, geminiService),
		log:   log,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.models == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		g.models = client.Models
	}
	return g, nil
}

// Generate returns the first inline image of the model's answer.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	return apierr.RetryWithBackoff(ctx, g.retry, func() ([]byte, error) {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			return nil, classifyGemini(err)
		}
		for _, c := range resp.Candidates {
			if c.Content == nil {
				continue
			}
			for _, part := range c.Content.Parts {
				if part.InlineData != nil && len(part.InlineData.Data) > 0 {
					g.log.Debug("gemini image received",
						zap.String("mime", part.InlineData.MIMEType),
						zap.Int("bytes", len(part.InlineData.Data)))
					return part.InlineData.Data, nil
				}
			}
		}
		return nil, fmt.Errorf("%s: %w", geminiService, ErrNoImage)
	}, shouldRetry)
}

func classifyGemini(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(geminiService, apiErr.Code, []byte(apiErr.Message))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out: %w", geminiService, apierr.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", geminiService, err)
}
