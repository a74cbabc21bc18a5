package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
)

const (
	defaultFalEndpoint = "https://fal.run/fal-ai/nano-banana-pro"
	falHTTPTimeout     = 5 * time.Minute
	falService         = "fal.ai"
)

var _ Generator = (*FalGenerator)(nil)

// FalGenerator generates images with fal.ai's synchronous REST endpoint and
// downloads the first returned image.
type FalGenerator struct {
	apiKey     string
	endpoint   string
	httpClient httpDoer
	retry      apierr.RetryConfig
	maxBody    int64
	log        *zap.Logger
}

// FalOption configures a FalGenerator.
type FalOption func(*FalGenerator)

// WithFalEndpoint sets the model endpoint (for testing or other models).
func WithFalEndpoint(url string) FalOption {
	return func(g *FalGenerator) {
		g.endpoint = strings.TrimSuffix(url, "/")
	}
}

// WithFalRetry overrides the retry policy.
func WithFalRetry(cfg apierr.RetryConfig) FalOption {
	return func(g *FalGenerator) {
		onRetry := g.retry.OnRetry
		g.retry = cfg
		if g.retry.OnRetry == nil {
			g.retry.OnRetry = onRetry
		}
	}
}

func withFalHTTPClient(c httpDoer) FalOption {
	return func(g *FalGenerator) {
		g.httpClient = c
	}
}

func withFalMaxBody(n int64) FalOption {
	return func(g *FalGenerator) {
		g.maxBody = n
	}
}

// NewFalGenerator returns a generator authenticated with a FAL_KEY.
func NewFalGenerator(apiKey string, log *zap.Logger, opts ...FalOption) (*FalGenerator, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &FalGenerator{
		apiKey:   apiKey,
		endpoint: defaultFalEndpoint,
		retry:    retryConfig(log, falService),
		maxBody:  maxImageSize,
		log:      log,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.httpClient == nil {
		g.httpClient = &http.Client{Timeout: falHTTPTimeout}
	}
	return g, nil
}

type falRequest struct {
	Prompt string `json:"prompt"`
}

type falResponse struct {
	Images []struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
	} `json:"images"`
}

// Generate submits prompt and downloads the resulting image, retrying
// transient failures.
func (g *FalGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return apierr.RetryWithBackoff(ctx, g.retry, func() ([]byte, error) {
		url, err := g.submit(ctx, prompt)
		if err != nil {
			return nil, err
		}
		g.log.Debug("downloading image", zap.String("url", url))
		return g.download(ctx, url)
	}, shouldRetry)
}

func (g *FalGenerator) submit(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(falRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+g.apiKey)

	data, err := g.do(req)
	if err != nil {
		return "", err
	}

	var resp falResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%s: failed to parse response: %v: %w", falService, err, apierr.ErrBadResponse)
	}
	if len(resp.Images) == 0 || resp.Images[0].URL == "" {
		return "", fmt.Errorf("%s: %w", falService, ErrNoImage)
	}
	return resp.Images[0].URL, nil
}

func (g *FalGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return g.do(req)
}

// do sends req and returns the body of a 2xx response. A body over maxBody
// fails with ErrTooLarge.
func (g *FalGenerator) do(req *http.Request) (_ []byte, err error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", falService, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", falService, err)
	}
	over := int64(len(data)) > g.maxBody
	if over {
		data = data[:g.maxBody]
	}
	if err := apierr.FromStatus(falService, resp.StatusCode, data); err != nil {
		return nil, err
	}
	if over {
		return nil, fmt.Errorf("%s: %s exceeds %d bytes: %w", falService, req.URL.Path, g.maxBody, ErrTooLarge)
	}
	return data, nil
}
