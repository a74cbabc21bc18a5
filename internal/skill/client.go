package skill

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
)

// API configuration.
const (
	apiVersion     = "2023-06-01"
	betaHeader     = "skills-2025-10-02"
	defaultTimeout = 2 * time.Minute
	service        = "skills API"
)

// Skill is a hosted skill as returned by the API.
type Skill struct {
	ID            string `json:"id"`
	DisplayTitle  string `json:"display_title"`
	LatestVersion string `json:"latest_version"`
	Source        string `json:"source,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Version is one uploaded revision of a skill.
type Version struct {
	ID      string `json:"id"`
	SkillID string `json:"skill_id"`
	Version string `json:"version"`
	Name    string `json:"name,omitempty"`
}

// Client talks to the hosted skills API through the Anthropic SDK.
// Requests are not retried.
type Client struct {
	api  anthropic.Client
	log  *zap.Logger
	opts []option.RequestOption
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing or proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.opts = append(c.opts, option.WithBaseURL(strings.TrimSuffix(u, "/")+"/"))
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func withHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.opts = append(c.opts, option.WithHTTPClient(h))
	}
}

// NewClient returns a client authenticated with an Anthropic API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	c := &Client{
		log: zap.NewNop(),
		opts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithHeader("anthropic-version", apiVersion),
			option.WithHeader("anthropic-beta", betaHeader),
			option.WithMaxRetries(0),
			option.WithRequestTimeout(defaultTimeout),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = anthropic.NewClient(c.opts...)
	return c, nil
}

// ListSkills returns every skill visible to the key, following pagination.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	c.log.Debug("skills request", zap.String("op", "list"))
	var all []Skill
	pager := c.api.Beta.Skills.ListAutoPaging(ctx, anthropic.BetaSkillListParams{})
	for pager.Next() {
		s := pager.Current()
		all = append(all, Skill{
			ID:            s.ID,
			DisplayTitle:  s.DisplayTitle,
			LatestVersion: s.LatestVersion,
			Source:        s.Source,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	if err := pager.Err(); err != nil {
		return nil, classify(err)
	}
	return all, nil
}

// GetSkill fetches one skill.
func (c *Client) GetSkill(ctx context.Context, id string) (Skill, error) {
	c.log.Debug("skills request", zap.String("op", "get"), zap.String("id", id))
	s, err := c.api.Beta.Skills.Get(ctx, id, anthropic.BetaSkillGetParams{})
	if err != nil {
		return Skill{}, classify(err)
	}
	return Skill{
		ID:            s.ID,
		DisplayTitle:  s.DisplayTitle,
		LatestVersion: s.LatestVersion,
		Source:        s.Source,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

// CreateSkill uploads files as a new skill named title.
func (c *Client) CreateSkill(ctx context.Context, title string, files []File) (Skill, error) {
	if len(files) == 0 {
		return Skill{}, ErrNoFiles
	}
	c.log.Debug("skills request", zap.String("op", "create"), zap.Int("files", len(files)))
	s, err := c.api.Beta.Skills.New(ctx, anthropic.BetaSkillNewParams{
		DisplayTitle: anthropic.String(title),
		Files:        readers(files),
	})
	if err != nil {
		return Skill{}, classify(err)
	}
	return Skill{
		ID:            s.ID,
		DisplayTitle:  s.DisplayTitle,
		LatestVersion: s.LatestVersion,
		Source:        s.Source,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

// CreateVersion uploads files as a new version of skill id.
func (c *Client) CreateVersion(ctx context.Context, id string, files []File) (Version, error) {
	if len(files) == 0 {
		return Version{}, ErrNoFiles
	}
	c.log.Debug("skills request", zap.String("op", "version"), zap.String("id", id), zap.Int("files", len(files)))
	v, err := c.api.Beta.Skills.Versions.New(ctx, id, anthropic.BetaSkillVersionNewParams{
		Files: readers(files),
	})
	if err != nil {
		return Version{}, classify(err)
	}
	return Version{ID: v.ID, SkillID: v.SkillID, Version: v.Version, Name: v.Name}, nil
}

// readers wraps each file as a named multipart upload. The name keeps the
// folder prefix.
func readers(files []File) []io.Reader {
	out := make([]io.Reader, len(files))
	for i, f := range files {
		out[i] = anthropic.File(bytes.NewReader(f.Content), f.Path, f.MIMEType)
	}
	return out
}

// classify maps SDK errors onto apierr sentinels.
func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(service, apiErr.StatusCode, []byte(apiErr.Error()))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out: %w", service, apierr.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", service, err)
}
