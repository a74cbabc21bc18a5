package cli

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/assets"
	"github.com/jtohta/creative-direction-decks-skill/internal/config"
	"github.com/jtohta/creative-direction-decks-skill/internal/imagegen"
	"github.com/jtohta/creative-direction-decks-skill/internal/llm"
	"github.com/jtohta/creative-direction-decks-skill/internal/skill"
	"github.com/jtohta/creative-direction-decks-skill/internal/slides"
)

// Environment variables holding API keys.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvDeepSeekAPIKey  = "DEEPSEEK_API_KEY"
	EnvFalKey          = "FAL_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Log receives diagnostics. The root command replaces it once
	// --verbose is known.
	Log *zap.Logger

	// Factories for domain objects
	ConfigLoader     ConfigLoader
	CompleterFactory CompleterFactory
	ImageFactory     ImageFactory
	SkillFactory     SkillFactory
	ImageLoader      slides.ImageSource
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// CompleterFactory creates LLM clients that answer meta-prompts.
type CompleterFactory interface {
	NewCompleter(p Provider, apiKey string) (llm.Completer, error)
}

// ImageFactory creates image generators.
type ImageFactory interface {
	NewGenerator(ctx context.Context, p ImageProvider, apiKey string, log *zap.Logger) (imagegen.Generator, error)
}

// SkillUploader publishes a skill bundle.
type SkillUploader interface {
	Upload(ctx context.Context, files []skill.File, m skill.Manifest) (skill.Result, error)
}

// SkillFactory creates skill API clients.
type SkillFactory interface {
	NewUploader(apiKey string, log *zap.Logger) (SkillUploader, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.Logger) EnvOption {
	return func(e *Env) {
		e.Log = log
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithCompleterFactory sets the LLM client factory.
func WithCompleterFactory(f CompleterFactory) EnvOption {
	return func(e *Env) {
		e.CompleterFactory = f
	}
}

// WithImageFactory sets the image generator factory.
func WithImageFactory(f ImageFactory) EnvOption {
	return func(e *Env) {
		e.ImageFactory = f
	}
}

// WithSkillFactory sets the skill client factory.
func WithSkillFactory(f SkillFactory) EnvOption {
	return func(e *Env) {
		e.SkillFactory = f
	}
}

// WithImageLoader sets how deck images are read.
func WithImageLoader(l slides.ImageSource) EnvOption {
	return func(e *Env) {
		e.ImageLoader = l
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		Log:              zap.NewNop(),
		ConfigLoader:     defaultConfigLoader{},
		CompleterFactory: defaultCompleterFactory{},
		ImageFactory:     defaultImageFactory{},
		SkillFactory:     defaultSkillFactory{},
		ImageLoader:      assets.NewLoader(),
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

type defaultCompleterFactory struct{}

func (defaultCompleterFactory) NewCompleter(p Provider, apiKey string) (llm.Completer, error) {
	if p.IsDeepSeek() {
		return llm.NewDeepSeek(apiKey, "")
	}
	return llm.NewOpenAI(apiKey)
}

type defaultImageFactory struct{}

func (defaultImageFactory) NewGenerator(ctx context.Context, p ImageProvider, apiKey string, log *zap.Logger) (imagegen.Generator, error) {
	if p.IsGemini() {
		return imagegen.NewGeminiGenerator(ctx, apiKey, log)
	}
	return imagegen.NewFalGenerator(apiKey, log)
}

type defaultSkillFactory struct{}

func (defaultSkillFactory) NewUploader(apiKey string, log *zap.Logger) (SkillUploader, error) {
	return skill.NewClient(apiKey, skill.WithLogger(log))
}
