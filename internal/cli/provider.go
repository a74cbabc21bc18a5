package cli

import (
	"errors"
	"fmt"
)

// ErrInvalidProvider indicates an unknown --provider value.
var ErrInvalidProvider = errors.New("invalid provider")

// Provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderFal      = "fal"
	ProviderGemini   = "gemini"
)

// Provider is a validated LLM provider for answering meta-prompts.
// Zero value means "use the default" (OpenAI).
type Provider struct {
	name string
}

var _ fmt.Stringer = Provider{}

// Pre-parsed providers.
var (
	OpenAIProvider   = Provider{name: ProviderOpenAI}
	DeepSeekProvider = Provider{name: ProviderDeepSeek}
)

// ParseProvider validates an LLM provider name.
func ParseProvider(s string) (Provider, error) {
	switch s {
	case ProviderOpenAI, ProviderDeepSeek:
		return Provider{name: s}, nil
	}
	return Provider{}, fmt.Errorf("unknown provider %q (use 'openai' or 'deepseek'): %w", s, ErrInvalidProvider)
}

func (p Provider) String() string { return p.name }

// IsZero reports whether no provider was chosen.
func (p Provider) IsZero() bool { return p.name == "" }

// IsDeepSeek reports whether p is DeepSeek.
func (p Provider) IsDeepSeek() bool { return p.name == ProviderDeepSeek }

// OrDefault returns p, or OpenAIProvider when p is zero.
func (p Provider) OrDefault() Provider {
	if p.IsZero() {
		return OpenAIProvider
	}
	return p
}

// APIKeyEnv names the environment variable holding p's key.
func (p Provider) APIKeyEnv() string {
	if p.IsDeepSeek() {
		return EnvDeepSeekAPIKey
	}
	return EnvOpenAIAPIKey
}

// ImageProvider is a validated image generation backend.
// Zero value means "use the default" (fal.ai).
type ImageProvider struct {
	name string
}

var _ fmt.Stringer = ImageProvider{}

// Pre-parsed image providers.
var (
	FalProvider    = ImageProvider{name: ProviderFal}
	GeminiProvider = ImageProvider{name: ProviderGemini}
)

// ParseImageProvider validates an image provider name.
func ParseImageProvider(s string) (ImageProvider, error) {
	switch s {
	case ProviderFal, ProviderGemini:
		return ImageProvider{name: s}, nil
	}
	return ImageProvider{}, fmt.Errorf("unknown image provider %q (use 'fal' or 'gemini'): %w", s, ErrInvalidProvider)
}

func (p ImageProvider) String() string { return p.name }

// IsGemini reports whether p is Gemini.
func (p ImageProvider) IsGemini() bool { return p.name == ProviderGemini }

// OrDefault returns p, or FalProvider when p is zero.
func (p ImageProvider) OrDefault() ImageProvider {
	if p.name == "" {
		return FalProvider
	}
	return p
}

// APIKeyEnv names the environment variable holding p's key.
func (p ImageProvider) APIKeyEnv() string {
	if p.IsGemini() {
		return EnvGeminiAPIKey
	}
	return EnvFalKey
}
