package cli

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/config"
	"github.com/jtohta/creative-direction-decks-skill/internal/imagegen"
	"github.com/jtohta/creative-direction-decks-skill/internal/llm"
	"github.com/jtohta/creative-direction-decks-skill/internal/skill"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock CompleterFactory + Completer
// ---------------------------------------------------------------------------

type completerCall struct {
	Provider Provider
	APIKey   string
}

type mockCompleterFactory struct {
	NewCompleterFunc func(p Provider, apiKey string) (llm.Completer, error)
	mockCompleter    *mockCompleter

	mu    sync.Mutex
	calls []completerCall
}

func (m *mockCompleterFactory) NewCompleter(p Provider, apiKey string) (llm.Completer, error) {
	m.mu.Lock()
	m.calls = append(m.calls, completerCall{Provider: p, APIKey: apiKey})
	m.mu.Unlock()

	if m.NewCompleterFunc != nil {
		return m.NewCompleterFunc(p, apiKey)
	}
	if m.mockCompleter != nil {
		return m.mockCompleter, nil
	}
	return &mockCompleter{}, nil
}

func (m *mockCompleterFactory) Calls() []completerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]completerCall(nil), m.calls...)
}

type mockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) ([]byte, error)

	mu      sync.Mutex
	prompts []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) ([]byte, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return []byte(`{"prompts": []}`), nil
}

func (m *mockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// ---------------------------------------------------------------------------
// Mock ImageFactory + Generator
// ---------------------------------------------------------------------------

type mockImageFactory struct {
	NewGeneratorFunc func(p ImageProvider, apiKey string) (imagegen.Generator, error)
	mockGenerator    *mockGenerator

	mu        sync.Mutex
	providers []ImageProvider
	keys      []string
}

func (m *mockImageFactory) NewGenerator(_ context.Context, p ImageProvider, apiKey string, _ *zap.Logger) (imagegen.Generator, error) {
	m.mu.Lock()
	m.providers = append(m.providers, p)
	m.keys = append(m.keys, apiKey)
	m.mu.Unlock()

	if m.NewGeneratorFunc != nil {
		return m.NewGeneratorFunc(p, apiKey)
	}
	if m.mockGenerator != nil {
		return m.mockGenerator, nil
	}
	return &mockGenerator{}, nil
}

func (m *mockImageFactory) Providers() []ImageProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ImageProvider(nil), m.providers...)
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) ([]byte, error)

	mu      sync.Mutex
	prompts []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return tinyPNG, nil
}

func (m *mockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// ---------------------------------------------------------------------------
// Mock SkillFactory + SkillUploader
// ---------------------------------------------------------------------------

type mockSkillFactory struct {
	mockUploader *mockUploader

	mu   sync.Mutex
	keys []string
}

func (m *mockSkillFactory) NewUploader(apiKey string, _ *zap.Logger) (SkillUploader, error) {
	m.mu.Lock()
	m.keys = append(m.keys, apiKey)
	m.mu.Unlock()

	if m.mockUploader != nil {
		return m.mockUploader, nil
	}
	return &mockUploader{}, nil
}

func (m *mockSkillFactory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

type mockUploader struct {
	UploadFunc func(ctx context.Context, files []skill.File, m skill.Manifest) (skill.Result, error)

	mu    sync.Mutex
	files [][]skill.File
}

func (m *mockUploader) Upload(ctx context.Context, files []skill.File, man skill.Manifest) (skill.Result, error) {
	m.mu.Lock()
	m.files = append(m.files, files)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, files, man)
	}
	return skill.Result{Skill: skill.Skill{ID: "skill_01", DisplayTitle: man.DisplayTitle}, Created: true}, nil
}

func (m *mockUploader) Files() [][]skill.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]skill.File(nil), m.files...)
}

// ---------------------------------------------------------------------------
// Mock ImageSource
// ---------------------------------------------------------------------------

type mockImageLoader struct {
	LoadFunc func(path string) ([]byte, error)

	mu    sync.Mutex
	paths []string
}

func (m *mockImageLoader) Load(path string) ([]byte, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return tinyPNG, nil
}

func (m *mockImageLoader) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}
