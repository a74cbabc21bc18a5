package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	completer    *mockCompleterFactory
	images       *mockImageFactory
	skills       *mockSkillFactory
	imageLoader  *mockImageLoader
}

func newTestMocks() *testMocks {
	return &testMocks{
		configLoader: &mockConfigLoader{},
		completer:    &mockCompleterFactory{},
		images:       &mockImageFactory{},
		skills:       &mockSkillFactory{},
		imageLoader:  &mockImageLoader{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

type testEnvOptions struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	mocks  *testMocks
}

type testEnvOption func(*testEnvOptions)

func withTestStdout(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stdout = w }
}

func withTestStderr(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stderr = w }
}

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		getenv: defaultTestEnv,
		mocks:  newTestMocks(),
	}
	for _, opt := range opts {
		opt(options)
	}

	env := &Env{
		Stdout:           options.stdout,
		Stderr:           options.stderr,
		Getenv:           options.getenv,
		Now:              fixedTime(time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)),
		Log:              zap.NewNop(),
		ConfigLoader:     options.mocks.configLoader,
		CompleterFactory: options.mocks.completer,
		ImageFactory:     options.mocks.images,
		SkillFactory:     options.mocks.skills,
		ImageLoader:      options.mocks.imageLoader,
	}
	return env, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns a key for every provider.
func defaultTestEnv(key string) string {
	switch key {
	case EnvOpenAIAPIKey:
		return "test-openai-key"
	case EnvDeepSeekAPIKey:
		return "test-deepseek-key"
	case EnvFalKey:
		return "test-fal-key"
	case EnvGeminiAPIKey:
		return "test-gemini-key"
	case EnvAnthropicAPIKey:
		return "test-anthropic-key"
	default:
		return ""
	}
}

// configWithOutputDir returns a ConfigLoader that returns a config with the given output directory.
func configWithOutputDir(outputDir string) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return config.Config{OutputDir: outputDir}, nil
		},
	}
}

// runCmd executes cmd with args and a background context.
func runCmd(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

// readFile returns the content of path, failing the test when absent.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// tinyPNG is a valid 2x2 PNG.
var tinyPNG = func() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const questionnaireJSON = `{
  "dj_name": "Aqua Voyager",
  "music_style": "Deep house, progressive, techno",
  "core_descriptors": ["oceanic", "mysterious", "hypnotic"],
  "emotional_target": "Like exploring an alien underwater world",
  "physical_place": "Deep ocean, but not Earth's ocean",
  "color_preferences": {
    "primary": ["deep blue", "teal"],
    "accents": ["cyan", "purple"],
    "mood": "dark with glowing highlights"
  },
  "visual_references": ["bioluminescence", "deep sea documentaries"],
  "forms_and_textures": ["organic flowing forms", "liquid", "ethereal"],
  "brand_positioning": "otherworldly explorer of sonic depths"
}`

const promptsJSON = `{"prompts": [
  {"label": "DEEP CURRENTS", "prompt": "an alien ocean trench lit by bioluminescent ribbons"},
  {"label": "GLOW", "prompt": "translucent jellyfish drifting through violet haze"}
]}`

const colorsJSON = `{
  "primary": {"name": "Abyss Blue", "hex": "#0A1F44"},
  "palette": [
    {"name": "Lagoon Teal", "hex": "#0E7C7B"},
    {"name": "Glow Cyan", "hex": "#3FE0D0"},
    {"name": "Nebula Purple", "hex": "#6B2FA0"},
    {"name": "White", "hex": "#FFFFFF"}
  ],
  "description": "Dark water.\n\nLight in the deep."
}`

// aquaVoyagerDir writes the questionnaire and returns its directory and path.
func aquaVoyagerDir(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	return dir, writeFile(t, dir, "aqua_voyager.json", questionnaireJSON)
}
