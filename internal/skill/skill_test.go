package skill_test

// Notes:
// - Collect and LoadManifest use real temp directories
// - The SDK-backed client is exercised against an httptest.Server that
//   records requests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
	"github.com/jtohta/creative-direction-decks-skill/internal/skill"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadManifest
// ---------------------------------------------------------------------------

func TestLoadManifest_Defaults(t *testing.T) {
	t.Parallel()

	m, err := skill.LoadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if m.DisplayTitle != skill.DefaultTitle || m.FolderName != skill.DefaultFolder {
		t.Errorf("manifest = %+v, want defaults", m)
	}
	for _, name := range []string{"venv", "__pycache__", ".env", "upload_skill.py", "README.md", "CLAUDE.md"} {
		if !m.ExcludeNames[name] {
			t.Errorf("%s should be excluded by default", name)
		}
	}
}

func TestLoadManifest_Overrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{skill.ManifestFile: `
display_title: Techno Brand Kit
folder_name: techno-kit
exclude_names: [notes.txt]
exclude_extensions: [PDF, .zip]
`})

	m, err := skill.LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.DisplayTitle != "Techno Brand Kit" || m.FolderName != "techno-kit" {
		t.Errorf("manifest = %+v", m)
	}
	for _, ext := range []string{".pdf", ".zip", ".png"} {
		if !m.ExcludeExtensions[ext] {
			t.Errorf("%s should be excluded", ext)
		}
	}
	if !m.ExcludeNames["notes.txt"] || !m.ExcludeNames["venv"] {
		t.Error("manifest names should add to the defaults")
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad yaml":      "display_title: [unclosed",
		"nested folder": "folder_name: a/b",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{skill.ManifestFile: doc})
			if _, err := skill.LoadManifest(dir); !errors.Is(err, skill.ErrInvalidManifest) {
				t.Errorf("error = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCollect
// ---------------------------------------------------------------------------

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"SKILL.md":                "# skill",
		"color_utils.py":          "def f(): pass",
		"narrative.txt":           "story",
		"layout.go":               "package layout",
		"fonts.ttf":               "binary",
		"README.md":               "project docs",
		"upload_skill.py":         "upload",
		"example_colors.json":     "{}",
		"moodboard.PNG":           "png",
		"deck.pptx":               "pptx",
		".env":                    "KEY=1",
		"skill.yaml":              "display_title: x",
		"__pycache__/x.pyc":       "cache",
		"templates/slide.md":      "nested",
		"node_modules/pkg/a.js":   "js",
		"venv/bin/python":         "py",
		"Makefile":                "all:",
		"assets/logo.md":          "nested too",
	})

	got, err := skill.Collect(dir, skill.DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}

	type entry struct{ Path, MIME, Content string }
	var entries []entry
	for _, f := range got {
		entries = append(entries, entry{f.Path, f.MIMEType, string(f.Content)})
	}
	want := []entry{
		{"dj-brand-guide-generator/Makefile", "application/octet-stream", "all:"},
		{"dj-brand-guide-generator/SKILL.md", "text/markdown", "# skill"},
		{"dj-brand-guide-generator/color_utils.py", "text/x-python", "def f(): pass"},
		{"dj-brand-guide-generator/fonts.ttf", "application/octet-stream", "binary"},
		{"dj-brand-guide-generator/layout.go", "text/x-go", "package layout"},
		{"dj-brand-guide-generator/narrative.txt", "text/plain", "story"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_Symlinks(t *testing.T) {
	t.Parallel()

	shared := t.TempDir()
	writeFiles(t, shared, map[string]string{
		"brand_colors.py": "PALETTE = []",
		"lib/helpers.py":  "pass",
	})

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"SKILL.md": "# skill"})
	links := map[string]string{
		"brand_colors.py": filepath.Join(shared, "brand_colors.py"),
		"lib":             filepath.Join(shared, "lib"),
		"dangling.md":     filepath.Join(shared, "gone.md"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	got, err := skill.Collect(dir, skill.DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, f := range got {
		paths = append(paths, f.Path+"="+string(f.Content))
	}
	want := []string{
		"dj-brand-guide-generator/SKILL.md=# skill",
		"dj-brand-guide-generator/brand_colors.py=PALETTE = []",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}
}

func TestMIMEType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.py":   "text/x-python",
		"a.md":   "text/markdown",
		"a.txt":  "text/plain",
		"a.json": "application/json",
		"a.go":   "text/x-go",
		"a.MD":   "application/octet-stream",
		"a":      "application/octet-stream",
	}
	for name, want := range tests {
		if got := skill.MIMEType(name); got != want {
			t.Errorf("MIMEType(%q) = %q, want %q", name, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestClient - hosted skills API
// ---------------------------------------------------------------------------

type uploadedPart struct {
	FileName, MIME, Content string
}

type skillsServer struct {
	*httptest.Server
	mu        sync.Mutex
	skills    []skill.Skill
	listFails atomic.Bool
	requests  []string
	uploads   []uploadedPart
	title     string
	headers   http.Header
}

func newSkillsServer(t *testing.T, existing ...skill.Skill) *skillsServer {
	t.Helper()
	s := &skillsServer{skills: existing}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/skills", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		if s.listFails.Load() {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
			return
		}
		// Two pages: the first skill alone, then the rest.
		data, next := s.skills, ""
		if r.URL.Query().Get("page") == "" && len(s.skills) > 1 {
			data, next = s.skills[:1], "page_2"
		} else if r.URL.Query().Get("page") == "page_2" {
			data = s.skills[1:]
		}
		writeJSON(w, map[string]any{"data": data, "has_more": next != "", "next_page": next})
	})
	mux.HandleFunc("POST /v1/skills", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		s.readMultipart(t, r)
		writeJSON(w, skill.Skill{ID: "skill_new", DisplayTitle: s.title, LatestVersion: "1"})
	})
	mux.HandleFunc("POST /v1/skills/{id}/versions", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		s.readMultipart(t, r)
		writeJSON(w, skill.Version{ID: "skillver_2", SkillID: r.PathValue("id"), Version: "1759000000"})
	})
	mux.HandleFunc("GET /v1/skills/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		writeJSON(w, skill.Skill{ID: r.PathValue("id"), DisplayTitle: skill.DefaultTitle, LatestVersion: "1759000000"})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *skillsServer) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.headers = r.Header.Clone()
}

func (s *skillsServer) readMultipart(t *testing.T, r *http.Request) {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		t.Errorf("bad content type: %v", err)
		return
	}
	mr := multipart.NewReader(r.Body, params["boundary"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Errorf("bad multipart body: %v", err)
			return
		}
		data, _ := io.ReadAll(p)
		if p.FormName() == "display_title" {
			s.title = string(data)
			continue
		}
		// Part.FileName drops directories; the bundle path is read raw.
		_, disp, _ := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
		s.uploads = append(s.uploads, uploadedPart{disp["filename"], p.Header.Get("Content-Type"), string(data)})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newSkillClient(t *testing.T, s *skillsServer, log *zap.Logger) *skill.Client {
	t.Helper()
	c, err := skill.NewClient("sk-ant-test",
		skill.WithBaseURL(s.URL),
		skill.WithHTTPClient(s.Client()),
		skill.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

var bundle = []skill.File{
	{Path: "dj-brand-guide-generator/SKILL.md", Content: []byte("# skill"), MIMEType: "text/markdown"},
	{Path: "dj-brand-guide-generator/color_utils.py", Content: []byte("pass"), MIMEType: "text/x-python"},
}

func TestUpload_CreatesSkill(t *testing.T) {
	t.Parallel()

	s := newSkillsServer(t, skill.Skill{ID: "skill_other", DisplayTitle: "Other"})
	res, err := newSkillClient(t, s, zap.NewNop()).Upload(context.Background(), bundle, skill.DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Created || res.Skill.ID != "skill_new" {
		t.Errorf("Result = %+v, want a created skill", res)
	}
	if s.title != skill.DefaultTitle {
		t.Errorf("display_title = %q", s.title)
	}

	want := []uploadedPart{
		{"dj-brand-guide-generator/SKILL.md", "text/markdown", "# skill"},
		{"dj-brand-guide-generator/color_utils.py", "text/x-python", "pass"},
	}
	if diff := cmp.Diff(want, s.uploads); diff != "" {
		t.Errorf("uploaded parts mismatch (-want +got):\n%s", diff)
	}
	for k, v := range map[string]string{
		"X-Api-Key":         "sk-ant-test",
		"Anthropic-Version": "2023-06-01",
		"Anthropic-Beta":    "skills-2025-10-02",
	} {
		if got := s.headers.Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}
}

func TestUpload_NewVersion(t *testing.T) {
	t.Parallel()

	s := newSkillsServer(t,
		skill.Skill{ID: "skill_other", DisplayTitle: "Other"},
		skill.Skill{ID: "skill_dj", DisplayTitle: skill.DefaultTitle},
	)
	res, err := newSkillClient(t, s, zap.NewNop()).Upload(context.Background(), bundle, skill.DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}
	if res.Created || res.Skill.ID != "skill_dj" || res.Version != "1759000000" {
		t.Errorf("Result = %+v, want a new version of skill_dj", res)
	}

	want := []string{
		"GET /v1/skills",
		"GET /v1/skills",
		"POST /v1/skills/skill_dj/versions",
		"GET /v1/skills/skill_dj",
	}
	if diff := cmp.Diff(want, s.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestUpload_ListFailureIsWarning(t *testing.T) {
	t.Parallel()

	s := newSkillsServer(t)
	s.listFails.Store(true)
	core, logs := observer.New(zap.WarnLevel)

	res, err := newSkillClient(t, s, zap.New(core)).Upload(context.Background(), bundle, skill.DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Created {
		t.Error("a failed listing should fall through to creating a skill")
	}
	if logs.FilterMessage("could not list skills").Len() != 1 {
		t.Errorf("warnings = %v", logs.All())
	}
	if n := strings.Count(strings.Join(s.requests, "\n"), "GET /v1/skills"); n != 1 {
		t.Errorf("list requests = %d, want 1 (no retries)", n)
	}
}

func TestUpload_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		s := newSkillsServer(t)
		_, err := newSkillClient(t, s, nil).Upload(context.Background(), nil, skill.DefaultManifest())
		if !errors.Is(err, skill.ErrNoFiles) {
			t.Errorf("error = %v, want ErrNoFiles", err)
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		c, err := skill.NewClient("bad", skill.WithBaseURL(srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		_, err = c.Upload(context.Background(), bundle, skill.DefaultManifest())
		if !errors.Is(err, apierr.ErrAuthFailed) {
			t.Errorf("error = %v, want ErrAuthFailed", err)
		}
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		if _, err := skill.NewClient(""); !errors.Is(err, skill.ErrEmptyAPIKey) {
			t.Errorf("error = %v, want ErrEmptyAPIKey", err)
		}
	})
}
