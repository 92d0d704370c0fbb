package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openhexa/openhexa-cli/internal/apperr"
)

// setupConfigDir points the config store at a fresh temp dir.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("OPENHEXA_CONFIG_DIR", dir)
	return dir
}

func TestOpen_MissingFileGivesDefaults(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if cfg.CurrentWorkspace() != "" {
		t.Errorf("current workspace = %q, want empty", cfg.CurrentWorkspace())
	}
	if len(cfg.Workspaces) != 0 {
		t.Errorf("workspaces = %v, want none", cfg.Workspaces)
	}
	if IsDebug(cfg) {
		t.Error("debug should default to false")
	}
	if cfg.URL() != DefaultURL {
		t.Errorf("url = %q, want %q", cfg.URL(), DefaultURL)
	}
}

func TestOpen_DoesNotCreateFile(t *testing.T) {
	dir := setupConfigDir(t)

	if _, err := Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); !os.IsNotExist(err) {
		t.Errorf("Open should not write anything, stat err = %v", err)
	}
}

func TestSaveThenOpen_IsIdempotent(t *testing.T) {
	dir := setupConfigDir(t)
	path := filepath.Join(dir, ConfigFileName)

	cfg, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := Open()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := Save(reopened); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("content changed across save/open/save:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

func TestSaveThenOpen_RoundTripsEverything(t *testing.T) {
	setupConfigDir(t)

	cfg := NewConfig()
	cfg.SetDebug(true)
	cfg.SetURL("https://hexa.example.org")
	cfg.Workspaces = []Workspace{{Slug: "b", Token: "tb"}, {Slug: "a", Token: "ta"}}
	cfg.Settings.CurrentWorkspace = "a"
	cfg.Pipelines = map[string]PipelineState{"b": {"last_code": "etl"}}

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Open()
	if err != nil {
		t.Fatal(err)
	}

	if !IsDebug(got) {
		t.Error("debug lost")
	}
	if got.URL() != "https://hexa.example.org" {
		t.Errorf("url = %q", got.URL())
	}
	if strings.Join(got.Slugs(), ",") != "b,a" {
		t.Errorf("slugs = %v, want insertion order [b a]", got.Slugs())
	}
	if got.CurrentWorkspace() != "a" {
		t.Errorf("current = %q, want a", got.CurrentWorkspace())
	}
	if got.PipelineState("b")["last_code"] != "etl" {
		t.Errorf("pipelines section = %v", got.PipelineState("b"))
	}
}

func TestOpen_PartialFileIsDefaulted(t *testing.T) {
	dir := setupConfigDir(t)
	content := "[openhexa]\ndebug = true\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !IsDebug(cfg) {
		t.Error("debug = false, want true")
	}
	if cfg.URL() != DefaultURL {
		t.Errorf("url = %q, want default", cfg.URL())
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %q, want %q", cfg.Version, CurrentVersion)
	}
}

func TestOpen_UnknownKeysAreIgnored(t *testing.T) {
	dir := setupConfigDir(t)
	content := "future_setting = 3\n[openhexa]\nurl = \"https://x\"\ntheme = \"dark\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if cfg.URL() != "https://x" {
		t.Errorf("url = %q", cfg.URL())
	}
}

func TestOpen_CorruptFileIsConfigError(t *testing.T) {
	dir := setupConfigDir(t)
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[openhexa\nurl = "), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Open()
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}
	if !apperr.Is(err, apperr.KindConfig) {
		t.Errorf("kind = %v, want config", apperr.KindOf(err))
	}
}

func TestDecode_Migrations(t *testing.T) {
	content := `
[openhexa]
current_workspace = "gone"

[[workspaces]]
slug = "a"
token = "t1"

[[workspaces]]
slug = "b"
token = "t2"

[[workspaces]]
slug = "a"
token = "t3"

[pipelines.a]
x = 1

[pipelines.orphan]
y = 2
`
	cfg, err := Decode([]byte(content))
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(cfg.Slugs(), ",") != "a,b" {
		t.Errorf("slugs = %v, want [a b]", cfg.Slugs())
	}
	if ws := cfg.FindWorkspace("a"); ws == nil || ws.Token != "t3" {
		t.Errorf("workspace a = %+v, want token t3", ws)
	}
	if cfg.CurrentWorkspace() != "" {
		t.Errorf("dangling current workspace kept: %q", cfg.CurrentWorkspace())
	}
	if _, ok := cfg.Pipelines["orphan"]; ok {
		t.Error("orphan pipelines section kept")
	}
	if _, ok := cfg.Pipelines["a"]; !ok {
		t.Error("pipelines section of a known workspace dropped")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "openhexa")
	t.Setenv("OPENHEXA_CONFIG_DIR", dir)

	if err := Save(NewConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	exists, err := ConfigExists()
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("config file should exist after Save")
	}
}
