package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendFile)
	}
	if cfg.ImportMaxBytes != DefaultConfig().ImportMaxBytes {
		t.Errorf("ImportMaxBytes = %d, want %d", cfg.ImportMaxBytes, DefaultConfig().ImportMaxBytes)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"backend": "sqlite", "log_level": "debug", "import_max_bytes": 500}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ImportMaxBytes != 500 {
		t.Errorf("ImportMaxBytes = %d, want 500", cfg.ImportMaxBytes)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{not json}`)

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_RelativeStorePath(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"store_path": "decks/spanish.json"}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := filepath.Join(tmpDir, "decks", "spanish.json")
	if cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
}

func TestLoad_AbsoluteStorePath(t *testing.T) {
	tmpDir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "facts.json")
	writeConfig(t, tmpDir, `{"store_path": "`+filepath.ToSlash(abs)+`"}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StorePath != filepath.ToSlash(abs) {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, abs)
	}
}

func TestResolveStorePath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ResolveStorePath("/base"); got != filepath.Join("/base", "leitner.json") {
		t.Errorf("ResolveStorePath() = %q", got)
	}
	cfg.StorePath = "/elsewhere/deck.json"
	if got := cfg.ResolveStorePath("/base"); got != "/elsewhere/deck.json" {
		t.Errorf("ResolveStorePath() = %q, want override", got)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	writeConfig(t, globalDir, `{"backend": "sqlite", "disabled_tools": ["fact_review"]}`)
	writeConfig(t, filepath.Join(repoRoot, DirName), `{"backend": "file", "disabled_tools": ["fact_add"]}`)

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Repo overrides scalar
	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want file (repo override)", cfg.Backend)
	}
	// Arrays merged
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 entries", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir()

	writeConfig(t, globalDir, `{"log_level": "warn", "disabled_tools": ["fact_review"]}`)

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "fact_review" {
		t.Errorf("DisabledTools = %v, want [fact_review]", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Backend)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	repoRoot := t.TempDir()
	writeConfig(t, filepath.Join(repoRoot, DirName), `{"store_path": "deck.json"}`)

	nested := filepath.Join(repoRoot, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(t.TempDir(), nested)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	want := filepath.Join(repoRoot, DirName, "deck.json")
	if cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig() = %q, want empty", got)
	}
	if got := FindRepoConfig(""); got != "" {
		t.Errorf("FindRepoConfig(\"\") = %q, want empty", got)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{Backend: BackendFile, LogLevel: "info", ImportMaxBytes: 100}
	overlay := &Config{LogLevel: "debug"}

	result := Merge(base, overlay)

	if result.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", result.LogLevel)
	}
	if result.Backend != BackendFile {
		t.Errorf("Backend = %q, want file (base preserved)", result.Backend)
	}
	if result.ImportMaxBytes != 100 {
		t.Errorf("ImportMaxBytes = %d, want 100", result.ImportMaxBytes)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"fact_add", " fact_review "}}
	overlay := &Config{DisabledTools: []string{"fact_review", "", "schedule_show"}}

	result := Merge(base, overlay)

	want := []string{"fact_add", "fact_review", "schedule_show"}
	if len(result.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", result.DisabledTools, want)
	}
	for i := range want {
		if result.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, result.DisabledTools[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"sqlite", func(c *Config) { c.Backend = BackendSQLite }, false},
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"negative import limit", func(c *Config) { c.ImportMaxBytes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
