package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WHEELPICKER_STATE_DIR", filepath.Join(dir, "state"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvFiles: []string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"StateDir", cfg.StateDir, filepath.Join(dir, "state")},
		{"Locale", cfg.Locale, "zh-CN"},
		{"Date.ShowDay", cfg.Date.ShowDay, true},
		{"Date.Pattern", cfg.Date.Pattern, "%Y-%m-%d"},
		{"Time.MinuteStep", cfg.Time.MinuteStep, 1},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Output", cfg.Output, "json"},
		{"File", cfg.File, ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: expected %v; got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	toml := `locale = "en"
output = "yaml"

[date]
min_year = 2000
max_year = 2030
show_day = false

[time]
minute_step = 15
`
	if err := os.WriteFile(filepath.Join(dir, "wheelpicker.toml"), []byte(toml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("WHEELPICKER_DATE_MAX_YEAR", "2040")

	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvFiles: []string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "en" || cfg.Output != "yaml" || cfg.Time.MinuteStep != 15 {
		t.Fatalf("expected file values; got %#v", cfg)
	}
	if cfg.Date.MinYear != 2000 || cfg.Date.MaxYear != 2040 || cfg.Date.ShowDay {
		t.Fatalf("expected env to override file; got %#v", cfg.Date)
	}
	if cfg.File != filepath.Join(dir, "wheelpicker.toml") {
		t.Fatalf("unexpected config file %q", cfg.File)
	}
	if cfg.CalendarLocale().Tag != "en" {
		t.Fatalf("expected en locale")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("WHEELPICKER_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// godotenv never overrides, so make sure the var starts unset and is
	// cleared afterwards.
	t.Setenv("WHEELPICKER_LOG_LEVEL", "")
	os.Unsetenv("WHEELPICKER_LOG_LEVEL")

	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvFiles: []string{envFile}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level from .env; got %q", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"locale", map[string]string{"WHEELPICKER_LOCALE": "fr"}},
		{"year range", map[string]string{"WHEELPICKER_DATE_MIN_YEAR": "2030", "WHEELPICKER_DATE_MAX_YEAR": "2020"}},
		{"minute step", map[string]string{"WHEELPICKER_TIME_MINUTE_STEP": "7"}},
		{"output", map[string]string{"WHEELPICKER_OUTPUT": "edn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(Options{SearchPaths: []string{dir}, EnvFiles: []string{}}); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(Options{ConfigFile: filepath.Join(dir, "missing.toml"), EnvFiles: []string{}}); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
