package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reveal.MinInterval != 10*time.Millisecond {
		t.Fatalf("min_interval=%s, want 10ms", cfg.Reveal.MinInterval)
	}
	if cfg.Reveal.FrameInterval != 16*time.Millisecond {
		t.Fatalf("frame_interval=%s, want 16ms", cfg.Reveal.FrameInterval)
	}
	if cfg.Render.Style != "theme" || cfg.Render.Theme != "gruvbox" || cfg.Render.WordWrap != 80 {
		t.Fatalf("render=%+v", cfg.Render)
	}
	if cfg.Replay.MinChunk != 1 || cfg.Replay.MaxChunk != 8 || cfg.Replay.Delay != 20*time.Millisecond {
		t.Fatalf("replay=%+v", cfg.Replay)
	}
	if *cfg != *Default() {
		t.Fatalf("Load without a file differs from Default: %+v", cfg)
	}
}

func TestLoadFromXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, "mdreveal")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "reveal:\n  min_interval: 25ms\nrender:\n  style: notty\ntheme:\n  primary: \"#ffffff\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reveal.MinInterval != 25*time.Millisecond {
		t.Fatalf("min_interval=%s, want 25ms", cfg.Reveal.MinInterval)
	}
	if cfg.Reveal.FrameInterval != 16*time.Millisecond {
		t.Fatalf("unset key lost its default: %s", cfg.Reveal.FrameInterval)
	}
	if cfg.Render.Style != "notty" || cfg.Theme.Primary != "#ffffff" {
		t.Fatalf("render=%+v theme=%+v", cfg.Render, cfg.Theme)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("replay:\n  max_chunk: 3\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Replay.MaxChunk != 3 {
		t.Fatalf("max_chunk=%d, want 3", cfg.Replay.MaxChunk)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing explicit file should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("replay:\n  min_chunk: 9\n  max_chunk: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "max_chunk") {
		t.Fatalf("err=%v, want max_chunk complaint", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero min interval", func(c *Config) { c.Reveal.MinInterval = 0 }, false},
		{"negative frame interval", func(c *Config) { c.Reveal.FrameInterval = -time.Millisecond }, false},
		{"negative wrap", func(c *Config) { c.Render.WordWrap = -1 }, false},
		{"zero wrap", func(c *Config) { c.Render.WordWrap = 0 }, true},
		{"zero min chunk", func(c *Config) { c.Replay.MinChunk = 0 }, false},
		{"equal chunks", func(c *Config) { c.Replay.MinChunk, c.Replay.MaxChunk = 4, 4 }, true},
		{"negative delay", func(c *Config) { c.Replay.Delay = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate()=%v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Render.Style = "dracula"
	cfg.Replay.Delay = 5 * time.Millisecond

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("mode=%v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
