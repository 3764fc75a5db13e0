package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/plusminus/internal/levelgen"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("embedded defaults differ from Default() (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
puzzle:
  grid_sizes: [5, 7]
  default_grid_size: 7
  scheme: plain
leaderboard:
  enabled: true
  api: https://scores.example.com
  timeout: 1500ms
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Default()
	want.Puzzle.GridSizes = []int{5, 7}
	want.Puzzle.DefaultGridSize = 7
	want.Puzzle.Scheme = "plain"
	want.Leaderboard.Enabled = true
	want.Leaderboard.API = "https://scores.example.com"
	want.Leaderboard.Timeout = 1500 * time.Millisecond
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no grid sizes", func(c *Config) { c.Puzzle.GridSizes = nil }},
		{"zero grid size", func(c *Config) { c.Puzzle.GridSizes = []int{0, 6} }},
		{"default not listed", func(c *Config) { c.Puzzle.DefaultGridSize = 5 }},
		{"min above max", func(c *Config) { c.Puzzle.MinValue = 9 }},
		{"no levels", func(c *Config) { c.Puzzle.Levels = 0 }},
		{"unknown scheme", func(c *Config) { c.Puzzle.Scheme = "spiral" }},
		{"enabled without api", func(c *Config) { c.Leaderboard.Enabled = true }},
		{"no entries", func(c *Config) { c.Leaderboard.MaxEntries = 0 }},
		{"negative timeout", func(c *Config) { c.Leaderboard.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("puzzle:\n  levels: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Puzzle.Levels != 3 {
		t.Errorf("Levels = %d, want 3", cfg.Puzzle.Levels)
	}
	if cfg.Puzzle.MaxValue != 7 {
		t.Errorf("MaxValue = %d, want the default 7", cfg.Puzzle.MaxValue)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing explicit path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("puzzle: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("puzzle:\n  scheme: spiral\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of invalid config error = %v, want ErrInvalid", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Leaderboard.API = "http://localhost:8080"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPuzzleHelpers(t *testing.T) {
	p := Default().Puzzle

	opts := p.GenOptions(8)
	want := levelgen.Options{Size: 8, MinValue: 1, MaxValue: 7, Scheme: levelgen.SchemeStratified}
	if opts != want {
		t.Errorf("GenOptions(8) = %+v, want %+v", opts, want)
	}

	ids := p.LevelIDs(4)
	if len(ids) != 10 || ids[0] != "4x4_nr1" || ids[9] != "4x4_nr10" {
		t.Errorf("LevelIDs(4) = %v", ids)
	}
}

func TestGridSizeForPreset(t *testing.T) {
	p := Default().Puzzle
	tests := []struct {
		preset string
		want   int
	}{
		{"easy", 4},
		{"normal", 6},
		{"hard", 8},
		{"unknown", 6},
	}
	for _, tt := range tests {
		if got := p.GridSizeForPreset(ParseDifficulty(tt.preset)); got != tt.want {
			t.Errorf("GridSizeForPreset(%q) = %d, want %d", tt.preset, got, tt.want)
		}
	}
}

func TestHasLeaderboard(t *testing.T) {
	l := Default().Leaderboard
	if l.HasLeaderboard(8) {
		t.Error("disabled leaderboard should report false")
	}
	l.Enabled = true
	if l.HasLeaderboard(6) {
		t.Error("6x6 is below the leaderboard minimum")
	}
	if !l.HasLeaderboard(8) {
		t.Error("8x8 should have a leaderboard")
	}
}
