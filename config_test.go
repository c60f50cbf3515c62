package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Threshold != DefaultThreshold || cfg.Strategy != StrategySparse || cfg.Priority != PriorityMin {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxPixels != DefaultMaxPixels || cfg.GraphCache != "" {
		t.Errorf("unexpected size/cache defaults: %+v", cfg)
	}
	if !cfg.Snap || cfg.GuardedRelax || cfg.Timeout != 0 {
		t.Errorf("unexpected search defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	filename := writeConfig(t, `
input_path: maze.png
output_path: out.png
threshold: 100
strategy: dense
priority: astar
guarded_relax: true
timeout: 2s
start: {x: 1, y: 0}
end:
  x: 9
  y: 6
snap: false
max_pixels: 1000000
graph_cache: maze.graph.json
explored_color: "#123456"
`)

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InputPath != "maze.png" || cfg.OutputPath != "out.png" {
		t.Errorf("paths = %q, %q", cfg.InputPath, cfg.OutputPath)
	}
	if cfg.Threshold != 100 || cfg.Strategy != StrategyDense || cfg.Priority != PriorityAStar {
		t.Errorf("extraction/search settings wrong: %+v", cfg)
	}
	if !cfg.GuardedRelax || cfg.Timeout != 2*time.Second || cfg.Snap {
		t.Errorf("search options wrong: %+v", cfg)
	}
	if cfg.Start == nil || *cfg.Start != pos(1, 0) || cfg.End == nil || *cfg.End != pos(9, 6) {
		t.Errorf("endpoints = %v, %v", cfg.Start, cfg.End)
	}
	if cfg.MaxPixels != 1000000 || cfg.GraphCache != "maze.graph.json" {
		t.Errorf("max_pixels/graph_cache = %d, %q", cfg.MaxPixels, cfg.GraphCache)
	}
	// Unset keys keep their defaults
	if cfg.PathColor != "#00ff00" || cfg.ListenAddr != ":8080" {
		t.Errorf("defaults lost: %+v", cfg)
	}

	palette, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if hexColor(palette.Explored) != "#123456" {
		t.Errorf("explored colour = %s", hexColor(palette.Explored))
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	filename := writeConfig(t, "input_path: a.png\nheuristic: euclid\n")
	if _, err := LoadConfig(filename); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"strategy: hexagonal\n",
		"priority: fastest\n",
		"threshold: 400\n",
		"timeout: soon\n",
	} {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%q: expected error", body)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestConfigSearchOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Priority = PriorityGreedy
	cfg.GuardedRelax = true
	cfg.Timeout = time.Minute

	var opts SearchOptions
	for _, o := range cfg.SearchOptions() {
		o(&opts)
	}
	if opts != (SearchOptions{Rule: PriorityGreedy, GuardedRelax: true, Timeout: time.Minute}) {
		t.Errorf("got %+v", opts)
	}
}

func TestConfigPaletteRejectsBadColour(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PathColor = "green"
	if _, err := cfg.Palette(); err == nil {
		t.Error("expected error")
	}
}
