package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything one solve run needs. It replaces the interactive
// path prompts with explicit values.
type Config struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`

	// Extraction
	Threshold uint8    `yaml:"threshold"`  // Luminance below this is wall
	Strategy  Strategy `yaml:"strategy"`   // "sparse" or "dense"
	MaxPixels int      `yaml:"max_pixels"` // Larger images are rejected before decoding, 0 = no limit

	// GraphCache is loaded instead of extracting when it exists and matches
	// the image, and written after extraction otherwise
	GraphCache string `yaml:"graph_cache"`

	// Search
	Priority     PriorityRule  `yaml:"priority"`      // "min", "astar" or "greedy"
	GuardedRelax bool          `yaml:"guarded_relax"` // Only overwrite parents with strictly cheaper costs
	Timeout      time.Duration `yaml:"timeout"`       // 0 = no deadline

	// Endpoints default to the maze entrances on the image border
	Start *Position `yaml:"start"`
	End   *Position `yaml:"end"`
	Snap  bool      `yaml:"snap"` // Snap endpoints that are not graph nodes

	// Extra outputs, skipped when empty
	SVGPath     string `yaml:"svg_path"`
	GeoJSONPath string `yaml:"geojson_path"`
	GraphPath   string `yaml:"graph_path"`

	Annotate      bool `yaml:"annotate"`
	VerifyOptimal bool `yaml:"verify_optimal"`

	ExploredColor string `yaml:"explored_color"`
	PathColor     string `yaml:"path_color"`

	// HTTP mode
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultMaxPixels allows images up to 4096x4096
const DefaultMaxPixels = 4096 * 4096

// DefaultConfig returns the settings used when no config file is given
func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		MaxPixels:     DefaultMaxPixels,
		Strategy:      StrategySparse,
		Priority:      PriorityMin,
		Snap:          true,
		ExploredColor: "#ff0000",
		PathColor:     "#00ff00",
		ListenAddr:    ":8080",
	}
}

// LoadConfig reads the YAML configuration file using strict parsing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}

// Palette builds the render palette from the configured colours
func (c Config) Palette() (Palette, error) {
	palette := DefaultPalette()
	if c.ExploredColor != "" {
		col, err := ParseHexColor(c.ExploredColor)
		if err != nil {
			return palette, fmt.Errorf("explored_color: %w", err)
		}
		palette.Explored = col
	}
	if c.PathColor != "" {
		col, err := ParseHexColor(c.PathColor)
		if err != nil {
			return palette, fmt.Errorf("path_color: %w", err)
		}
		palette.Path = col
	}
	return palette, nil
}

// SearchOptions translates the search settings into engine options
func (c Config) SearchOptions() []SearchOption {
	return []SearchOption{
		WithPriorityRule(c.Priority),
		WithGuardedRelax(c.GuardedRelax),
		WithTimeout(c.Timeout),
	}
}
