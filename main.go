package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// promptPath asks for a value on the terminal until a non-empty line is read
func promptPath(in *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", label)
		line, err := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
	}
}

// loadRunConfig merges the config file, command-line flags and, for any
// missing paths, interactive prompts
func loadRunConfig(args []string, stdin io.Reader, stdout io.Writer) (Config, bool, error) {
	fs := flag.NewFlagSet("maze-router", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	inPath := fs.String("in", "", "Input maze image (png, jpeg, gif, bmp)")
	outPath := fs.String("out", "", "Output image path (png)")
	strategy := fs.String("strategy", "", "Extraction strategy: sparse or dense")
	priority := fs.String("priority", "", "Search priority: min, astar or greedy")
	threshold := fs.Int("threshold", -1, "Darkness threshold 0-255 (pixels below are walls)")
	maxPixels := fs.Int("max-pixels", -1, "Reject images with more pixels than this (0 = no limit)")
	graphCache := fs.String("graph-cache", "", "Graph JSON reused across runs of the same maze")
	serve := fs.Bool("serve", false, "Run the HTTP solve server instead of a single run")
	addr := fs.String("addr", "", "Listen address for -serve")

	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return cfg, false, err
	}

	if *inPath != "" {
		cfg.InputPath = *inPath
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}
	if *strategy != "" {
		if cfg.Strategy, err = ParseStrategy(*strategy); err != nil {
			return cfg, false, err
		}
	}
	if *priority != "" {
		if cfg.Priority, err = ParsePriorityRule(*priority); err != nil {
			return cfg, false, err
		}
	}
	if *threshold >= 0 {
		if *threshold > 255 {
			return cfg, false, errors.New("threshold must be between 0 and 255")
		}
		cfg.Threshold = uint8(*threshold)
	}
	if *maxPixels >= 0 {
		cfg.MaxPixels = *maxPixels
	}
	if *graphCache != "" {
		cfg.GraphCache = *graphCache
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	if *serve {
		return cfg, true, nil
	}

	in := bufio.NewReader(stdin)
	if cfg.InputPath == "" {
		if cfg.InputPath, err = promptPath(in, stdout, "Input image path"); err != nil {
			return cfg, false, err
		}
	}
	if cfg.OutputPath == "" {
		if cfg.OutputPath, err = promptPath(in, stdout, "Output image path"); err != nil {
			return cfg, false, err
		}
	}
	return cfg, false, nil
}

func runServer(cfg Config) error {
	log.Println("========================================")
	log.Println("🚀 Maze Router Server")
	log.Println("========================================")
	log.Printf("Server starting on %s\n", cfg.ListenAddr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /solve    - Solve an uploaded maze image (format=json|png|svg|geojson)")
	log.Println("  GET  /health   - Check server status")
	log.Println("  GET  /metrics  - Prometheus metrics")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	return http.ListenAndServe(cfg.ListenAddr, NewServer(cfg).Handler())
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, serve, err := loadRunConfig(args, stdin, stdout)
	if err != nil {
		return err
	}
	if _, err := cfg.Palette(); err != nil {
		return err
	}

	if serve {
		return runServer(cfg)
	}

	log.Println("========================================")
	log.Println("🧭 Maze Router")
	log.Println("========================================")

	result, err := Solve(cfg)
	if err != nil {
		return err
	}

	// A missing route is a valid outcome; the explored region is still saved
	if errors.Is(result.Err(), ErrPathNotFound) {
		log.Printf("ℹ️  %s\n", result.Summary())
	} else {
		log.Printf("✅ %s\n", result.Summary())
	}
	log.Println("========================================")
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var decodeErr *ImageDecodeError
		switch {
		case errors.As(err, &decodeErr):
			log.Printf("❌ Could not read maze image: %v\n", err)
		case errors.Is(err, ErrEmptyMaze):
			log.Printf("❌ The maze has no open space: %v\n", err)
		default:
			log.Printf("❌ %v\n", err)
		}
		os.Exit(1)
	}
}
