// Command blockseg partitions raster images into connected regions of
// similar color and classifies each region as a building block using an
// accompanying per-pixel probability heatmap.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"blockseg/internal/classify"
	"blockseg/internal/config"
	"blockseg/internal/heatmap"
	"blockseg/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.txt", "Path to configuration file (flat or YAML)")
	imagePath := flag.String("image", "", "Process a single image at this path")
	heatmapPath := flag.String("heatmap", "", "Heatmap path for -image (default: image path with .hmp extension)")
	inputDir := flag.String("input", "", "Process every image in this directory")
	outputDir := flag.String("output", "output", "Output directory")
	policyName := flag.String("policy", "adaptive", "Classification policy: adaptive or static")
	seed := flag.Int64("seed", 0, "Seed for region fill colors (0 = time-based)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if *imagePath == "" && *inputDir == "" {
		fmt.Println("Usage: blockseg -config <path> (-image <path> [-heatmap <path>] | -input <dir>) [-output <dir>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	log.Info().
		Float64("k", cfg.K).
		Bool("use8Way", cfg.Use8Way).
		Bool("euclidean", cfg.Euclidean).
		Bool("adjacentCompare", cfg.AdjacentCompare).
		Int("minComponentSize", cfg.MinComponentSize).
		Float64("buildingBlockThreshold", cfg.BuildingBlockThreshold).
		Msg("configuration loaded")

	policy, ok := classify.ParsePolicy(*policyName)
	if !ok {
		log.Fatal().Str("policy", *policyName).Msg("unknown classification policy")
	}

	src := *seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(src))

	runner := pipeline.New(cfg, policy, rng, log)

	if *imagePath != "" {
		hmp := *heatmapPath
		if hmp == "" {
			hmp = heatmap.PathFor(*imagePath)
		}
		if err := runner.ProcessImage(*imagePath, hmp, *outputDir); err != nil {
			log.Fatal().Err(err).Msg("processing failed")
		}
	} else {
		if err := runner.ProcessDir(*inputDir, *outputDir); err != nil {
			log.Fatal().Err(err).Msg("processing failed")
		}
	}
}
