// Package config loads run configuration for the segmentation tool.
//
// Two on-disk forms are supported: the legacy flat format, a whitespace
// delimited sequence of six scalars in fixed order, and a YAML form keyed
// by field name. The form is chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"blockseg/internal/segment"
)

// Config holds the segmentation parameters for one run. Loaded once,
// read-only thereafter.
type Config struct {
	K                      float64 `yaml:"k"`
	Use8Way                bool    `yaml:"use8Way"`
	Euclidean              bool    `yaml:"euclidean"`
	AdjacentCompare        bool    `yaml:"adjacentCompare"`
	MinComponentSize       int     `yaml:"minComponentSize"`
	BuildingBlockThreshold float64 `yaml:"buildingBlockThreshold"`
}

// Params maps the configuration onto segmentation parameters.
func (c *Config) Params() segment.Params {
	return segment.Params{
		K:                c.K,
		Use8Way:          c.Use8Way,
		Euclidean:        c.Euclidean,
		AdjacentCompare:  c.AdjacentCompare,
		MinComponentSize: c.MinComponentSize,
	}
}

// Load reads the configuration at path. Files named *.yaml or *.yml are
// parsed as YAML; anything else as the legacy flat format. A missing or
// malformed file is a fatal startup error for the caller.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseFlat(data)
	}
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseFlat reads the fixed-order scalar sequence:
// k use8Way euclidean adjacentCompare minComponentSize buildingBlockThreshold
func parseFlat(data []byte) (*Config, error) {
	fields := strings.Fields(string(data))
	if len(fields) < 6 {
		return nil, fmt.Errorf("parse config: want 6 fields, have %d", len(fields))
	}

	var cfg Config
	var err error

	if cfg.K, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return nil, fmt.Errorf("parse config field k: %w", err)
	}
	if cfg.Use8Way, err = strconv.ParseBool(fields[1]); err != nil {
		return nil, fmt.Errorf("parse config field use8Way: %w", err)
	}
	if cfg.Euclidean, err = strconv.ParseBool(fields[2]); err != nil {
		return nil, fmt.Errorf("parse config field euclidean: %w", err)
	}
	if cfg.AdjacentCompare, err = strconv.ParseBool(fields[3]); err != nil {
		return nil, fmt.Errorf("parse config field adjacentCompare: %w", err)
	}
	if cfg.MinComponentSize, err = strconv.Atoi(fields[4]); err != nil {
		return nil, fmt.Errorf("parse config field minComponentSize: %w", err)
	}
	if cfg.BuildingBlockThreshold, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return nil, fmt.Errorf("parse config field buildingBlockThreshold: %w", err)
	}

	return &cfg, nil
}
