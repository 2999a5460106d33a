// Package pipeline orchestrates per-image segmentation runs.
//
// A run is single-threaded and synchronous: decode, heatmap read,
// component extraction, classification, artifact writing, in that order.
// In batch mode each image is an independent unit of work; any I/O failure
// is terminal for that image only.
package pipeline

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"blockseg/internal/classify"
	"blockseg/internal/config"
	"blockseg/internal/heatmap"
	"blockseg/internal/raster"
	"blockseg/internal/render"
	"blockseg/internal/report"
	"blockseg/internal/segment"
)

// Output group directories for per-component masks.
const (
	groupBuildingBlocks    = "building_blocks"
	groupNonBuildingBlocks = "non_building_blocks"
)

// Runner executes the segmentation pipeline with one shared configuration.
type Runner struct {
	cfg    *config.Config
	policy classify.Policy
	rng    *rand.Rand
	log    zerolog.Logger
}

// New creates a runner. The random generator supplies region fill colors;
// seed it deterministically for reproducible overview renders.
func New(cfg *config.Config, policy classify.Policy, rng *rand.Rand, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, policy: policy, rng: rng, log: log}
}

// imageResult carries the in-memory artifacts of one processed image.
type imageResult struct {
	components []segment.Component
	seg        *raster.Buffer // recolored working buffer
	overlay    *raster.Buffer // black-on-white building-block overlay
}

// ProcessImage runs the full pipeline for a single designated image,
// writing segmentation.jpg, building_blocks.jpg, components_info.json and
// the per-component masks under outDir.
func (r *Runner) ProcessImage(imagePath, heatmapPath, outDir string) error {
	res, err := r.processOne(imagePath, heatmapPath, outDir)
	if err != nil {
		return err
	}

	if err := raster.SaveJPEG(filepath.Join(outDir, "segmentation.jpg"), res.seg); err != nil {
		return err
	}
	return raster.SaveJPEG(filepath.Join(outDir, "building_blocks.jpg"), res.overlay)
}

// ProcessDir processes every image in inputDir. Heatmap files (.hmp) are
// skipped as inputs; every other entry is numbered in directory order and
// attempted. A failing image is logged and skipped, and keeps its number.
func (r *Runner) ProcessDir(inputDir, outDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read input directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	r.log.Info().Int("entries", len(entries)).Str("dir", inputDir).Msg("scanning input directory")

	num := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, heatmap.Extension) {
			continue
		}
		num++

		imagePath := filepath.Join(inputDir, name)
		folder := filepath.Join(outDir, fmt.Sprintf("%03d", num))

		res, err := r.processOne(imagePath, heatmap.PathFor(imagePath), folder)
		if err != nil {
			r.log.Warn().Err(err).Str("image", imagePath).Msg("skipping image")
			continue
		}

		segPath := filepath.Join(outDir, fmt.Sprintf("output_%03d.jpg", num))
		if err := raster.SaveJPEG(segPath, res.seg); err != nil {
			r.log.Warn().Err(err).Str("image", imagePath).Msg("skipping image")
			continue
		}
		overlayPath := filepath.Join(outDir, fmt.Sprintf("building_blocks_%03d.jpg", num))
		if err := raster.SaveJPEG(overlayPath, res.overlay); err != nil {
			r.log.Warn().Err(err).Str("image", imagePath).Msg("skipping image")
			continue
		}
		// The per-image folder also gets a copy of the overview.
		if err := raster.SaveJPEG(filepath.Join(folder, "output.jpg"), res.seg); err != nil {
			r.log.Warn().Err(err).Str("image", imagePath).Msg("skipping image")
		}
	}
	return nil
}

// processOne decodes, extracts, classifies, and writes the folder-local
// artifacts (mask files and components_info.json) for one image.
func (r *Runner) processOne(imagePath, heatmapPath, dir string) (*imageResult, error) {
	img, err := raster.Load(imagePath)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("image", imagePath).
		Int("width", img.Width).Int("height", img.Height).
		Msg("processing image")

	heat, err := heatmap.Load(heatmapPath, img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	for _, d := range []string{dir, filepath.Join(dir, groupBuildingBlocks), filepath.Join(dir, groupNonBuildingBlocks)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	start := time.Now()
	extractor := segment.NewExtractor(img, heat, r.cfg.Params(), r.rng)
	components := extractor.Extract()

	selected := r.classifyComponents(components, img.Width*img.Height)

	mean, stddev := classify.Summary(components)
	r.log.Debug().Float64("probability_mean", mean).Float64("probability_stddev", stddev).
		Msg("component population")

	for _, c := range components {
		group := groupNonBuildingBlocks
		if c.BuildingBlock {
			group = groupBuildingBlocks
		}
		maskPath := filepath.Join(dir, group, fmt.Sprintf("component_%05d.jpg", c.ID))
		if err := raster.SaveJPEG(maskPath, render.MaskImage(c.Bounds, c.Mask)); err != nil {
			return nil, err
		}
		if c.ID%100 == 0 {
			r.log.Debug().Int("components", c.ID).Msg("progress")
		}
	}

	if err := report.Write(filepath.Join(dir, "components_info.json"), components); err != nil {
		return nil, err
	}

	overlay := render.Overlay(img.Width, img.Height, components, selected)

	r.log.Info().Str("image", imagePath).
		Int("components", len(components)).
		Dur("elapsed", time.Since(start)).
		Msg("finished image")

	return &imageResult{components: components, seg: img, overlay: overlay}, nil
}

// classifyComponents labels the components under the configured policy and
// returns the predicate deciding which masks appear in the overlay image.
func (r *Runner) classifyComponents(components []segment.Component, imageArea int) func(segment.Component) bool {
	switch r.policy {
	case classify.PolicyStatic:
		classify.Static(components, r.cfg.BuildingBlockThreshold)
		// The static policy additionally keeps oversized regions out of
		// the overlay; they still land in the building_blocks mask group.
		quarter := imageArea / 4
		return func(c segment.Component) bool {
			return c.BuildingBlock && c.Size < quarter
		}
	default:
		t := classify.Adaptive(components)
		r.log.Info().Float64("probability_threshold", t.Probability).
			Int("size_threshold", t.MaxSize).
			Msg("adaptive thresholds")
		return func(c segment.Component) bool {
			return c.BuildingBlock
		}
	}
}
