package segment

import (
	"math/rand"

	"blockseg/internal/heatmap"
	"blockseg/internal/raster"
	"blockseg/pkg/colorutil"
	"blockseg/pkg/geometry"
)

// Component is a finalized connected region of visually similar color.
type Component struct {
	ID             int              // 1-based discovery order
	Bounds         geometry.RectInt // tight bounding box
	Size           int              // visited pixel count
	Mask           []bool           // bounds-local, row-major
	AvgProbability float64          // mean heatmap value under the mask

	// BuildingBlock is assigned by the classifier after all components
	// of an image have been extracted.
	BuildingBlock bool
}

// Extractor drives region growing across a whole image in raster order.
// It owns the visited set and the scratch mask; neither is safe for
// concurrent use.
type Extractor struct {
	img     *raster.Buffer
	heat    *heatmap.Map
	params  Params
	rng     *rand.Rand
	visited []bool
	scratch []bool
}

// NewExtractor prepares an extraction pass over one image. The heatmap must
// match the image dimensions. The pixel buffer is recolored in place as
// regions are grown, whether or not they are kept.
func NewExtractor(img *raster.Buffer, heat *heatmap.Map, p Params, rng *rand.Rand) *Extractor {
	n := img.Width * img.Height
	return &Extractor{
		img:     img,
		heat:    heat,
		params:  p,
		rng:     rng,
		visited: make([]bool, n),
		scratch: make([]bool, n),
	}
}

// Extract scans every pixel in raster order, grows a region from each
// unvisited pixel, and returns the surviving components in discovery order.
// Regions below the minimum size, or filling less than a third of their
// bounding box, are dropped.
func (e *Extractor) Extract() []Component {
	var components []Component

	for y := 0; y < e.img.Height; y++ {
		for x := 0; x < e.img.Width; x++ {
			if e.visited[e.img.Index(x, y)] {
				continue
			}

			fill := colorutil.Random(e.rng)
			result := Grow(e.img, x, y, fill, e.visited, e.scratch, e.params)
			bounds := result.Extent.Rect()

			if result.Size < e.params.MinComponentSize || result.Size < bounds.Area()/3 {
				e.clearScratch(bounds)
				continue
			}

			mask := e.extractMask(bounds)
			avg := heatmap.Average(e.heat, bounds, mask)
			e.clearScratch(bounds)

			components = append(components, Component{
				ID:             len(components) + 1,
				Bounds:         bounds,
				Size:           result.Size,
				Mask:           mask,
				AvgProbability: avg,
			})
		}
	}

	return components
}

// extractMask copies the scratch mask into a bounds-local bitmap.
func (e *Extractor) extractMask(bounds geometry.RectInt) []bool {
	mask := make([]bool, bounds.Area())
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			if e.scratch[e.img.Index(x, y)] {
				mask[bounds.Index(x, y)] = true
			}
		}
	}
	return mask
}

// clearScratch resets the scratch mask inside the bounding box. The scratch
// mask only ever holds the active region, and every pixel of that region
// lies inside its box, so this restores the all-false invariant.
func (e *Extractor) clearScratch(bounds geometry.RectInt) {
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			e.scratch[e.img.Index(x, y)] = false
		}
	}
}
