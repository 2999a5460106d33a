// Package segment implements color-similarity region growing and
// connected-component extraction over RGB pixel buffers.
package segment

import (
	"blockseg/internal/raster"
	"blockseg/pkg/colorutil"
	"blockseg/pkg/geometry"
)

// Params controls region growing and component filtering.
type Params struct {
	K                float64 // color similarity threshold
	Use8Way          bool    // treat diagonal neighbors as adjacent
	Euclidean        bool    // Euclidean color metric instead of Manhattan
	AdjacentCompare  bool    // compare against the proposing neighbor instead of the seed
	MinComponentSize int     // regions smaller than this are discarded
}

// GrowResult reports the extent and pixel count of one grown region.
// The count covers every visited pixel, including boundary pixels that
// failed the similarity test.
type GrowResult struct {
	Extent geometry.Extent
	Size   int
}

// stackEntry is one pending pixel together with the original color of the
// neighbor that proposed it, which becomes the comparison basis under
// chained comparison.
type stackEntry struct {
	x, y    int
	compare colorutil.RGB
}

// Grow expands a single region from the seed pixel. Included pixels are
// recolored to fill in place; every visited pixel is recorded in visited
// and scratch, both indexed row-major over the full image. Out-of-bounds
// candidates are silently dropped. The traversal uses an explicit stack so
// region size is not bounded by call depth.
func Grow(img *raster.Buffer, seedX, seedY int, fill colorutil.RGB, visited, scratch []bool, p Params) GrowResult {
	seed := img.At(seedX, seedY)

	result := GrowResult{Extent: geometry.NewExtent()}
	stack := []stackEntry{{x: seedX, y: seedY, compare: seed}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := top.x, top.y
		if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
			continue
		}
		idx := img.Index(x, y)
		if visited[idx] {
			continue
		}

		visited[idx] = true
		scratch[idx] = true
		result.Extent.Include(x, y)
		result.Size++

		current := img.Pix[idx]
		compare := seed
		if p.AdjacentCompare {
			compare = top.compare
		}

		if colorutil.Distance(current, compare, p.Euclidean) > p.K {
			// Boundary pixel: visited but not included, not expanded.
			continue
		}

		img.Pix[idx] = fill

		stack = append(stack,
			stackEntry{x: x + 1, y: y, compare: current},
			stackEntry{x: x - 1, y: y, compare: current},
			stackEntry{x: x, y: y + 1, compare: current},
			stackEntry{x: x, y: y - 1, compare: current},
		)
		if p.Use8Way {
			stack = append(stack,
				stackEntry{x: x + 1, y: y + 1, compare: current},
				stackEntry{x: x + 1, y: y - 1, compare: current},
				stackEntry{x: x - 1, y: y + 1, compare: current},
				stackEntry{x: x - 1, y: y - 1, compare: current},
			)
		}
	}

	return result
}
