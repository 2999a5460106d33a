// Package heatmap reads per-pixel probability maps stored as raw float32 rasters.
//
// A heatmap file carries width*height IEEE-754 32-bit little-endian floats in
// row-major order with no header. Its dimensions are implied by the image it
// accompanies; any length mismatch is an error.
package heatmap

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blockseg/pkg/geometry"
)

// Extension is the conventional heatmap file suffix.
const Extension = ".hmp"

// Map holds a row-major grid of per-pixel probabilities.
type Map struct {
	Width  int
	Height int
	Values []float32 // len = Width*Height
}

// At returns the probability at (x, y).
func (m *Map) At(x, y int) float32 {
	return m.Values[y*m.Width+x]
}

// PathFor derives the heatmap path that accompanies an image path by
// swapping the file extension.
func PathFor(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + Extension
}

// Load reads a heatmap of exactly width*height floats from path.
// A file whose size does not match the dimensions is rejected.
func Load(path string, width, height int) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heatmap: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat heatmap: %w", err)
	}
	want := int64(width) * int64(height) * 4
	if info.Size() != want {
		return nil, fmt.Errorf("heatmap %s: size %d bytes, want %d for %dx%d",
			path, info.Size(), want, width, height)
	}

	values := make([]float32, width*height)
	if err := binary.Read(f, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("read heatmap %s: %w", path, err)
	}

	return &Map{Width: width, Height: height, Values: values}, nil
}

// Average returns the arithmetic mean of the heatmap values at positions
// where the bounds-local mask is set. An empty mask yields 0.
func Average(m *Map, bounds geometry.RectInt, mask []bool) float64 {
	var total float64
	count := 0
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			if mask[bounds.Index(x, y)] {
				total += float64(m.At(x, y))
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
