// Package render produces output pixel buffers from segmentation results.
//
// The segmentation overview needs no rendering of its own: the working
// pixel buffer already carries every region's fill color, including
// discarded regions, and is saved as-is.
package render

import (
	"blockseg/internal/raster"
	"blockseg/internal/segment"
	"blockseg/pkg/colorutil"
	"blockseg/pkg/geometry"
)

// Overlay paints the masks of selected components black onto a white
// canvas of the full image size. The predicate decides which components
// appear; classification policies differ in what they paint.
func Overlay(width, height int, components []segment.Component, selected func(segment.Component) bool) *raster.Buffer {
	out := raster.New(width, height, colorutil.White)
	for _, c := range components {
		if !selected(c) {
			continue
		}
		paintMask(out, c.Bounds, c.Mask, colorutil.Black)
	}
	return out
}

// MaskImage renders a component's bounds-local mask as a black-on-white
// raster of the bounding-box size.
func MaskImage(bounds geometry.RectInt, mask []bool) *raster.Buffer {
	out := raster.New(bounds.Width, bounds.Height, colorutil.White)
	for i, in := range mask {
		if in {
			out.Pix[i] = colorutil.Black
		}
	}
	return out
}

// paintMask stamps a bounds-local mask onto a full-size buffer.
func paintMask(dst *raster.Buffer, bounds geometry.RectInt, mask []bool, c colorutil.RGB) {
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			if mask[bounds.Index(x, y)] {
				dst.Set(x, y, c)
			}
		}
	}
}
