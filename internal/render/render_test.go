package render

import (
	"testing"

	"blockseg/internal/segment"
	"blockseg/pkg/colorutil"
	"blockseg/pkg/geometry"
)

func TestMaskImageRoundTrip(t *testing.T) {
	bounds := geometry.RectInt{X: 3, Y: 2, Width: 3, Height: 2}
	mask := []bool{
		true, false, true,
		false, true, false,
	}

	img := MaskImage(bounds, mask)
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("mask image is %dx%d, want 3x2", img.Width, img.Height)
	}

	// Reconstructing the mask from the pixels must reproduce it exactly.
	for i, want := range mask {
		got := img.Pix[i] == colorutil.Black
		if got != want {
			t.Errorf("pixel %d: in-mask = %v, want %v", i, got, want)
		}
		if !got && img.Pix[i] != colorutil.White {
			t.Errorf("pixel %d: outside-mask color = %+v, want white", i, img.Pix[i])
		}
	}
}

func TestOverlay(t *testing.T) {
	components := []segment.Component{
		{
			ID:            1,
			Bounds:        geometry.RectInt{X: 1, Y: 1, Width: 2, Height: 1},
			Mask:          []bool{true, true},
			BuildingBlock: true,
		},
		{
			ID:            2,
			Bounds:        geometry.RectInt{X: 0, Y: 3, Width: 1, Height: 1},
			Mask:          []bool{true},
			BuildingBlock: false,
		},
	}

	img := Overlay(4, 4, components, func(c segment.Component) bool { return c.BuildingBlock })

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := colorutil.White
			if y == 1 && (x == 1 || x == 2) {
				want = colorutil.Black
			}
			if got := img.At(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestOverlayRespectsMaskHoles(t *testing.T) {
	components := []segment.Component{
		{
			ID:     1,
			Bounds: geometry.RectInt{X: 0, Y: 0, Width: 2, Height: 2},
			Mask: []bool{
				true, false,
				false, true,
			},
			BuildingBlock: true,
		},
	}

	img := Overlay(2, 2, components, func(c segment.Component) bool { return c.BuildingBlock })

	if img.At(0, 0) != colorutil.Black || img.At(1, 1) != colorutil.Black {
		t.Error("masked pixels not painted")
	}
	if img.At(1, 0) != colorutil.White || img.At(0, 1) != colorutil.White {
		t.Error("unmasked pixels inside the bounding box were painted")
	}
}
