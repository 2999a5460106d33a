// Package raster provides image loading, pixel buffer access, and JPEG encoding.
package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	"blockseg/pkg/colorutil"

	_ "golang.org/x/image/tiff"
)

// Encode quality for all JPEG artifacts.
const jpegQuality = 100

// Buffer is a row-major grid of RGB triples. The segmentation engine
// recolors it in place; callers own it for the duration of one image.
type Buffer struct {
	Width  int
	Height int
	Pix    []colorutil.RGB // len = Width*Height
}

// New returns a buffer filled with the given color.
func New(width, height int, fill colorutil.RGB) *Buffer {
	pix := make([]colorutil.RGB, width*height)
	for i := range pix {
		pix[i] = fill
	}
	return &Buffer{Width: width, Height: height, Pix: pix}
}

// Index returns the row-major offset of (x, y).
func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// At returns the color at (x, y).
func (b *Buffer) At(x, y int) colorutil.RGB {
	return b.Pix[y*b.Width+x]
}

// Set overwrites the color at (x, y).
func (b *Buffer) Set(x, y int, c colorutil.RGB) {
	b.Pix[y*b.Width+x] = c
}

// Load decodes the image at path into an RGB buffer. Any registered format
// (JPEG, PNG, TIFF) is accepted; alpha is discarded.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	return FromImage(img), nil
}

// FromImage copies an image.Image into an RGB buffer, forcing three channels.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	buf := &Buffer{Width: w, Height: h, Pix: make([]colorutil.RGB, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Pix[y*w+x] = colorutil.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return buf
}

// ToRGBA converts the buffer to an opaque image.RGBA.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
	}
	return img
}

// SaveJPEG writes the buffer to path as a JPEG at the fixed quality setting.
func SaveJPEG(path string, b *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, b.ToRGBA(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
