// Package colorutil provides shared color utilities for the segmentation tool.
package colorutil

import (
	"math"
	"math/rand"
)

// RGB is a packed 8-bit-per-channel color triple.
type RGB struct {
	R, G, B uint8
}

// Common colors used by the output renderers.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// Distance returns the dissimilarity between two colors. Euclidean mode is
// sqrt(dr^2+dg^2+db^2); otherwise the Manhattan sum |dr|+|dg|+|db|.
func Distance(a, b RGB, euclidean bool) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	if euclidean {
		return math.Sqrt(dr*dr + dg*dg + db*db)
	}
	return math.Abs(dr) + math.Abs(dg) + math.Abs(db)
}

// Random returns a uniformly random color drawn from rng. Injecting the
// generator keeps region fill colors reproducible under a fixed seed.
func Random(rng *rand.Rand) RGB {
	return RGB{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
	}
}
