// Package noise wraps seeded Perlin noise for the biome classifier.
package noise

import (
	"github.com/aquilax/go-perlin"
)

// Generator produces deterministic 2D Perlin noise for a fixed seed.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a noise generator with the given seed.
func NewGenerator(seed int64) *Generator {
	// alpha=2, beta=2, n=3 gives smooth terrain-like noise
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// Noise returns a value in roughly [-1, 1] for the given coordinates.
func (g *Generator) Noise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// At samples noise at integer grid coordinates normalized by extent and
// scaled by freq. Lower frequencies produce larger blobs.
func (g *Generator) At(x, y, extent int, freq float64) float64 {
	nx := float64(x) / float64(extent)
	ny := float64(y) / float64(extent)
	return g.Noise(nx*freq, ny*freq)
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}
