package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseDeterminism(t *testing.T) {
	coords := []struct{ x, y float64 }{
		{0, 0}, {0.25, 0.75}, {-1.5, 2.5}, {10.1, -3.3},
	}

	first := NewGenerator(42)
	want := make([]float64, len(coords))
	for i, c := range coords {
		want[i] = first.Noise(c.x, c.y)
	}

	for i := 0; i < 3; i++ {
		g := NewGenerator(42)
		for j, c := range coords {
			assert.Equal(t, want[j], g.Noise(c.x, c.y),
				"noise at (%v, %v) must be stable for a fixed seed", c.x, c.y)
		}
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)

	differs := false
	for x := 0.1; x < 2; x += 0.3 {
		if math.Abs(a.Noise(x, x)-b.Noise(x, x)) > 1e-9 {
			differs = true
			break
		}
	}
	assert.True(t, differs, "different seeds should produce different noise")
}

func TestNoiseRange(t *testing.T) {
	g := NewGenerator(7)
	for x := -3.0; x < 3; x += 0.17 {
		for y := -3.0; y < 3; y += 0.23 {
			v := g.Noise(x, y)
			require.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestAtNormalizes(t *testing.T) {
	g := NewGenerator(7)
	// (64, 32) on a 128-vertex grid is (0.5, 0.25) of the unit square;
	// frequency 1.2 lands the sample at plane coordinates (0.6, 0.3)
	assert.InDelta(t, g.Noise(0.6, 0.3), g.At(64, 32, 128, 1.2), 1e-12)
	// extent maps onto exactly one frequency period
	assert.InDelta(t, g.Noise(2.0, 2.0), g.At(128, 128, 128, 2.0), 1e-12)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(-5), NewGenerator(-5).Seed())
}
