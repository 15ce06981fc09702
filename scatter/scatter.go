// Package scatter places decorative objects over a finished terrain grid.
// Objects only land on interior cells, whose four corners share one biome,
// so sprites never straddle a transition seam.
package scatter

import (
	"math/rand"

	"github.com/guyz/mapbuilder/atlas"
	"github.com/guyz/mapbuilder/biome"
)

// Placement is one object assigned to a tile cell.
type Placement struct {
	Row, Col int
	Object   string // tile definition name in the object atlas
}

// Scatter walks the tile cells of a corner biome grid and, with probability
// density per interior cell, drops a random object whose biomes property
// permits that cell's biome. The random source is injected for reproducible
// layouts. Cells with no eligible object stay empty.
func Scatter(biomes *biome.Grid, objects []atlas.TileDefinition, density float64, rng *rand.Rand) []Placement {
	if density <= 0 || len(objects) == 0 {
		return nil
	}

	var placements []Placement
	for r := 0; r < biomes.Height-1; r++ {
		for c := 0; c < biomes.Width-1; c++ {
			cell := biomes.Cell(r, c)
			if cell.Kind != biome.PureCell {
				continue
			}
			if rng.Float64() >= density {
				continue
			}

			eligible := eligibleObjects(objects, string(cell.Biome))
			if len(eligible) == 0 {
				continue
			}
			pick := eligible[rng.Intn(len(eligible))]
			placements = append(placements, Placement{Row: r, Col: c, Object: pick})
		}
	}
	return placements
}

func eligibleObjects(objects []atlas.TileDefinition, b string) []string {
	var names []string
	for i := range objects {
		if objects[i].AllowedOn(b) {
			names = append(names, objects[i].Name)
		}
	}
	return names
}
