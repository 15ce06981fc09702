// Package biome assigns a terrain category to every vertex of the corner
// grid, upstream of tile resolution. Water and desert are carved out of a
// grass baseline by two independent Perlin layers, then a buffer pass keeps
// water and desert from touching so every cell sees at most one biome pair.
package biome

import (
	"fmt"

	"github.com/guyz/mapbuilder/noise"
	"github.com/guyz/mapbuilder/wang"
)

// Biome is a terrain category name, matching the names used in transition
// tilesheet filenames.
type Biome string

const (
	Water  Biome = "water"
	Grass  Biome = "grass"
	Desert Biome = "desert"
)

// Seed offsets keep the two noise layers decorrelated.
const (
	waterSeedOffset  = 101
	desertSeedOffset = 202
)

// Config holds the classifier tuning knobs.
type Config struct {
	WaterFreq       float64 // lower means bigger water bodies
	DesertFreq      float64
	WaterThreshold  float64 // water noise below this becomes water
	DesertThreshold float64 // desert noise above this becomes desert
	BufferDist      int     // Manhattan distance kept between water and desert
}

// DefaultConfig returns the tuning used for the stock three-biome maps.
func DefaultConfig() Config {
	return Config{
		WaterFreq:       1.2,
		DesertFreq:      1.0,
		WaterThreshold:  -0.10,
		DesertThreshold: 0.20,
		BufferDist:      2,
	}
}

// Classifier derives corner biomes from seeded noise.
type Classifier struct {
	cfg    Config
	water  *noise.Generator
	desert *noise.Generator
}

// NewClassifier creates a classifier for the given seed and tuning.
func NewClassifier(seed int64, cfg Config) *Classifier {
	return &Classifier{
		cfg:    cfg,
		water:  noise.NewGenerator(seed + waterSeedOffset),
		desert: noise.NewGenerator(seed + desertSeedOffset),
	}
}

// Grid is a (height+1)x(width+1) grid of corner biomes backing a
// width x height tile grid, stored row-major.
type Grid struct {
	Width  int // vertices per row
	Height int // rows
	cells  []Biome
}

// NewGrid allocates a grid for a width x height tile grid with every vertex
// set to Grass.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", wang.ErrInvalidDimension, width, height)
	}
	g := &Grid{
		Width:  width + 1,
		Height: height + 1,
		cells:  make([]Biome, (width+1)*(height+1)),
	}
	for i := range g.cells {
		g.cells[i] = Grass
	}
	return g, nil
}

// At returns the biome at vertex row r, column c.
func (g *Grid) At(r, c int) Biome {
	return g.cells[r*g.Width+c]
}

// Set assigns the biome at vertex row r, column c.
func (g *Grid) Set(r, c int, b Biome) {
	g.cells[r*g.Width+c] = b
}

// ClassifyCorners produces the corner biome grid for a width x height tile
// grid. Deterministic for a fixed classifier seed.
func (cl *Classifier) ClassifyCorners(width, height int) (*Grid, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	extent := width
	if height > extent {
		extent = height
	}
	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			if cl.water.At(c, r, extent, cl.cfg.WaterFreq) < cl.cfg.WaterThreshold {
				grid.Set(r, c, Water)
			} else if cl.desert.At(c, r, extent, cl.cfg.DesertFreq) > cl.cfg.DesertThreshold {
				grid.Set(r, c, Desert)
			}
		}
	}

	grid.applyBuffer(cl.cfg.BufferDist)
	return grid, nil
}

// applyBuffer converts desert vertices within dist Manhattan steps of water
// back to grass, so no cell ever has to blend water directly into desert.
func (g *Grid) applyBuffer(dist int) {
	if dist < 1 {
		return
	}
	shielded := make([]bool, len(g.cells))
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.At(r, c) != Water {
				continue
			}
			for dr := -dist; dr <= dist; dr++ {
				rem := dist - abs(dr)
				for dc := -rem; dc <= rem; dc++ {
					rr, cc := r+dr, c+dc
					if rr < 0 || rr >= g.Height || cc < 0 || cc >= g.Width {
						continue
					}
					shielded[rr*g.Width+cc] = true
				}
			}
		}
	}
	for i, s := range shielded {
		if s && g.cells[i] == Desert {
			g.cells[i] = Grass
		}
	}
}

// CellKind describes how many biomes meet at a cell.
type CellKind int

const (
	// PureCell covers a single biome; render its pure tile.
	PureCell CellKind = iota
	// TransitionCell blends exactly two biomes via a transition sheet.
	TransitionCell
	// MixedCell has three or more biomes at its corners and collapses to
	// the majority biome. The buffer pass makes this rare.
	MixedCell
)

// Cell summarizes the corner biomes of one tile cell.
type Cell struct {
	Kind    CellKind
	Biome   Biome    // pure or majority biome for PureCell and MixedCell
	Pair    [2]Biome // the two biomes of a TransitionCell, in corner order
	Corners [4]Biome // nw, ne, sw, se
}

// Cell classifies the tile cell at row r, column c from its four corner
// vertices.
func (g *Grid) Cell(r, c int) Cell {
	corners := [4]Biome{g.At(r, c), g.At(r, c+1), g.At(r+1, c), g.At(r+1, c+1)}

	distinct := corners[:1:1]
	for _, b := range corners[1:] {
		seen := false
		for _, d := range distinct {
			if d == b {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, b)
		}
	}

	cell := Cell{Corners: corners}
	switch len(distinct) {
	case 1:
		cell.Kind = PureCell
		cell.Biome = distinct[0]
	case 2:
		cell.Kind = TransitionCell
		cell.Pair = [2]Biome{distinct[0], distinct[1]}
	default:
		cell.Kind = MixedCell
		cell.Biome = majority(corners)
	}
	return cell
}

// majority returns the most frequent corner biome, ties broken by corner
// order.
func majority(corners [4]Biome) Biome {
	best := corners[0]
	bestCount := 0
	for _, cand := range corners {
		count := 0
		for _, b := range corners {
			if b == cand {
				count++
			}
		}
		if count > bestCount {
			best = cand
			bestCount = count
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
