// Package wang implements the corner-matching tile selection at the heart of
// the map builder. A CornerField holds one binary terrain value per grid
// vertex; Resolve turns it into a grid of tile indices in [0, 15] where
// adjacent tiles always agree along their shared edge, because both tiles
// read the same field vertices for the shared corners. No constraint solving
// or backtracking is involved.
package wang

import (
	"errors"
	"fmt"
	"math/rand"
)

// Corner bit weights. A tile index is the sum of the weights of its
// high-terrain corners, so index 0 is all-low and index 15 is all-high.
// Transition tilesheets must be authored to the same encoding.
const (
	BitNE = 1
	BitSE = 2
	BitSW = 4
	BitNW = 8
)

// TileCount is the number of distinct corner combinations.
const TileCount = 16

var (
	// ErrInvalidDimension reports a non-positive width or height.
	ErrInvalidDimension = errors.New("wang: width and height must be positive")

	// ErrDimensionMismatch reports a corner field whose shape does not fit
	// the requested tile grid.
	ErrDimensionMismatch = errors.New("wang: corner field shape does not match grid dimensions")
)

// TileIndex identifies one of the 16 corner-combination tiles.
type TileIndex uint8

// Corners decodes the index back into its four corner values.
func (t TileIndex) Corners() (nw, ne, sw, se uint8) {
	return uint8(t) >> 3 & 1, uint8(t) & 1, uint8(t) >> 2 & 1, uint8(t) >> 1 & 1
}

// EncodeCorners computes the tile index for four corner values. Any non-zero
// corner value counts as high terrain.
func EncodeCorners(nw, ne, sw, se uint8) TileIndex {
	var idx TileIndex
	if ne != 0 {
		idx += BitNE
	}
	if se != 0 {
		idx += BitSE
	}
	if sw != 0 {
		idx += BitSW
	}
	if nw != 0 {
		idx += BitNW
	}
	return idx
}

// CornerField is a (height+1)x(width+1) grid of binary terrain values backing
// a width x height tile grid. Values are stored row-major and are not
// modified after generation.
type CornerField struct {
	Width  int // vertices per row, tile grid width + 1
	Height int // rows, tile grid height + 1
	data   []uint8
}

// NewCornerField allocates a zeroed field sized for a width x height tile
// grid.
func NewCornerField(width, height int) (*CornerField, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	return &CornerField{
		Width:  width + 1,
		Height: height + 1,
		data:   make([]uint8, (width+1)*(height+1)),
	}, nil
}

// At returns the corner value at row r, column c.
func (f *CornerField) At(r, c int) uint8 {
	return f.data[r*f.Width+c]
}

// Set assigns the corner value at row r, column c. Values other than 0 are
// stored as 1.
func (f *CornerField) Set(r, c int, v uint8) {
	if v != 0 {
		v = 1
	}
	f.data[r*f.Width+c] = v
}

// GenerateField produces a corner field for a width x height tile grid with
// every vertex drawn independently as a fair coin flip. The random source is
// injected by the caller; pass rand.New(rand.NewSource(seed)) for
// reproducible maps.
func GenerateField(width, height int, rng *rand.Rand) (*CornerField, error) {
	return GenerateFieldBiased(width, height, 0.5, rng)
}

// GenerateFieldBiased is GenerateField with a tunable probability of a
// vertex being high terrain, for skewing maps toward one biome.
func GenerateFieldBiased(width, height int, p float64, rng *rand.Rand) (*CornerField, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("wang: probability %v outside [0, 1]", p)
	}
	field, err := NewCornerField(width, height)
	if err != nil {
		return nil, err
	}
	for i := range field.data {
		if rng.Float64() < p {
			field.data[i] = 1
		}
	}
	return field, nil
}

// TileIndexGrid is the resolved width x height grid of tile indices, stored
// row-major.
type TileIndexGrid struct {
	Width  int
	Height int
	cells  []TileIndex
}

// At returns the tile index at row r, column c.
func (g *TileIndexGrid) At(r, c int) TileIndex {
	return g.cells[r*g.Width+c]
}

// Resolve computes the tile index for every cell of a width x height grid
// from the surrounding corner values. It is a pure function of the field:
// cell (r, c) reads vertices (r, c), (r, c+1), (r+1, c) and (r+1, c+1), so
// neighboring cells share vertices and their indices agree along the common
// edge by construction. The field must be exactly one vertex larger than the
// tile grid in each dimension; the border is open, not periodic.
func Resolve(field *CornerField, width, height int) (*TileIndexGrid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	if field == nil || field.Width != width+1 || field.Height != height+1 {
		got := "nil field"
		if field != nil {
			got = fmt.Sprintf("%dx%d field", field.Height, field.Width)
		}
		return nil, fmt.Errorf("%w: %s for %dx%d grid", ErrDimensionMismatch, got, width, height)
	}

	grid := &TileIndexGrid{
		Width:  width,
		Height: height,
		cells:  make([]TileIndex, width*height),
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			nw := field.At(r, c)
			ne := field.At(r, c+1)
			sw := field.At(r+1, c)
			se := field.At(r+1, c+1)
			grid.cells[r*width+c] = EncodeCorners(nw, ne, sw, se)
		}
	}
	return grid, nil
}
