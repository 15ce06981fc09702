// Package compositor stitches resolved tile grids into a raster image.
package compositor

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/guyz/mapbuilder/biome"
	"github.com/guyz/mapbuilder/tileset"
	"github.com/guyz/mapbuilder/wang"
)

// Render pastes tile k from the sheet into every cell holding index k,
// producing a (width*tile) x (height*tile) image.
func Render(grid *wang.TileIndexGrid, sheet *tileset.Sheet) (*image.RGBA, error) {
	size := sheet.TileSize
	out := image.NewRGBA(image.Rect(0, 0, grid.Width*size, grid.Height*size))

	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			tile, err := sheet.Tile(grid.At(r, c))
			if err != nil {
				return nil, err
			}
			paste(out, tile, c*size, r*size, size)
		}
	}
	return out, nil
}

// RenderMultiBiome composes a raster from a corner biome grid. Interior
// cells use the registry's pure tiles, two-biome cells go through the
// transition sheet for that pair with the sheet's high biome mapped to the
// set corner bits, and cells where three or more biomes meet collapse to
// the majority biome's pure tile. A missing sheet or pure tile for a
// reachable combination is fatal.
func RenderMultiBiome(biomes *biome.Grid, reg *tileset.Registry) (*image.RGBA, error) {
	width, height := biomes.Width-1, biomes.Height-1
	size := reg.TileSize()
	if size == 0 {
		return nil, fmt.Errorf("compositor: registry has no sheets")
	}
	out := image.NewRGBA(image.Rect(0, 0, width*size, height*size))

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			cell := biomes.Cell(r, c)

			var tile image.Image
			switch cell.Kind {
			case biome.PureCell, biome.MixedCell:
				pure, ok := reg.PureTile(string(cell.Biome))
				if !ok {
					return nil, fmt.Errorf("compositor: no pure tile for biome %q", cell.Biome)
				}
				tile = pure
			case biome.TransitionCell:
				sheet, ok := reg.Lookup(string(cell.Pair[0]), string(cell.Pair[1]))
				if !ok {
					return nil, fmt.Errorf("compositor: no tileset for pair (%s, %s)", cell.Pair[0], cell.Pair[1])
				}
				idx := wang.EncodeCorners(
					highBit(cell.Corners[0], sheet.High),
					highBit(cell.Corners[1], sheet.High),
					highBit(cell.Corners[2], sheet.High),
					highBit(cell.Corners[3], sheet.High),
				)
				var err error
				tile, err = sheet.Tile(idx)
				if err != nil {
					return nil, err
				}
			}
			paste(out, tile, c*size, r*size, size)
		}
	}
	return out, nil
}

// SavePNG writes an image to a PNG file.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func highBit(b biome.Biome, high string) uint8 {
	if string(b) == high {
		return 1
	}
	return 0
}

func paste(dst *image.RGBA, tile image.Image, x, y, size int) {
	rect := image.Rect(x, y, x+size, y+size)
	draw.Draw(dst, rect, tile, tile.Bounds().Min, draw.Src)
}
