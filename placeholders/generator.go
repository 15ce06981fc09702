// Package placeholders generates usable placeholder artwork: transition
// tilesheets that honor the corner bit encoding by construction, and a small
// object atlas with its JSON config. Good enough to see maps without any
// hand-drawn assets.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/guyz/mapbuilder/wang"
)

// TileSize is the pixel edge of generated tiles.
const TileSize = 32

// BiomeColors is the palette for the stock biomes.
var BiomeColors = map[string]color.RGBA{
	"water":  {52, 101, 181, 255},  // deep blue
	"grass":  {88, 148, 68, 255},   // leafy green
	"desert": {214, 185, 123, 255}, // pale sand
}

// CreateSolidTile creates a simple solid-colored tile.
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// TransitionTile draws the tile for one corner combination. Each pixel
// bilinearly interpolates the four corner bits and picks the high color
// above 0.5, which yields rounded diagonal boundaries instead of hard
// quadrants.
func TransitionTile(idx wang.TileIndex, high, low color.RGBA) *image.RGBA {
	nw, ne, sw, se := idx.Corners()
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			u := (float64(x) + 0.5) / TileSize
			v := (float64(y) + 0.5) / TileSize
			val := float64(nw)*(1-u)*(1-v) +
				float64(ne)*u*(1-v) +
				float64(sw)*(1-u)*v +
				float64(se)*u*v
			if val > 0.5 {
				img.Set(x, y, high)
			} else {
				img.Set(x, y, low)
			}
		}
	}
	return img
}

// TransitionSheet builds the full 4x4 sheet for a biome pair, tile 0
// top-left through tile 15 bottom-right.
func TransitionSheet(high, low color.RGBA) *image.RGBA {
	tiles := make([]*image.RGBA, wang.TileCount)
	for idx := range tiles {
		tiles[idx] = TransitionTile(wang.TileIndex(idx), high, low)
	}
	return CreateAtlas(tiles, 4)
}

// CreateAtlas packs tiles into a grid image with the given column count,
// row-major.
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * TileSize
		y := (i / columns) * TileSize
		draw.Draw(atlas, image.Rect(x, y, x+TileSize, y+TileSize), tile, image.Point{}, draw.Src)
	}
	return atlas
}

// SavePNG saves an image to a PNG file.
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color.
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
