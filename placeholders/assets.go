package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/guyz/mapbuilder/atlas"
)

// stock transition pairs, high biome first to match the filename convention
var transitionPairs = [][2]string{
	{"desert", "water"},
	{"grass", "water"},
	{"grass", "desert"},
}

// GenerateAndSave writes the placeholder asset set into dir: one transition
// sheet per biome pair plus an object atlas and its JSON config.
func GenerateAndSave(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create assets dir: %w", err)
	}

	for _, pair := range transitionPairs {
		high, low := BiomeColors[pair[0]], BiomeColors[pair[1]]
		name := fmt.Sprintf("transition_%s_%s.png", pair[0], pair[1])
		if err := SavePNG(TransitionSheet(high, low), filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
	}

	if err := SavePNG(GenerateObjectAtlas(), filepath.Join(dir, "objects.png")); err != nil {
		return fmt.Errorf("failed to save object atlas: %w", err)
	}
	if err := writeObjectConfig(dir); err != nil {
		return fmt.Errorf("failed to save object atlas config: %w", err)
	}
	return nil
}

// GenerateObjectAtlas draws the decorative object sprites in a single row:
// cactus, tree, boulder, lilypad.
func GenerateObjectAtlas() *image.RGBA {
	tiles := []*image.RGBA{
		CreateCactus(),
		CreateTree(),
		CreateBoulder(),
		CreateLilypad(),
	}
	return CreateAtlas(tiles, 4)
}

func writeObjectConfig(dir string) error {
	cfg := atlas.Config{
		Name:       "placeholder_objects",
		Layer:      "objects",
		ImagePath:  filepath.Join(dir, "objects.png"),
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Tiles: []atlas.TileDefinition{
			{Name: "cactus", AtlasX: 0, AtlasY: 0, Properties: map[string]interface{}{
				"walkable": false, "biomes": []string{"desert"},
			}},
			{Name: "tree", AtlasX: 1, AtlasY: 0, Properties: map[string]interface{}{
				"walkable": false, "biomes": []string{"grass"},
			}},
			{Name: "boulder", AtlasX: 2, AtlasY: 0, Properties: map[string]interface{}{
				"walkable": false, "biomes": []string{"grass", "desert"},
			}},
			{Name: "lilypad", AtlasX: 3, AtlasY: 0, Properties: map[string]interface{}{
				"walkable": true, "biomes": []string{"water"},
			}},
		},
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "objects.json"), data, 0o644)
}

// CreateCactus draws a green column with two arms on a transparent tile.
func CreateCactus() *image.RGBA {
	img := transparentTile()
	body := color.RGBA{58, 122, 58, 255}
	mid := TileSize / 2

	for y := 6; y < TileSize-2; y++ {
		for x := mid - 2; x <= mid+2; x++ {
			img.Set(x, y, body)
		}
	}
	// arms
	for x := mid - 8; x < mid-2; x++ {
		img.Set(x, 12, body)
		img.Set(x, 13, body)
	}
	for y := 8; y <= 13; y++ {
		img.Set(mid-8, y, body)
		img.Set(mid-7, y, body)
	}
	for x := mid + 3; x <= mid+7; x++ {
		img.Set(x, 16, body)
		img.Set(x, 17, body)
	}
	for y := 11; y <= 17; y++ {
		img.Set(mid+6, y, body)
		img.Set(mid+7, y, body)
	}
	return img
}

// CreateTree draws a trunk with a round canopy.
func CreateTree() *image.RGBA {
	img := transparentTile()
	trunk := color.RGBA{110, 80, 48, 255}
	canopy := color.RGBA{46, 110, 44, 255}
	mid := TileSize / 2

	for y := TileSize - 12; y < TileSize-2; y++ {
		for x := mid - 2; x <= mid+1; x++ {
			img.Set(x, y, trunk)
		}
	}
	fillCircle(img, mid, 11, 9, canopy)
	return img
}

// CreateBoulder draws a gray rock with a darker base.
func CreateBoulder() *image.RGBA {
	img := transparentTile()
	rock := color.RGBA{130, 130, 138, 255}
	fillCircle(img, TileSize/2, TileSize/2+4, 10, rock)
	fillCircle(img, TileSize/2-5, TileSize/2, 6, Darken(rock, 0.85))
	return img
}

// CreateLilypad draws a flat green disc with a notch.
func CreateLilypad() *image.RGBA {
	img := transparentTile()
	pad := color.RGBA{74, 140, 74, 255}
	fillCircle(img, TileSize/2, TileSize/2, 9, pad)
	// notch toward the east edge
	for y := TileSize/2 - 2; y <= TileSize/2+2; y++ {
		for x := TileSize / 2; x < TileSize/2+10; x++ {
			if abs(y-TileSize/2) <= (x-TileSize/2)/3 {
				img.Set(x, y, color.RGBA{0, 0, 0, 0})
			}
		}
	}
	return img
}

func transparentTile() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || y < 0 || x >= TileSize || y >= TileSize {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
