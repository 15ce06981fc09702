// Package mapgen drives a whole map build from a mapfile.Spec: corner
// generation, tile resolution, compositing and optional object scatter. The
// commands stay thin wrappers around Build.
package mapgen

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"time"

	"github.com/guyz/mapbuilder/atlas"
	"github.com/guyz/mapbuilder/biome"
	"github.com/guyz/mapbuilder/compositor"
	"github.com/guyz/mapbuilder/mapfile"
	"github.com/guyz/mapbuilder/scatter"
	"github.com/guyz/mapbuilder/tileset"
	"github.com/guyz/mapbuilder/wang"
)

// Result is a finished build.
type Result struct {
	Image      *image.RGBA
	Seed       int64 // the seed actually used, for reproducing unseeded runs
	Placements []scatter.Placement
	Objects    int // number of scattered objects
}

// Build runs the full pipeline for a validated spec, objects baked into the
// raster. A zero seed picks one from the clock; pass a non-zero seed for
// reproducible output.
func Build(spec *mapfile.Spec) (*Result, error) {
	return build(spec, true)
}

// BuildTerrain runs the same pipeline but leaves objects out of the raster,
// returning their placements instead, for callers that draw the object
// layer themselves.
func BuildTerrain(spec *mapfile.Spec) (*Result, error) {
	return build(spec, false)
}

func build(spec *mapfile.Spec, bake bool) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch spec.Mode {
	case mapfile.ModeSingle:
		return buildSingle(spec, seed, bake)
	default:
		return buildMulti(spec, seed, bake)
	}
}

// buildSingle is the one-sheet path: random binary corners resolved against
// a single transition sheet.
func buildSingle(spec *mapfile.Spec, seed int64, bake bool) (*Result, error) {
	sheet, err := tileset.LoadSheet(spec.Tileset)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	field, err := wang.GenerateField(spec.Width, spec.Height, rng)
	if err != nil {
		return nil, err
	}
	grid, err := wang.Resolve(field, spec.Width, spec.Height)
	if err != nil {
		return nil, err
	}

	img, err := compositor.Render(grid, sheet)
	if err != nil {
		return nil, err
	}

	result := &Result{Image: img, Seed: seed}
	if spec.ObjectDensity > 0 {
		// treat the binary field as a two-biome grid so objects can land
		// on interior cells of either layer
		biomes, err := fieldBiomes(field, sheet.High, sheet.Low)
		if err != nil {
			return nil, err
		}
		if err := placeObjects(result, biomes, spec, sheet.TileSize, rng, bake); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// buildMulti is the noise-classified path over a directory of sheets.
func buildMulti(spec *mapfile.Spec, seed int64, bake bool) (*Result, error) {
	reg, err := tileset.LoadDir(spec.AssetsDir)
	if err != nil {
		return nil, err
	}

	cfg := classifierConfig(spec.Biomes)
	biomes, err := biome.NewClassifier(seed, cfg).ClassifyCorners(spec.Width, spec.Height)
	if err != nil {
		return nil, err
	}

	img, err := compositor.RenderMultiBiome(biomes, reg)
	if err != nil {
		return nil, err
	}

	result := &Result{Image: img, Seed: seed}
	if spec.ObjectDensity > 0 {
		rng := rand.New(rand.NewSource(seed))
		if err := placeObjects(result, biomes, spec, reg.TileSize(), rng, bake); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// classifierConfig applies spec overrides on top of the defaults.
func classifierConfig(t *mapfile.BiomeTuning) biome.Config {
	cfg := biome.DefaultConfig()
	if t == nil {
		return cfg
	}
	if t.WaterFreq != nil {
		cfg.WaterFreq = *t.WaterFreq
	}
	if t.DesertFreq != nil {
		cfg.DesertFreq = *t.DesertFreq
	}
	if t.WaterThreshold != nil {
		cfg.WaterThreshold = *t.WaterThreshold
	}
	if t.DesertThreshold != nil {
		cfg.DesertThreshold = *t.DesertThreshold
	}
	if t.BufferDist != nil {
		cfg.BufferDist = *t.BufferDist
	}
	return cfg
}

// fieldBiomes lifts a binary corner field into a biome grid using the
// sheet's high/low names.
func fieldBiomes(field *wang.CornerField, high, low string) (*biome.Grid, error) {
	grid, err := biome.NewGrid(field.Width-1, field.Height-1)
	if err != nil {
		return nil, err
	}
	for r := 0; r < field.Height; r++ {
		for c := 0; c < field.Width; c++ {
			b := biome.Biome(low)
			if field.At(r, c) != 0 {
				b = biome.Biome(high)
			}
			grid.Set(r, c, b)
		}
	}
	return grid, nil
}

// placeObjects scatters sprites from the object atlas. With bake set the
// sprites are composited into the raster headless via stdlib image drawing;
// without it only the placements are recorded, for callers that render the
// object layer themselves.
func placeObjects(result *Result, biomes *biome.Grid, spec *mapfile.Spec, tileSize int, rng *rand.Rand, bake bool) error {
	cfg, err := atlas.LoadConfig(spec.ObjectAtlas)
	if err != nil {
		return err
	}
	if cfg.TileWidth != tileSize || cfg.TileHeight != tileSize {
		return fmt.Errorf("object atlas tile size %dx%d does not match terrain tile size %d",
			cfg.TileWidth, cfg.TileHeight, tileSize)
	}

	placements := scatter.Scatter(biomes, cfg.Tiles, spec.ObjectDensity, rng)
	result.Placements = placements
	result.Objects = len(placements)
	if !bake {
		return nil
	}

	sprites, err := loadAtlasImage(cfg.ImagePath)
	if err != nil {
		return err
	}

	for _, p := range placements {
		td, ok := cfg.TileByName(p.Object)
		if !ok {
			return fmt.Errorf("scattered object %q missing from atlas config", p.Object)
		}
		src := cfg.TileRect(td)
		dst := image.Rect(p.Col*tileSize, p.Row*tileSize, (p.Col+1)*tileSize, (p.Row+1)*tileSize)
		draw.Draw(result.Image, dst, sprites, src.Min, draw.Over)
	}
	return nil
}

func loadAtlasImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas image %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas image %s: %w", path, err)
	}
	return img, nil
}
