// mapbuild generates a Wang-corner terrain map PNG, either from a JSON map
// spec or from flags.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/guyz/mapbuilder/compositor"
	"github.com/guyz/mapbuilder/mapfile"
	"github.com/guyz/mapbuilder/mapgen"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to a JSON map spec; other flags are ignored when set")
		width         = flag.Int("width", 64, "map width in tiles")
		height        = flag.Int("height", 64, "map height in tiles")
		seed          = flag.Int64("seed", 0, "generation seed; 0 picks one from the clock")
		mode          = flag.String("mode", mapfile.ModeMulti, "generation mode: single or multi")
		sheetPath     = flag.String("tileset", "", "single mode: path to a transition_<high>_<low>.png sheet")
		assetsDir     = flag.String("assets", "assets", "multi mode: directory of transition sheets")
		objectAtlas   = flag.String("object-atlas", "", "optional object atlas JSON config")
		objectDensity = flag.Float64("object-density", 0, "chance of an object per interior cell")
		output        = flag.String("out", "terrain.png", "output PNG path")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "mapbuild"})

	var spec *mapfile.Spec
	if *configPath != "" {
		loaded, err := mapfile.Load(*configPath)
		if err != nil {
			logger.Fatal("Failed to load map spec", "error", err)
		}
		spec = loaded
		logger.Info("Loaded map spec", "name", spec.Name, "path", *configPath)
	} else {
		spec = &mapfile.Spec{
			Width:         *width,
			Height:        *height,
			Seed:          *seed,
			Mode:          *mode,
			Tileset:       *sheetPath,
			AssetsDir:     *assetsDir,
			ObjectAtlas:   *objectAtlas,
			ObjectDensity: *objectDensity,
			Output:        *output,
		}
	}

	logger.Info("Building map", "mode", spec.Mode, "width", spec.Width, "height", spec.Height)
	result, err := mapgen.Build(spec)
	if err != nil {
		logger.Fatal("Build failed", "error", err)
	}

	if err := compositor.SavePNG(result.Image, spec.Output); err != nil {
		logger.Fatal("Failed to save map", "error", err)
	}

	logger.Info("Map written",
		"path", spec.Output,
		"seed", result.Seed,
		"size", result.Image.Bounds().Size(),
		"objects", result.Objects)
}
