// mapview opens a window showing a freshly generated map. Space re-rolls
// the seed, S saves the current map next to the working directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/guyz/mapbuilder/atlas"
	"github.com/guyz/mapbuilder/compositor"
	"github.com/guyz/mapbuilder/mapfile"
	"github.com/guyz/mapbuilder/mapgen"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

type viewer struct {
	spec    *mapfile.Spec
	logger  *log.Logger
	objects *atlas.Atlas // nil when the spec carries no object atlas
	current *ebiten.Image
	seed    int64
}

func newViewer(spec *mapfile.Spec, logger *log.Logger) (*viewer, error) {
	v := &viewer{spec: spec, logger: logger}
	if spec.ObjectAtlas != "" {
		a, err := atlas.LoadAtlas(spec.ObjectAtlas)
		if err != nil {
			return nil, err
		}
		v.objects = a
	}
	return v, v.regenerate()
}

// regenerate builds the terrain and draws the object layer from the atlas
// on top, so a re-roll only re-renders sprites instead of re-baking them
// into the raster.
func (v *viewer) regenerate() error {
	result, err := mapgen.BuildTerrain(v.spec)
	if err != nil {
		return err
	}
	v.current = ebiten.NewImageFromImage(result.Image)
	if v.objects != nil {
		tw := float64(v.objects.Config.TileWidth)
		th := float64(v.objects.Config.TileHeight)
		for _, p := range result.Placements {
			if err := v.objects.DrawTile(v.current, p.Object, float64(p.Col)*tw, float64(p.Row)*th); err != nil {
				return err
			}
		}
	}
	v.seed = result.Seed
	// pin the chosen seed so a later save rebuilds the same map
	v.spec.Seed = result.Seed
	v.logger.Info("Generated map", "seed", v.seed, "objects", result.Objects)
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.spec.Seed = time.Now().UnixNano()
		if err := v.regenerate(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		path := fmt.Sprintf("map_%d.png", v.seed)
		result, err := mapgen.Build(v.spec)
		if err != nil {
			return err
		}
		if err := compositor.SavePNG(result.Image, path); err != nil {
			return err
		}
		v.logger.Info("Saved map", "path", path)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.current == nil {
		return
	}

	// scale to fit the window while keeping the aspect ratio
	bounds := v.current.Bounds()
	sx := float64(screenWidth) / float64(bounds.Dx())
	sy := float64(screenHeight) / float64(bounds.Dy())
	scale := sx
	if sy < scale {
		scale = sy
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(
		(screenWidth-float64(bounds.Dx())*scale)/2,
		(screenHeight-float64(bounds.Dy())*scale)/2,
	)
	screen.DrawImage(v.current, opts)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	var (
		configPath    = flag.String("config", "", "path to a JSON map spec")
		width         = flag.Int("width", 64, "map width in tiles")
		height        = flag.Int("height", 48, "map height in tiles")
		seed          = flag.Int64("seed", 0, "generation seed; 0 picks one from the clock")
		assetsDir     = flag.String("assets", "assets", "directory of transition sheets")
		objectAtlas   = flag.String("object-atlas", "", "optional object atlas JSON config")
		objectDensity = flag.Float64("object-density", 0, "chance of an object per interior cell")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "mapview"})

	var spec *mapfile.Spec
	if *configPath != "" {
		loaded, err := mapfile.Load(*configPath)
		if err != nil {
			logger.Fatal("Failed to load map spec", "error", err)
		}
		spec = loaded
	} else {
		spec = &mapfile.Spec{
			Width:         *width,
			Height:        *height,
			Seed:          *seed,
			Mode:          mapfile.ModeMulti,
			AssetsDir:     *assetsDir,
			ObjectAtlas:   *objectAtlas,
			ObjectDensity: *objectDensity,
			Output:        "terrain.png",
		}
	}

	v, err := newViewer(spec, logger)
	if err != nil {
		logger.Fatal("Failed to generate initial map", "error", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("mapview - space to re-roll, S to save")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("Viewer exited", "error", err)
	}
}
