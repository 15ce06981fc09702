// Package atlas loads object atlases: an image of sprites paired with a
// JSON config carrying per-tile metadata (position, walkability, which
// biomes an object may stand on). The terrain core never reads this; it is
// the companion format for placing discrete objects over a finished map.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// TileDefinition defines a single object sprite within an atlas
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "cactus")
	AtlasX     int                    `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int                    `json:"atlas_y"`    // Y position in atlas (in tiles)
	Properties map[string]interface{} `json:"properties"` // Custom properties (walkable, biomes, etc.)
}

// Config defines the JSON configuration for an object atlas
type Config struct {
	Name       string           `json:"name"`        // Atlas name
	Layer      string           `json:"layer"`       // Layer this atlas belongs to (e.g., "objects")
	ImagePath  string           `json:"image_path"`  // Path to the atlas image file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Array of tile definitions
}

// Atlas represents a loaded object atlas
type Atlas struct {
	Config      *Config
	Image       *ebiten.Image
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// LoadConfig reads and validates an atlas JSON config without touching the
// image, so metadata can be used headless.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", config.TileWidth, config.TileHeight)
	}

	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}

	return &config, nil
}

// TileRect returns the pixel rectangle of a tile within the atlas image,
// for callers compositing with stdlib images instead of the draw helpers.
func (c *Config) TileRect(td *TileDefinition) image.Rectangle {
	x := td.AtlasX * c.TileWidth
	y := td.AtlasY * c.TileHeight
	return image.Rect(x, y, x+c.TileWidth, y+c.TileHeight)
}

// TileByName returns a tile definition from the config by name.
func (c *Config) TileByName(name string) (*TileDefinition, bool) {
	for i := range c.Tiles {
		if c.Tiles[i].Name == name {
			return &c.Tiles[i], true
		}
	}
	return nil, false
}

// LoadAtlas loads an object atlas and its image from a JSON configuration file
func LoadAtlas(configPath string) (*Atlas, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	img, _, err := ebitenutil.NewImageFromFile(config.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", config.ImagePath, err)
	}

	// Build the name lookup map
	tilesByName := make(map[string]*TileDefinition)
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Name != "" {
			tilesByName[tile.Name] = tile
		}
	}

	atlas := &Atlas{
		Config:      config,
		Image:       img,
		TilesByName: tilesByName,
	}

	return atlas, nil
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// GetTileSubImage returns the sub-image for a specific tile
func (a *Atlas) GetTileSubImage(tile *TileDefinition) *ebiten.Image {
	x := tile.AtlasX * a.Config.TileWidth
	y := tile.AtlasY * a.Config.TileHeight
	w := a.Config.TileWidth
	h := a.Config.TileHeight

	rect := image.Rect(x, y, x+w, y+h)
	return a.Image.SubImage(rect).(*ebiten.Image)
}

// DrawTile draws a specific tile at the given screen coordinates
func (a *Atlas) DrawTile(screen *ebiten.Image, tileName string, x, y float64) error {
	tile, ok := a.GetTile(tileName)
	if !ok {
		return fmt.Errorf("tile not found: %s", tileName)
	}

	subImg := a.GetTileSubImage(tile)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x, y)
	screen.DrawImage(subImg, opts)

	return nil
}

// GetTileProperty retrieves a property from a tile definition
func (td *TileDefinition) GetTileProperty(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// GetTilePropertyBool retrieves a boolean property
func (td *TileDefinition) GetTilePropertyBool(key string, defaultVal bool) bool {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if boolVal, ok := val.(bool); ok {
		return boolVal
	}
	return defaultVal
}

// AllowedBiomes returns the biome names an object may be placed on. An
// empty list means the object is unrestricted.
func (td *TileDefinition) AllowedBiomes() []string {
	val, ok := td.GetTileProperty("biomes")
	if !ok {
		return nil
	}

	var biomes []string
	switch v := val.(type) {
	case []string:
		biomes = v
	case []interface{}: // decoded from JSON
		for _, item := range v {
			if s, ok := item.(string); ok {
				biomes = append(biomes, s)
			}
		}
	}
	return biomes
}

// AllowedOn reports whether the object may be placed on the given biome.
func (td *TileDefinition) AllowedOn(biome string) bool {
	allowed := td.AllowedBiomes()
	if len(allowed) == 0 {
		return true
	}
	for _, b := range allowed {
		if b == biome {
			return true
		}
	}
	return false
}
