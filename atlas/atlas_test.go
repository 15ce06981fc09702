package atlas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigParsing(t *testing.T) {
	jsonData := `{
		"name": "placeholder_objects",
		"layer": "objects",
		"image_path": "objects.png",
		"tile_width": 32,
		"tile_height": 32,
		"tiles": [
			{
				"name": "cactus",
				"atlas_x": 0,
				"atlas_y": 0,
				"properties": {
					"walkable": false,
					"biomes": ["desert"]
				}
			},
			{
				"name": "boulder",
				"atlas_x": 2,
				"atlas_y": 0,
				"properties": {
					"walkable": false,
					"biomes": ["grass", "desert"]
				}
			}
		]
	}`

	var config Config
	err := json.Unmarshal([]byte(jsonData), &config)
	if err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if config.Name != "placeholder_objects" {
		t.Errorf("Expected name 'placeholder_objects', got '%s'", config.Name)
	}

	if config.TileWidth != 32 || config.TileHeight != 32 {
		t.Errorf("Expected 32x32 tiles, got %dx%d", config.TileWidth, config.TileHeight)
	}

	if len(config.Tiles) != 2 {
		t.Fatalf("Expected 2 tiles, got %d", len(config.Tiles))
	}

	cactus, ok := config.TileByName("cactus")
	if !ok {
		t.Fatal("Expected to find cactus tile")
	}

	if cactus.GetTilePropertyBool("walkable", true) {
		t.Error("Expected cactus to not be walkable")
	}

	biomes := cactus.AllowedBiomes()
	if len(biomes) != 1 || biomes[0] != "desert" {
		t.Errorf("Expected cactus biomes [desert], got %v", biomes)
	}
}

func TestAllowedOn(t *testing.T) {
	tile := TileDefinition{
		Name: "boulder",
		Properties: map[string]interface{}{
			"biomes": []interface{}{"grass", "desert"},
		},
	}

	if !tile.AllowedOn("grass") {
		t.Error("Expected boulder allowed on grass")
	}
	if !tile.AllowedOn("desert") {
		t.Error("Expected boulder allowed on desert")
	}
	if tile.AllowedOn("water") {
		t.Error("Expected boulder not allowed on water")
	}

	unrestricted := TileDefinition{Name: "marker"}
	if !unrestricted.AllowedOn("water") {
		t.Error("Expected object without biome list to be allowed anywhere")
	}
}

func TestTileDefinitionProperties(t *testing.T) {
	tile := TileDefinition{
		Name:   "test_tile",
		AtlasX: 0,
		AtlasY: 0,
		Properties: map[string]interface{}{
			"bool_prop": true,
		},
	}

	if !tile.GetTilePropertyBool("bool_prop", false) {
		t.Error("Expected bool_prop to be true")
	}

	// Defaults for missing properties
	if !tile.GetTilePropertyBool("missing", true) {
		t.Error("Expected default value true for missing property")
	}
	if _, ok := tile.GetTileProperty("missing"); ok {
		t.Error("Expected missing property lookup to report absence")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	// Invalid tile dimensions
	path := write("bad_dims.json", `{
		"name": "invalid",
		"layer": "objects",
		"image_path": "objects.png",
		"tile_width": 0,
		"tile_height": 0,
		"tiles": []
	}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid tile dimensions")
	}

	// Missing image path
	path = write("no_image.json", `{
		"name": "invalid",
		"layer": "objects",
		"tile_width": 32,
		"tile_height": 32,
		"tiles": []
	}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for missing image_path")
	}

	// Valid config
	path = write("ok.json", `{
		"name": "ok",
		"layer": "objects",
		"image_path": "objects.png",
		"tile_width": 32,
		"tile_height": 32,
		"tiles": [{"name": "cactus", "atlas_x": 0, "atlas_y": 0}]
	}`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Name != "ok" {
		t.Errorf("Expected name 'ok', got '%s'", config.Name)
	}
}
