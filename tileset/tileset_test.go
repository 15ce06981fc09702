package tileset

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/guyz/mapbuilder/wang"
)

// testSheetImage builds a 4x4 sheet where tile k is a solid color with
// R = k*16, so slicing mistakes show up as wrong colors.
func testSheetImage(tileSize int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4*tileSize, 4*tileSize))
	for idx := 0; idx < 16; idx++ {
		x := (idx % 4) * tileSize
		y := (idx / 4) * tileSize
		col := color.RGBA{uint8(idx * 16), 0, 0, 255}
		draw.Draw(img, image.Rect(x, y, x+tileSize, y+tileSize), &image.Uniform{col}, image.Point{}, draw.Src)
	}
	return img
}

func tileColor(t *testing.T, img image.Image) uint8 {
	t.Helper()
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return uint8(r >> 8)
}

func TestNewSheetSlicing(t *testing.T) {
	sheet, err := NewSheet(testSheetImage(32), "desert", "water")
	if err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}

	if sheet.TileSize != 32 {
		t.Errorf("Expected tile size 32, got %d", sheet.TileSize)
	}

	for idx := 0; idx < wang.TileCount; idx++ {
		tile, err := sheet.Tile(wang.TileIndex(idx))
		if err != nil {
			t.Fatalf("Tile(%d) failed: %v", idx, err)
		}
		if b := tile.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("Tile %d has bounds %v, expected 32x32", idx, b)
		}
		if got := tileColor(t, tile); got != uint8(idx*16) {
			t.Errorf("Tile %d has color %d, expected %d", idx, got, idx*16)
		}
	}

	if got := tileColor(t, sheet.PureLow()); got != 0 {
		t.Errorf("PureLow should be tile 0, got color %d", got)
	}
	if got := tileColor(t, sheet.PureHigh()); got != 15*16 {
		t.Errorf("PureHigh should be tile 15, got color %d", got)
	}
}

func TestNewSheetRejectsBadLayout(t *testing.T) {
	badImages := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 128, 64)), // not square
		image.NewRGBA(image.Rect(0, 0, 30, 30)),  // not divisible by 4
		image.NewRGBA(image.Rect(0, 0, 0, 0)),    // empty
	}
	for i, img := range badImages {
		_, err := NewSheet(img, "a", "b")
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("case %d: expected ErrIncomplete, got %v", i, err)
		}
	}
}

func TestTileIndexOutOfRange(t *testing.T) {
	sheet, err := NewSheet(testSheetImage(8), "a", "b")
	if err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if _, err := sheet.Tile(16); err == nil {
		t.Error("Expected error for index 16")
	}
}

func TestParseSheetName(t *testing.T) {
	tests := []struct {
		name      string
		high, low string
		wantErr   bool
	}{
		{"transition_desert_water.png", "desert", "water", false},
		{"transition_grass_water.png", "grass", "water", false},
		{"transition_grass_desert.PNG", "grass", "desert", false},
		{"desert_water.png", "", "", true},
		{"transition_desert.png", "", "", true},
		{"transition_a_b_c.png", "", "", true},
		{"transition__water.png", "", "", true},
	}
	for _, tt := range tests {
		high, low, err := ParseSheetName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if high != tt.high || low != tt.low {
			t.Errorf("%s: got (%s, %s), expected (%s, %s)", tt.name, high, low, tt.high, tt.low)
		}
	}
}

func TestRegistryLookupEitherOrder(t *testing.T) {
	reg := NewRegistry()
	sheet, _ := NewSheet(testSheetImage(16), "desert", "water")
	if err := reg.Register(sheet); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, pair := range [][2]string{{"desert", "water"}, {"water", "desert"}} {
		got, ok := reg.Lookup(pair[0], pair[1])
		if !ok {
			t.Fatalf("Lookup(%s, %s) failed", pair[0], pair[1])
		}
		if got.High != "desert" {
			t.Errorf("Expected high biome 'desert', got %q", got.High)
		}
	}

	if _, ok := reg.Lookup("grass", "water"); ok {
		t.Error("Expected lookup miss for unregistered pair")
	}
}

func TestRegistryDuplicatePair(t *testing.T) {
	reg := NewRegistry()
	a, _ := NewSheet(testSheetImage(16), "desert", "water")
	b, _ := NewSheet(testSheetImage(16), "water", "desert")

	if err := reg.Register(a); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(b); err == nil {
		t.Error("Expected error registering duplicate pair")
	}
}

func TestRegistryTileSizeMismatch(t *testing.T) {
	reg := NewRegistry()
	a, _ := NewSheet(testSheetImage(16), "desert", "water")
	b, _ := NewSheet(testSheetImage(32), "grass", "water")

	if err := reg.Register(a); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(b); err == nil {
		t.Error("Expected error for mismatched tile sizes")
	}
}

func TestRegistryPureTiles(t *testing.T) {
	reg := NewRegistry()
	sheet, _ := NewSheet(testSheetImage(16), "desert", "water")
	if err := reg.Register(sheet); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	desert, ok := reg.PureTile("desert")
	if !ok {
		t.Fatal("Expected pure tile for desert")
	}
	if got := tileColor(t, desert); got != 15*16 {
		t.Errorf("Desert pure tile should be tile 15, got color %d", got)
	}

	water, ok := reg.PureTile("water")
	if !ok {
		t.Fatal("Expected pure tile for water")
	}
	if got := tileColor(t, water); got != 0 {
		t.Errorf("Water pure tile should be tile 0, got color %d", got)
	}

	if _, ok := reg.PureTile("lava"); ok {
		t.Error("Expected miss for unknown biome")
	}
}

func TestLoadSheetAndLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeSheet := func(name string) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		defer f.Close()
		if err := png.Encode(f, testSheetImage(32)); err != nil {
			t.Fatalf("Failed to encode %s: %v", name, err)
		}
	}
	writeSheet("transition_desert_water.png")
	writeSheet("transition_grass_water.png")
	// files the scanner must skip
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.Mkdir(filepath.Join(dir, "transition_sub_dir.png"), 0o755)

	sheet, err := LoadSheet(filepath.Join(dir, "transition_desert_water.png"))
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	if sheet.High != "desert" || sheet.Low != "water" {
		t.Errorf("Expected desert/water, got %s/%s", sheet.High, sheet.Low)
	}

	reg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 sheets, got %d", reg.Len())
	}
	if _, ok := reg.Lookup("desert", "water"); !ok {
		t.Error("Expected desert/water pair after LoadDir")
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("Expected error for directory without sheets")
	}
}
