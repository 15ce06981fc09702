// Package tileset loads Wang transition tilesheets and tracks which sheet
// covers which biome pair.
//
// A sheet is a PNG laid out as a 4x4 grid of equally sized square tiles in
// row-major order, tile 0 top-left through tile 15 bottom-right, authored to
// the corner bit encoding in package wang. Sheets are named
// transition_<high>_<low>.png where the first biome is the high terrain
// layer (bit set) and the second is the low layer.
package tileset

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/guyz/mapbuilder/wang"
)

// sheetColumns is the fixed 4x4 sheet layout.
const sheetColumns = 4

// ErrIncomplete reports a sheet image that cannot supply all 16 tiles.
// There is no substitute tile: every index is reachable from a valid corner
// field, so a short sheet is fatal.
var ErrIncomplete = errors.New("tileset: sheet does not provide all 16 tiles")

// Sheet is a loaded transition tilesheet.
type Sheet struct {
	High     string // biome rendered where a corner bit is set
	Low      string // biome rendered where a corner bit is clear
	TileSize int    // pixel edge of one tile
	tiles    [wang.TileCount]image.Image
}

// NewSheet slices a 4x4 sheet image into its 16 tiles. The image must be
// square with both edges divisible by four.
func NewSheet(img image.Image, high, low string) (*Sheet, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h || w%sheetColumns != 0 || w == 0 {
		return nil, fmt.Errorf("%w: %dx%d image is not a 4x4 grid of square tiles", ErrIncomplete, w, h)
	}

	s := &Sheet{
		High:     high,
		Low:      low,
		TileSize: w / sheetColumns,
	}
	for idx := 0; idx < wang.TileCount; idx++ {
		x := b.Min.X + (idx%sheetColumns)*s.TileSize
		y := b.Min.Y + (idx/sheetColumns)*s.TileSize
		rect := image.Rect(x, y, x+s.TileSize, y+s.TileSize)
		s.tiles[idx] = subImage(img, rect)
	}
	return s, nil
}

// LoadSheet reads a transition sheet from disk, deriving the biome pair
// from the filename.
func LoadSheet(path string) (*Sheet, error) {
	high, low, err := ParseSheetName(filepath.Base(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tilesheet %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tilesheet %s: %w", path, err)
	}

	sheet, err := NewSheet(img, high, low)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// Tile returns the image for a tile index.
func (s *Sheet) Tile(idx wang.TileIndex) (image.Image, error) {
	if int(idx) >= wang.TileCount {
		return nil, fmt.Errorf("%w: index %d out of range", ErrIncomplete, idx)
	}
	return s.tiles[idx], nil
}

// PureHigh returns the all-high tile, the interior artwork of the high
// biome.
func (s *Sheet) PureHigh() image.Image { return s.tiles[wang.TileCount-1] }

// PureLow returns the all-low tile.
func (s *Sheet) PureLow() image.Image { return s.tiles[0] }

// ParseSheetName extracts the high and low biome names from a filename of
// the form transition_<high>_<low>.png.
func ParseSheetName(name string) (high, low string, err error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(stem, "_")
	if len(parts) != 3 || parts[0] != "transition" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("tileset: %q does not match transition_<high>_<low>", name)
	}
	return parts[1], parts[2], nil
}

// subImage crops without copying when the decoded image supports it.
func subImage(img image.Image, rect image.Rectangle) image.Image {
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// Registry holds the loaded sheets keyed by unordered biome pair, plus a
// pure-tile cache so single-biome interiors reuse one image per biome.
type Registry struct {
	sheets   map[[2]string]*Sheet
	pure     map[string]image.Image
	tileSize int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sheets: make(map[[2]string]*Sheet),
		pure:   make(map[string]image.Image),
	}
}

// Register adds a sheet. Registering a second sheet for the same biome pair
// or a sheet whose tile size disagrees with earlier sheets is an error.
func (r *Registry) Register(s *Sheet) error {
	if s.High == "" || s.Low == "" {
		return fmt.Errorf("tileset: sheet biome names cannot be empty")
	}
	if r.tileSize != 0 && s.TileSize != r.tileSize {
		return fmt.Errorf("tileset: sheet %s_%s tile size %d does not match registry tile size %d",
			s.High, s.Low, s.TileSize, r.tileSize)
	}

	key := pairKey(s.High, s.Low)
	if existing, ok := r.sheets[key]; ok {
		return fmt.Errorf("tileset: pair (%s, %s) already registered as %s_%s",
			s.High, s.Low, existing.High, existing.Low)
	}

	r.sheets[key] = s
	r.tileSize = s.TileSize
	if _, ok := r.pure[s.High]; !ok {
		r.pure[s.High] = s.PureHigh()
	}
	if _, ok := r.pure[s.Low]; !ok {
		r.pure[s.Low] = s.PureLow()
	}
	return nil
}

// Lookup finds the sheet covering a biome pair, in either order. The
// returned sheet's High field tells the caller which biome maps to a set
// corner bit.
func (r *Registry) Lookup(a, b string) (*Sheet, bool) {
	s, ok := r.sheets[pairKey(a, b)]
	return s, ok
}

// PureTile returns the interior tile for a biome.
func (r *Registry) PureTile(biome string) (image.Image, bool) {
	img, ok := r.pure[biome]
	return img, ok
}

// TileSize returns the common tile edge of the registered sheets, or zero
// for an empty registry.
func (r *Registry) TileSize() int { return r.tileSize }

// Len returns the number of registered sheets.
func (r *Registry) Len() int { return len(r.sheets) }

// LoadDir scans a directory for transition_*.png sheets and registers every
// one found.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset directory: %w", err)
	}

	reg := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "transition_") || !strings.HasSuffix(strings.ToLower(name), ".png") {
			continue
		}
		sheet, err := LoadSheet(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if err := reg.Register(sheet); err != nil {
			return nil, err
		}
	}
	if reg.Len() == 0 {
		return nil, fmt.Errorf("tileset: no transition_*.png sheets found in %s", dir)
	}
	return reg, nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
