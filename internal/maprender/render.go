// ABOUTME: Composites location icons onto per-layer base map images
// ABOUTME: Projects game coordinates to pixels and writes deterministic PNG paths
package maprender

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/harper/lorekeeper/internal/atlas"
)

const (
	// Game coordinates span roughly -6000..6000 on each axis; the base
	// map images are 6000x6000 pixels, so world-to-pixel is a fixed
	// offset then a fixed scale.
	defaultScale   = 3.5
	defaultOffsetX = 10500.0
	defaultOffsetZ = 10500.0

	iconSize = 60
)

// Renderer draws marker icons onto base map images. Safe for
// concurrent use; the icon cache is guarded internally.
type Renderer struct {
	mapDir  string
	iconDir string
	outDir  string

	scale   float64
	offsetX float64
	offsetZ float64

	mu    sync.Mutex
	icons map[string]image.Image
}

// NewRenderer creates a renderer reading base maps from mapDir and
// icons from iconDir, writing rendered maps under outDir.
func NewRenderer(mapDir, iconDir, outDir string) *Renderer {
	return &Renderer{
		mapDir:  mapDir,
		iconDir: iconDir,
		outDir:  outDir,
		scale:   defaultScale,
		offsetX: defaultOffsetX,
		offsetZ: defaultOffsetZ,
		icons:   make(map[string]image.Image),
	}
}

// Project maps game coordinates to pixel coordinates on the canvas
func (r *Renderer) Project(x, z float64) (int, int) {
	return int((x + r.offsetX) / r.scale), int((z + r.offsetZ) / r.scale)
}

// Render composites the locations onto the layer's base map and writes
// the result as {layer}_{key}_map.png under the output directory,
// overwriting any previous render for the same key. An empty location
// list renders nothing and returns an empty path with no error.
// Locations whose category has no icon are skipped, not fatal.
func (r *Renderer) Render(locations []atlas.Location, layer atlas.Layer, key string) (string, error) {
	if len(locations) == 0 {
		return "", nil
	}

	base, err := r.loadBase(layer)
	if err != nil {
		return "", err
	}

	canvas := image.NewRGBA(base.Bounds())
	xdraw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, xdraw.Src)

	drawn := 0
	for _, loc := range locations {
		icon := r.icon(loc.Category)
		if icon == nil {
			continue
		}
		px, pz := r.Project(loc.X, loc.Z)
		if !image.Pt(px, pz).In(canvas.Bounds()) {
			continue
		}
		// Icons anchor at their center so the marker sits on the point
		target := image.Rect(px-iconSize/2, pz-iconSize/2, px+iconSize/2, pz+iconSize/2)
		xdraw.Draw(canvas, target, icon, icon.Bounds().Min, xdraw.Over)
		drawn++
	}
	if drawn == 0 {
		return "", fmt.Errorf("no locations could be drawn for %s", key)
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating map output directory: %w", err)
	}
	outPath := filepath.Join(r.outDir, fmt.Sprintf("%s_%s_map.png", layer, sanitizeKey(key)))

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating map file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		return "", fmt.Errorf("encoding map image: %w", err)
	}
	return outPath, nil
}

// loadBase reads and decodes the base map image for a layer
func (r *Renderer) loadBase(layer atlas.Layer) (image.Image, error) {
	path := filepath.Join(r.mapDir, fmt.Sprintf("%s_map.png", layer))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening base map %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding base map %s: %w", path, err)
	}
	return img, nil
}

// icon returns the cached 60x60 icon for a category, trying the
// singular form when the plural file is absent. Returns nil when no
// icon file exists.
func (r *Renderer) icon(category string) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	if img, ok := r.icons[category]; ok {
		return img
	}

	img := r.loadIcon(category)
	if img == nil && strings.HasSuffix(category, "s") {
		img = r.loadIcon(strings.TrimSuffix(category, "s"))
	}
	if img == nil {
		log.Printf("No icon for category %q, markers skipped", category)
	}
	r.icons[category] = img
	return img
}

// loadIcon reads an icon file and resizes it to the marker size
func (r *Renderer) loadIcon(name string) image.Image {
	f, err := os.Open(filepath.Join(r.iconDir, name+".png"))
	if err != nil {
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// sanitizeKey makes a query string safe for a file name
func sanitizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "map"
	}
	return b.String()
}
