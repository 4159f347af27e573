// ABOUTME: In-memory spatial index of named game locations
// ABOUTME: Grouped by (layer, category), filterable by name and region bounding box
package atlas

import (
	"strings"
)

// Layer is one of the three parallel planes of the world map
type Layer string

const (
	LayerSurface Layer = "surface"
	LayerSky     Layer = "sky"
	LayerDepths  Layer = "depths"
)

// ParseLayer maps a string onto a known layer, defaulting to surface
func ParseLayer(s string) Layer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LayerSky):
		return LayerSky
	case string(LayerDepths):
		return LayerDepths
	default:
		return LayerSurface
	}
}

// Location is one point of interest. Loaded once at startup and never
// mutated afterwards, so concurrent reads need no locking.
type Location struct {
	Name     string  `json:"name"`
	Category string  `json:"-"`
	Layer    Layer   `json:"-"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
}

// Region is a named rectangular bounding box in game coordinates,
// scoped to one layer.
type Region struct {
	Name  string
	Layer Layer
	XMin  float64
	XMax  float64
	ZMin  float64
	ZMax  float64
}

// Contains reports whether the point lies inside the box (inclusive)
func (r Region) Contains(x, z float64) bool {
	return x >= r.XMin && x <= r.XMax && z >= r.ZMin && z <= r.ZMax
}

// Index holds all loaded locations grouped by layer and category
type Index struct {
	byLayerCategory map[Layer]map[string][]Location
	regions         map[string]Region
}

// NewIndex creates an empty index with the default region table
func NewIndex() *Index {
	ix := &Index{
		byLayerCategory: make(map[Layer]map[string][]Location),
		regions:         make(map[string]Region),
	}
	for _, r := range DefaultRegions {
		ix.regions[r.Name] = r
	}
	return ix
}

// Add appends a location under its (layer, category) group
func (ix *Index) Add(loc Location) {
	if ix.byLayerCategory[loc.Layer] == nil {
		ix.byLayerCategory[loc.Layer] = make(map[string][]Location)
	}
	ix.byLayerCategory[loc.Layer][loc.Category] = append(ix.byLayerCategory[loc.Layer][loc.Category], loc)
}

// SetRegion registers or replaces a named region
func (ix *Index) SetRegion(r Region) {
	ix.regions[strings.ToLower(r.Name)] = Region{
		Name:  strings.ToLower(r.Name),
		Layer: r.Layer,
		XMin:  r.XMin,
		XMax:  r.XMax,
		ZMin:  r.ZMin,
		ZMax:  r.ZMax,
	}
}

// Len returns the total number of indexed locations
func (ix *Index) Len() int {
	n := 0
	for _, cats := range ix.byLayerCategory {
		for _, locs := range cats {
			n += len(locs)
		}
	}
	return n
}

// Categories lists the categories present on a layer
func (ix *Index) Categories(layer Layer) []string {
	var out []string
	for cat := range ix.byLayerCategory[layer] {
		out = append(out, cat)
	}
	return out
}

// ByCategory returns all locations of a category on a layer. Category
// matching is loose (case-folded, spaces stripped, trailing "s"
// stripped) to absorb singular/plural variants coming from the model.
func (ix *Index) ByCategory(category string, layer Layer) []Location {
	want := normalizeCategory(category)
	var out []Location
	for _, cat := range sortedKeys(ix.byLayerCategory[layer]) {
		if normalizeCategory(cat) == want {
			out = append(out, ix.byLayerCategory[layer][cat]...)
		}
	}
	return out
}

// ByCategoryAndName filters a category by case-insensitive substring
// match on the location name.
func (ix *Index) ByCategoryAndName(category, name string, layer Layer) []Location {
	needle := strings.ToLower(name)
	var out []Location
	for _, loc := range ix.ByCategory(category, layer) {
		if strings.Contains(strings.ToLower(loc.Name), needle) {
			out = append(out, loc)
		}
	}
	return out
}

// ByRegion returns locations of a category inside a named region's
// bounding box. Category matching is loose, as in ByCategory.
func (ix *Index) ByRegion(category, regionName string) []Location {
	region, ok := ix.regions[strings.ToLower(strings.TrimSpace(regionName))]
	if !ok {
		return nil
	}

	var out []Location
	for _, loc := range ix.ByCategory(category, region.Layer) {
		if region.Contains(loc.X, loc.Z) {
			out = append(out, loc)
		}
	}
	return out
}

// RegionNames lists the registered region names, sorted
func (ix *Index) RegionNames() []string {
	names := make([]string, 0, len(ix.regions))
	for name := range ix.regions {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// ByName resolves a single location by name across all layers:
// exact case-insensitive match first, then first substring match.
func (ix *Index) ByName(name string) *Location {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var substring *Location
	for _, layer := range []Layer{LayerSurface, LayerSky, LayerDepths} {
		for _, cat := range sortedKeys(ix.byLayerCategory[layer]) {
			locs := ix.byLayerCategory[layer][cat]
			for i := range locs {
				lower := strings.ToLower(locs[i].Name)
				if lower == needle {
					return &locs[i]
				}
				if substring == nil && strings.Contains(lower, needle) {
					substring = &locs[i]
				}
			}
		}
	}
	return substring
}

// normalizeCategory folds case, removes spaces, and strips a plural "s"
func normalizeCategory(s string) string {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	return strings.TrimSuffix(s, "s")
}

func sortedKeys(m map[string][]Location) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion into maps is unordered; sort so ByName's substring
	// tie-break is deterministic for a fixed index.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
