// ABOUTME: Tests for the spatial index and directory loader
// ABOUTME: Covers region filtering, loose category matching, and tolerant file parsing
package atlas

import (
	"os"
	"path/filepath"
	"testing"
)

func testIndex() *Index {
	ix := NewIndex()
	ix.Add(Location{Name: "Death Mountain Camp", Category: "monster", Layer: LayerSurface, X: 3000, Z: 0})
	ix.Add(Location{Name: "Hyrule Field Camp", Category: "monster", Layer: LayerSurface, X: 100, Z: 200})
	ix.Add(Location{Name: "Goron City", Category: "town", Layer: LayerSurface, X: 2900, Z: -2400})
	ix.Add(Location{Name: "Sky Archipelago Camp", Category: "monster", Layer: LayerSky, X: 3000, Z: 0})
	ix.Add(Location{Name: "Abandoned Goron Mine", Category: "mine", Layer: LayerDepths, X: 2900, Z: -2400})
	return ix
}

func TestByCategory_LayerScoped(t *testing.T) {
	ix := testIndex()

	surface := ix.ByCategory("monster", LayerSurface)
	if len(surface) != 2 {
		t.Errorf("surface monsters = %d, want 2", len(surface))
	}

	sky := ix.ByCategory("monster", LayerSky)
	if len(sky) != 1 || sky[0].Name != "Sky Archipelago Camp" {
		t.Errorf("sky monsters = %+v", sky)
	}

	if got := ix.ByCategory("monster", LayerDepths); len(got) != 0 {
		t.Errorf("depths monsters = %+v, want none", got)
	}
}

func TestByCategoryAndName_Substring(t *testing.T) {
	ix := testIndex()

	got := ix.ByCategoryAndName("monster", "death", LayerSurface)
	if len(got) != 1 || got[0].Name != "Death Mountain Camp" {
		t.Errorf("ByCategoryAndName(death) = %+v", got)
	}

	if got := ix.ByCategoryAndName("monster", "zzz", LayerSurface); len(got) != 0 {
		t.Errorf("ByCategoryAndName(zzz) = %+v, want none", got)
	}
}

func TestByRegion_BoundingBox(t *testing.T) {
	ix := testIndex()

	// Death Mountain Camp sits at (3000, 0), inside the eldin box;
	// Hyrule Field Camp does not.
	got := ix.ByRegion("monster", "eldin")
	if len(got) != 1 || got[0].Name != "Death Mountain Camp" {
		t.Errorf("ByRegion(monster, eldin) = %+v", got)
	}
}

func TestByRegion_LooseCategory(t *testing.T) {
	ix := testIndex()

	for _, cat := range []string{"monster", "monsters", "Monsters", " MONSTER "} {
		if got := ix.ByRegion(cat, "eldin"); len(got) != 1 {
			t.Errorf("ByRegion(%q, eldin) = %d results, want 1", cat, len(got))
		}
	}
}

func TestByRegion_UnknownRegion(t *testing.T) {
	ix := testIndex()

	if got := ix.ByRegion("monster", "atlantis"); got != nil {
		t.Errorf("ByRegion(monster, atlantis) = %+v, want nil", got)
	}
}

func TestByRegion_IgnoresOtherLayers(t *testing.T) {
	ix := testIndex()

	// The sky camp shares the eldin coordinates but lives on another
	// layer; the surface-scoped region must not pick it up.
	for _, loc := range ix.ByRegion("monster", "eldin") {
		if loc.Layer != LayerSurface {
			t.Errorf("ByRegion returned %s on layer %s", loc.Name, loc.Layer)
		}
	}
}

func TestByName_ExactBeatsSubstring(t *testing.T) {
	ix := NewIndex()
	ix.Add(Location{Name: "Goron City Outskirts", Category: "town", Layer: LayerSurface, X: 1, Z: 1})
	ix.Add(Location{Name: "Goron City", Category: "town", Layer: LayerSurface, X: 2, Z: 2})

	got := ix.ByName("goron city")
	if got == nil || got.Name != "Goron City" {
		t.Errorf("ByName(goron city) = %+v, want exact match", got)
	}
}

func TestByName_SubstringAcrossLayers(t *testing.T) {
	ix := testIndex()

	got := ix.ByName("archipelago")
	if got == nil || got.Layer != LayerSky {
		t.Errorf("ByName(archipelago) = %+v, want sky location", got)
	}

	if got := ix.ByName("nowhere"); got != nil {
		t.Errorf("ByName(nowhere) = %+v, want nil", got)
	}
	if got := ix.ByName(""); got != nil {
		t.Errorf("ByName(\"\") = %+v, want nil", got)
	}
}

func TestRegionContains_InclusiveEdges(t *testing.T) {
	r := Region{XMin: 0, XMax: 10, ZMin: 0, ZMax: 10}

	for _, p := range [][2]float64{{0, 0}, {10, 10}, {5, 5}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v, %v) = false, want true", p[0], p[1])
		}
	}
	if r.Contains(11, 5) || r.Contains(5, -1) {
		t.Error("Contains() accepted a point outside the box")
	}
}

func TestParseLayer(t *testing.T) {
	cases := map[string]Layer{
		"sky":     LayerSky,
		"SKY":     LayerSky,
		"depths":  LayerDepths,
		"surface": LayerSurface,
		"unknown": LayerSurface,
		"":        LayerSurface,
	}
	for in, want := range cases {
		if got := ParseLayer(in); got != want {
			t.Errorf("ParseLayer(%q) = %s, want %s", in, got, want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "surface", "monster.json"),
		`[{"name": "Camp A", "x": 1, "z": 2}, {"name": "", "x": 3, "z": 4}]`)
	writeFile(t, filepath.Join(dir, "sky", "shrine.json"),
		`{"meta": "export", "markers": [{"name": "Sky Shrine", "x": 5, "z": 6}]}`)
	writeFile(t, filepath.Join(dir, "depths", "broken.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "surface", "notes.txt"), `ignored`)

	ix, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (nameless and broken entries dropped)", ix.Len())
	}

	monsters := ix.ByCategory("monster", LayerSurface)
	if len(monsters) != 1 || monsters[0].Name != "Camp A" {
		t.Errorf("surface monsters = %+v", monsters)
	}

	shrines := ix.ByCategory("shrine", LayerSky)
	if len(shrines) != 1 || shrines[0].X != 5 || shrines[0].Z != 6 {
		t.Errorf("sky shrines = %+v", shrines)
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("LoadDir() on a missing directory should error")
	}
}
