// ABOUTME: Loads atlas location data from a directory of JSON files
// ABOUTME: Layer comes from the path, category from the filename; bad files are skipped
package atlas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadDir builds an index from every .json file under dir. The parent
// directory name selects the layer (surface when unrecognized) and the
// file name, minus extension, is the category. A malformed file is
// logged and skipped; only a missing directory is a hard error.
func LoadDir(dir string) (*Index, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("atlas directory %s: %w", dir, err)
	}

	ix := NewIndex()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		layer := ParseLayer(filepath.Base(filepath.Dir(path)))
		category := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		locs, err := loadFile(path)
		if err != nil {
			log.Printf("Skipping atlas file %s: %v", path, err)
			return nil
		}
		for _, loc := range locs {
			loc.Layer = layer
			loc.Category = category
			ix.Add(loc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking atlas directory: %w", err)
	}
	return ix, nil
}

// loadFile decodes one category file. Files are either a bare array of
// locations or an object wrapping one (the first array-valued key
// wins). Entries without a name are dropped.
func loadFile(path string) ([]Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		inner, err := firstArrayValue(data)
		if err != nil {
			return nil, err
		}
		data = inner
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("no location list found")
	}

	var locs []Location
	if err := json.Unmarshal(data, &locs); err != nil {
		return nil, err
	}

	out := locs[:0]
	for _, loc := range locs {
		if strings.TrimSpace(loc.Name) == "" {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

// firstArrayValue returns the first array-typed value of a JSON object
// in document order.
func firstArrayValue(data []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return trimmed, nil
		}
	}
	return nil, nil
}
