// ABOUTME: Tests for the sqlite-backed semantic index
// ABOUTME: Verifies idempotent upsert, similarity ordering, and collection scoping
package storage

import (
	"math"
	"testing"
)

func newTestIndex(t *testing.T, collection string) *Index {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewIndex(db, collection)
}

func TestUpsertIfAbsent_Idempotent(t *testing.T) {
	ix := newTestIndex(t, "lore")

	inserted, err := ix.UpsertIfAbsent("vid1_chunk_0", "vid1", "the upheaval began", []float64{1, 0, 0})
	if err != nil {
		t.Fatalf("UpsertIfAbsent() error = %v", err)
	}
	if !inserted {
		t.Error("first upsert should insert")
	}

	inserted, err = ix.UpsertIfAbsent("vid1_chunk_0", "vid1", "different text, same id", []float64{0, 1, 0})
	if err != nil {
		t.Fatalf("UpsertIfAbsent() error = %v", err)
	}
	if inserted {
		t.Error("second upsert of same id should be a no-op")
	}

	count, err := ix.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}

	// Original content must survive the duplicate upsert
	results, err := ix.Search([]float64{1, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Content != "the upheaval began" {
		t.Errorf("Search() = %+v, want original content preserved", results)
	}
}

func TestUpsertIfAbsent_Validation(t *testing.T) {
	ix := newTestIndex(t, "lore")

	if _, err := ix.UpsertIfAbsent("", "src", "text", []float64{1}); err == nil {
		t.Error("empty id should be rejected")
	}
	if _, err := ix.UpsertIfAbsent("id", "src", "text", nil); err == nil {
		t.Error("empty vector should be rejected")
	}
}

func TestSearch_OrderedBySimilarity(t *testing.T) {
	ix := newTestIndex(t, "lore")

	vectors := map[string][]float64{
		"a": {1, 0, 0},
		"b": {0.9, 0.1, 0},
		"c": {0, 1, 0},
		"d": {0, 0, 1},
	}
	for id, v := range vectors {
		if _, err := ix.UpsertIfAbsent(id, "src", "text-"+id, v); err != nil {
			t.Fatalf("UpsertIfAbsent(%s) error = %v", id, err)
		}
	}

	results, err := ix.Search([]float64{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].ChunkID != "a" || results[1].ChunkID != "b" {
		t.Errorf("order = [%s, %s, %s], want [a, b, ...]",
			results[0].ChunkID, results[1].ChunkID, results[2].ChunkID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not in descending score order at %d", i)
		}
	}
}

func TestSearch_CollectionScoped(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	lore := NewIndex(db, "lore")
	other := NewIndex(db, "other")

	if _, err := lore.UpsertIfAbsent("l1", "src", "lore text", []float64{1, 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := other.UpsertIfAbsent("o1", "src", "other text", []float64{1, 0}); err != nil {
		t.Fatal(err)
	}

	results, err := lore.Search([]float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ChunkID != "l1" {
		t.Errorf("Search() crossed collections: %+v", results)
	}
}

func TestSearch_Empty(t *testing.T) {
	ix := newTestIndex(t, "lore")

	results, err := ix.Search([]float64{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty index returned %d results", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"mismatched length", []float64{1, 0}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0.5, -1.25, 3.14159, 0}
	got := blobToVector(vectorToBlob(vector))

	if len(got) != len(vector) {
		t.Fatalf("length = %d, want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("index %d: %v != %v", i, got[i], vector[i])
		}
	}
}
