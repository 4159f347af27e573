// ABOUTME: Semantic index over embedded chunks with upsert-if-absent semantics
// ABOUTME: Vectors stored as BLOBs, nearest-neighbor search via cosine similarity
package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// SearchResult is one nearest-neighbor match from the index
type SearchResult struct {
	ChunkID  string  `json:"chunk_id"`
	SourceID string  `json:"source_id"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Index is a persistent vector store partitioned by collection name.
// Chunks are immutable once written; duplicate ids are skipped, never
// updated. Writers are serialized; readers are not blocked (WAL).
type Index struct {
	db         *DB
	collection string
	mu         sync.Mutex // serializes ingestion writers
}

// NewIndex opens-or-creates the named collection on the given database
func NewIndex(db *DB, collection string) *Index {
	return &Index{db: db, collection: collection}
}

// Collection returns the collection name this index reads and writes
func (ix *Index) Collection() string {
	return ix.collection
}

// Count returns the number of chunks stored in the collection
func (ix *Index) Count() (int, error) {
	var n int
	err := ix.db.QueryRow(
		"SELECT COUNT(*) FROM chunks WHERE collection = ?", ix.collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// UpsertIfAbsent stores a chunk unless its id already exists. Returns
// true when a new row was written, false for a duplicate id. Duplicate
// ids make re-ingestion of the same source idempotent.
func (ix *Index) UpsertIfAbsent(id, sourceID, content string, vector []float64) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("chunk id must not be empty")
	}
	if len(vector) == 0 {
		return false, fmt.Errorf("chunk %s: empty vector", id)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	var exists int
	err := ix.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking chunk %s: %w", id, err)
	}
	if exists > 0 {
		return false, nil
	}

	_, err = ix.db.Exec(`
		INSERT INTO chunks (id, collection, source_id, content, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, ix.collection, sourceID, content, vectorToBlob(vector), time.Now())
	if err != nil {
		return false, fmt.Errorf("inserting chunk %s: %w", id, err)
	}
	return true, nil
}

// Search performs cosine similarity search over the collection and
// returns up to maxResults matches ordered by descending similarity.
func (ix *Index) Search(queryVector []float64, maxResults int) ([]SearchResult, error) {
	rows, err := ix.db.Query(`
		SELECT id, source_id, content, vector
		FROM chunks
		WHERE collection = ?
	`, ix.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []SearchResult

	for rows.Next() {
		var (
			id       string
			sourceID string
			content  string
			blob     []byte
		)
		if err := rows.Scan(&id, &sourceID, &content, &blob); err != nil {
			return nil, err
		}

		results = append(results, SearchResult{
			ChunkID:  id,
			SourceID: sourceID,
			Content:  content,
			Score:    CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
