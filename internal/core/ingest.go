// ABOUTME: Transcript ingestion pipeline: chunk, embed, upsert-if-absent
// ABOUTME: Deterministic chunk ids make re-ingestion of a source idempotent
package core

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/lorekeeper/internal/chunk"
	"github.com/harper/lorekeeper/internal/llm"
)

// UpsertIndex is the slice of the semantic index the ingestor needs
type UpsertIndex interface {
	UpsertIfAbsent(id, sourceID, content string, vector []float64) (bool, error)
}

// Ingestor feeds long-form source text into the semantic index
type Ingestor struct {
	embedder llm.Embedder
	index    UpsertIndex
	maxWords int
	overlap  int
}

// NewIngestor creates an ingestor with the given chunking parameters
func NewIngestor(embedder llm.Embedder, index UpsertIndex, maxWords, overlap int) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		index:    index,
		maxWords: maxWords,
		overlap:  overlap,
	}
}

// IngestResult summarizes one ingestion run
type IngestResult struct {
	SourceID string
	Chunks   int
	Added    int
	Skipped  int
}

// IngestDocument chunks text, embeds each chunk, and stores it under a
// deterministic id derived from the source id and chunk ordinal.
// Chunks whose id already exists are skipped, so re-running ingestion
// over the same source is safe. Embedding failures abort the run:
// ingestion is an offline operation and a partial corpus with silent
// holes is worse than a clean retry.
func (ing *Ingestor) IngestDocument(ctx context.Context, sourceID, text string) (IngestResult, error) {
	res := IngestResult{SourceID: sourceID}

	if ing.embedder == nil {
		return res, fmt.Errorf("ingest %s: no embedding client configured", sourceID)
	}
	if ing.index == nil {
		return res, fmt.Errorf("ingest %s: no index configured", sourceID)
	}

	chunks, err := chunk.Split(text, ing.maxWords, ing.overlap)
	if err != nil {
		return res, fmt.Errorf("ingest %s: %w", sourceID, err)
	}
	res.Chunks = len(chunks)
	if len(chunks) == 0 {
		log.Printf("ingest: no chunks generated for source %s, skipping", sourceID)
		return res, nil
	}

	for i, c := range chunks {
		id := fmt.Sprintf("%s_chunk_%d", sourceID, i)

		vector, err := ing.embedder.Embed(ctx, c)
		if err != nil {
			return res, fmt.Errorf("ingest %s: embedding chunk %d: %w", sourceID, i, err)
		}

		added, err := ing.index.UpsertIfAbsent(id, sourceID, c, vector)
		if err != nil {
			return res, fmt.Errorf("ingest %s: storing chunk %d: %w", sourceID, i, err)
		}
		if added {
			res.Added++
		} else {
			res.Skipped++
		}
	}

	return res, nil
}
