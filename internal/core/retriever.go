// ABOUTME: Retrieval orchestrator with multi-query expansion over the semantic index
// ABOUTME: Dedupes sub-query results and truncates the combined context to a word budget
package core

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/lorekeeper/internal/chunk"
	"github.com/harper/lorekeeper/internal/llm"
	"github.com/harper/lorekeeper/internal/storage"
)

// Sentinel answers for degraded retrieval. User-visible failures stay
// in the narrator's voice, never a raw error.
const (
	msgNoEmbedder = "I cannot consult the archives at this moment; my connection to them is severed."
	msgNoIndex    = "The archives are not available to me right now."
	msgNoContext  = "I searched the archives but found nothing recorded on that subject."
)

// SearchIndex is the slice of the semantic index the retriever needs
type SearchIndex interface {
	Search(queryVector []float64, maxResults int) ([]storage.SearchResult, error)
}

// Retriever expands a user query into related sub-queries and gathers
// deduplicated context from the semantic index.
type Retriever struct {
	embedder      llm.Embedder
	index         SearchIndex
	resultsPerSub int
	wordBudget    int
}

// NewRetriever wires a retriever from its dependencies. Either
// dependency may be nil; retrieval then degrades to a sentinel answer.
func NewRetriever(embedder llm.Embedder, index SearchIndex, resultsPerSub, wordBudget int) *Retriever {
	return &Retriever{
		embedder:      embedder,
		index:         index,
		resultsPerSub: resultsPerSub,
		wordBudget:    wordBudget,
	}
}

// subQueries builds the fixed expansion set for a user query. The
// templated variants raise recall on a small corpus where one embedding
// can miss paraphrased references.
func subQueries(userQuery string) []string {
	return []string{
		userQuery,
		fmt.Sprintf("Background information on %s", userQuery),
		fmt.Sprintf("Historical context of %s", userQuery),
		fmt.Sprintf("Key events related to %s in Hyrule's history", userQuery),
	}
}

// Retrieve returns combined context for the query, bounded by the word
// budget. A failing sub-query is logged and skipped; it never aborts
// the remaining sub-queries. Unavailable dependencies yield a sentinel
// answer rather than an error.
func (r *Retriever) Retrieve(ctx context.Context, userQuery string) string {
	if r.embedder == nil {
		return msgNoEmbedder
	}
	if r.index == nil {
		return msgNoIndex
	}

	seen := make(map[string]bool)
	var texts []string

	for _, sub := range subQueries(userQuery) {
		vector, err := r.embedder.Embed(ctx, sub)
		if err != nil {
			log.Printf("retriever: embedding sub-query %q failed: %v", sub, err)
			continue
		}

		results, err := r.index.Search(vector, r.resultsPerSub)
		if err != nil {
			log.Printf("retriever: search for sub-query %q failed: %v", sub, err)
			continue
		}

		for _, res := range results {
			if seen[res.Content] {
				continue
			}
			seen[res.Content] = true
			texts = append(texts, res.Content)
		}
	}

	if len(texts) == 0 {
		return msgNoContext
	}

	combined := ""
	for i, t := range texts {
		if i > 0 {
			combined += " "
		}
		combined += t
	}
	return chunk.Truncate(combined, r.wordBudget)
}
