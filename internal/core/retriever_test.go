// ABOUTME: Tests for the retrieval orchestrator
// ABOUTME: Verifies query expansion, dedup, word budget, and degraded paths
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/harper/lorekeeper/internal/chunk"
	"github.com/harper/lorekeeper/internal/storage"
)

// fakeEmbedder returns a fixed vector and records the texts it embedded
type fakeEmbedder struct {
	calls  []string
	failOn string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("provider down")
	}
	return []float64{1, 0, 0}, nil
}

// fakeIndex returns canned results regardless of the query vector
type fakeIndex struct {
	results []storage.SearchResult
	err     error
}

func (f *fakeIndex) Search(_ []float64, maxResults int) ([]storage.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > maxResults {
		return f.results[:maxResults], nil
	}
	return f.results, nil
}

func TestRetrieve_ExpandsIntoFourSubQueries(t *testing.T) {
	emb := &fakeEmbedder{}
	ix := &fakeIndex{results: []storage.SearchResult{{Content: "ancient text", Score: 0.9}}}

	r := NewRetriever(emb, ix, 3, 4000)
	got := r.Retrieve(context.Background(), "draconification")

	if len(emb.calls) != 4 {
		t.Fatalf("embedded %d sub-queries, want 4", len(emb.calls))
	}
	if emb.calls[0] != "draconification" {
		t.Errorf("first sub-query = %q, want the literal query", emb.calls[0])
	}
	for _, want := range []string{"Background information on", "Historical context of", "Key events related to"} {
		found := false
		for _, c := range emb.calls {
			if strings.HasPrefix(c, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("no sub-query with prefix %q", want)
		}
	}
	if got != "ancient text" {
		t.Errorf("Retrieve() = %q, want deduplicated single text", got)
	}
}

func TestRetrieve_DeduplicatesAcrossSubQueries(t *testing.T) {
	ix := &fakeIndex{results: []storage.SearchResult{
		{Content: "the calamity struck", Score: 0.9},
		{Content: "the hero awoke", Score: 0.8},
	}}

	r := NewRetriever(&fakeEmbedder{}, ix, 3, 4000)
	got := r.Retrieve(context.Background(), "calamity")

	// Same two texts come back from all four sub-queries; each must
	// appear exactly once in the combined context.
	if n := strings.Count(got, "the calamity struck"); n != 1 {
		t.Errorf("duplicate text appears %d times, want 1", n)
	}
	if n := strings.Count(got, "the hero awoke"); n != 1 {
		t.Errorf("duplicate text appears %d times, want 1", n)
	}
}

func TestRetrieve_RespectsWordBudget(t *testing.T) {
	// Each result is 50 distinct words; budget caps the combined string
	var results []storage.SearchResult
	for i := 0; i < 5; i++ {
		words := make([]string, 50)
		for j := range words {
			words[j] = fmt.Sprintf("r%dw%d", i, j)
		}
		results = append(results, storage.SearchResult{Content: strings.Join(words, " ")})
	}
	ix := &fakeIndex{results: results}

	r := NewRetriever(&fakeEmbedder{}, ix, 5, 60)
	got := r.Retrieve(context.Background(), "history")

	if n := chunk.WordCount(got); n > 60 {
		t.Errorf("context has %d words, budget is 60", n)
	}
}

func TestRetrieve_FailingSubQuerySkipped(t *testing.T) {
	// The "Historical context" sub-query fails; others still contribute
	emb := &fakeEmbedder{failOn: "Historical context"}
	ix := &fakeIndex{results: []storage.SearchResult{{Content: "surviving context"}}}

	r := NewRetriever(emb, ix, 3, 4000)
	got := r.Retrieve(context.Background(), "zonai")

	if got != "surviving context" {
		t.Errorf("Retrieve() = %q, want context from surviving sub-queries", got)
	}
}

func TestRetrieve_AllSubQueriesFail(t *testing.T) {
	emb := &fakeEmbedder{failOn: ""}
	ix := &fakeIndex{err: errors.New("index offline")}

	r := NewRetriever(emb, ix, 3, 4000)
	got := r.Retrieve(context.Background(), "zonai")

	if got != msgNoContext {
		t.Errorf("Retrieve() = %q, want %q", got, msgNoContext)
	}
}

func TestRetrieve_MissingDependencies(t *testing.T) {
	r := NewRetriever(nil, &fakeIndex{}, 3, 4000)
	if got := r.Retrieve(context.Background(), "q"); got != msgNoEmbedder {
		t.Errorf("Retrieve() without embedder = %q, want sentinel", got)
	}

	r = NewRetriever(&fakeEmbedder{}, nil, 3, 4000)
	if got := r.Retrieve(context.Background(), "q"); got != msgNoIndex {
		t.Errorf("Retrieve() without index = %q, want sentinel", got)
	}
}
