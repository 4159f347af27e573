// ABOUTME: Word-bounded text chunking for embedding and word-budget truncation
// ABOUTME: Produces overlapping chunks so paraphrased lore survives chunk boundaries
package chunk

import (
	"fmt"
	"strings"
)

// Default chunking parameters for transcript ingestion
const (
	DefaultMaxWords = 300
	DefaultOverlap  = 50
)

// Split divides text into overlapping word-bounded chunks. Each chunk
// holds maxWords words except possibly the last, and consecutive chunks
// share overlap words. Empty input yields an empty slice.
//
// overlap must be smaller than maxWords: the window would otherwise
// never advance.
func Split(text string, maxWords, overlap int) ([]string, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("maxWords must be positive, got %d", maxWords)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= maxWords {
		return nil, fmt.Errorf("overlap (%d) must be smaller than maxWords (%d)", overlap, maxWords)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var chunks []string
	start := 0
	for start < len(words) {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end >= len(words) {
			break
		}
		start += maxWords - overlap
	}

	return chunks, nil
}

// Truncate caps text at maxWords words. Text at or under the budget is
// returned unchanged.
func Truncate(text string, maxWords int) string {
	if maxWords <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
