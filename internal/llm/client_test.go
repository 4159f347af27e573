// ABOUTME: Tests for the embedding client constructor and error types
// ABOUTME: Verifies fail-fast on missing key and ProviderError wrapping
package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/harper/lorekeeper/internal/config"
)

func TestNew_MissingKey(t *testing.T) {
	cfg := &config.Config{OpenAIKey: ""}

	_, err := New(cfg)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("New() error = %v, want ErrNotConfigured", err)
	}
}

func TestNew_WithKey(t *testing.T) {
	cfg := &config.Config{
		OpenAIKey:      "sk-test",
		EmbeddingModel: "text-embedding-3-small",
		MaxRetries:     3,
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client == nil {
		t.Fatal("New() returned nil client")
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ProviderError{Op: "embed", Err: fmt.Errorf("attempt 1: %w", inner)}

	if !errors.Is(err, inner) {
		t.Error("ProviderError should unwrap to the inner error")
	}

	var pe *ProviderError
	if !errors.As(error(err), &pe) {
		t.Error("errors.As should match *ProviderError")
	}
}
