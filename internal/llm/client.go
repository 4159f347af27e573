// ABOUTME: OpenAI client for embedding generation with retry logic
// ABOUTME: Uses text-embedding-3-small by default; failures surface as ProviderError
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/lorekeeper/internal/config"
	"github.com/harper/lorekeeper/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned by constructors when a required
// credential is missing. Callers should treat the component as
// unavailable rather than retrying.
var ErrNotConfigured = errors.New("llm: OPENAI_API_KEY not configured")

// ProviderError wraps a transport or auth failure from the embedding
// provider. It is not retryable within a request beyond the client's
// own backoff.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Embedder generates vector embeddings for text. Satisfied by *Client
// and by test fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	api        *openai.Client
	model      openai.EmbeddingModel
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// New creates an embedding client from configuration. Fails fast when
// the API key is absent so dependent components can report themselves
// unavailable at startup.
func New(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		api:        openai.NewClient(cfg.OpenAIKey),
		model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Embed generates an embedding vector for text. Retries transient
// failures with exponential backoff; the final failure is returned as a
// *ProviderError.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := util.Sleep(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return nil, &ProviderError{Op: "embed", Err: err}
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.model,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, &ProviderError{
		Op:  "embed",
		Err: fmt.Errorf("after %d attempts: %w", c.maxRetries+1, lastErr),
	}
}
