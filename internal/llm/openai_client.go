// ABOUTME: OpenAI client for chunk embeddings
// ABOUTME: Batches requests and preserves chunk-to-vector ordering
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is used when no model is configured.
	DefaultEmbeddingModel = "text-embedding-3-small"
	// DefaultBatchSize bounds request payload size and rate-limit exposure.
	DefaultBatchSize = 16
	// requestTimeout applies per embedding request.
	requestTimeout = 60 * time.Second
)

// Embedder turns ordered chunks into ordered vectors. The association is
// positional, not keyed, so implementations must preserve input order.
type Embedder interface {
	EmbedChunks(ctx context.Context, chunks []string) ([][]float64, error)
}

// embeddingAPI is the slice of the OpenAI client the Client needs; it lets
// tests substitute a fake without a network.
type embeddingAPI interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Client wraps the OpenAI embeddings API with batch-aware calls.
type Client struct {
	api       embeddingAPI
	model     openai.EmbeddingModel
	batchSize int
}

// NewClient creates an embedding client for the given API key. Model and
// batch size fall back to defaults when empty or non-positive.
func NewClient(apiKey, model string, batchSize int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newClient(openai.NewClient(apiKey), model, batchSize), nil
}

func newClient(api embeddingAPI, model string, batchSize int) *Client {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Client{
		api:       api,
		model:     openai.EmbeddingModel(model),
		batchSize: batchSize,
	}
}

// EmbedChunks embeds every chunk in consecutive batches of at most the
// configured batch size and returns one vector per chunk, in input order.
// Any batch failure fails the whole call; there are no retries here, a
// re-run of the ingestion is the recovery path.
func (c *Client) EmbedChunks(ctx context.Context, chunks []string) ([][]float64, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(chunks))
	totalBatches := (len(chunks) + c.batchSize - 1) / c.batchSize

	for start := 0; start < len(chunks); start += c.batchSize {
		end := start + c.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		batchNum := start/c.batchSize + 1

		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := c.api.CreateEmbeddings(reqCtx, openai.EmbeddingRequestStrings{
			Input: batch,
			Model: c.model,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d/%d: %w", batchNum, totalBatches, err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embedding batch %d/%d: got %d vectors for %d inputs",
				batchNum, totalBatches, len(resp.Data), len(batch))
		}

		for _, entry := range resp.Data {
			vectors = append(vectors, toFloat64(entry.Embedding))
		}
	}

	return vectors, nil
}

// BatchSize reports the configured batch bound.
func (c *Client) BatchSize() int {
	return c.batchSize
}

// toFloat64 widens the API's float32 vector for storage.
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
