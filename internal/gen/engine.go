// Package gen produces icon metadata: a structured description from a
// multimodal generative model and an embedding of its textual summary.
package gen

import (
	"context"

	"icondex/internal/dataset"
)

// Describer turns an icon preview plus a prompt into a structured record.
type Describer interface {
	// Describe submits the prompt and PNG payload and returns the first
	// structured result. Library and Embedding are left empty.
	Describe(ctx context.Context, prompt string, png []byte) (*dataset.Record, error)
}

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the dimensionality of embeddings
	Dimensions() int

	// Name returns the engine name
	Name() string
}

// Config holds the Gemini model configuration.
type Config struct {
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`           // Default: "gemini-2.0-flash"
	EmbeddingModel string `json:"embedding_model"` // Default: "gemini-embedding-001"

	// TaskType: "SEMANTIC_SIMILARITY", "RETRIEVAL_QUERY", "RETRIEVAL_DOCUMENT"
	TaskType string `json:"task_type"`
}
