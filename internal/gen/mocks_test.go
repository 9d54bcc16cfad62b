package gen

import (
	"context"

	"icondex/internal/dataset"
)

// MockDescriber is a func-field test double for the Describer interface.
type MockDescriber struct {
	DescribeFunc func(ctx context.Context, prompt string, png []byte) (*dataset.Record, error)
	Calls        int
}

func (m *MockDescriber) Describe(ctx context.Context, prompt string, png []byte) (*dataset.Record, error) {
	m.Calls++
	return m.DescribeFunc(ctx, prompt, png)
}

// MockEmbedder is a func-field test double for the Embedder interface.
type MockEmbedder struct {
	EmbedFunc      func(ctx context.Context, text string) ([]float32, error)
	DimensionsFunc func() int
	Calls          int
	LastText       string
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	m.LastText = text
	return m.EmbedFunc(ctx, text)
}

func (m *MockEmbedder) Dimensions() int {
	if m.DimensionsFunc != nil {
		return m.DimensionsFunc()
	}
	return 4
}

func (m *MockEmbedder) Name() string { return "mock" }
