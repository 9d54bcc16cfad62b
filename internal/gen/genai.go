package gen

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"icondex/internal/dataset"
)

// =============================================================================
// GOOGLE GENAI ENGINE
// =============================================================================

// maxDescribeTokens bounds the structured description response.
const maxDescribeTokens = 4096

// GenAIEngine talks to the Gemini API for both structured icon
// descriptions and text embeddings.
type GenAIEngine struct {
	client         *genai.Client
	model          string
	embeddingModel string
	taskType       string
}

// NewGenAIEngine creates a new GenAI engine.
func NewGenAIEngine(cfg Config) (*GenAIEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = "gemini-embedding-001"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	// The genai SDK takes the task type as its wire-format string.
	var task string
	switch cfg.TaskType {
	case "SEMANTIC_SIMILARITY", "":
		task = "SEMANTIC_SIMILARITY"
	case "RETRIEVAL_DOCUMENT":
		task = "RETRIEVAL_DOCUMENT"
	case "RETRIEVAL_QUERY":
		task = "RETRIEVAL_QUERY"
	default:
		task = "SEMANTIC_SIMILARITY"
	}

	return &GenAIEngine{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
		taskType:       task,
	}, nil
}

// recordSchema constrains the model to a JSON array of exactly the fields
// an icon record carries before library/embedding are attached.
func recordSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString},
				"commonnames": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"description": {Type: genai.TypeString},
				"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"categories":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"name", "commonnames", "description", "tags", "categories"},
		},
	}
}

// Describe submits the prompt plus PNG preview with a strict output schema
// and parses the first object of the returned array. Temperature is pinned
// to zero so reruns stay as reproducible as the API allows.
func (e *GenAIEngine) Describe(ctx context.Context, prompt string, png []byte) (*dataset.Record, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(png, "image/png"),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		MaxOutputTokens:  maxDescribeTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   recordSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI describe failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no candidates returned")
	}

	var records []dataset.Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("failed to parse structured response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("structured response contained no records")
	}
	return &records[0], nil
}

// Embed generates an embedding for a single text.
func (e *GenAIEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx,
		e.embeddingModel,
		contents,
		&genai.EmbedContentConfig{
			TaskType: e.taskType,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("GenAI embed failed: %w", err)
	}

	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return result.Embeddings[0].Values, nil
}

// Dimensions returns the dimensionality of embeddings.
// gemini-embedding-001 produces 768-dimensional vectors.
func (e *GenAIEngine) Dimensions() int {
	return 768
}

// Name returns the engine name.
func (e *GenAIEngine) Name() string {
	return fmt.Sprintf("genai:%s", e.model)
}

// Close closes the GenAI client. *genai.Client holds no resources that
// need releasing and exposes no Close method.
func (e *GenAIEngine) Close() error {
	return nil
}
