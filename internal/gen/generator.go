package gen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"icondex/internal/dataset"
	"icondex/internal/raster"
)

// Generator produces one dataset record per icon: structured description,
// library tag, summary embedding, then an append to the dataset store.
type Generator struct {
	describer   Describer
	embedder    Embedder
	store       *dataset.Store
	library     string
	previewSize int
	logger      *zap.Logger
}

// NewGenerator wires a generator. previewSize is the square the raster is
// re-encoded to before being sent to the model.
func NewGenerator(describer Describer, embedder Embedder, store *dataset.Store, library string, previewSize int, logger *zap.Logger) *Generator {
	if previewSize <= 0 {
		previewSize = 128
	}
	return &Generator{
		describer:   describer,
		embedder:    embedder,
		store:       store,
		library:     library,
		previewSize: previewSize,
		logger:      logger,
	}
}

// Process generates and persists the record for one icon. If the dataset
// already holds a record with this name the call is an idempotent no-op.
// Nothing partial is ever persisted: the save happens only after both the
// description and the embedding succeeded.
func (g *Generator) Process(ctx context.Context, name, prompt, rasterPath string) error {
	records, err := g.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if dataset.Contains(records, name) {
		g.logger.Info("Icon already in dataset, skipping", zap.String("icon", name))
		return nil
	}

	preview, err := raster.PreparePreview(rasterPath, g.previewSize)
	if err != nil {
		return fmt.Errorf("failed to prepare preview for %s: %w", name, err)
	}

	rec, err := g.describer.Describe(ctx, prompt, preview)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", name, err)
	}
	// The icon name is the dedup key; never trust the model to echo it back.
	rec.Name = name
	rec.Library = g.library

	embedding, err := g.embedder.Embed(ctx, Summary(rec))
	if err != nil {
		return fmt.Errorf("failed to embed %s: %w", name, err)
	}
	rec.Embedding = embedding

	records = append(records, *rec)
	if err := g.store.Save(records); err != nil {
		return fmt.Errorf("failed to save dataset after %s: %w", name, err)
	}

	g.logger.Info("Icon record generated",
		zap.String("icon", rec.Name),
		zap.Int("dimensions", len(embedding)),
		zap.Int("dataset_size", len(records)))
	return nil
}
