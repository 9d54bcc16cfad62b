// Package loader bulk-inserts a generated dataset into a Postgres table
// with a pgvector embedding column. The whole run aborts only when the
// initial connectivity probe fails; individual insert failures are
// recorded and never stop the batch loop.
package loader

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"icondex/internal/dataset"
)

// IconRow is the relational shape of one dataset record.
type IconRow struct {
	Name        string          `gorm:"column:name;primaryKey;type:text"`
	CommonNames []string        `gorm:"column:commonnames;type:jsonb;serializer:json"`
	Description string          `gorm:"column:description;type:text"`
	Tags        []string        `gorm:"column:tags;type:jsonb;serializer:json"`
	Categories  []string        `gorm:"column:categories;type:jsonb;serializer:json"`
	Library     string          `gorm:"column:library;type:text"`
	Embedding   pgvector.Vector `gorm:"column:embedding;type:vector"`
}

// TableName returns the table GORM maps IconRow to.
func (IconRow) TableName() string {
	return "icon_records"
}

// rowFromRecord converts a dataset record into its relational shape.
func rowFromRecord(rec *dataset.Record) *IconRow {
	return &IconRow{
		Name:        rec.Name,
		CommonNames: rec.CommonNames,
		Description: rec.Description,
		Tags:        rec.Tags,
		Categories:  rec.Categories,
		Library:     rec.Library,
		Embedding:   pgvector.NewVector(rec.Embedding),
	}
}

// Target is the remote store the loader writes to.
type Target interface {
	// Ping runs a trivial round-trip query.
	Ping(ctx context.Context) error

	// Insert writes a single row.
	Insert(ctx context.Context, row *IconRow) error
}

// Throttle paces the loader between batches.
type Throttle interface {
	Wait(ctx context.Context) error
}

// Outcome is the per-record result of a run.
type Outcome struct {
	Name string
	Err  error
}

// Result aggregates a bulk-load run.
type Result struct {
	OK       bool
	Inserted int
	Outcomes []Outcome
}

// Loader drives a bulk-load run.
type Loader struct {
	target    Target
	batchSize int
	throttle  Throttle
	logger    *zap.Logger
}

// NewLoader wires a loader. batchSize must be positive; values below one
// fall back to 50.
func NewLoader(target Target, batchSize int, throttle Throttle, logger *zap.Logger) *Loader {
	if batchSize < 1 {
		batchSize = 50
	}
	return &Loader{
		target:    target,
		batchSize: batchSize,
		throttle:  throttle,
		logger:    logger,
	}
}

// Partition splits records into batches of at most size, preserving the
// original order and covering every record exactly once.
func Partition(records []dataset.Record, size int) [][]dataset.Record {
	if size < 1 || len(records) == 0 {
		if len(records) == 0 {
			return nil
		}
		size = len(records)
	}
	batches := make([][]dataset.Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}

// Run loads the dataset at path into the target. A failed top-level
// connectivity probe is fatal and performs zero insert attempts; a failed
// individual insert is recorded and the loop continues.
func (l *Loader) Run(ctx context.Context, datasetPath string) (Result, error) {
	var res Result

	if err := l.target.Ping(ctx); err != nil {
		l.logger.Error("Store connectivity check failed, aborting", zap.Error(err))
		return res, fmt.Errorf("store unreachable: %w", err)
	}

	records, err := dataset.NewStore(datasetPath).Load()
	if err != nil {
		return res, fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(records) == 0 {
		l.logger.Warn("Dataset is empty, nothing to load", zap.String("path", datasetPath))
		res.OK = true
		return res, nil
	}

	batches := Partition(records, l.batchSize)
	l.logger.Info("Starting bulk load",
		zap.Int("records", len(records)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", l.batchSize))

	done := 0
	for i, batch := range batches {
		for j := range batch {
			rec := &batch[j]
			res.Outcomes = append(res.Outcomes, Outcome{Name: rec.Name, Err: l.insertOne(ctx, rec)})
			if res.Outcomes[len(res.Outcomes)-1].Err == nil {
				res.Inserted++
			} else {
				l.logger.Error("Insert failed",
					zap.String("icon", rec.Name),
					zap.Error(res.Outcomes[len(res.Outcomes)-1].Err))
			}

			done++
			l.logger.Info("Progress",
				zap.Int("done", done),
				zap.Int("total", len(records)),
				zap.String("percent", fmt.Sprintf("%.1f%%", float64(done)/float64(len(records))*100)))
		}

		if i < len(batches)-1 {
			if err := l.throttle.Wait(ctx); err != nil {
				return res, fmt.Errorf("load cancelled: %w", err)
			}
		}
	}

	res.OK = res.Inserted == len(records)
	l.logger.Info("Bulk load complete",
		zap.Int("inserted", res.Inserted),
		zap.Int("failed", len(records)-res.Inserted))
	return res, nil
}

// insertOne re-verifies connectivity and writes one row. Records that
// never acquired an embedding are rejected here instead of producing a
// malformed vector row.
func (l *Loader) insertOne(ctx context.Context, rec *dataset.Record) error {
	if len(rec.Embedding) == 0 {
		return fmt.Errorf("record %s has no embedding", rec.Name)
	}
	if err := l.target.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return l.target.Insert(ctx, rowFromRecord(rec))
}
