// Package pipeline orchestrates one generation run: pair the icon files,
// rasterize each vector source, synthesize missing sidecars, and feed each
// icon to the metadata generator with a fixed pause in between.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"icondex/internal/scan"
)

// IconProcessor generates and persists the dataset record for one icon.
// Satisfied by *gen.Generator.
type IconProcessor interface {
	Process(ctx context.Context, name, prompt, rasterPath string) error
}

// Converter rasterizes one vector source. Satisfied by raster.ConvertFile.
type Converter func(path string, size int) (string, error)

// Runner drives a batch over the scanned pairs.
type Runner struct {
	convert    Converter
	processor  IconProcessor
	throttle   Throttle
	library    string
	rasterSize int
	logger     *zap.Logger
}

// Result summarizes one run.
type Result struct {
	Processed int // icons handed to the generator
	Skipped   int // pairs without a vector source
	Failed    int // icons that errored and were passed over
}

// NewRunner wires a batch runner.
func NewRunner(convert Converter, processor IconProcessor, throttle Throttle, library string, rasterSize int, logger *zap.Logger) *Runner {
	if rasterSize <= 0 {
		rasterSize = 512
	}
	return &Runner{
		convert:    convert,
		processor:  processor,
		throttle:   throttle,
		library:    library,
		rasterSize: rasterSize,
		logger:     logger,
	}
}

// Run processes every pair that has a vector source. Per-icon failures are
// logged and do not stop the run: a failed icon simply never acquires a
// dataset record and is picked up again on the next run.
func (r *Runner) Run(ctx context.Context, pairs []scan.Pair) (Result, error) {
	var res Result

	for i := range pairs {
		pair := &pairs[i]
		if pair.SVGPath == "" {
			res.Skipped++
			continue
		}

		r.logger.Info("Processing icon",
			zap.String("icon", pair.Base),
			zap.Int("position", res.Processed+res.Failed+1),
			zap.Int("total", len(pairs)))

		if err := r.processPair(ctx, pair); err != nil {
			r.logger.Error("Icon failed, continuing", zap.String("icon", pair.Base), zap.Error(err))
			res.Failed++
		} else {
			res.Processed++
		}

		if err := r.throttle.Wait(ctx); err != nil {
			return res, fmt.Errorf("run cancelled: %w", err)
		}
	}

	r.logger.Info("Run complete",
		zap.Int("processed", res.Processed),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}

func (r *Runner) processPair(ctx context.Context, pair *scan.Pair) error {
	rasterPath, err := r.convert(pair.SVGPath, r.rasterSize)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	sc := pair.Sidecar
	if sc == nil {
		sc = r.synthesizeSidecar(pair)
		path := strings.TrimSuffix(pair.SVGPath, filepath.Ext(pair.SVGPath)) + ".json"
		if err := scan.WriteSidecar(path, sc); err != nil {
			return fmt.Errorf("synthesize sidecar: %w", err)
		}
		pair.SidecarPath = path
		pair.Sidecar = sc
		r.logger.Info("Synthesized placeholder sidecar", zap.String("icon", pair.Base), zap.String("path", path))
	}

	return r.processor.Process(ctx, pair.Base, BuildPrompt(sc), rasterPath)
}

// synthesizeSidecar builds the minimal placeholder that drives prompt
// construction for an icon shipped without metadata.
func (r *Runner) synthesizeSidecar(pair *scan.Pair) *scan.Sidecar {
	return &scan.Sidecar{
		Name:        pair.Base,
		CommonNames: []string{pair.Base},
		Description: "",
		Tags:        []string{},
		Categories:  []string{},
		Library:     r.library,
	}
}
