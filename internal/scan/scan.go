// Package scan walks an icon directory and groups files by base name into
// (vector source, optional sidecar metadata) pairs. Grouping is computed
// once per scan and returned as an immutable slice.
package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Sidecar is the on-disk <name>.json companion of an icon. It carries
// prompt-construction hints only; unlike a dataset record it never holds
// an embedding.
type Sidecar struct {
	Name        string   `json:"name"`
	CommonNames []string `json:"commonnames,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Library     string   `json:"library,omitempty"`
}

// Pair groups the files sharing one base name.
type Pair struct {
	Base        string
	SVGPath     string   // empty when only a sidecar exists
	SidecarPath string   // empty when no sidecar exists
	Sidecar     *Sidecar // parsed sidecar, nil when absent
}

// Complete reports whether both halves of the pair are present.
func (p *Pair) Complete() bool {
	return p.SVGPath != "" && p.SidecarPath != ""
}

// Scanner lists and pairs icon files.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a scanner.
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan lists dir, pairs .svg and .json entries by base name and returns
// the pairs ordered by base name. Complete pairs get a one-line summary
// log; incomplete pairs a warning naming the missing half. A sidecar that
// exists but fails to parse fails the scan.
func (s *Scanner) Scan(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list icon directory: %w", err)
	}

	svgs := make(map[string]string)
	sidecars := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		switch strings.ToLower(filepath.Ext(name)) {
		case ".svg":
			svgs[base] = filepath.Join(dir, name)
		case ".json":
			sidecars[base] = filepath.Join(dir, name)
		}
	}

	bases := make(map[string]struct{}, len(svgs)+len(sidecars))
	for base := range svgs {
		bases[base] = struct{}{}
	}
	for base := range sidecars {
		bases[base] = struct{}{}
	}

	ordered := make([]string, 0, len(bases))
	for base := range bases {
		ordered = append(ordered, base)
	}
	sort.Strings(ordered)

	pairs := make([]Pair, 0, len(ordered))
	for _, base := range ordered {
		pair := Pair{
			Base:        base,
			SVGPath:     svgs[base],
			SidecarPath: sidecars[base],
		}
		if pair.SidecarPath != "" {
			sc, err := readSidecar(pair.SidecarPath)
			if err != nil {
				return nil, err
			}
			pair.Sidecar = sc
		}

		switch {
		case pair.Complete():
			s.logger.Info("Paired icon",
				zap.String("icon", base),
				zap.Strings("tags", pair.Sidecar.Tags),
				zap.Strings("categories", pair.Sidecar.Categories))
		case pair.SVGPath == "":
			s.logger.Warn("Sidecar without vector source", zap.String("icon", base), zap.String("missing", base+".svg"))
		default:
			s.logger.Warn("Vector source without sidecar", zap.String("icon", base), zap.String("missing", base+".json"))
		}

		pairs = append(pairs, pair)
	}

	return pairs, nil
}

func readSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar %s: %w", path, err)
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar %s: %w", path, err)
	}
	return &sc, nil
}

// WriteSidecar persists a sidecar as pretty-printed JSON.
func WriteSidecar(path string, sc *Sidecar) error {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sidecar: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sidecar %s: %w", path, err)
	}
	return nil
}
