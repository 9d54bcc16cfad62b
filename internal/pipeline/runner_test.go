package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"icondex/internal/scan"
)

type processedCall struct {
	name   string
	prompt string
	raster string
}

// mockProcessor records calls and can fail selected icons.
type mockProcessor struct {
	calls   []processedCall
	failFor map[string]error
}

func (m *mockProcessor) Process(ctx context.Context, name, prompt, rasterPath string) error {
	m.calls = append(m.calls, processedCall{name: name, prompt: prompt, raster: rasterPath})
	if err, ok := m.failFor[name]; ok {
		return err
	}
	return nil
}

func fakeConvert(path string, size int) (string, error) {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	if err := os.WriteFile(out, []byte("png"), 0644); err != nil {
		return "", err
	}
	return out, nil
}

func noThrottle() Throttle { return NewFixedInterval(0) }

func scanDir(t *testing.T, dir string) []scan.Pair {
	t.Helper()
	pairs, err := scan.NewScanner(zap.NewNop()).Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return pairs
}

func TestRunSynthesizesMissingSidecar(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"tags":["t"],"categories":["c"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	proc := &mockProcessor{}
	runner := NewRunner(fakeConvert, proc, noThrottle(), "lucide", 64, zap.NewNop())

	res, err := runner.Run(context.Background(), scanDir(t, dir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Processed != 2 || res.Failed != 0 {
		t.Errorf("unexpected result: %+v", res)
	}

	// b had no sidecar: the runner must have written the placeholder.
	data, err := os.ReadFile(filepath.Join(dir, "b.json"))
	if err != nil {
		t.Fatalf("placeholder sidecar not written: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"name": "b"`, `"library": "lucide"`} {
		if !strings.Contains(body, want) {
			t.Errorf("placeholder missing %s:\n%s", want, body)
		}
	}
	if strings.Contains(body, "embedding") {
		t.Error("placeholder sidecar must not carry an embedding")
	}
}

func TestRunContinuesPastFailingIcon(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(dir, name+".svg"), []byte("<svg/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	proc := &mockProcessor{failFor: map[string]error{"b": errors.New("model unavailable")}}
	runner := NewRunner(fakeConvert, proc, noThrottle(), "lucide", 64, zap.NewNop())

	res, err := runner.Run(context.Background(), scanDir(t, dir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Processed != 2 || res.Failed != 1 {
		t.Errorf("expected 2 processed and 1 failed, got %+v", res)
	}
	if len(proc.calls) != 3 {
		t.Errorf("all icons must be attempted, got %d calls", len(proc.calls))
	}
}

func TestRunSkipsPairsWithoutVectorSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "orphan.json"), []byte(`{"tags":[],"categories":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	proc := &mockProcessor{}
	runner := NewRunner(fakeConvert, proc, noThrottle(), "lucide", 64, zap.NewNop())

	res, err := runner.Run(context.Background(), scanDir(t, dir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Skipped != 1 || len(proc.calls) != 0 {
		t.Errorf("sidecar-only pair must be skipped: %+v, calls=%d", res, len(proc.calls))
	}
}

func TestRunPromptEmbedsSidecarHints(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"tags":["boat"],"categories":["transport"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	proc := &mockProcessor{}
	runner := NewRunner(fakeConvert, proc, noThrottle(), "lucide", 64, zap.NewNop())
	if _, err := runner.Run(context.Background(), scanDir(t, dir)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(proc.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(proc.calls))
	}
	prompt := proc.calls[0].prompt
	for _, want := range []string{"boat", "transport", "English"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		if err := os.WriteFile(filepath.Join(dir, name+".svg"), []byte("<svg/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &mockProcessor{}
	runner := NewRunner(fakeConvert, proc, NewFixedInterval(time.Minute), "lucide", 64, zap.NewNop())
	if _, err := runner.Run(ctx, scanDir(t, dir)); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestFixedIntervalSpacing(t *testing.T) {
	throttle := NewFixedInterval(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := throttle.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	// First permit is immediate, the next two are spaced.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected at least 40ms of pacing, got %v", elapsed)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	sc := &scan.Sidecar{Name: "anchor", Tags: []string{"sea"}, Categories: []string{"transport"}}
	if BuildPrompt(sc) != BuildPrompt(sc) {
		t.Error("prompt must be deterministic for the same sidecar")
	}
	if !strings.Contains(BuildPrompt(sc), `"anchor"`) {
		t.Error("prompt must embed the icon name")
	}
}
