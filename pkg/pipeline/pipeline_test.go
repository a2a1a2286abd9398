package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/archsketch/archsketch/pkg/assets"
	"github.com/archsketch/archsketch/pkg/diagram"
	"github.com/archsketch/archsketch/pkg/errors"
	"github.com/archsketch/archsketch/pkg/render"
)

// fakeEngine returns canned bytes, or the configured error per format.
// It honors context cancellation the way a real engine pass would.
type fakeEngine struct {
	data  []byte
	fail  map[render.Format]error
	delay time.Duration
}

func (f *fakeEngine) Render(ctx context.Context, dot []byte, format render.Format) ([]byte, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "render %s", format)
		}
	}
	if err := f.fail[format]; err != nil {
		return nil, err
	}
	if f.data != nil {
		return f.data, nil
	}
	return []byte("artifact:" + string(format)), nil
}

// buildDoc declares a minimal two-node document.
func buildDoc(t *testing.T, title string, opts ...diagram.NodeOption) *diagram.Document {
	t.Helper()
	d := diagram.New(title)
	b := d.Builder()
	if _, err := b.Node("a", "A", opts...); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Node("b", "B"); err != nil {
		t.Fatal(err)
	}
	if err := b.Edge("a", "b", diagram.WithLabel("ping")); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRequestValidateAndSetDefaults(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		req := Request{Stem: "demo"}
		if err := req.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults = %v", err)
		}
		if req.OutDir != "." {
			t.Errorf("OutDir = %q, want %q", req.OutDir, ".")
		}
		if len(req.Formats) != 1 || req.Formats[0] != DefaultFormat {
			t.Errorf("Formats = %v, want [%s]", req.Formats, DefaultFormat)
		}
		if req.Timeout != DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", req.Timeout, DefaultTimeout)
		}
		if req.Logger == nil {
			t.Error("Logger = nil, want discard logger")
		}
		if req.AutoOpen {
			t.Error("AutoOpen = true, want false by default")
		}
	})

	t.Run("rejects bad stem", func(t *testing.T) {
		req := Request{Stem: "../escape"}
		if err := req.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidStem) {
			t.Errorf("ValidateAndSetDefaults = %v, want %v", err, errors.ErrCodeInvalidStem)
		}
	})

	t.Run("rejects bad format", func(t *testing.T) {
		req := Request{Stem: "demo", Formats: []render.Format{"bmp"}}
		if err := req.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateAndSetDefaults = %v, want %v", err, errors.ErrCodeInvalidFormat)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		req := Request{Stem: "demo", OutDir: "out", Timeout: time.Minute}
		if err := req.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if err := req.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if req.OutDir != "out" || req.Timeout != time.Minute {
			t.Errorf("second call changed fields: OutDir=%q Timeout=%v", req.OutDir, req.Timeout)
		}
	})
}

func TestExecuteSuccess(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&fakeEngine{}, assets.NewDir(), nil)
	doc := buildDoc(t, "demo")

	result := runner.Execute(context.Background(), doc, Request{
		Stem:    "demo",
		OutDir:  dir,
		Formats: []render.Format{render.FormatPNG, render.FormatDOT},
	})

	if !result.OK() {
		t.Fatalf("result not OK: Err=%v Outcomes=%+v", result.Err, result.Outcomes)
	}
	if result.State != diagram.StateRendered {
		t.Errorf("State = %v, want %v", result.State, diagram.StateRendered)
	}
	if doc.State() != diagram.StateRendered {
		t.Errorf("doc.State() = %v, want %v", doc.State(), diagram.StateRendered)
	}
	if result.ID == "" {
		t.Error("ID is empty, want correlation ID")
	}
	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %d nodes/%d edges, want 2/1", result.Stats.NodeCount, result.Stats.EdgeCount)
	}

	for _, want := range []string{"demo.png", "demo.dot"} {
		path := filepath.Join(dir, want)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s missing: %v", want, err)
		}
	}
	// Artifacts are named <stem>.<format>, nothing else is left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2: %v", len(entries), entries)
	}
}

func TestExecutePerFormatIndependence(t *testing.T) {
	dir := t.TempDir()
	svgErr := errors.New(errors.ErrCodeEngineFailed, "svg pass broke")
	runner := NewRunner(&fakeEngine{fail: map[render.Format]error{render.FormatSVG: svgErr}}, assets.NewDir(), nil)
	doc := buildDoc(t, "demo")

	result := runner.Execute(context.Background(), doc, Request{
		Stem:    "demo",
		OutDir:  dir,
		Formats: []render.Format{render.FormatPNG, render.FormatSVG},
	})

	if result.OK() {
		t.Fatal("result.OK() = true, want false")
	}
	if result.State != diagram.StateRenderFailed {
		t.Errorf("State = %v, want %v", result.State, diagram.StateRenderFailed)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("len(Outcomes) = %d, want 2 (every format attempted)", len(result.Outcomes))
	}

	png, svg := result.Outcomes[0], result.Outcomes[1]
	if !png.OK() {
		t.Errorf("png outcome failed: %v", png.Err)
	}
	if svg.OK() {
		t.Error("svg outcome succeeded, want failure")
	}
	if !errors.Is(svg.Err, errors.ErrCodeEngineFailed) {
		t.Errorf("svg.Err = %v, want %v", svg.Err, errors.ErrCodeEngineFailed)
	}

	// The failed pass left nothing behind - not even a partial or temp file.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "demo.png" {
		t.Errorf("output dir entries = %v, want [demo.png]", entries)
	}
	if doc.FailureCause() == nil {
		t.Error("FailureCause() = nil, want first failure recorded")
	}
}

func TestExecuteUnresolvableIcon(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&fakeEngine{}, assets.NewDir(), nil)
	doc := buildDoc(t, "demo", diagram.WithIcon("missing.png"))

	result := runner.Execute(context.Background(), doc, Request{Stem: "demo", OutDir: dir})

	if result.Err == nil {
		t.Fatal("result.Err = nil, want asset error")
	}
	if !errors.Is(result.Err, errors.ErrCodeAssetNotFound) {
		t.Errorf("result.Err = %v, want %v", result.Err, errors.ErrCodeAssetNotFound)
	}
	if result.State != diagram.StateRenderFailed {
		t.Errorf("State = %v, want %v", result.State, diagram.StateRenderFailed)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("len(Outcomes) = %d, want 0 (no pass ran)", len(result.Outcomes))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir entries = %v, want none", entries)
	}
}

func TestExecuteTimeout(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&fakeEngine{delay: time.Second}, assets.NewDir(), nil)
	doc := buildDoc(t, "demo")

	result := runner.Execute(context.Background(), doc, Request{
		Stem:    "demo",
		OutDir:  dir,
		Timeout: 10 * time.Millisecond,
	})

	if result.OK() {
		t.Fatal("result.OK() = true, want timeout failure")
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("len(Outcomes) = %d, want 1", len(result.Outcomes))
	}
	if !errors.Is(result.Outcomes[0].Err, errors.ErrCodeTimeout) {
		t.Errorf("outcome.Err = %v, want %v", result.Outcomes[0].Err, errors.ErrCodeTimeout)
	}
}

func TestExecuteAll(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&fakeEngine{}, assets.NewDir(), nil)

	good := buildDoc(t, "good")
	bad := buildDoc(t, "bad", diagram.WithIcon("missing.png"))
	alsoGood := buildDoc(t, "also-good")

	results := runner.ExecuteAll(context.Background(), []Job{
		{Doc: good, Req: Request{Stem: "good", OutDir: dir}},
		{Doc: bad, Req: Request{Stem: "bad", OutDir: dir}},
		{Doc: alsoGood, Req: Request{Stem: "also-good", OutDir: dir}},
	})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	// Results come back in job order regardless of completion order.
	wantTitles := []string{"good", "bad", "also-good"}
	for i, res := range results {
		if res.Title != wantTitles[i] {
			t.Errorf("results[%d].Title = %q, want %q", i, res.Title, wantTitles[i])
		}
	}

	// One document's failure never blocks the others.
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("good documents failed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].OK() {
		t.Error("bad document succeeded, want asset failure")
	}
	for _, stem := range []string{"good", "also-good"} {
		if _, err := os.Stat(filepath.Join(dir, stem+".png")); err != nil {
			t.Errorf("artifact %s.png missing: %v", stem, err)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "deep", "nested", "out.png")
		if err := writeFileAtomic(path, []byte("data")); err != nil {
			t.Fatalf("writeFileAtomic = %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "data" {
			t.Errorf("content = %q, want %q", got, "data")
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.png")
		if err := writeFileAtomic(path, []byte("old")); err != nil {
			t.Fatal(err)
		}
		if err := writeFileAtomic(path, []byte("new")); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		if err := writeFileAtomic(filepath.Join(dir, "out.png"), []byte("data")); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "out.png" {
			t.Errorf("dir entries = %v, want [out.png]", entries)
		}
	})
}
