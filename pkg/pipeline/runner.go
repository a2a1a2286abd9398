package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/archsketch/archsketch/pkg/assets"
	"github.com/archsketch/archsketch/pkg/diagram"
	"github.com/archsketch/archsketch/pkg/errors"
	"github.com/archsketch/archsketch/pkg/observability"
	"github.com/archsketch/archsketch/pkg/render"
	"github.com/archsketch/archsketch/pkg/render/dot"
)

// Runner executes rendering requests against a layout engine.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different documents.
type Runner struct {
	Engine render.Engine
	Assets assets.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given engine and asset store.
// If engine is nil, the bundled Graphviz engine is used.
// If store is nil, a working-directory asset store is used.
func NewRunner(engine render.Engine, store assets.Store, logger *log.Logger) *Runner {
	if engine == nil {
		engine = render.NewGraphviz()
	}
	if store == nil {
		store = assets.NewDir()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Engine: engine,
		Assets: store,
		Logger: logger,
	}
}

// Job pairs a document with its rendering request for [Runner.ExecuteAll].
type Job struct {
	Doc *diagram.Document
	Req Request
}

// Execute runs the complete seal → emit → render → persist pipeline for one
// document. The returned result always carries one outcome per requested
// format; rendering errors are recorded on the outcomes rather than returned,
// so callers can report all failures after all passes were attempted.
func (r *Runner) Execute(ctx context.Context, doc *diagram.Document, req Request) *Result {
	result := &Result{
		ID:    uuid.NewString(),
		Title: doc.Title(),
	}

	if err := req.ValidateAndSetDefaults(); err != nil {
		result.Err = err
		result.State = doc.State()
		return result
	}
	logger := r.requestLogger(req, result.ID)

	formats := make([]string, len(req.Formats))
	for i, f := range req.Formats {
		formats[i] = string(f)
	}
	observability.Render().OnDocumentStart(ctx, doc.Title(), formats)
	docStart := time.Now()

	doc.Seal()
	result.Stats.NodeCount = doc.NodeCount()
	result.Stats.EdgeCount = len(doc.Edges())

	src, err := r.emit(doc, &result.Stats)
	if err != nil {
		result.Err = err
		doc.MarkRenderFailed(err)
		result.State = doc.State()
		logger.Error("document failed before rendering", "err", err)
		observability.Render().OnDocumentComplete(ctx, doc.Title(), time.Since(docStart), err)
		return result
	}

	logger.Debug("emitted graph description",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"bytes", len(src))

	renderStart := time.Now()
	for _, format := range req.Formats {
		outcome := r.renderFormat(ctx, doc.Title(), src, format, req)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Err != nil {
			logger.Error("render failed", "format", format, "err", outcome.Err)
		} else {
			logger.Info("rendered artifact", "format", format, "path", outcome.Path)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	if failed := result.Failed(); len(failed) > 0 {
		doc.MarkRenderFailed(failed[0].Err)
	} else {
		doc.MarkRendered()
	}
	result.State = doc.State()

	observability.Render().OnDocumentComplete(ctx, doc.Title(), time.Since(docStart), result.Err)
	return result
}

// ExecuteAll renders independent documents concurrently, one goroutine per
// job. Each document owns its graph model, so there is no shared mutable
// state between jobs. Results are returned in job order after all documents
// have been attempted - a failing document never blocks the others.
func (r *Runner) ExecuteAll(ctx context.Context, jobs []Job) []*Result {
	results := make([]*Result, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			results[i] = r.Execute(ctx, job.Doc, job.Req)
		}(i, job)
	}
	wg.Wait()

	return results
}

// emit validates the document, resolves icon references, and serializes the
// model to DOT. Serialization is deterministic, so a single emission serves
// every requested format.
func (r *Runner) emit(doc *diagram.Document, stats *Stats) ([]byte, error) {
	start := time.Now()
	defer func() { stats.EmitTime = time.Since(start) }()

	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeClusterCycle, err, "validate %q", doc.Title())
	}

	icons := make(map[string]string)
	for _, n := range doc.Nodes() {
		ref := n.Icon()
		if ref == "" {
			continue
		}
		if _, done := icons[ref]; done {
			continue
		}
		path, err := r.Assets.Resolve(ref)
		if err != nil {
			return nil, err
		}
		icons[ref] = path
	}

	return dot.Marshal(doc, dot.WithIcons(icons)), nil
}

// renderFormat runs one engine pass and persists the artifact atomically.
// A failed pass leaves no partial file behind.
func (r *Runner) renderFormat(ctx context.Context, title string, src []byte, format render.Format, req Request) Outcome {
	outcome := Outcome{Format: format}
	start := time.Now()
	size := 0

	observability.Render().OnFormatStart(ctx, title, string(format))
	defer func() {
		observability.Render().OnFormatComplete(ctx, title, string(format), size, time.Since(start), outcome.Err)
	}()

	passCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	data, err := r.Engine.Render(passCtx, src, format)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	size = len(data)

	path := filepath.Join(req.OutDir, fmt.Sprintf("%s.%s", req.Stem, format))
	if err := writeFileAtomic(path, data); err != nil {
		outcome.Err = errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		return outcome
	}

	outcome.Path = path
	return outcome
}

// writeFileAtomic writes data to path via a temp file and rename, so readers
// never observe a partial artifact and failed writes leave nothing behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Chmod(path, 0o644)
}

// requestLogger derives a logger carrying the request correlation ID.
func (r *Runner) requestLogger(req Request, id string) *log.Logger {
	logger := req.Logger
	if logger == nil {
		logger = r.Logger
	}
	return logger.With("request", id)
}
