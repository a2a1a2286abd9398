// Package pipeline renders diagram documents to image artifacts.
//
// This package implements the seal → emit → render → persist pipeline shared
// by the CLI and by library callers. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline runs four stages per document:
//
//  1. Seal: close the document for mutation and validate the cluster tree
//  2. Emit: resolve icon references and serialize the document to DOT, once
//  3. Render: one engine pass per requested format, each bounded by a timeout
//  4. Persist: write each artifact atomically as <stem>.<format>
//
// Per-format failures are recorded independently: one format's failure does
// not block the others, and one document's failure does not block other
// documents. Documents are independent and render concurrently through
// [Runner.ExecuteAll].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	req := pipeline.Request{
//	    Formats: []render.Format{render.FormatPNG},
//	    Stem:    "architecture",
//	    OutDir:  "out",
//	}
//	result := runner.Execute(ctx, doc, req)
//	for _, o := range result.Outcomes {
//	    if o.Err != nil {
//	        log.Error("render failed", "format", o.Format, "err", o.Err)
//	    }
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archsketch/archsketch/pkg/diagram"
	"github.com/archsketch/archsketch/pkg/errors"
	"github.com/archsketch/archsketch/pkg/render"
)

// DefaultTimeout bounds one engine pass. Layout runs are assumed cheap and
// deterministic, so a pass exceeding this indicates an installation or
// configuration problem rather than a transient condition - timeouts are
// reported, never retried.
const DefaultTimeout = 30 * time.Second

// DefaultFormat is the output format used when a request names none.
const DefaultFormat = render.FormatPNG

// Request describes one rendering request for one document.
type Request struct {
	// Formats lists the artifact formats to produce. Defaults to [png].
	Formats []render.Format `json:"formats,omitempty"`

	// Stem is the destination filename stem; artifacts are written as
	// <OutDir>/<Stem>.<format>.
	Stem string `json:"stem"`

	// OutDir is the artifact output directory. Defaults to ".".
	OutDir string `json:"out_dir,omitempty"`

	// Timeout bounds each engine pass. Defaults to [DefaultTimeout].
	Timeout time.Duration `json:"timeout,omitempty"`

	// AutoOpen requests opening the first artifact after rendering.
	// The pipeline itself never opens anything - batch and CI runs must not
	// spawn viewers - so the flag is only carried for interactive
	// front-ends to act on. Defaults to false.
	AutoOpen bool `json:"auto_open,omitempty"`

	// Logger receives progress events. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	if err := errors.ValidateStem(r.Stem); err != nil {
		return err
	}
	if r.OutDir == "" {
		r.OutDir = "."
	}
	if err := errors.ValidateOutputDir(r.OutDir); err != nil {
		return err
	}
	if len(r.Formats) == 0 {
		r.Formats = []render.Format{DefaultFormat}
	}
	if err := render.ValidateFormats(r.Formats); err != nil {
		return err
	}
	if r.Timeout <= 0 {
		r.Timeout = DefaultTimeout
	}
	if r.Logger == nil {
		r.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r.validated = true
	return nil
}

// Outcome records the result of one (document, format) rendering pass.
type Outcome struct {
	Format render.Format // requested format
	Path   string        // artifact path, "" when the pass failed
	Err    error         // failure cause, nil on success
}

// OK reports whether the pass produced its artifact.
func (o Outcome) OK() bool { return o.Err == nil }

// Result contains the outputs of one document's pipeline run.
type Result struct {
	// ID correlates log lines and outcomes for one request.
	ID string

	// Title is the document title.
	Title string

	// State is the document's terminal state: Rendered or RenderFailed.
	State diagram.State

	// Err is a document-level failure (validation, icon resolution, or an
	// invalid request) that prevented any format pass from running.
	Err error

	// Outcomes holds one entry per requested format, in request order.
	Outcomes []Outcome

	// Stats contains timing and size information.
	Stats Stats
}

// OK reports whether every requested artifact was produced.
func (r *Result) OK() bool {
	if r.Err != nil {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the outcomes that did not produce an artifact.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Stats contains pipeline execution statistics for one document.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	EmitTime   time.Duration
	RenderTime time.Duration
}
