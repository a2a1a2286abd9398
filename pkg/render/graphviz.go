package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/archsketch/archsketch/pkg/errors"
)

// Graphviz renders DOT through the embedded Graphviz layout algorithms
// (goccy/go-graphviz). The zero value is ready to use; Graphviz is stateless
// and safe for concurrent use - each pass creates its own engine instance.
type Graphviz struct{}

// NewGraphviz returns a Graphviz engine.
func NewGraphviz() *Graphviz { return &Graphviz{} }

// Render lays out the DOT description and returns image bytes for format.
// The FormatDOT passthrough returns the description unchanged, which lets
// callers persist the engine input next to rendered artifacts.
func (e *Graphviz) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return bytes.Clone(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, engineFormat(format), &buf); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "render %s", format)
		}
		return nil, errors.Wrap(errors.ErrCodeEngineFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// engineFormat maps a Format to the goccy/go-graphviz format constant.
func engineFormat(f Format) graphviz.Format {
	switch f {
	case FormatSVG:
		return graphviz.SVG
	default:
		return graphviz.PNG
	}
}
