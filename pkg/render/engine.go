package render

import (
	"context"

	"github.com/archsketch/archsketch/pkg/errors"
)

// Format identifies a rendered artifact format.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatDOT Format = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatDOT: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(f Format) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, dot)", string(f))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []Format) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Engine is a static layout engine: it consumes a textual directed-graph
// description in DOT and returns rendered image bytes for one format.
//
// Implementations report failure through the error taxonomy in
// [github.com/archsketch/archsketch/pkg/errors]: ENGINE_UNAVAILABLE when the
// engine cannot be initialized, ENGINE_INVOCATION_FAILED for a malformed
// description or a failed pass, TIMEOUT when ctx expires. Engine failures are
// fatal for the requesting pass and are never retried.
type Engine interface {
	Render(ctx context.Context, dot []byte, format Format) ([]byte, error)
}
