// Package pkg provides the core libraries for archsketch diagram rendering.
//
// # Overview
//
// Archsketch turns declarative architecture documents - nodes, clusters, and
// edges described in code - into rendered image artifacts. The pkg directory
// is organized into five main areas:
//
//  1. [diagram] - Graph model and builder (documents, nodes, clusters, edges)
//  2. [render] - Layout engine contract and the bundled Graphviz engine
//  3. [render/dot] - Deterministic DOT serialization
//  4. [assets] - Icon reference resolution
//  5. [pipeline] - Orchestration (seal → emit → render → persist)
//
// # Architecture
//
// The typical data flow through archsketch:
//
//	Builder declarations (nodes, clusters, edges)
//	         ↓
//	    [diagram] package (document model, validation, lifecycle)
//	         ↓
//	    [render/dot] package (deterministic graph description)
//	         ↓
//	    [render] package (Graphviz layout + rasterization)
//	         ↓
//	    PNG/SVG/DOT artifacts
//
// # Quick Start
//
// Declare a document and render it:
//
//	import (
//	    "context"
//	    "github.com/archsketch/archsketch/pkg/diagram"
//	    "github.com/archsketch/archsketch/pkg/pipeline"
//	    "github.com/archsketch/archsketch/pkg/render"
//	)
//
//	// 1. Declare the document
//	doc := diagram.New("My Service", diagram.WithDirection(diagram.DirectionLR))
//	b := doc.Builder()
//	b.Node("api", "API Gateway")
//	b.Cluster("Backend", func(b *diagram.Builder) error {
//	    _, err := b.Node("db", "Database", diagram.WithKind(diagram.KindStorage))
//	    return err
//	})
//	b.Edge("api", "db", diagram.WithLabel("reads"))
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result := runner.Execute(context.Background(), doc, pipeline.Request{
//	    Stem:    "my-service",
//	    Formats: []render.Format{render.FormatPNG},
//	})
//
// # Main Packages
//
// [diagram] - The graph model: documents with a title and layout direction,
// nodes with kinds and icons, nested named clusters, and attributed edges.
// The builder enforces per-scope ID uniqueness and guarantees scope pop on
// exit; documents move through a Building → Sealed → Rendered/RenderFailed
// lifecycle.
//
// [render] - The [render.Engine] contract plus the bundled engine backed by
// goccy/go-graphviz. Engines are stateless; each pass is bounded by a
// context deadline.
//
// [render/dot] - Serializes a document to Graphviz DOT. Output is
// deterministic: same document, byte-identical description, with entities in
// declaration order.
//
// [assets] - Resolves node icon references against configured directories
// before emission, so the engine only ever sees paths that exist.
//
// [pipeline] - The rendering pipeline shared by the CLI and library callers.
// Per-format outcomes are independent, artifacts are written atomically as
// <stem>.<format>, and independent documents render concurrently.
//
// [errors] - Structured error codes spanning construction-time failures
// (DUPLICATE_IDENTITY, UNKNOWN_ENDPOINT) and rendering-time failures
// (ENGINE_UNAVAILABLE, ASSET_NOT_FOUND, TIMEOUT).
//
// [observability] - Optional hooks for instrumenting document and format
// rendering events without coupling the core to a metrics backend.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/diagram/...   # Specific package
//
// [diagram]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/diagram
// [render]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/render/dot
// [assets]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/assets
// [pipeline]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/archsketch/archsketch/pkg/observability
package pkg
