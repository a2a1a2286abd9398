// Package render defines the layout-engine contract and its Graphviz
// implementation.
//
// # Overview
//
// A diagram document is serialized to DOT by the [dot] subpackage and handed
// to an [Engine], which computes node coordinates, draws edges and labels,
// and returns image bytes for a requested [Format]. The engine is an opaque,
// versioned collaborator: any implementation that accepts DOT and returns
// image bytes is substitutable without touching the graph model or builder.
//
//	src := dot.Marshal(doc)
//	png, err := engine.Render(ctx, src, render.FormatPNG)
//
// The bundled [Graphviz] engine uses goccy/go-graphviz, which embeds the
// Graphviz layout algorithms and needs no external installation.
//
// [dot]: github.com/archsketch/archsketch/pkg/render/dot
package render
