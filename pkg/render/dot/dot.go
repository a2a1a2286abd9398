// Package dot translates a diagram document into the Graphviz DOT graph
// description language.
//
// The translation is deterministic: the same document always produces
// byte-identical output. Entities are emitted in declaration order, never in
// map iteration order, so rendered artifacts are reproducible and diff-able.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/archsketch/archsketch/pkg/diagram"
)

// Option configures emission.
type Option func(*emitter)

// WithIcons substitutes resolved file paths for icon references during
// emission. References missing from the map are emitted as-is.
func WithIcons(paths map[string]string) Option {
	return func(e *emitter) { e.icons = paths }
}

type emitter struct {
	icons map[string]string
}

// Marshal converts a document to Graphviz DOT. Cluster nesting becomes nested
// subgraph blocks, node and edge attributes become key-value lists, and the
// document direction becomes the root rankdir attribute.
//
// The resulting DOT can be rendered by any engine implementing
// [github.com/archsketch/archsketch/pkg/render.Engine].
func Marshal(d *diagram.Document, opts ...Option) []byte {
	var em emitter
	for _, opt := range opts {
		opt(&em)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", d.Title())
	fmt.Fprintf(&buf, "  graph [label=%q, labelloc=\"t\", fontsize=24, rankdir=%q, pad=\"0.5\", splines=\"spline\"];\n", d.Title(), string(d.Direction()))
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=13, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	em.writeChildren(&buf, d.Root(), 1)

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, fmtEdgeAttrs(e))
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// writeChildren emits a cluster's entities in declaration order.
func (em *emitter) writeChildren(buf *bytes.Buffer, c *diagram.Cluster, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, child := range c.Children() {
		switch e := child.(type) {
		case *diagram.Node:
			fmt.Fprintf(buf, "%s%q [%s];\n", pad, e.Key(), strings.Join(em.nodeAttrs(e), ", "))
		case *diagram.Cluster:
			// Graphviz treats subgraphs whose name starts with "cluster"
			// as visual groupings.
			fmt.Fprintf(buf, "%ssubgraph %q {\n", pad, "cluster_"+e.Name())
			fmt.Fprintf(buf, "%s  label=%q;\n", pad, e.Name())
			fmt.Fprintf(buf, "%s  style=\"rounded\";\n", pad)
			fmt.Fprintf(buf, "%s  bgcolor=\"#F5F5F5\";\n", pad)
			em.writeChildren(buf, e, depth+1)
			fmt.Fprintf(buf, "%s}\n", pad)
		}
	}
}

// nodeAttrs builds the attribute list for a node statement.
// Kinds map to Graphviz shapes; icon references become image attributes with
// the label pushed below the image.
func (em *emitter) nodeAttrs(n *diagram.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label())}

	switch n.Kind() {
	case diagram.KindStorage:
		attrs = append(attrs, "shape=cylinder", "style=filled")
	case diagram.KindExternal:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	case diagram.KindManaged:
		attrs = append(attrs, "shape=box3d", "style=filled")
	case diagram.KindCustom:
		// shape=none keeps the icon unframed; the label renders beneath it.
		attrs = append(attrs, "shape=none", "labelloc=\"b\"")
	}

	if icon := n.Icon(); icon != "" {
		if resolved, ok := em.icons[icon]; ok {
			icon = resolved
		}
		attrs = append(attrs, fmt.Sprintf("image=%q", icon))
	}
	return attrs
}

// fmtEdgeAttrs builds the bracketed attribute list for an edge statement.
// Returns "" when the edge carries no attributes beyond the default style.
func fmtEdgeAttrs(e *diagram.Edge) string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color), fmt.Sprintf("fontcolor=%q", e.Color))
	}
	if e.Style != "" && e.Style != diagram.StyleSolid {
		attrs = append(attrs, fmt.Sprintf("style=%q", string(e.Style)))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}
