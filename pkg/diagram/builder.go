package diagram

import (
	"fmt"
	"slices"
)

// Builder declares nodes, clusters, and edges against a document.
//
// The builder keeps the currently open cluster scope on an explicit stack.
// Node and cluster declarations attach to the top-of-stack scope; [Builder.Cluster]
// pushes a new scope for the duration of its callback and pops it on exit,
// even when the callback returns an error.
//
// A builder is single-writer: it is designed for sequential declaration from
// one goroutine. Use one builder per document.
type Builder struct {
	doc   *Document
	stack []*Cluster
}

// Document returns the document this builder mutates.
func (b *Builder) Document() *Document { return b.doc }

// scope returns the top-of-stack cluster.
func (b *Builder) scope() *Cluster { return b.stack[len(b.stack)-1] }

// Node declares a node in the current scope and returns it.
//
// The ID must be non-empty and unique within the scope: a collision fails
// with [ErrDuplicateID]. The same ID in a different scope produces a distinct
// node addressable by its qualified key.
func (b *Builder) Node(id, label string, opts ...NodeOption) (*Node, error) {
	if b.doc.state != StateBuilding {
		return nil, fmt.Errorf("declare node %q: %w", id, ErrSealed)
	}
	scope := b.scope()
	if err := scope.claim(id); err != nil {
		return nil, fmt.Errorf("declare node %q: %w", id, err)
	}

	n := &Node{
		id:    id,
		key:   qualify(scope.path, id),
		label: label,
		kind:  KindCompute,
	}
	for _, opt := range opts {
		opt(n)
	}

	scope.children = append(scope.children, n)
	b.doc.register(n)
	return n, nil
}

// Cluster opens a named cluster scope in the current scope, runs build inside
// it, and closes the scope. The pop is guaranteed: the scope exits even when
// build returns an error, and the cluster cannot be reopened afterwards.
//
// Cluster names share the ID space of their scope: a name colliding with a
// sibling node or cluster fails with [ErrDuplicateID].
func (b *Builder) Cluster(name string, build func(b *Builder) error) error {
	if b.doc.state != StateBuilding {
		return fmt.Errorf("open cluster %q: %w", name, ErrSealed)
	}
	parent := b.scope()
	if err := parent.claim(name); err != nil {
		return fmt.Errorf("open cluster %q: %w", name, err)
	}

	c := &Cluster{
		doc:  b.doc,
		name: name,
		path: append(slices.Clone(parent.path), name),
	}
	parent.children = append(parent.children, c)

	b.stack = append(b.stack, c)
	defer func() {
		c.closed = true
		b.stack = b.stack[:len(b.stack)-1]
	}()

	return build(b)
}

// Edge declares a directed edge between two existing nodes. Endpoints are
// node references: a qualified key, a bare ID (when unambiguous), or anything
// accepted by [Document.Resolve]. An endpoint that was never declared fails
// with [ErrUnknownEndpoint] - nodes must be declared before edges reference
// them.
//
// Parallel edges and self-loops are legal; clusters do not constrain
// connectivity.
func (b *Builder) Edge(from, to string, opts ...EdgeOption) error {
	if b.doc.state != StateBuilding {
		return fmt.Errorf("declare edge %s -> %s: %w", from, to, ErrSealed)
	}
	src, err := b.doc.Resolve(from)
	if err != nil {
		return fmt.Errorf("declare edge %s -> %s: source: %w", from, to, err)
	}
	dst, err := b.doc.Resolve(to)
	if err != nil {
		return fmt.Errorf("declare edge %s -> %s: target: %w", from, to, err)
	}

	e := &Edge{From: src.Key(), To: dst.Key(), Style: StyleSolid}
	for _, opt := range opts {
		opt(e)
	}
	b.doc.edges = append(b.doc.edges, e)
	return nil
}

// Connect declares one edge per (source, target) pair, all sharing the same
// attributes. Fan-out and fan-in are expanded source-major: for sources
// [a, b] and targets [x, y] the declaration order is a->x, a->y, b->x, b->y.
//
// Endpoints are resolved before any edge is appended, so a single unknown
// reference leaves the document unchanged.
func (b *Builder) Connect(sources, targets []string, opts ...EdgeOption) error {
	if b.doc.state != StateBuilding {
		return fmt.Errorf("connect: %w", ErrSealed)
	}
	for _, ref := range slices.Concat(sources, targets) {
		if _, err := b.doc.Resolve(ref); err != nil {
			return fmt.Errorf("connect: endpoint %q: %w", ref, err)
		}
	}
	for _, from := range sources {
		for _, to := range targets {
			if err := b.Edge(from, to, opts...); err != nil {
				return err
			}
		}
	}
	return nil
}
