package diagram

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrEmptyID is returned when a node or cluster is created with an empty
	// identifier. All entities must have non-empty identifiers.
	ErrEmptyID = errors.New("entity ID must not be empty")

	// ErrDuplicateID is returned when a node or cluster ID collides with an
	// existing entity in the same parent scope. The same ID may be reused in
	// a different scope and produces a distinct entity.
	ErrDuplicateID = errors.New("duplicate ID in scope")

	// ErrUnknownEndpoint is returned when an edge references an ID that has
	// not been declared anywhere in the document. Endpoints must exist before
	// the edge is declared; there are no forward references.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")

	// ErrAmbiguousEndpoint is returned when an unqualified edge endpoint ID
	// matches nodes in more than one scope. Use the node's qualified key
	// (see [Node.Key]) to disambiguate.
	ErrAmbiguousEndpoint = errors.New("ambiguous edge endpoint")

	// ErrClusterCycle is returned by [Document.Validate] when the cluster
	// containment relation is not a tree. This indicates direct manipulation
	// of cluster internals; the builder cannot produce a cycle.
	ErrClusterCycle = errors.New("cycle in cluster tree")

	// ErrMultipleOwners is returned by [Document.Validate] when an entity is
	// reachable from more than one parent cluster.
	ErrMultipleOwners = errors.New("entity has multiple owners")

	// ErrSealed is returned when a mutation is attempted on a document that
	// has left the Building state. Sealing is irreversible.
	ErrSealed = errors.New("document is sealed")

	// ErrScopeClosed is returned when entities are attached to a cluster
	// whose scope has already exited. Closed scopes cannot be reopened.
	ErrScopeClosed = errors.New("cluster scope is closed")
)

// Direction controls the global flow of the rendered layout.
type Direction string

const (
	// DirectionLR lays the diagram out left to right.
	DirectionLR Direction = "LR"
	// DirectionTB lays the diagram out top to bottom.
	DirectionTB Direction = "TB"
)

// State is the lifecycle state of a document.
type State int

const (
	// StateBuilding accepts node, cluster, and edge declarations.
	StateBuilding State = iota
	// StateSealed rejects all mutation; the document is ready to render.
	StateSealed
	// StateRendered is terminal: all requested artifacts were produced.
	StateRendered
	// StateRenderFailed is terminal: at least one artifact failed, with the
	// cause recorded on the document.
	StateRenderFailed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateSealed:
		return "sealed"
	case StateRendered:
		return "rendered"
	case StateRenderFailed:
		return "render_failed"
	default:
		return "unknown"
	}
}

// Document is the root container for one diagram: a title, a global layout
// direction, the cluster tree, and the full edge list.
//
// The document exclusively owns its cluster tree and node set. Edges hold
// non-owning node keys into that set. The zero value is not usable - use
// [New].
type Document struct {
	title     string
	direction Direction

	root  *Cluster
	nodes map[string]*Node    // qualified key -> node
	byID  map[string][]string // bare ID -> qualified keys, declaration order
	edges []*Edge

	state State
	cause error // recorded failure cause when state == StateRenderFailed
}

// Option configures a document at creation time.
type Option func(*Document)

// WithDirection sets the global layout direction. The default is [DirectionLR].
func WithDirection(dir Direction) Option {
	return func(d *Document) { d.direction = dir }
}

// New creates an empty document in the Building state.
func New(title string, opts ...Option) *Document {
	d := &Document{
		title:     title,
		direction: DirectionLR,
		nodes:     make(map[string]*Node),
		byID:      make(map[string][]string),
	}
	d.root = &Cluster{doc: d}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Direction returns the global layout direction.
func (d *Document) Direction() Direction { return d.direction }

// State returns the current lifecycle state.
func (d *Document) State() State { return d.state }

// Root returns the implicit top-level cluster owning all top-level entities.
func (d *Document) Root() *Cluster { return d.root }

// Edges returns the edge list in declaration order.
// The returned slice must not be modified.
func (d *Document) Edges() []*Edge { return d.edges }

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Node returns the node with the given qualified key, or nil and false.
func (d *Document) Node(key string) (*Node, bool) {
	n, ok := d.nodes[key]
	return n, ok
}

// Nodes returns all nodes in declaration order.
func (d *Document) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	d.root.walk(func(e Entity) {
		if n, ok := e.(*Node); ok {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Builder returns a builder whose scope stack starts at the document root.
func (d *Document) Builder() *Builder {
	return &Builder{doc: d, stack: []*Cluster{d.root}}
}

// Seal closes the document for mutation. Sealing is irreversible: subsequent
// node, cluster, or edge declarations fail with [ErrSealed]. Sealing an
// already sealed document is a no-op.
func (d *Document) Seal() {
	if d.state == StateBuilding {
		d.state = StateSealed
	}
}

// MarkRendered transitions a sealed document to the terminal Rendered state.
// It returns false if the document was not sealed.
func (d *Document) MarkRendered() bool {
	if d.state != StateSealed {
		return false
	}
	d.state = StateRendered
	return true
}

// MarkRenderFailed transitions a sealed document to the terminal RenderFailed
// state and records the cause. It returns false if the document was not sealed.
func (d *Document) MarkRenderFailed(cause error) bool {
	if d.state != StateSealed {
		return false
	}
	d.state = StateRenderFailed
	d.cause = cause
	return true
}

// FailureCause returns the recorded cause after a failed render, or nil.
func (d *Document) FailureCause() error { return d.cause }

// Resolve maps an edge endpoint reference to a node. The reference is either
// a qualified key (see [Node.Key]) or a bare ID. A bare ID resolves only when
// exactly one node in the document carries it; otherwise Resolve returns
// [ErrUnknownEndpoint] or [ErrAmbiguousEndpoint].
func (d *Document) Resolve(ref string) (*Node, error) {
	if n, ok := d.nodes[ref]; ok {
		return n, nil
	}
	keys := d.byID[ref]
	switch len(keys) {
	case 0:
		return nil, ErrUnknownEndpoint
	case 1:
		return d.nodes[keys[0]], nil
	default:
		return nil, ErrAmbiguousEndpoint
	}
}

// Validate checks structural integrity: the cluster containment relation must
// be a tree (acyclic, [ErrClusterCycle]) and every entity must have exactly
// one owner ([ErrMultipleOwners]). Edge endpoints are checked at declaration
// time and need no re-validation here.
//
// The builder cannot produce an invalid document; Validate guards against
// direct manipulation of cluster internals.
func (d *Document) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[*Cluster]int)
	seen := make(map[Entity]bool)
	var errWalk error

	var dfs func(c *Cluster)
	dfs = func(c *Cluster) {
		color[c] = gray
		for _, child := range c.children {
			if seen[child] {
				errWalk = ErrMultipleOwners
				return
			}
			seen[child] = true
			if sub, ok := child.(*Cluster); ok {
				switch color[sub] {
				case white:
					dfs(sub)
				case gray:
					errWalk = ErrClusterCycle
				}
				if errWalk != nil {
					return
				}
			}
		}
		color[c] = black
	}

	dfs(d.root)
	return errWalk
}

// register indexes a freshly created node under its qualified key.
func (d *Document) register(n *Node) {
	d.nodes[n.Key()] = n
	d.byID[n.id] = append(d.byID[n.id], n.Key())
}

// qualify builds the qualified key for an ID under the given cluster path.
func qualify(path []string, id string) string {
	if len(path) == 0 {
		return id
	}
	return strings.Join(slices.Concat(path, []string{id}), "/")
}
