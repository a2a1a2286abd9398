package diagram

// NodeKind tags a node with the role it plays in the diagrammed system.
// Kinds map to visual shapes when rendered.
type NodeKind string

const (
	// KindCompute is a compute unit (function, container, VM).
	KindCompute NodeKind = "compute"
	// KindStorage is a storage unit (table, bucket, queue).
	KindStorage NodeKind = "storage"
	// KindExternal is an actor outside the system boundary.
	KindExternal NodeKind = "external"
	// KindManaged is a managed platform service (gateway, secret store).
	KindManaged NodeKind = "managed"
	// KindCustom is a node rendered with a caller-supplied icon.
	KindCustom NodeKind = "custom"
)

// Entity is a member of a cluster: either a [Node] or a nested [Cluster].
type Entity interface {
	entity()
}

// Node is an atomic labeled entity representing one diagrammed component.
// Nodes are immutable after creation and owned by exactly one cluster
// (the document root for top-level nodes).
type Node struct {
	id    string
	key   string
	label string
	icon  string
	kind  NodeKind
}

func (n *Node) entity() {}

// ID returns the caller-given identifier, unique within the parent scope.
func (n *Node) ID() string { return n.id }

// Key returns the document-wide qualified key: the owning cluster names and
// the ID joined with "/". Top-level nodes have Key() == ID().
func (n *Node) Key() string { return n.key }

// Label returns the display label. Labels may contain embedded line breaks.
func (n *Node) Label() string { return n.label }

// Icon returns the icon reference, or "" when the node has none.
// The reference is forwarded to the renderer unvalidated.
func (n *Node) Icon() string { return n.icon }

// Kind returns the node's kind tag.
func (n *Node) Kind() NodeKind { return n.kind }

// NodeOption configures a node at creation time.
type NodeOption func(*Node)

// WithIcon attaches an icon reference to the node and tags it [KindCustom]
// unless a kind was set explicitly.
func WithIcon(ref string) NodeOption {
	return func(n *Node) {
		n.icon = ref
		if n.kind == "" {
			n.kind = KindCustom
		}
	}
}

// WithKind sets the node's kind tag. The default is [KindCompute].
func WithKind(k NodeKind) NodeOption {
	return func(n *Node) { n.kind = k }
}

// Cluster is a named grouping of nodes and nested clusters. Clusters
// constrain visual grouping only; edges cross cluster boundaries freely.
//
// Membership is ordered by declaration and finalized when the cluster's
// scope exits.
type Cluster struct {
	doc      *Document
	name     string
	path     []string // qualified names of this cluster and its ancestors
	children []Entity
	ids      map[string]bool // IDs and names claimed in this scope
	closed   bool
}

func (c *Cluster) entity() {}

// Name returns the cluster's display name. The document root has no name.
func (c *Cluster) Name() string { return c.name }

// Children returns the owned entities in declaration order.
// The returned slice must not be modified.
func (c *Cluster) Children() []Entity { return c.children }

// Closed reports whether the cluster's scope has exited.
func (c *Cluster) Closed() bool { return c.closed }

// claim reserves an ID in this scope, failing on collision or closed scope.
func (c *Cluster) claim(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if c.closed {
		return ErrScopeClosed
	}
	if c.ids == nil {
		c.ids = make(map[string]bool)
	}
	if c.ids[id] {
		return ErrDuplicateID
	}
	c.ids[id] = true
	return nil
}

// walk visits every entity under the cluster in declaration order.
func (c *Cluster) walk(fn func(Entity)) {
	for _, child := range c.children {
		fn(child)
		if sub, ok := child.(*Cluster); ok {
			sub.walk(fn)
		}
	}
}

// EdgeStyle selects the stroke used to draw an edge.
type EdgeStyle string

const (
	// StyleSolid is the default stroke.
	StyleSolid EdgeStyle = "solid"
	// StyleDashed draws the edge with a dashed stroke.
	StyleDashed EdgeStyle = "dashed"
	// StyleBold draws the edge with a heavier stroke.
	StyleBold EdgeStyle = "bold"
)

// Edge is a directed connection between two nodes, holding their non-owning
// qualified keys plus optional presentation attributes.
type Edge struct {
	From  string // qualified key of the source node
	To    string // qualified key of the target node
	Label string
	Color string
	Style EdgeStyle
}

// EdgeOption configures an edge at declaration time.
type EdgeOption func(*Edge)

// WithLabel sets the edge label text.
func WithLabel(label string) EdgeOption {
	return func(e *Edge) { e.Label = label }
}

// WithColor sets the edge stroke color (a Graphviz color name or #rrggbb).
func WithColor(color string) EdgeOption {
	return func(e *Edge) { e.Color = color }
}

// WithStyle sets the edge stroke style. The default is [StyleSolid].
func WithStyle(style EdgeStyle) EdgeOption {
	return func(e *Edge) { e.Style = style }
}
