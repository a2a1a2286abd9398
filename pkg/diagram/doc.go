// Package diagram provides the in-memory model for declarative architecture
// diagrams: labeled nodes, nested clusters, and directed attributed edges.
//
// A [Document] is built through a [Builder], which tracks the currently open
// cluster scope on an explicit stack. Entities created through the builder
// attach to the top-of-stack scope; closing a scope pops the stack and
// finalizes the cluster's membership.
//
// Documents move through a strict lifecycle: Building → Sealed → Rendered or
// RenderFailed. Sealing is irreversible and rejects all further mutation.
//
// The model is a directed multigraph over a cluster tree: parallel edges and
// self-loops are legal, edges may cross cluster boundaries freely, but cluster
// containment must remain a tree with single ownership.
//
// Documents are not safe for concurrent mutation. Build each document from a
// single goroutine; independent documents may be built and rendered
// concurrently.
package diagram
