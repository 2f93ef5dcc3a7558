// Package traverse implements the single generic walk used by the topology
// model: building calculated buses, numbering connected and synchronous
// components, collecting the switches to operate for a connection request,
// and user-level terminal traversals.
//
// The walk is edge-driven. Starting from a seed vertex, every incident edge is
// queued once; when an edge is popped the caller's Traverser decides what
// happens next:
//
//	Continue            keep exploring past the destination vertex
//	TerminatePath       do not cross this edge, keep the other branches
//	TerminateTraverser  abort the whole walk immediately
//
// Visited vertices and edges are tracked in boolean slices indexed by handle,
// so a walk over a graph containing cycles terminates and expands each
// reachable vertex exactly once. Several seeds may share one encountered slice
// (WalkAll), which is how partitions into buses or components are built.
//
// Options:
//
//   - WithOnVertex(fn)    called once per vertex, the first time it is expanded.
//   - WithEdgeFilter(fn)  edges for which fn returns false are never queued.
//
// Errors:
//
//   - ErrAdjacencyNil        adjacency is nil.
//   - ErrVertexOutOfRange    a seed is not a live vertex.
//   - ErrEncounteredTooSmall the caller-provided encountered slice is too short.
//
// Complexity: O(V + E) per walk plus the cost of callbacks.
package traverse
