// Package graph provides the arena-backed undirected multigraph that stores
// the internal wiring of a voltage level.
//
// Vertices and edges are addressed by stable integer handles rather than by
// pointers. Objects that need to refer to each other (terminals, switches,
// buses) hold handles and look them up through the owning Graph, so no
// ownership cycle ever forms between graph entities.
//
// The Graph G = (V,E) supports:
//
//   - Parallel edges and self-loops (switches may be modeled in parallel).
//   - Optional objects on vertices (a terminal bound to a node) and on edges
//     (a switch; the zero value stands for an internal connection).
//   - Handle recycling: removed handles are reused lowest-first, so
//     VertexCapacity stays close to the highest node number in use.
//   - Listeners notified synchronously after each structural change.
//   - Traversal and path search through package traverse.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex() int                               // O(1) amortized
//	AddVertexIfNotPresent(v int) error            // O(v) first time, O(1) after
//	RemoveVertex(v int) (V, error)                // O(1); fails if edges remain
//	RemoveIsolatedVertices()                      // O(V)
//	SetVertexObject / ClearVertexObject / VertexObject
//
//	// Edge lifecycle
//	AddEdge(v1, v2 int, obj E) (int, error)       // O(deg)
//	RemoveEdge(e int) (E, error)                  // O(deg)
//	RemoveAllEdges()                              // O(E)
//
//	// Walks
//	Traverse(v, typ, fn, encountered, opts...)    // O(V+E)
//	TraverseAll(vs, typ, fn, opts...)             // O(V+E)
//	FindAllPaths(from, complete, cancelled, less) // exponential worst case
//
// Concurrency:
//
// The graph has no internal locking. Structural mutations must be serialized
// by the caller against every reader; concurrent read-only walks are safe.
//
// Errors:
//
//	ErrInvalidVertex   - negative vertex handle.
//	ErrVertexLimit     - vertex handle at or above the configured limit.
//	ErrVertexNotFound  - vertex handle is not live.
//	ErrVertexHasEdges  - RemoveVertex on a vertex that still has edges.
//	ErrEdgeNotFound    - edge handle is not live.
package graph
