// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle, edge objects and adjacency queries.
//
// Determinism:
//   - Edges() and EdgesConnectedToVertex() are ascending by handle.

package graph

import (
	"fmt"
	"sort"
)

// AddEdge connects v1 and v2 with a new edge carrying obj and returns its
// handle. Parallel edges and self-loops are accepted.
//
// Implementation:
//   - Stage 1: Validate both endpoints are live.
//   - Stage 2: Reuse the lowest recycled edge handle, or grow the arena.
//   - Stage 3: Insert the handle into both adjacency buckets (once for loops).
//   - Stage 4: Notify listeners.
//
// Errors:
//   - ErrVertexNotFound if either endpoint is not live.
//
// Complexity:
//   - Time O(deg(v1)+deg(v2)) for the sorted inserts, Space O(1) amortized.
func (g *Graph[V, E]) AddEdge(v1, v2 int, obj E) (int, error) {
	if !g.VertexExists(v1) {
		return -1, fmt.Errorf("%w: %d", ErrVertexNotFound, v1)
	}
	if !g.VertexExists(v2) {
		return -1, fmt.Errorf("%w: %d", ErrVertexNotFound, v2)
	}
	var e int
	if len(g.freeEdges) > 0 {
		e = g.freeEdges[0]
		g.freeEdges = g.freeEdges[1:]
	} else {
		e = len(g.edges)
		g.edges = append(g.edges, edge[E]{})
	}
	g.edges[e] = edge[E]{v1: v1, v2: v2, obj: obj, live: true}
	g.adjacency[v1] = insertSorted(g.adjacency[v1], e)
	if v2 != v1 {
		g.adjacency[v2] = insertSorted(g.adjacency[v2], e)
	}
	g.edgeCount++

	for _, l := range g.snapshot() {
		l.EdgeAdded(e, obj)
	}
	return e, nil
}

// RemoveEdge deletes e and returns the object it carried.
//
// Listeners receive EdgeBeforeRemoval while the edge is still present and
// EdgeRemoved once it is gone.
//
// Errors:
//   - ErrEdgeNotFound if e is not live.
//
// Complexity: O(deg(v1)+deg(v2))
func (g *Graph[V, E]) RemoveEdge(e int) (E, error) {
	var zero E
	if !g.EdgeExists(e) {
		return zero, fmt.Errorf("%w: %d", ErrEdgeNotFound, e)
	}
	obj := g.edges[e].obj
	listeners := g.snapshot()
	for _, l := range listeners {
		l.EdgeBeforeRemoval(e, obj)
	}
	g.removeEdgeInternal(e)
	for _, l := range listeners {
		l.EdgeRemoved(e, obj)
	}
	return obj, nil
}

func (g *Graph[V, E]) removeEdgeInternal(e int) {
	ed := g.edges[e]
	g.adjacency[ed.v1] = removeSorted(g.adjacency[ed.v1], e)
	if ed.v2 != ed.v1 {
		g.adjacency[ed.v2] = removeSorted(g.adjacency[ed.v2], e)
	}
	g.edges[e] = edge[E]{}
	g.edgeCount--
	i := sort.SearchInts(g.freeEdges, e)
	g.freeEdges = append(g.freeEdges, 0)
	copy(g.freeEdges[i+1:], g.freeEdges[i:])
	g.freeEdges[i] = e
}

// RemoveAllEdges deletes every edge, notifying listeners per edge.
// Complexity: O(E·deg)
func (g *Graph[V, E]) RemoveAllEdges() {
	for _, e := range g.Edges() {
		_, _ = g.RemoveEdge(e)
	}
}

// EdgeExists reports whether e is a live edge.
// Complexity: O(1)
func (g *Graph[V, E]) EdgeExists(e int) bool {
	return e >= 0 && e < len(g.edges) && g.edges[e].live
}

// EdgeObject returns the object carried by e; ok is false when e is not live.
func (g *Graph[V, E]) EdgeObject(e int) (obj E, ok bool) {
	if !g.EdgeExists(e) {
		return obj, false
	}
	return g.edges[e].obj, true
}

// EdgeVertex1 returns the first endpoint of e, or -1 when e is not live.
func (g *Graph[V, E]) EdgeVertex1(e int) int {
	if !g.EdgeExists(e) {
		return -1
	}
	return g.edges[e].v1
}

// EdgeVertex2 returns the second endpoint of e, or -1 when e is not live.
func (g *Graph[V, E]) EdgeVertex2(e int) int {
	if !g.EdgeExists(e) {
		return -1
	}
	return g.edges[e].v2
}

// Edges returns live edge handles in ascending order.
// Complexity: O(E)
func (g *Graph[V, E]) Edges() []int {
	out := make([]int, 0, g.edgeCount)
	for e, ed := range g.edges {
		if ed.live {
			out = append(out, e)
		}
	}
	return out
}

// EdgesConnectedToVertex returns the handles of edges incident to v in
// ascending order. The slice is a copy; nil when v is not live.
// Complexity: O(deg(v))
func (g *Graph[V, E]) EdgesConnectedToVertex(v int) []int {
	if !g.VertexExists(v) {
		return nil
	}
	out := make([]int, len(g.adjacency[v]))
	copy(out, g.adjacency[v])
	return out
}

// EdgeObjectsConnectedToVertex returns the objects of edges incident to v,
// in edge handle order.
func (g *Graph[V, E]) EdgeObjectsConnectedToVertex(v int) []E {
	if !g.VertexExists(v) {
		return nil
	}
	out := make([]E, 0, len(g.adjacency[v]))
	for _, e := range g.adjacency[v] {
		out = append(out, g.edges[e].obj)
	}
	return out
}

// OtherVertex returns the endpoint of e opposite to v, or -1 when e is not
// incident to v.
func (g *Graph[V, E]) OtherVertex(e, v int) int {
	if !g.EdgeExists(e) {
		return -1
	}
	switch v {
	case g.edges[e].v1:
		return g.edges[e].v2
	case g.edges[e].v2:
		return g.edges[e].v1
	default:
		return -1
	}
}

func insertSorted(s []int, x int) []int {
	i := sort.SearchInts(s, x)
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = x
	return s
}

func removeSorted(s []int, x int) []int {
	i := sort.SearchInts(s, x)
	if i < len(s) && s[i] == x {
		return append(s[:i], s[i+1:]...)
	}
	return s
}
