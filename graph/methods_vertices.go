// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle, vertex objects and queries.
//
// Determinism:
//   - Vertices() returns handles in ascending order.
//   - AddVertex() reuses the lowest freed handle first.

package graph

import (
	"fmt"
	"sort"
)

// AddVertex allocates a new vertex and returns its handle.
//
// Implementation:
//   - Stage 1: Reuse the lowest recycled handle, or grow the arena.
//   - Stage 2: Mark the vertex live with an empty adjacency bucket.
//   - Stage 3: Notify listeners.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph[V, E]) AddVertex() int {
	var v int
	if len(g.freeVertices) > 0 {
		v = g.freeVertices[0]
		g.freeVertices = g.freeVertices[1:]
	} else {
		v = len(g.vertices)
		g.vertices = append(g.vertices, vertex[V]{})
		g.adjacency = append(g.adjacency, nil)
	}
	g.vertices[v] = vertex[V]{live: true}
	g.adjacency[v] = nil
	g.vertexCount++

	for _, l := range g.snapshot() {
		l.VertexAdded(v)
	}
	return v
}

// AddVertexIfNotPresent makes v a live vertex, growing the arena if needed.
// Handles skipped by the growth are recorded as free.
//
// Implementation:
//   - Stage 1: Validate v against 0 and the vertex limit.
//   - Stage 2: If v is already live, return (idempotent).
//   - Stage 3: Grow the arena up to v, registering the gap as free handles.
//   - Stage 4: Mark v live, drop it from the free list, notify listeners.
//
// Errors:
//   - ErrInvalidVertex if v < 0.
//   - ErrVertexLimit if v >= VertexLimit().
//
// Complexity:
//   - Time O(v) when growing, O(log F) otherwise (F = free handles).
func (g *Graph[V, E]) AddVertexIfNotPresent(v int) error {
	if err := g.checkHandle(v); err != nil {
		return err
	}
	if v < len(g.vertices) && g.vertices[v].live {
		return nil
	}
	for len(g.vertices) <= v {
		h := len(g.vertices)
		g.vertices = append(g.vertices, vertex[V]{})
		g.adjacency = append(g.adjacency, nil)
		if h != v {
			g.freeVertices = append(g.freeVertices, h)
		}
	}
	g.dropFree(v)
	g.vertices[v] = vertex[V]{live: true}
	g.adjacency[v] = nil
	g.vertexCount++

	for _, l := range g.snapshot() {
		l.VertexAdded(v)
	}
	return nil
}

// CheckVertexHandle validates v against the handle range without mutating
// the graph. It is the read-only half of AddVertexIfNotPresent.
func (g *Graph[V, E]) CheckVertexHandle(v int) error { return g.checkHandle(v) }

func (g *Graph[V, E]) checkHandle(v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVertex, v)
	}
	if v >= g.vertexLimit {
		return fmt.Errorf("%w: %d >= %d", ErrVertexLimit, v, g.vertexLimit)
	}
	return nil
}

func (g *Graph[V, E]) dropFree(v int) {
	i := sort.SearchInts(g.freeVertices, v)
	if i < len(g.freeVertices) && g.freeVertices[i] == v {
		g.freeVertices = append(g.freeVertices[:i], g.freeVertices[i+1:]...)
	}
}

func (g *Graph[V, E]) addFreeVertex(v int) {
	i := sort.SearchInts(g.freeVertices, v)
	g.freeVertices = append(g.freeVertices, 0)
	copy(g.freeVertices[i+1:], g.freeVertices[i:])
	g.freeVertices[i] = v
}

// VertexExists reports whether v is a live vertex.
// Complexity: O(1)
func (g *Graph[V, E]) VertexExists(v int) bool {
	return v >= 0 && v < len(g.vertices) && g.vertices[v].live
}

// RemoveVertex deletes v and returns the object it carried.
//
// Errors:
//   - ErrVertexNotFound if v is not live.
//   - ErrVertexHasEdges if edges are still incident to v.
//
// Complexity: O(log F)
func (g *Graph[V, E]) RemoveVertex(v int) (V, error) {
	var zero V
	if !g.VertexExists(v) {
		return zero, fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	if len(g.adjacency[v]) > 0 {
		return zero, fmt.Errorf("%w: %d", ErrVertexHasEdges, v)
	}
	obj := g.removeVertexInternal(v)
	return obj, nil
}

func (g *Graph[V, E]) removeVertexInternal(v int) V {
	obj := g.vertices[v].obj
	g.vertices[v] = vertex[V]{}
	g.adjacency[v] = nil
	g.vertexCount--
	g.addFreeVertex(v)
	for _, l := range g.snapshot() {
		l.VertexRemoved(v, obj)
	}
	return obj
}

// RemoveIsolatedVertices removes every live vertex that carries no object and
// has no incident edge.
// Complexity: O(V log F)
func (g *Graph[V, E]) RemoveIsolatedVertices() {
	for v := range g.vertices {
		vx := g.vertices[v]
		if vx.live && !vx.hasObj && len(g.adjacency[v]) == 0 {
			g.removeVertexInternal(v)
		}
	}
}

// Vertices returns live vertex handles in ascending order.
// Complexity: O(V)
func (g *Graph[V, E]) Vertices() []int {
	out := make([]int, 0, g.vertexCount)
	for v, vx := range g.vertices {
		if vx.live {
			out = append(out, v)
		}
	}
	return out
}

// SetVertexObject attaches obj to v.
// Errors: ErrVertexNotFound if v is not live.
func (g *Graph[V, E]) SetVertexObject(v int, obj V) error {
	if !g.VertexExists(v) {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	g.vertices[v].obj = obj
	g.vertices[v].hasObj = true
	for _, l := range g.snapshot() {
		l.VertexObjectSet(v, obj)
	}
	return nil
}

// ClearVertexObject detaches the object carried by v, if any.
// Errors: ErrVertexNotFound if v is not live.
func (g *Graph[V, E]) ClearVertexObject(v int) error {
	if !g.VertexExists(v) {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	var zero V
	g.vertices[v].obj = zero
	g.vertices[v].hasObj = false
	for _, l := range g.snapshot() {
		l.VertexObjectSet(v, zero)
	}
	return nil
}

// VertexObject returns the object carried by v. ok is false when v is not
// live or carries nothing.
// Complexity: O(1)
func (g *Graph[V, E]) VertexObject(v int) (obj V, ok bool) {
	if !g.VertexExists(v) || !g.vertices[v].hasObj {
		return obj, false
	}
	return g.vertices[v].obj, true
}
