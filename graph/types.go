// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph type, options, listener contract and sentinel errors.

package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrInvalidVertex indicates a negative vertex handle.
	ErrInvalidVertex = errors.New("graph: invalid vertex handle")

	// ErrVertexLimit indicates a vertex handle beyond the configured limit.
	ErrVertexLimit = errors.New("graph: vertex handle exceeds limit")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrVertexHasEdges indicates a vertex cannot be removed while edges remain.
	ErrVertexHasEdges = errors.New("graph: vertex still has edges")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("graph: edge not found")
)

// DefaultVertexLimit bounds vertex handles when no limit is configured.
const DefaultVertexLimit = 1000

// Listener receives structural notifications. All methods are called
// synchronously, after the change is applied (EdgeBeforeRemoval excepted).
type Listener[V, E any] interface {
	VertexAdded(v int)
	VertexObjectSet(v int, obj V)
	VertexRemoved(v int, obj V)
	EdgeAdded(e int, obj E)
	EdgeBeforeRemoval(e int, obj E)
	EdgeRemoved(e int, obj E)
}

// NopListener implements Listener with no-ops; embed it to override a subset.
type NopListener[V, E any] struct{}

func (NopListener[V, E]) VertexAdded(int)          {}
func (NopListener[V, E]) VertexObjectSet(int, V)   {}
func (NopListener[V, E]) VertexRemoved(int, V)     {}
func (NopListener[V, E]) EdgeAdded(int, E)         {}
func (NopListener[V, E]) EdgeBeforeRemoval(int, E) {}
func (NopListener[V, E]) EdgeRemoved(int, E)       {}

// Option configures a Graph before creation.
type Option func(*config)

type config struct {
	vertexLimit int
}

// WithVertexLimit bounds vertex handles to [0, limit). Values <= 0 keep the
// default.
func WithVertexLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.vertexLimit = limit
		}
	}
}

type vertex[V any] struct {
	obj    V
	hasObj bool
	live   bool
}

type edge[E any] struct {
	v1, v2 int
	obj    E
	live   bool
}

// Graph is an undirected multigraph with handle-addressed vertices and edges.
//
// vertices and edges are arenas; freeVertices/freeEdges hold recycled
// handles in ascending order; adjacency[v] lists incident edge handles in
// ascending order (a self-loop appears once).
type Graph[V, E any] struct {
	vertices     []vertex[V]
	edges        []edge[E]
	freeVertices []int
	freeEdges    []int
	adjacency    [][]int

	vertexCount int
	edgeCount   int
	vertexLimit int

	listeners []Listener[V, E]
}

// New creates an empty Graph.
// Complexity: O(1)
func New[V, E any](opts ...Option) *Graph[V, E] {
	c := config{vertexLimit: DefaultVertexLimit}
	for _, opt := range opts {
		opt(&c)
	}
	return &Graph[V, E]{vertexLimit: c.vertexLimit}
}
