// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters and listener registration.
// Policy:
//   - No algorithms here.
//   - Enumerations are ascending by handle, so outputs are deterministic.

package graph

// VertexCount returns the number of live vertices.
// Complexity: O(1)
func (g *Graph[V, E]) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of live edges.
// Complexity: O(1)
func (g *Graph[V, E]) EdgeCount() int { return g.edgeCount }

// VertexCapacity returns one past the highest vertex handle ever allocated.
// Slices indexed by vertex handle must have at least this length.
// Complexity: O(1)
func (g *Graph[V, E]) VertexCapacity() int { return len(g.vertices) }

// EdgeCapacity returns one past the highest edge handle ever allocated.
// Complexity: O(1)
func (g *Graph[V, E]) EdgeCapacity() int { return len(g.edges) }

// VertexLimit returns the exclusive upper bound on vertex handles.
// Complexity: O(1)
func (g *Graph[V, E]) VertexLimit() int { return g.vertexLimit }

// AddListener registers l. Listeners are notified in registration order.
func (g *Graph[V, E]) AddListener(l Listener[V, E]) {
	if l != nil {
		g.listeners = append(g.listeners, l)
	}
}

// RemoveListener unregisters l; unknown listeners are ignored.
func (g *Graph[V, E]) RemoveListener(l Listener[V, E]) {
	for i, cur := range g.listeners {
		if cur == l {
			g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
			return
		}
	}
}

// snapshot returns a copy of the listener list so a listener may unregister
// itself while being notified.
func (g *Graph[V, E]) snapshot() []Listener[V, E] {
	if len(g.listeners) == 0 {
		return nil
	}
	out := make([]Listener[V, E], len(g.listeners))
	copy(out, g.listeners)
	return out
}
