// File: methods_traverse.go
// Role: Walks and path search, delegated to package traverse.

package graph

import "github.com/katalvlaran/netmodel/traverse"

// Traverse walks from v; see traverse.Walk. encountered may be nil.
func (g *Graph[V, E]) Traverse(v int, typ traverse.Type, fn traverse.Traverser, encountered []bool, opts ...traverse.Option) (bool, error) {
	return traverse.Walk(g, v, typ, fn, encountered, opts...)
}

// TraverseAll walks from every vertex of vs sharing one encountered set; see
// traverse.WalkAll.
func (g *Graph[V, E]) TraverseAll(vs []int, typ traverse.Type, fn traverse.Traverser, opts ...traverse.Option) (bool, error) {
	return traverse.WalkAll(g, vs, typ, fn, opts...)
}

// FindAllPaths lists simple edge paths from `from` to vertices whose object
// satisfies complete, never crossing an edge whose object satisfies
// cancelled; see traverse.FindAllPaths. Vertices without object never
// complete a path.
func (g *Graph[V, E]) FindAllPaths(from int, complete func(V) bool, cancelled func(E) bool, less traverse.PathLess) ([][]int, error) {
	vertexDone := func(v int) bool {
		obj, ok := g.VertexObject(v)
		return ok && complete != nil && complete(obj)
	}
	var edgeCancelled func(int) bool
	if cancelled != nil {
		edgeCancelled = func(e int) bool {
			obj, _ := g.EdgeObject(e)
			return cancelled(obj)
		}
	}
	return traverse.FindAllPaths(g, from, vertexDone, edgeCancelled, less)
}
