package traverse

import (
	"fmt"
	"sort"
)

// PathLess orders two edge paths; FindAllPaths sorts its output with it.
type PathLess func(a, b []int) bool

// ByLength orders paths by edge count.
func ByLength(a, b []int) bool { return len(a) < len(b) }

// FindAllPaths returns every simple edge path starting at from and ending at
// the first vertex for which complete returns true. Edges for which cancelled
// returns true are never crossed; a nil cancelled crosses every edge. The
// start vertex itself is never tested with complete.
//
// Paths are sorted with less (ByLength when nil); the sort is stable so equal
// paths keep discovery order.
//
// Complexity: exponential in the worst case (all simple paths); voltage-level
// graphs are small and sparse.
func FindAllPaths(adj Adjacency, from int, complete func(v int) bool, cancelled func(e int) bool, less PathLess) ([][]int, error) {
	if adj == nil {
		return nil, ErrAdjacencyNil
	}
	if !adj.VertexExists(from) {
		return nil, fmt.Errorf("%w: %d", ErrVertexOutOfRange, from)
	}
	if less == nil {
		less = ByLength
	}
	f := &pathFinder{adj: adj, complete: complete, cancelled: cancelled}
	f.fromVertex(from, nil, make([]bool, adj.VertexCapacity()))
	sort.SliceStable(f.paths, func(i, j int) bool { return less(f.paths[i], f.paths[j]) })
	return f.paths, nil
}

type pathFinder struct {
	adj       Adjacency
	complete  func(v int) bool
	cancelled func(e int) bool
	paths     [][]int
}

func (f *pathFinder) fromVertex(v int, path []int, encountered []bool) {
	encountered[v] = true
	for _, e := range f.adj.EdgesConnectedToVertex(v) {
		if f.cancelled != nil && f.cancelled(e) {
			continue
		}
		other := f.adj.EdgeVertex1(e)
		if other == v {
			other = f.adj.EdgeVertex2(e)
		}
		if encountered[other] {
			continue
		}
		// each branch owns its path and encountered set
		branch := make([]int, len(path), len(path)+1)
		copy(branch, path)
		branch = append(branch, e)
		if f.complete != nil && f.complete(other) {
			f.paths = append(f.paths, branch)
			continue
		}
		seen := make([]bool, len(encountered))
		copy(seen, encountered)
		f.fromVertex(other, branch, seen)
	}
}
