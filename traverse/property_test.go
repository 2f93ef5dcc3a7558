package traverse_test

import (
	"testing"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestWalkProperties checks that on arbitrary multigraphs (cycles, parallel
// edges, self-loops) every reachable vertex is expanded exactly once and
// every reachable edge is reported at most once.
func TestWalkProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	const n = 12
	build := func(pairs []int) *graph.Graph[int, int] {
		g := graph.New[int, int]()
		for i := 0; i < n; i++ {
			g.AddVertex()
		}
		for i := 0; i+1 < len(pairs); i += 2 {
			_, _ = g.AddEdge(pairs[i], pairs[i+1], i/2)
		}
		return g
	}

	for _, typ := range []traverse.Type{traverse.DepthFirst, traverse.BreadthFirst} {
		typ := typ
		properties.Property("each reachable vertex expanded once", prop.ForAll(
			func(pairs []int) bool {
				g := build(pairs)
				expanded := make([]int, n)
				edgeCalls := make([]int, g.EdgeCapacity())
				_, err := traverse.Walk(g, 0, typ, func(_, e, _ int) traverse.Result {
					edgeCalls[e]++
					return traverse.Continue
				}, nil, traverse.WithOnVertex(func(v int) { expanded[v]++ }))
				if err != nil {
					return false
				}
				reach := reachable(g, 0)
				for v := 0; v < n; v++ {
					if reach[v] && expanded[v] != 1 {
						return false
					}
					if !reach[v] && expanded[v] != 0 {
						return false
					}
				}
				for _, c := range edgeCalls {
					if c > 1 {
						return false
					}
				}
				return true
			},
			gen.SliceOf(gen.IntRange(0, n-1)),
		))
	}

	properties.TestingRun(t)
}

// reachable is a plain recursive reference implementation.
func reachable(g *graph.Graph[int, int], start int) []bool {
	seen := make([]bool, g.VertexCapacity())
	var visit func(v int)
	visit = func(v int) {
		if seen[v] {
			return
		}
		seen[v] = true
		for _, e := range g.EdgesConnectedToVertex(v) {
			visit(g.OtherVertex(e, v))
		}
	}
	visit(start)
	return seen
}
