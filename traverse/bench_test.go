package traverse_test

import (
	"testing"

	"github.com/katalvlaran/netmodel/traverse"
)

// BenchmarkWalk_DepthFirst measures a full DFS over a 1000-vertex ring.
func BenchmarkWalk_DepthFirst(b *testing.B) {
	g := ring(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = traverse.Walk(g, 0, traverse.DepthFirst, nil, nil)
	}
}

// BenchmarkWalk_BreadthFirst measures a full BFS over a 1000-vertex ring.
func BenchmarkWalk_BreadthFirst(b *testing.B) {
	g := ring(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = traverse.Walk(g, 0, traverse.BreadthFirst, nil, nil)
	}
}
