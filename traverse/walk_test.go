package traverse_test

import (
	"testing"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ring builds 0-1-...-(n-1)-0 with edge i joining i and i+1.
func ring(t testing.TB, n int) *graph.Graph[int, int] {
	t.Helper()
	g := graph.New[int, int](graph.WithVertexLimit(n + 1))
	for i := 0; i < n; i++ {
		g.AddVertex()
	}
	for i := 0; i < n; i++ {
		_, err := g.AddEdge(i, (i+1)%n, i)
		require.NoError(t, err)
	}
	return g
}

func TestWalk_VisitsEachVertexOnceOnCycle(t *testing.T) {
	for _, typ := range []traverse.Type{traverse.DepthFirst, traverse.BreadthFirst} {
		g := ring(t, 6)
		counts := make([]int, 6)
		ok, err := traverse.Walk(g, 0, typ, nil, nil,
			traverse.WithOnVertex(func(v int) { counts[v]++ }))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, counts)
	}
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	g := ring(t, 4)
	var order []int
	_, err := traverse.Walk(g, 0, traverse.DepthFirst, nil, nil,
		traverse.WithOnVertex(func(v int) { order = append(order, v) }))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestWalk_TerminatePath(t *testing.T) {
	// chain 0-1-2-3, block edge 1 (1-2)
	g := graph.New[int, int]()
	for i := 0; i < 4; i++ {
		g.AddVertex()
	}
	for i := 0; i < 3; i++ {
		_, _ = g.AddEdge(i, i+1, i)
	}
	seen := make([]bool, g.VertexCapacity())
	ok, err := traverse.Walk(g, 0, traverse.BreadthFirst, func(_, e, _ int) traverse.Result {
		if e == 1 {
			return traverse.TerminatePath
		}
		return traverse.Continue
	}, seen)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []bool{true, true, false, false}, seen)
}

func TestWalk_TerminateTraverser(t *testing.T) {
	g := ring(t, 5)
	calls := 0
	ok, err := traverse.Walk(g, 0, traverse.BreadthFirst, func(int, int, int) traverse.Result {
		calls++
		return traverse.TerminateTraverser
	}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestWalk_EdgeFilter(t *testing.T) {
	g := ring(t, 4)
	var crossed []int
	_, err := traverse.Walk(g, 0, traverse.BreadthFirst, func(_, e, _ int) traverse.Result {
		crossed = append(crossed, e)
		return traverse.Continue
	}, nil, traverse.WithEdgeFilter(func(e int) bool { return e != 3 }))
	require.NoError(t, err)
	// edge 3 is never reported
	assert.ElementsMatch(t, []int{0, 1, 2}, crossed)
}

func TestWalk_Errors(t *testing.T) {
	g := ring(t, 3)
	_, err := traverse.Walk(nil, 0, traverse.DepthFirst, nil, nil)
	require.ErrorIs(t, err, traverse.ErrAdjacencyNil)
	_, err = traverse.Walk(g, 7, traverse.DepthFirst, nil, nil)
	require.ErrorIs(t, err, traverse.ErrVertexOutOfRange)
	_, err = traverse.Walk(g, 0, traverse.DepthFirst, nil, make([]bool, 1))
	require.ErrorIs(t, err, traverse.ErrEncounteredTooSmall)
}

func TestWalkAll_SharesEncountered(t *testing.T) {
	// two disjoint edges 0-1 and 2-3
	g := graph.New[int, int]()
	for i := 0; i < 4; i++ {
		g.AddVertex()
	}
	_, _ = g.AddEdge(0, 1, 0)
	_, _ = g.AddEdge(2, 3, 1)

	counts := make([]int, 4)
	var order, seeds []int
	ok, err := traverse.WalkAll(g, []int{0, 1, 2, 3}, traverse.DepthFirst, nil,
		traverse.WithOnSeed(func(v int) {
			seeds = append(seeds, v)
			order = append(order, -1)
		}),
		traverse.WithOnVertex(func(v int) {
			counts[v]++
			order = append(order, v)
		}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{0, 2}, seeds, "one seed per part")
	assert.Equal(t, []int{-1, 0, 1, -1, 2, 3}, order)
	assert.Equal(t, []int{1, 1, 1, 1}, counts)

	_, err = traverse.WalkAll(g, []int{0, 9}, traverse.DepthFirst, nil)
	require.ErrorIs(t, err, traverse.ErrVertexOutOfRange)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "CONTINUE", traverse.Continue.String())
	assert.Equal(t, "TERMINATE_PATH", traverse.TerminatePath.String())
	assert.Equal(t, "TERMINATE_TRAVERSER", traverse.TerminateTraverser.String())
	assert.Equal(t, "Result(9)", traverse.Result(9).String())
}
