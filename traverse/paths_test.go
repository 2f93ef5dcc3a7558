package traverse_test

import (
	"testing"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllPaths_SortedByLength(t *testing.T) {
	// diamond with a long detour: 0-1-3, 0-2-3, 0-4-5-3
	g := graph.New[int, int]()
	for i := 0; i < 6; i++ {
		g.AddVertex()
	}
	edges := [][2]int{{0, 4}, {4, 5}, {5, 3}, {0, 1}, {1, 3}, {0, 2}, {2, 3}}
	for i, e := range edges {
		_, err := g.AddEdge(e[0], e[1], i)
		require.NoError(t, err)
	}

	paths, err := traverse.FindAllPaths(g, 0, func(v int) bool { return v == 3 }, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3, 4}, {5, 6}, {0, 1, 2}}, paths)
}

func TestFindAllPaths_CustomOrderAndCancel(t *testing.T) {
	g := graph.New[int, int]()
	for i := 0; i < 3; i++ {
		g.AddVertex()
	}
	_, _ = g.AddEdge(0, 1, 0)
	_, _ = g.AddEdge(1, 2, 1)
	_, _ = g.AddEdge(0, 2, 2)

	longestFirst := func(a, b []int) bool { return len(a) > len(b) }
	paths, err := traverse.FindAllPaths(g, 0, func(v int) bool { return v == 2 }, nil, longestFirst)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2}}, paths)

	paths, err = traverse.FindAllPaths(g, 0, func(v int) bool { return v == 2 },
		func(e int) bool { return e == 2 }, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}}, paths)
}

func TestFindAllPaths_NoTarget(t *testing.T) {
	g := graph.New[int, int]()
	g.AddVertex()
	paths, err := traverse.FindAllPaths(g, 0, func(int) bool { return true }, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = traverse.FindAllPaths(g, 3, nil, nil, nil)
	require.ErrorIs(t, err, traverse.ErrVertexOutOfRange)
}
