package graph_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every notification as a short string.
type recorder struct {
	graph.NopListener[string, string]
	g      *graph.Graph[string, string]
	events []string
}

func (r *recorder) VertexAdded(v int) { r.events = append(r.events, fmt.Sprintf("+v%d", v)) }
func (r *recorder) VertexRemoved(v int, _ string) {
	r.events = append(r.events, fmt.Sprintf("-v%d", v))
}
func (r *recorder) EdgeAdded(e int, obj string) {
	r.events = append(r.events, fmt.Sprintf("+e%d:%s", e, obj))
}
func (r *recorder) EdgeBeforeRemoval(e int, _ string) {
	// the edge is still visible here
	r.events = append(r.events, fmt.Sprintf("?e%d:%v", e, r.g.EdgeExists(e)))
}
func (r *recorder) EdgeRemoved(e int, _ string) {
	r.events = append(r.events, fmt.Sprintf("-e%d:%v", e, r.g.EdgeExists(e)))
}

func TestListener_Order(t *testing.T) {
	g := graph.New[string, string]()
	r := &recorder{g: g}
	g.AddListener(r)

	a, b := g.AddVertex(), g.AddVertex()
	e, err := g.AddEdge(a, b, "S")
	require.NoError(t, err)
	_, err = g.RemoveEdge(e)
	require.NoError(t, err)
	_, err = g.RemoveVertex(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"+v0", "+v1", "+e0:S", "?e0:true", "-e0:false", "-v1"}, r.events)

	g.RemoveListener(r)
	g.AddVertex()
	assert.Len(t, r.events, 6)
}

// selfRemover unregisters itself on the first notification.
type selfRemover struct {
	graph.NopListener[string, string]
	g     *graph.Graph[string, string]
	calls int
}

func (s *selfRemover) VertexAdded(int) {
	s.calls++
	s.g.RemoveListener(s)
}

func TestListener_RemoveDuringNotification(t *testing.T) {
	g := graph.New[string, string]()
	s := &selfRemover{g: g}
	r := &recorder{g: g}
	g.AddListener(s)
	g.AddListener(r)

	g.AddVertex()
	g.AddVertex()

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, []string{"+v0", "+v1"}, r.events)
}
