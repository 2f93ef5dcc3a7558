package traverse

import (
	"errors"
	"fmt"
)

// Sentinel errors for traversal.
var (
	// ErrAdjacencyNil is returned when a nil Adjacency is walked.
	ErrAdjacencyNil = errors.New("traverse: adjacency is nil")

	// ErrVertexOutOfRange is returned when a seed vertex does not exist.
	ErrVertexOutOfRange = errors.New("traverse: vertex out of range")

	// ErrEncounteredTooSmall is returned when the encountered slice cannot
	// hold every vertex handle.
	ErrEncounteredTooSmall = errors.New("traverse: encountered slice too small")
)

// Result is the signal a Traverser returns for each crossed edge.
type Result int

const (
	// Continue explores past the destination vertex.
	Continue Result = iota
	// TerminatePath stops this branch only.
	TerminatePath
	// TerminateTraverser stops the whole walk.
	TerminateTraverser
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case Continue:
		return "CONTINUE"
	case TerminatePath:
		return "TERMINATE_PATH"
	case TerminateTraverser:
		return "TERMINATE_TRAVERSER"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Type selects the order in which queued edges are popped.
type Type int

const (
	// DepthFirst pops the most recently queued edge.
	DepthFirst Type = iota
	// BreadthFirst pops the oldest queued edge.
	BreadthFirst
)

// Traverser is called when the walk crosses edge e from the already expanded
// vertex `from` towards `to`. `to` may already have been expanded when the
// edge closes a cycle; returning Continue is then harmless.
type Traverser func(from, e, to int) Result

// Adjacency is the read-only view a walk needs. graph.Graph implements it.
type Adjacency interface {
	// VertexCapacity is one past the highest vertex handle ever allocated.
	VertexCapacity() int
	// EdgeCapacity is one past the highest edge handle ever allocated.
	EdgeCapacity() int
	// VertexExists reports whether v is a live vertex.
	VertexExists(v int) bool
	// EdgesConnectedToVertex lists the live edges incident to v, ascending.
	EdgesConnectedToVertex(v int) []int
	// EdgeVertex1 and EdgeVertex2 return the endpoints of edge e.
	EdgeVertex1(e int) int
	EdgeVertex2(e int) int
}

// Option configures a walk.
type Option func(*Options)

// Options holds the optional hooks of a walk.
type Options struct {
	// OnVertex is called once for every vertex the first time it is expanded,
	// seeds included.
	OnVertex func(v int)

	// OnSeed is called before a walk starts from a seed that is not yet
	// encountered, ahead of that seed's OnVertex. WalkAll calls it once per
	// part of the partition it discovers.
	OnSeed func(v int)

	// EdgeFilter, when it returns false, prevents an edge from being queued.
	// Filtered edges are not reported to the Traverser.
	EdgeFilter func(e int) bool
}

// DefaultOptions returns options with no-op hooks and no filtering.
func DefaultOptions() Options {
	return Options{
		OnVertex:   func(int) {},
		OnSeed:     func(int) {},
		EdgeFilter: func(int) bool { return true },
	}
}

// WithOnVertex installs a vertex expansion hook. A nil fn is ignored.
func WithOnVertex(fn func(v int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVertex = fn
		}
	}
}

// WithOnSeed installs a seed hook. A nil fn is ignored.
func WithOnSeed(fn func(v int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSeed = fn
		}
	}
}

// WithEdgeFilter installs an edge filter. A nil fn is ignored.
func WithEdgeFilter(fn func(e int) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.EdgeFilter = fn
		}
	}
}
