package traverse

import "fmt"

// step is a queued edge together with the side it was reached from.
type step struct {
	edge    int
	flipped bool // true when the edge was reached from its second vertex
}

// walker encapsulates mutable walk state.
type walker struct {
	adj   Adjacency
	typ   Type
	fn    Traverser
	opts  Options
	vSeen []bool
	eSeen []bool
	queue []step
	head  int // first live element for BreadthFirst
}

// Walk traverses adj from start. encountered records expanded vertices and may
// be shared between successive walks; pass nil to allocate a fresh one.
// It returns false iff the Traverser returned TerminateTraverser.
func Walk(adj Adjacency, start int, typ Type, fn Traverser, encountered []bool, opts ...Option) (bool, error) {
	w, err := newWalker(adj, typ, fn, encountered, opts)
	if err != nil {
		return false, err
	}
	if !adj.VertexExists(start) {
		return false, fmt.Errorf("%w: %d", ErrVertexOutOfRange, start)
	}
	return w.run(start), nil
}

// WalkAll walks from every seed not already encountered, sharing one
// encountered set. It stops at the first TerminateTraverser and returns false.
func WalkAll(adj Adjacency, starts []int, typ Type, fn Traverser, opts ...Option) (bool, error) {
	if adj == nil {
		return false, ErrAdjacencyNil
	}
	for _, s := range starts {
		if !adj.VertexExists(s) {
			return false, fmt.Errorf("%w: %d", ErrVertexOutOfRange, s)
		}
	}
	w, err := newWalker(adj, typ, fn, nil, opts)
	if err != nil {
		return false, err
	}
	for _, s := range starts {
		if w.vSeen[s] {
			continue
		}
		if !w.run(s) {
			return false, nil
		}
	}
	return true, nil
}

func newWalker(adj Adjacency, typ Type, fn Traverser, encountered []bool, opts []Option) (*walker, error) {
	if adj == nil {
		return nil, ErrAdjacencyNil
	}
	if fn == nil {
		fn = func(int, int, int) Result { return Continue }
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	vc := adj.VertexCapacity()
	if encountered == nil {
		encountered = make([]bool, vc)
	} else if len(encountered) < vc {
		return nil, fmt.Errorf("%w: %d < %d", ErrEncounteredTooSmall, len(encountered), vc)
	}
	return &walker{
		adj:   adj,
		typ:   typ,
		fn:    fn,
		opts:  o,
		vSeen: encountered,
		eSeen: make([]bool, adj.EdgeCapacity()),
	}, nil
}

// run expands start and drains the queue. The edge-seen set persists across
// runs so an edge is reported at most once per walker.
func (w *walker) run(start int) bool {
	w.queue = w.queue[:0]
	w.head = 0
	if !w.vSeen[start] {
		w.opts.OnSeed(start)
	}
	w.expand(start)
	for w.head < len(w.queue) {
		s := w.pop()
		v1, v2 := w.adj.EdgeVertex1(s.edge), w.adj.EdgeVertex2(s.edge)
		from, to := v1, v2
		if s.flipped {
			from, to = v2, v1
		}
		switch w.fn(from, s.edge, to) {
		case Continue:
			w.expand(to)
		case TerminateTraverser:
			return false
		case TerminatePath:
			// branch ends on this edge
		}
	}
	return true
}

// expand marks v and queues its unseen incident edges.
func (w *walker) expand(v int) {
	if w.vSeen[v] {
		return
	}
	w.vSeen[v] = true
	w.opts.OnVertex(v)

	edges := w.adj.EdgesConnectedToVertex(v)
	n := len(edges)
	for i := 0; i < n; i++ {
		// depth-first pops from the back: queue in reverse so the lowest edge
		// handle is explored first
		idx := i
		if w.typ == DepthFirst {
			idx = n - 1 - i
		}
		e := edges[idx]
		if w.eSeen[e] || !w.opts.EdgeFilter(e) {
			continue
		}
		w.eSeen[e] = true
		w.queue = append(w.queue, step{edge: e, flipped: w.adj.EdgeVertex1(e) != v})
	}
}

func (w *walker) pop() step {
	if w.typ == BreadthFirst {
		s := w.queue[w.head]
		w.head++
		return s
	}
	last := len(w.queue) - 1
	s := w.queue[last]
	w.queue = w.queue[:last]
	return s
}
