package referrer

// Registry maps referenced objects to their referrers.
// It is not safe for concurrent use.
type Registry[T comparable] struct {
	refs   map[T][]*entry[T]
	target map[*entry[T]]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{
		refs:   make(map[T][]*entry[T]),
		target: make(map[*entry[T]]T),
	}
}

// Register adds r as a referrer of target. Registering the same pair twice
// returns a registration for the existing entry. The registration follows
// its entry through replacements.
func (g *Registry[T]) Register(target T, r Referrer[T]) *Registration {
	var e *entry[T]
	if i := indexOf(g.refs[target], r); i >= 0 {
		e = g.refs[target][i]
	} else {
		e = &entry[T]{r: r, live: true}
		g.refs[target] = append(g.refs[target], e)
		g.target[e] = target
	}
	return newRegistration(func() { g.drop(e) })
}

// Unregister removes r from the referrers of target.
func (g *Registry[T]) Unregister(target T, r Referrer[T]) {
	if i := indexOf(g.refs[target], r); i >= 0 {
		g.drop(g.refs[target][i])
	}
}

func (g *Registry[T]) drop(e *entry[T]) {
	t, ok := g.target[e]
	if !ok {
		return
	}
	delete(g.target, e)
	entries := g.refs[t]
	for i, cur := range entries {
		if cur == e {
			entries = removeAt(entries, i)
			break
		}
	}
	if len(entries) == 0 {
		delete(g.refs, t)
		return
	}
	g.refs[t] = entries
}

// Referrers returns the current referrers of target in registration order.
func (g *Registry[T]) Referrers(target T) []Referrer[T] {
	entries := g.refs[target]
	out := make([]Referrer[T], 0, len(entries))
	for _, e := range entries {
		out = append(out, e.r)
	}
	return out
}

// Len returns the number of referrers of target.
func (g *Registry[T]) Len(target T) int { return len(g.refs[target]) }

// Targets returns the number of objects with at least one referrer.
func (g *Registry[T]) Targets() int { return len(g.refs) }

// NotifyRemoval calls OnReferencedRemoval on every referrer of target, then
// drops all registrations of target. It returns the number of calls made.
func (g *Registry[T]) NotifyRemoval(target T) int {
	n := 0
	for _, e := range snapshot(g.refs[target]) {
		if !e.live {
			continue
		}
		e.r.OnReferencedRemoval(target)
		n++
	}
	for _, e := range g.refs[target] {
		e.live = false
		delete(g.target, e)
	}
	delete(g.refs, target)
	return n
}

// NotifyReplacement moves the registrations of old to replacement, then calls
// OnReferencedReplacement on each moved referrer. It returns the number of
// calls made.
func (g *Registry[T]) NotifyReplacement(old, replacement T) int {
	if old == replacement {
		return 0
	}
	moved := g.refs[old]
	delete(g.refs, old)
	notify := make([]*entry[T], 0, len(moved))
	for _, e := range moved {
		if i := indexOf(g.refs[replacement], e.r); i >= 0 {
			// already a referrer of replacement: keep the existing entry
			e.live = false
			delete(g.target, e)
			notify = append(notify, g.refs[replacement][i])
			continue
		}
		g.refs[replacement] = append(g.refs[replacement], e)
		g.target[e] = replacement
		notify = append(notify, e)
	}
	n := 0
	for _, e := range notify {
		if !e.live {
			continue
		}
		e.r.OnReferencedReplacement(old, replacement)
		n++
	}
	return n
}
