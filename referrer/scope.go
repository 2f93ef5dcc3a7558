package referrer

// Scope releases a set of registrations together. Close it from the owner's
// removal path. The zero value is ready to use.
type Scope struct {
	regs   []Releaser
	closed bool
}

// Track adds r to the scope. Once the scope is closed, r is released
// immediately.
func (s *Scope) Track(r Releaser) {
	if r == nil {
		return
	}
	if s.closed {
		r.Release()
		return
	}
	s.regs = append(s.regs, r)
}

// Untrack removes r from the scope without releasing it. It reports whether
// r was tracked.
func (s *Scope) Untrack(r Releaser) bool {
	for i, cur := range s.regs {
		if cur == r {
			s.regs = append(s.regs[:i], s.regs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of tracked registrations.
func (s *Scope) Len() int { return len(s.regs) }

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool { return s.closed }

// Close releases every tracked registration in reverse order. It is
// idempotent.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.regs) - 1; i >= 0; i-- {
		s.regs[i].Release()
	}
	s.regs = nil
}

// Bind registers r on target in g and tracks the registration in s.
func Bind[T comparable](s *Scope, g *Registry[T], target T, r Referrer[T]) {
	s.Track(g.Register(target, r))
}

// Depend adds r to d and tracks the registration in s.
func Depend[T any](s *Scope, d *Dependents[T], r Referrer[T]) {
	s.Track(d.Add(r))
}
