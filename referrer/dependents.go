package referrer

// Dependents is the list of referrers owned by the referenced object itself.
// The zero value is ready to use. It is not safe for concurrent use.
type Dependents[T any] struct {
	entries []*entry[T]
}

// Add registers r; adding twice is a no-op.
func (d *Dependents[T]) Add(r Referrer[T]) *Registration {
	if indexOf(d.entries, r) < 0 {
		d.entries = append(d.entries, &entry[T]{r: r, live: true})
	}
	return newRegistration(func() { d.Remove(r) })
}

// Remove unregisters r; unknown referrers are ignored.
func (d *Dependents[T]) Remove(r Referrer[T]) {
	if i := indexOf(d.entries, r); i >= 0 {
		d.entries = removeAt(d.entries, i)
	}
}

// Len returns the number of dependents.
func (d *Dependents[T]) Len() int { return len(d.entries) }

// NotifyRemoval calls OnReferencedRemoval(obj) on every dependent and clears
// the list. It returns the number of calls made.
func (d *Dependents[T]) NotifyRemoval(obj T) int {
	n := 0
	for _, e := range snapshot(d.entries) {
		if !e.live {
			continue
		}
		e.r.OnReferencedRemoval(obj)
		n++
	}
	for _, e := range d.entries {
		e.live = false
	}
	d.entries = nil
	return n
}

// NotifyReplacement calls OnReferencedReplacement(old, replacement) on every
// dependent. The list is kept. It returns the number of calls made.
func (d *Dependents[T]) NotifyReplacement(old, replacement T) int {
	n := 0
	for _, e := range snapshot(d.entries) {
		if !e.live {
			continue
		}
		e.r.OnReferencedReplacement(old, replacement)
		n++
	}
	return n
}
