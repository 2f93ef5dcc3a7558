package referrer

import "sync"

// Notification kinds, as reported to metrics.
const (
	KindRemoval     = "removal"
	KindReplacement = "replacement"
)

// Referrer is notified about the object it refers to.
type Referrer[T any] interface {
	// OnReferencedRemoval is called before the referenced object is discarded.
	OnReferencedRemoval(referenced T)
	// OnReferencedReplacement is called when old is replaced by replacement.
	// Registrations have already moved to replacement.
	OnReferencedReplacement(old, replacement T)
}

// Funcs adapts two functions to Referrer. Nil functions are skipped.
type Funcs[T any] struct {
	Removal     func(referenced T)
	Replacement func(old, replacement T)
}

func (f *Funcs[T]) OnReferencedRemoval(referenced T) {
	if f.Removal != nil {
		f.Removal(referenced)
	}
}

func (f *Funcs[T]) OnReferencedReplacement(old, replacement T) {
	if f.Replacement != nil {
		f.Replacement(old, replacement)
	}
}

// Releaser ends a registration.
type Releaser interface {
	Release()
}

// Registration is the handle of one referrer registration. Release is
// idempotent.
type Registration struct {
	once    sync.Once
	release func()
}

func newRegistration(release func()) *Registration {
	return &Registration{release: release}
}

// Release unregisters the referrer.
func (r *Registration) Release() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		if r.release != nil {
			r.release()
		}
	})
}

// entry is one registered listener; live is cleared on unregistration so
// snapshots skip it.
type entry[T any] struct {
	r    Referrer[T]
	live bool
}

func snapshot[T any](entries []*entry[T]) []*entry[T] {
	out := make([]*entry[T], len(entries))
	copy(out, entries)
	return out
}

func indexOf[T any](entries []*entry[T], r Referrer[T]) int {
	for i, e := range entries {
		if e.r == r {
			return i
		}
	}
	return -1
}

func removeAt[T any](entries []*entry[T], i int) []*entry[T] {
	entries[i].live = false
	return append(entries[:i:i], entries[i+1:]...)
}
