package network

import (
	"fmt"
	"sort"
)

// Identifiable is any object addressable by id.
type Identifiable interface {
	ID() string
}

// Index is the identifiable registry of a network. The model only checks and
// registers ids through it; id policy belongs to the implementation.
type Index interface {
	Contains(id string) bool
	Add(obj Identifiable) error
	Get(id string) (Identifiable, bool)
	Remove(id string)
	Len() int
}

// MapIndex is the default Index.
type MapIndex struct {
	objs map[string]Identifiable
}

// NewMapIndex returns an empty MapIndex.
func NewMapIndex() *MapIndex {
	return &MapIndex{objs: make(map[string]Identifiable)}
}

// Contains reports whether id is registered.
// Complexity: O(1)
func (x *MapIndex) Contains(id string) bool {
	_, ok := x.objs[id]
	return ok
}

// Add registers obj under its id. It fails with ErrEmptyID or
// ErrDuplicateID.
// Complexity: O(1)
func (x *MapIndex) Add(obj Identifiable) error {
	id := obj.ID()
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := x.objs[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	x.objs[id] = obj
	return nil
}

// Get returns the object registered under id.
func (x *MapIndex) Get(id string) (Identifiable, bool) {
	obj, ok := x.objs[id]
	return obj, ok
}

// Remove forgets id; unknown ids are ignored.
func (x *MapIndex) Remove(id string) { delete(x.objs, id) }

// Len returns the number of registered objects.
func (x *MapIndex) Len() int { return len(x.objs) }

// IDs returns every registered id, sorted.
func (x *MapIndex) IDs() []string {
	out := make([]string, 0, len(x.objs))
	for id := range x.objs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// checkID validates id and its availability in idx.
func checkID(idx Index, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if idx.Contains(id) {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	return nil
}
