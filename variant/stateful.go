package variant

import (
	"context"
	"fmt"
)

// Stateful is implemented by every entity holding per-variant state. The
// Manager calls these hooks with the write lock held; implementations must
// not call back into the Manager.
type Stateful interface {
	// VariantArraySize returns the current array length; it must equal the
	// Manager's Size() outside of a variant operation.
	VariantArraySize() int

	// ExtendVariantArraySize appends count slots, each initialized from the
	// slot at source. initSize is the length before extension.
	ExtendVariantArraySize(initSize, count, source int)

	// DeleteVariantArrayElement releases the slot at index. It runs on every
	// entity before any compaction.
	DeleteVariantArrayElement(index int)

	// CompactVariantArray removes the slot at index, shifting the slots above
	// it down by one.
	CompactVariantArray(index int)

	// OverwriteVariantArrayElement copies the slot at source into target.
	OverwriteVariantArrayElement(target, source int)
}

// Resolver returns the working variant index of a caller. *Manager
// implements it.
type Resolver interface {
	Index(ctx context.Context) (int, error)
}

// Array is a per-variant array of T addressed through a Resolver.
//
// New slots copy the source slot with the clone function (plain assignment
// when none). Arrays built WithFresh allocate a fresh value for every new or
// overwritten slot instead; use it for caches, which must never be shared
// between variants. Arrays built WithRelease hand every slot they drop or
// overwrite to the release function first.
type Array[T any] struct {
	r       Resolver
	vals    []T
	clone   func(T) T
	fresh   func() T
	release func(T)
}

// ArrayOption configures an Array.
type ArrayOption[T any] func(*Array[T])

// WithClone sets the function copying a slot into a new variant.
func WithClone[T any](fn func(T) T) ArrayOption[T] {
	return func(a *Array[T]) { a.clone = fn }
}

// WithFresh makes new and overwritten slots start from fn() instead of a copy.
func WithFresh[T any](fn func() T) ArrayOption[T] {
	return func(a *Array[T]) { a.fresh = fn }
}

// WithRelease sets the function run on a slot's value when its variant is
// removed or overwritten, before the slot is cleared.
func WithRelease[T any](fn func(T)) ArrayOption[T] {
	return func(a *Array[T]) { a.release = fn }
}

// NewArray returns an array of size slots, each set to init() (zero value
// when init is nil).
func NewArray[T any](r Resolver, size int, init func() T, opts ...ArrayOption[T]) *Array[T] {
	a := &Array[T]{r: r, vals: make([]T, size)}
	for _, opt := range opts {
		opt(a)
	}
	if init == nil {
		init = a.fresh
	}
	if init != nil {
		for i := range a.vals {
			a.vals[i] = init()
		}
	}
	return a
}

func (a *Array[T]) index(ctx context.Context) (int, error) {
	i, err := a.r.Index(ctx)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(a.vals) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrVariantOutOfRange, i, len(a.vals))
	}
	return i, nil
}

// Get returns the value of the working variant.
func (a *Array[T]) Get(ctx context.Context) (T, error) {
	i, err := a.index(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.vals[i], nil
}

// Set stores v in the working variant.
func (a *Array[T]) Set(ctx context.Context, v T) error {
	i, err := a.index(ctx)
	if err != nil {
		return err
	}
	a.vals[i] = v
	return nil
}

// Update applies fn to the working variant's slot in place.
func (a *Array[T]) Update(ctx context.Context, fn func(*T)) error {
	i, err := a.index(ctx)
	if err != nil {
		return err
	}
	fn(&a.vals[i])
	return nil
}

// At returns the value at variant index i.
func (a *Array[T]) At(i int) (T, error) {
	if i < 0 || i >= len(a.vals) {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrVariantOutOfRange, i, len(a.vals))
	}
	return a.vals[i], nil
}

// SetAt stores v at variant index i.
func (a *Array[T]) SetAt(i int, v T) error {
	if i < 0 || i >= len(a.vals) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrVariantOutOfRange, i, len(a.vals))
	}
	a.vals[i] = v
	return nil
}

// SetAll stores v in every variant.
func (a *Array[T]) SetAll(v T) {
	for i := range a.vals {
		a.vals[i] = v
	}
}

// Each calls fn for every variant index in ascending order.
func (a *Array[T]) Each(fn func(i int, v T)) {
	for i, v := range a.vals {
		fn(i, v)
	}
}

func (a *Array[T]) copyOf(source int) T {
	if a.fresh != nil {
		return a.fresh()
	}
	if a.clone != nil {
		return a.clone(a.vals[source])
	}
	return a.vals[source]
}

func (a *Array[T]) drop(index int) {
	if a.release != nil {
		a.release(a.vals[index])
	}
}

// VariantArraySize returns the number of slots.
// Complexity: O(1)
func (a *Array[T]) VariantArraySize() int { return len(a.vals) }

// ExtendVariantArraySize appends count copies of the slot at source.
// Complexity: O(count)
func (a *Array[T]) ExtendVariantArraySize(_, count, source int) {
	for k := 0; k < count; k++ {
		a.vals = append(a.vals, a.copyOf(source))
	}
}

// DeleteVariantArrayElement releases and clears the slot at index. The slot
// itself stays until CompactVariantArray.
// Complexity: O(1)
func (a *Array[T]) DeleteVariantArrayElement(index int) {
	a.drop(index)
	var zero T
	a.vals[index] = zero
}

// CompactVariantArray removes the slot at index.
// Complexity: O(len-index)
func (a *Array[T]) CompactVariantArray(index int) {
	copy(a.vals[index:], a.vals[index+1:])
	var zero T
	a.vals[len(a.vals)-1] = zero
	a.vals = a.vals[:len(a.vals)-1]
}

// OverwriteVariantArrayElement releases the slot at target, then replaces it
// with a copy of the slot at source.
// Complexity: O(1) plus the clone
func (a *Array[T]) OverwriteVariantArrayElement(target, source int) {
	a.drop(target)
	a.vals[target] = a.copyOf(source)
}

// Group fans variant hooks out to several Stateful values so an entity with
// more than one array registers once.
type Group struct {
	members []Stateful
}

// NewGroup returns a group over members.
func NewGroup(members ...Stateful) *Group {
	return &Group{members: members}
}

// Add appends s to the group.
func (g *Group) Add(s Stateful) { g.members = append(g.members, s) }

// VariantArraySize returns the size of the first member, -1 when empty.
func (g *Group) VariantArraySize() int {
	if len(g.members) == 0 {
		return -1
	}
	return g.members[0].VariantArraySize()
}

// ExtendVariantArraySize extends every member.
func (g *Group) ExtendVariantArraySize(initSize, count, source int) {
	for _, s := range g.members {
		s.ExtendVariantArraySize(initSize, count, source)
	}
}

// DeleteVariantArrayElement releases the slot at index in every member.
func (g *Group) DeleteVariantArrayElement(index int) {
	for _, s := range g.members {
		s.DeleteVariantArrayElement(index)
	}
}

// CompactVariantArray compacts every member.
func (g *Group) CompactVariantArray(index int) {
	for _, s := range g.members {
		s.CompactVariantArray(index)
	}
}

// OverwriteVariantArrayElement overwrites target with source in every member,
// in member order.
func (g *Group) OverwriteVariantArrayElement(target, source int) {
	for _, s := range g.members {
		s.OverwriteVariantArrayElement(target, source)
	}
}
