package variant

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const unset = -1

// Context resolves the working variant of a caller.
//
// Implementations do not check that an index is below the variant count;
// Array does at access time.
type Context interface {
	// Index returns the bound index or ErrUnsetContext.
	Index(ctx context.Context) (int, error)
	// SetIndex binds i for the caller.
	SetIndex(ctx context.Context, i int) error
	// Reset clears the caller's binding.
	Reset(ctx context.Context)
	// ResetIfEquals clears every binding equal to i.
	ResetIfEquals(i int)
	// Compact shifts every binding above removed down by one.
	Compact(removed int)
}

// SharedContext is a single binding shared by all callers.
type SharedContext struct {
	index atomic.Int64
}

// NewSharedContext returns a context bound to index (unset when negative).
func NewSharedContext(index int) *SharedContext {
	c := &SharedContext{}
	if index < 0 {
		index = unset
	}
	c.index.Store(int64(index))
	return c
}

// Index returns the shared working variant, ErrUnsetContext when none.
// Complexity: O(1)
func (c *SharedContext) Index(context.Context) (int, error) {
	i := int(c.index.Load())
	if i == unset {
		return 0, ErrUnsetContext
	}
	return i, nil
}

// SetIndex binds every caller to variant i. The Manager checks the upper
// bound; a negative i fails with ErrVariantOutOfRange.
func (c *SharedContext) SetIndex(_ context.Context, i int) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrVariantOutOfRange, i)
	}
	c.index.Store(int64(i))
	return nil
}

// Reset unbinds the shared variant.
func (c *SharedContext) Reset(context.Context) { c.index.Store(unset) }

// ResetIfEquals unbinds the shared variant when it is i.
func (c *SharedContext) ResetIfEquals(i int) { c.index.CompareAndSwap(int64(i), unset) }

// Compact shifts the binding down by one when it points above removed.
func (c *SharedContext) Compact(removed int) { compactSlot(&c.index, removed) }

// compactSlot decrements slot when it points above removed.
func compactSlot(slot *atomic.Int64, removed int) {
	for {
		cur := slot.Load()
		if cur == unset || cur <= int64(removed) {
			return
		}
		if slot.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Session is the execution-scoped binding slot of an ExecutionContext.
// Carry it with WithSession; Close it when the execution ends.
type Session struct {
	id    uuid.UUID
	index atomic.Int64
	owner *ExecutionContext
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Close unregisters the session from its context. Further reads through it
// fail with ErrUnsetContext.
func (s *Session) Close() {
	if s.owner == nil {
		return
	}
	s.owner.mu.Lock()
	delete(s.owner.sessions, s)
	s.owner.mu.Unlock()
	s.index.Store(unset)
}

type sessionKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session carried by ctx, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// ExecutionContext keeps one independent binding per Session.
type ExecutionContext struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// NewExecutionContext returns an execution-bound context without sessions.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{sessions: make(map[*Session]struct{})}
}

// NewSession registers a new, unbound session.
func (c *ExecutionContext) NewSession() *Session {
	s := &Session{id: uuid.New(), owner: c}
	s.index.Store(unset)
	c.mu.Lock()
	c.sessions[s] = struct{}{}
	c.mu.Unlock()
	return s
}

// Sessions returns the number of open sessions.
func (c *ExecutionContext) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *ExecutionContext) session(ctx context.Context) (*Session, error) {
	s, ok := SessionFrom(ctx)
	if !ok || s.owner != c {
		return nil, ErrNoSession
	}
	return s, nil
}

// Index returns the variant bound to the session carried by ctx. Without a
// session, or with an unbound one, it fails with ErrUnsetContext.
// Complexity: O(1)
func (c *ExecutionContext) Index(ctx context.Context) (int, error) {
	s, err := c.session(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnsetContext, err)
	}
	i := int(s.index.Load())
	if i == unset {
		return 0, ErrUnsetContext
	}
	return i, nil
}

// SetIndex binds the session carried by ctx to variant i.
func (c *ExecutionContext) SetIndex(ctx context.Context, i int) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrVariantOutOfRange, i)
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	s.index.Store(int64(i))
	return nil
}

// Reset unbinds the session carried by ctx, if any.
func (c *ExecutionContext) Reset(ctx context.Context) {
	if s, err := c.session(ctx); err == nil {
		s.index.Store(unset)
	}
}

// ResetIfEquals unbinds every session bound to i.
// Complexity: O(sessions)
func (c *ExecutionContext) ResetIfEquals(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s := range c.sessions {
		s.index.CompareAndSwap(int64(i), unset)
	}
}

// Compact shifts every session bound above removed down by one.
// Complexity: O(sessions)
func (c *ExecutionContext) Compact(removed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s := range c.sessions {
		compactSlot(&s.index, removed)
	}
}
