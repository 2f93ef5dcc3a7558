package variant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/netmodel/internal/ctxlog"
	"github.com/katalvlaran/netmodel/metrics"
)

// InitialVariantID names the variant every network starts with.
const InitialVariantID = "InitialState"

// Variant operation labels reported to metrics.
const (
	OpCreate    = "create"
	OpClone     = "clone"
	OpOverwrite = "overwrite"
	OpRemove    = "remove"
)

// Manager is the variant store of a network. It owns the variant count N,
// the variant ids and the working variant Context, and applies every
// structural variant operation to all registered Stateful entities.
//
// Stateful values are tracked by identity and must be comparable (pointers).
type Manager struct {
	mu       sync.RWMutex
	ids      []string
	byID     map[string]int
	entities []Stateful
	pos      map[Stateful]int

	vc    Context
	multi bool

	logger  *slog.Logger
	metrics *metrics.Registry
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger. Panics on nil.
func WithLogger(l *slog.Logger) ManagerOption {
	if l == nil {
		panic("variant: WithLogger(nil)")
	}
	return func(m *Manager) { m.logger = l }
}

// WithMetrics reports variant operations to r; nil disables reporting.
func WithMetrics(r *metrics.Registry) ManagerOption {
	return func(m *Manager) { m.metrics = r }
}

// WithMultiExecutionAccess starts the manager with an ExecutionContext.
func WithMultiExecutionAccess(allow bool) ManagerOption {
	return func(m *Manager) { m.multi = allow }
}

// NewManager returns a manager holding only the initial variant. In shared
// mode the initial variant is the working variant.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		ids:    []string{InitialVariantID},
		byID:   map[string]int{InitialVariantID: 0},
		pos:    make(map[Stateful]int),
		logger: ctxlog.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.vc = newContext(m.multi)
	m.metrics.SetVariants(1)
	return m
}

func newContext(multi bool) Context {
	if multi {
		return NewExecutionContext()
	}
	return NewSharedContext(0)
}

// Size returns the number of variants N.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

// VariantIDs returns variant ids in index order.
func (m *Manager) VariantIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// VariantIndex returns the index of id.
func (m *Manager) VariantIndex(id string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrVariantNotFound, id)
	}
	return i, nil
}

// VariantID returns the id of the variant at index.
func (m *Manager) VariantID(index int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.ids) {
		return "", fmt.Errorf("%w: %d", ErrVariantOutOfRange, index)
	}
	return m.ids[index], nil
}

// Context returns the active working variant context.
func (m *Manager) Context() Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vc
}

// Index returns the working variant index of the caller. It implements
// Resolver.
func (m *Manager) Index(ctx context.Context) (int, error) {
	return m.Context().Index(ctx)
}

// SetWorkingVariant binds the variant id for the caller.
func (m *Manager) SetWorkingVariant(ctx context.Context, id string) error {
	i, err := m.VariantIndex(id)
	if err != nil {
		return err
	}
	return m.Context().SetIndex(ctx, i)
}

// WorkingVariantID returns the id of the caller's working variant.
func (m *Manager) WorkingVariantID(ctx context.Context) (string, error) {
	i, err := m.Index(ctx)
	if err != nil {
		return "", err
	}
	return m.VariantID(i)
}

// AllowMultiExecutionAccess switches between a SharedContext bound to the
// initial variant and an ExecutionContext without sessions. Existing
// bindings are dropped.
func (m *Manager) AllowMultiExecutionAccess(allow bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.multi = allow
	m.vc = newContext(allow)
	m.logger.Debug("variant context switched", "multi_execution", allow)
}

// IsMultiExecutionAccessAllowed reports the context strategy.
func (m *Manager) IsMultiExecutionAccessAllowed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.multi
}

// NewSession opens an execution-scoped binding slot. It fails with
// ErrSingleExecution in shared mode.
func (m *Manager) NewSession() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ec, ok := m.vc.(*ExecutionContext)
	if !ok {
		return nil, ErrSingleExecution
	}
	return ec.NewSession(), nil
}

// Register adds s to the entities driven by variant operations. Its size
// must equal Size(). Registering twice is a no-op.
func (m *Manager) Register(s Stateful) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pos[s]; ok {
		return nil
	}
	if got := s.VariantArraySize(); got != len(m.ids) {
		return fmt.Errorf("%w: %d != %d", ErrSizeMismatch, got, len(m.ids))
	}
	m.pos[s] = len(m.entities)
	m.entities = append(m.entities, s)
	m.metrics.SetStatefulEntities(len(m.entities))
	return nil
}

// Unregister removes s; unknown values are ignored.
func (m *Manager) Unregister(s Stateful) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.pos[s]
	if !ok {
		return
	}
	last := len(m.entities) - 1
	if i != last {
		m.entities[i] = m.entities[last]
		m.pos[m.entities[i]] = i
	}
	m.entities[last] = nil
	m.entities = m.entities[:last]
	delete(m.pos, s)
	m.metrics.SetStatefulEntities(len(m.entities))
}

// Entities returns the number of registered Stateful values.
func (m *Manager) Entities() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// ForEachStateful calls fn for every registered entity until fn returns false.
func (m *Manager) ForEachStateful(fn func(Stateful) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.entities {
		if !fn(s) {
			return
		}
	}
}
