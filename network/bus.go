package network

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/netmodel/variant"
)

// Bus is a view bus: a configured bus or a calculated one.
type Bus interface {
	ID() string
	VoltageLevel() *VoltageLevel
	Terminals() ([]*Terminal, error)
}

// CalculatedBus groups terminals joined by closed switches. It exists only
// in a cache: once the cache is invalidated every accessor but ID and
// VoltageLevel fails with ErrBusInvalidated.
type CalculatedBus struct {
	id        string
	vl        *VoltageLevel
	nodes     []int
	buses     []*ConfiguredBus
	terminals []*Terminal
	busbar    bool
	valid     bool
}

// ID returns the bus id: the level id and the lowest node (node-breaker)
// or the bus position in the view (bus-breaker). It stays readable after
// invalidation.
func (b *CalculatedBus) ID() string { return b.id }

// VoltageLevel returns the voltage level of the bus.
func (b *CalculatedBus) VoltageLevel() *VoltageLevel { return b.vl }

// Valid reports whether the bus still belongs to a live cache.
func (b *CalculatedBus) Valid() bool { return b.valid }

func (b *CalculatedBus) check() error {
	if !b.valid {
		return fmt.Errorf("%w: %s", ErrBusInvalidated, b.id)
	}
	return nil
}

// Terminals returns the terminals of the bus.
func (b *CalculatedBus) Terminals() ([]*Terminal, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return append([]*Terminal(nil), b.terminals...), nil
}

// Nodes returns the nodes merged into the bus (node-breaker levels).
func (b *CalculatedBus) Nodes() ([]int, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return append([]int(nil), b.nodes...), nil
}

// ConfiguredBuses returns the configured buses merged into the bus
// (bus-breaker levels).
func (b *CalculatedBus) ConfiguredBuses() ([]*ConfiguredBus, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return append([]*ConfiguredBus(nil), b.buses...), nil
}

// HasBusbarSection reports whether a busbar section terminal is on the bus.
func (b *CalculatedBus) HasBusbarSection() (bool, error) {
	if err := b.check(); err != nil {
		return false, err
	}
	return b.busbar, nil
}

func (b *CalculatedBus) String() string { return b.id }

func (b *CalculatedBus) invalidate() {
	b.valid = false
	b.terminals = nil
	b.nodes = nil
	b.buses = nil
}

// busCache is one memoized bus view of one variant.
type busCache struct {
	built  bool
	buses  []*CalculatedBus
	byNode map[int]*CalculatedBus
	byBus  map[*ConfiguredBus]*CalculatedBus
}

func (c *busCache) invalidate() {
	for _, b := range c.buses {
		b.invalidate()
	}
	*c = busCache{}
}

func (c *busCache) add(b *CalculatedBus) {
	b.valid = true
	c.buses = append(c.buses, b)
	for _, node := range b.nodes {
		if c.byNode == nil {
			c.byNode = make(map[int]*CalculatedBus)
		}
		c.byNode[node] = b
	}
	for _, cb := range b.buses {
		if c.byBus == nil {
			c.byBus = make(map[*ConfiguredBus]*CalculatedBus)
		}
		c.byBus[cb] = b
	}
}

type busState struct {
	V     float64
	Angle float64
}

// ConfiguredBus is a named bus of a bus-breaker voltage level. Its identity
// is the same in every variant; its voltage and angle are per variant.
type ConfiguredBus struct {
	id        string
	vl        *VoltageLevel
	vertex    int
	terminals []*Terminal
	state     *variant.Array[busState]
	removed   bool
}

// ID returns the configured bus id.
func (b *ConfiguredBus) ID() string { return b.id }

// VoltageLevel returns the voltage level of the bus.
func (b *ConfiguredBus) VoltageLevel() *VoltageLevel { return b.vl }

// Terminals returns the terminals attached to the bus, connected or not.
func (b *ConfiguredBus) Terminals() ([]*Terminal, error) {
	if b.removed {
		return nil, fmt.Errorf("%w: bus %q", ErrRemoved, b.id)
	}
	return append([]*Terminal(nil), b.terminals...), nil
}

// ConnectedTerminals returns the terminals connected to the bus in the
// working variant.
func (b *ConfiguredBus) ConnectedTerminals(ctx context.Context) ([]*Terminal, error) {
	var out []*Terminal
	for _, t := range b.terminals {
		st, err := t.state.Get(ctx)
		if err != nil {
			return nil, err
		}
		if st.Connected {
			out = append(out, t)
		}
	}
	return out, nil
}

// V returns the voltage magnitude of the working variant (NaN when unset).
func (b *ConfiguredBus) V(ctx context.Context) (float64, error) {
	st, err := b.state.Get(ctx)
	return st.V, err
}

// SetV sets the voltage magnitude of the working variant.
func (b *ConfiguredBus) SetV(ctx context.Context, v float64) error {
	if v < 0 {
		return fmt.Errorf("network: bus %q: negative voltage %v", b.id, v)
	}
	var old float64
	err := b.state.Update(ctx, func(s *busState) { old, s.V = s.V, v })
	if err == nil {
		b.vl.network.notifyUpdate(ctx, b, "v", old, v)
	}
	return err
}

// Angle returns the voltage angle of the working variant (NaN when unset).
func (b *ConfiguredBus) Angle(ctx context.Context) (float64, error) {
	st, err := b.state.Get(ctx)
	return st.Angle, err
}

// SetAngle sets the voltage angle of the working variant.
func (b *ConfiguredBus) SetAngle(ctx context.Context, angle float64) error {
	var old float64
	err := b.state.Update(ctx, func(s *busState) { old, s.Angle = s.Angle, angle })
	if err == nil {
		b.vl.network.notifyUpdate(ctx, b, "angle", old, angle)
	}
	return err
}

func newBusState() busState { return busState{V: math.NaN(), Angle: math.NaN()} }
