// Package builder_test contains functional tests for the network
// constructors: element counts, resulting bus views, determinism and errors.
package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netmodel/builder"
	"github.com/katalvlaran/netmodel/network"
)

func build(t *testing.T, bopts []builder.BuilderOption, cons ...builder.Constructor) *network.Network {
	t.Helper()
	n, err := builder.BuildNetwork(context.Background(), nil, bopts, cons...)
	require.NoError(t, err)
	return n
}

func voltageLevel(t *testing.T, n *network.Network, id string) *network.VoltageLevel {
	t.Helper()
	vl, ok := n.VoltageLevel(id)
	require.True(t, ok, "voltage level %s", id)
	return vl
}

func TestNodeBreakerRing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		sections     int
		wantSwitches int
	}{
		{2, 5},
		{4, 12},
	}
	for _, tc := range tests {
		n := build(t, nil, builder.NodeBreakerRing("R", tc.sections))
		vl := voltageLevel(t, n, "R")

		assert.Equal(t, network.NodeBreaker, vl.TopologyKind())
		assert.Len(t, vl.Switches(), tc.wantSwitches)
		assert.Len(t, vl.Connectables(), 2*tc.sections)
		assert.Len(t, vl.Nodes(), 3*tc.sections)

		buses, err := vl.Buses(ctx)
		require.NoError(t, err)
		require.Len(t, buses, 1, "closed ring is one bus")
		assert.Equal(t, "R_0", buses[0].ID())
		terms, err := buses[0].Terminals()
		require.NoError(t, err)
		assert.Len(t, terms, 2*tc.sections)
	}
}

func TestNodeBreakerRing_OpenCouplersSplitSections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := build(t, nil, builder.NodeBreakerRing("R", 3))

	for _, id := range []string{"R_C0", "R_C1", "R_C2"} {
		sw, ok := n.Switch(id)
		require.True(t, ok)
		require.NoError(t, sw.SetOpen(ctx, true))
	}
	buses, err := voltageLevel(t, n, "R").Buses(ctx)
	require.NoError(t, err)
	assert.Len(t, buses, 3)
}

func TestBusBreakerChain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := build(t, []builder.BuilderOption{builder.WithConstantPower(5)}, builder.BusBreakerChain("C", 3))
	vl := voltageLevel(t, n, "C")

	assert.Len(t, vl.ConfiguredBuses(), 3)
	assert.Len(t, vl.Switches(), 2)

	buses, err := vl.Buses(ctx)
	require.NoError(t, err)
	require.Len(t, buses, 1)
	assert.Equal(t, "C_0", buses[0].ID())

	load, ok := n.Connectable("C_L2")
	require.True(t, ok)
	term, err := load.Terminal(network.One)
	require.NoError(t, err)
	p, err := term.P(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p)
	connected, err := term.IsConnected(ctx)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestLinksAndComponents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := build(t, nil,
		builder.NodeBreakerRing("R", 2),
		builder.BusBreakerChain("A", 1),
		builder.BusBreakerChain("B", 1),
		builder.Line("L1", builder.BayEnd("R", 0), builder.BusEnd("A", "A_B0")),
		builder.HvdcLink("DC", builder.BusEnd("A", "A_B0"), builder.BusEnd("B", "B_B0")),
	)

	_, ok := n.Switch("L1_BR1")
	assert.True(t, ok, "bay breaker created")

	connected, err := n.ConnectedComponents(ctx)
	require.NoError(t, err)
	assert.Len(t, connected, 1)

	synchronous, err := n.SynchronousComponents(ctx)
	require.NoError(t, err)
	require.Len(t, synchronous, 2)
	assert.Equal(t, 2, synchronous[0].Size())
	assert.Equal(t, 1, synchronous[1].Size())
}

func TestRandomSwitchStates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	states := func(n *network.Network) []bool {
		var out []bool
		for _, vl := range n.VoltageLevels() {
			for _, sw := range vl.Switches() {
				open, err := sw.IsOpen(ctx)
				require.NoError(t, err)
				out = append(out, open)
			}
		}
		return out
	}
	seeded := []builder.BuilderOption{builder.WithSeed(42)}

	a := states(build(t, seeded, builder.NodeBreakerRing("R", 5), builder.RandomSwitchStates(0.5)))
	b := states(build(t, seeded, builder.NodeBreakerRing("R", 5), builder.RandomSwitchStates(0.5)))
	assert.Equal(t, a, b, "same seed, same draw")

	for _, open := range states(build(t, seeded, builder.NodeBreakerRing("R", 3), builder.RandomSwitchStates(1))) {
		assert.True(t, open)
	}
	for _, open := range states(build(t, seeded, builder.NodeBreakerRing("R", 3), builder.RandomSwitchStates(0))) {
		assert.False(t, open)
	}
}

func TestVariants(t *testing.T) {
	t.Parallel()
	n := build(t, nil, builder.BusBreakerChain("C", 1), builder.Variants("V1", "V2"))
	assert.ElementsMatch(t, []string{"InitialState", "V1", "V2"}, n.Variants().VariantIDs())
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cons []builder.Constructor
		want []error
	}{
		{"ring too small", []builder.Constructor{builder.NodeBreakerRing("R", 1)}, []error{builder.ErrTooFewElements}},
		{"chain too small", []builder.Constructor{builder.BusBreakerChain("C", 0)}, []error{builder.ErrTooFewElements}},
		{"empty id", []builder.Constructor{builder.BusBreakerChain("", 1)}, []error{builder.ErrConstructFailed}},
		{"no rng", []builder.Constructor{builder.RandomSwitchStates(0.5)}, []error{builder.ErrNeedRandSource}},
		{"bad probability", []builder.Constructor{builder.RandomSwitchStates(1.5)}, []error{builder.ErrInvalidProbability}},
		{"unknown level", []builder.Constructor{builder.Line("L", builder.BusEnd("X", "X_B0"), builder.BusEnd("Y", "Y_B0"))}, []error{builder.ErrUnknownVoltageLevel}},
		{"no variants", []builder.Constructor{builder.Variants()}, []error{builder.ErrTooFewElements}},
		{"nil constructor", []builder.Constructor{nil}, []error{builder.ErrConstructFailed}},
		{
			"duplicate id",
			[]builder.Constructor{builder.BusBreakerChain("C", 1), builder.BusBreakerChain("C", 1)},
			[]error{builder.ErrConstructFailed, network.ErrDuplicateID},
		},
		{
			"bay on bus-breaker level",
			[]builder.Constructor{builder.BusBreakerChain("C", 1), builder.Line("L", builder.BayEnd("C", 0), builder.BusEnd("C", "C_B0"))},
			[]error{builder.ErrConstructFailed},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := builder.BuildNetwork(context.Background(), nil, nil, tc.cons...)
			require.Error(t, err)
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := network.New("N")
	require.NoError(t, builder.Apply(ctx, n, []builder.BuilderOption{builder.WithExcelColumnIDs()}, builder.BusBreakerChain("C", 2)))
	_, ok := n.Connectable("C_LB")
	assert.True(t, ok)

	assert.ErrorIs(t, builder.Apply(ctx, nil, nil), builder.ErrConstructFailed)
}
