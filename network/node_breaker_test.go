package network_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/netmodel/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeBreaker_BusViewFollowsSwitches(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	load(t, vl, "T1", 1)
	load(t, vl, "T2", 2)
	load(t, vl, "T3", 3)
	nodeSwitch(t, vl, "S1", network.Breaker, 1, 2, false)
	s2 := nodeSwitch(t, vl, "S2", network.Breaker, 2, 3, true)

	buses, err := vl.Buses(ctx)
	require.NoError(t, err)
	require.Len(t, buses, 2)
	assert.Equal(t, map[string][]string{
		"VL_1": {"T1", "T2"},
		"VL_3": {"T3"},
	}, busIDs(t, buses))

	require.NoError(t, s2.SetOpen(ctx, false))

	_, err = buses[0].Terminals()
	require.ErrorIs(t, err, network.ErrBusInvalidated)
	assert.False(t, buses[0].Valid())

	buses, err = vl.Buses(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"VL_1": {"T1", "T2", "T3"}}, busIDs(t, buses))
}

func TestNodeBreaker_ViewIsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	load(t, vl, "L", 0)

	first, err := vl.Buses(ctx)
	require.NoError(t, err)
	again, err := vl.Buses(ctx)
	require.NoError(t, err)
	assert.Same(t, first[0], again[0])

	vl.InvalidateCache(ctx, false)
	rebuilt, err := vl.Buses(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first[0], rebuilt[0])
	assert.Equal(t, first[0].ID(), rebuilt[0].ID())
}

// feeder builds busbar BBS on node 0, disconnector D 0-1, breaker BR 1-2
// (open) and load L on node 2.
func feeder(t *testing.T) (*network.VoltageLevel, *network.Connectable, *network.Switch) {
	t.Helper()
	return feederIn(t, network.New("n"))
}

func feederIn(t *testing.T, n *network.Network) (*network.VoltageLevel, *network.Connectable, *network.Switch) {
	t.Helper()
	vl := newVL(t, n, "VL", network.NodeBreaker)
	inject(t, vl, "BBS", network.BusbarSection, network.AtNode(0), false)
	nodeSwitch(t, vl, "D", network.Disconnector, 0, 1, false)
	br := nodeSwitch(t, vl, "BR", network.Breaker, 1, 2, true)
	return vl, load(t, vl, "L", 2), br
}

func TestNodeBreaker_ConnectDisconnect(t *testing.T) {
	ctx := context.Background()
	_, l, br := feeder(t)
	term := terminal(t, l, network.One)

	connected, err := term.IsConnected(ctx)
	require.NoError(t, err)
	assert.False(t, connected)

	done, err := l.Connect(ctx, nil)
	require.NoError(t, err)
	assert.True(t, done)
	assert.False(t, isOpen(t, ctx, br))
	connected, err = term.IsConnected(ctx)
	require.NoError(t, err)
	assert.True(t, connected)

	done, err = l.Connect(ctx, nil)
	require.NoError(t, err)
	assert.False(t, done, "already connected")

	done, err = l.Disconnect(ctx, func(*network.Switch) bool { return false })
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, isOpen(t, ctx, br))

	done, err = l.Disconnect(ctx, nil)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, isOpen(t, ctx, br))
}

func TestNodeBreaker_ConnectRefusesInoperableSwitch(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	inject(t, vl, "BBS", network.BusbarSection, network.AtNode(0), false)
	d := nodeSwitch(t, vl, "D", network.Disconnector, 0, 1, true)
	l := load(t, vl, "L", 1)

	done, err := l.Connect(ctx, nil)
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, isOpen(t, ctx, d))

	done, err = l.Connect(ctx, network.AnySwitch)
	require.NoError(t, err)
	assert.True(t, done)
	assert.False(t, isOpen(t, ctx, d))
}

func TestNodeBreaker_ConnectPrefersFewestOpenSwitches(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	inject(t, vl, "BBS1", network.BusbarSection, network.AtNode(0), false)
	inject(t, vl, "BBS2", network.BusbarSection, network.AtNode(10), false)
	l := load(t, vl, "L", 5)
	// two open breakers on the two-edge path to BBS2
	far1 := nodeSwitch(t, vl, "F1", network.Breaker, 5, 6, true)
	far2 := nodeSwitch(t, vl, "F2", network.Breaker, 6, 10, true)
	// one open breaker on the three-edge path to BBS1
	near := nodeSwitch(t, vl, "N", network.Breaker, 5, 1, true)
	require.NoError(t, vl.NewInternalConnection(1, 2))
	nodeSwitch(t, vl, "D", network.Disconnector, 2, 0, false)
	assert.Equal(t, [][2]int{{1, 2}}, vl.InternalConnections())

	done, err := l.Connect(ctx, nil)
	require.NoError(t, err)
	require.True(t, done)
	assert.False(t, isOpen(t, ctx, near))
	assert.True(t, isOpen(t, ctx, far1))
	assert.True(t, isOpen(t, ctx, far2))
}

func TestNodeBreaker_DisconnectOpensEveryPath(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	inject(t, vl, "BBS1", network.BusbarSection, network.AtNode(0), false)
	inject(t, vl, "BBS2", network.BusbarSection, network.AtNode(1), false)
	l := load(t, vl, "L", 2)
	b1 := nodeSwitch(t, vl, "B1", network.Breaker, 2, 0, false)
	b2 := nodeSwitch(t, vl, "B2", network.Breaker, 2, 1, false)

	done, err := l.Disconnect(ctx, nil)
	require.NoError(t, err)
	require.True(t, done)
	assert.True(t, isOpen(t, ctx, b1))
	assert.True(t, isOpen(t, ctx, b2))
}

func TestNodeBreaker_AttachErrorsLeaveGraphUntouched(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	s, err := n.NewSubstation("S")
	require.NoError(t, err)
	vl, err := s.NewVoltageLevel(network.VoltageLevelSpec{ID: "VL", Kind: network.NodeBreaker, NodeIndexLimit: 10})
	require.NoError(t, err)
	load(t, vl, "L1", 3)
	before := vl.Nodes()

	tests := []struct {
		name string
		loc  network.Location
		want error
	}{
		{"bus location", network.AtBus("B"), network.ErrIncompatibleTerminal},
		{"beyond limit", network.AtNode(10), network.ErrInvalidNode},
		{"negative", network.AtNode(-1), network.ErrInvalidNode},
		{"occupied", network.AtNode(3), network.ErrNodeOccupied},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := vl.NewInjection(ctx, network.InjectionSpec{ID: "X", Kind: network.Load, Location: tc.loc})
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, vl.Nodes())
			assert.False(t, n.Index().Contains("X"))
			assert.Len(t, vl.Connectables(), 1)
		})
	}
}

func TestNodeBreaker_DetachRemovesIsolatedNodes(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	l1 := load(t, vl, "L1", 4)
	load(t, vl, "L2", 5)
	nodeSwitch(t, vl, "S", network.Breaker, 5, 6, false)
	assert.Equal(t, []int{4, 5, 6}, vl.Nodes())

	require.NoError(t, l1.Remove(ctx))
	assert.Equal(t, []int{5, 6}, vl.Nodes())

	term := terminal(t, l1, network.One)
	assert.False(t, term.Attached())
	assert.Equal(t, network.AtNode(4), term.Location())
	_, err := term.IsConnected(ctx)
	require.ErrorIs(t, err, network.ErrTerminalDetached)
}

func TestNodeBreaker_RetainedSwitchKeepsBusBreakerView(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	load(t, vl, "L1", 0)
	load(t, vl, "L2", 1)
	sw, err := vl.NewSwitch(network.SwitchSpec{ID: "R", Kind: network.Breaker, Node1: 0, Node2: 1, Retained: true})
	require.NoError(t, err)
	assert.True(t, sw.Retained())

	bbv, err := vl.BusBreakerBuses(ctx)
	require.NoError(t, err)
	require.Len(t, bbv, 2)
	buses, err := vl.Buses(ctx)
	require.NoError(t, err)
	require.Len(t, buses, 1)

	require.NoError(t, sw.SetOpen(ctx, true))
	_, err = bbv[0].Terminals()
	require.NoError(t, err, "bus-breaker view survives a retained switch")
	_, err = buses[0].Terminals()
	require.ErrorIs(t, err, network.ErrBusInvalidated)

	require.NoError(t, sw.SetRetained(ctx, false))
	_, err = bbv[0].Terminals()
	require.ErrorIs(t, err, network.ErrBusInvalidated)
}

func TestNodeBreaker_IsolatedTerminalHasBusButIsNotConnected(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	l := load(t, vl, "L", 7)
	term := terminal(t, l, network.One)

	bus, err := term.Bus(ctx)
	require.NoError(t, err)
	require.NotNil(t, bus)
	assert.Equal(t, "VL_7", bus.ID())
	hasBusbar, err := bus.HasBusbarSection()
	require.NoError(t, err)
	assert.False(t, hasBusbar)

	connected, err := term.IsConnected(ctx)
	require.NoError(t, err)
	assert.False(t, connected)
}
