package network_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/netmodel/network"
	"github.com/stretchr/testify/require"
)

func newVL(t *testing.T, n *network.Network, id string, kind network.TopologyKind) *network.VoltageLevel {
	t.Helper()
	s, err := n.NewSubstation("S_" + id)
	require.NoError(t, err)
	vl, err := s.NewVoltageLevel(network.VoltageLevelSpec{ID: id, Kind: kind, NominalV: 400})
	require.NoError(t, err)
	return vl
}

func inject(t *testing.T, vl *network.VoltageLevel, id string, kind network.ConnectableKind, loc network.Location, connected bool) *network.Connectable {
	t.Helper()
	c, err := vl.NewInjection(context.Background(), network.InjectionSpec{ID: id, Kind: kind, Location: loc, Connected: connected})
	require.NoError(t, err)
	return c
}

func load(t *testing.T, vl *network.VoltageLevel, id string, node int) *network.Connectable {
	t.Helper()
	return inject(t, vl, id, network.Load, network.AtNode(node), false)
}

func nodeSwitch(t *testing.T, vl *network.VoltageLevel, id string, kind network.SwitchKind, n1, n2 int, open bool) *network.Switch {
	t.Helper()
	sw, err := vl.NewSwitch(network.SwitchSpec{ID: id, Kind: kind, Node1: n1, Node2: n2, Open: open})
	require.NoError(t, err)
	return sw
}

func busSwitch(t *testing.T, vl *network.VoltageLevel, id, b1, b2 string, open bool) *network.Switch {
	t.Helper()
	sw, err := vl.NewSwitch(network.SwitchSpec{ID: id, Kind: network.Breaker, Bus1: b1, Bus2: b2, Open: open})
	require.NoError(t, err)
	return sw
}

func configuredBuses(t *testing.T, vl *network.VoltageLevel, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := vl.NewConfiguredBus(id)
		require.NoError(t, err)
	}
}

func terminal(t *testing.T, c *network.Connectable, side network.Side) *network.Terminal {
	t.Helper()
	term, err := c.Terminal(side)
	require.NoError(t, err)
	return term
}

// busIDs maps each bus id to the ids of its terminals' connectables.
func busIDs(t *testing.T, buses []*network.CalculatedBus) map[string][]string {
	t.Helper()
	out := make(map[string][]string, len(buses))
	for _, b := range buses {
		terms, err := b.Terminals()
		require.NoError(t, err)
		ids := []string{}
		for _, term := range terms {
			ids = append(ids, term.Connectable().ID())
		}
		out[b.ID()] = ids
	}
	return out
}

func isOpen(t *testing.T, ctx context.Context, sw *network.Switch) bool {
	t.Helper()
	open, err := sw.IsOpen(ctx)
	require.NoError(t, err)
	return open
}
