package network_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/netmodel/network"
	"github.com/katalvlaran/netmodel/referrer"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type terminalWatcher struct {
	removed  []*network.Terminal
	replaced [][2]*network.Terminal
}

func (w *terminalWatcher) OnReferencedRemoval(t *network.Terminal) { w.removed = append(w.removed, t) }

func (w *terminalWatcher) OnReferencedReplacement(old, replacement *network.Terminal) {
	w.replaced = append(w.replaced, [2]*network.Terminal{old, replacement})
}

func TestConnectable_RemoveCascades(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.BusBreaker)
	configuredBuses(t, vl, "B")
	l := inject(t, vl, "L", network.Load, network.AtBus("B"), true)
	g := inject(t, vl, "G", network.Generator, network.AtBus("B"), true)
	lt := terminal(t, l, network.One)
	gt := terminal(t, g, network.One)

	rp := g.RegulatingPoint()
	require.NotNil(t, rp)
	assert.True(t, rp.IsLocal())
	require.NoError(t, rp.SetTerminal(ctx, lt))
	assert.Same(t, lt, rp.Terminal())

	w := &terminalWatcher{}
	g.Refer(lt, w)
	assert.Equal(t, 2, n.Referrers().Len(lt))

	require.NoError(t, l.Remove(ctx))
	assert.Equal(t, []*network.Terminal{lt}, w.removed)
	assert.Same(t, gt, rp.Terminal(), "falls back to the local terminal")
	assert.Equal(t, 0, n.Referrers().Len(lt))
	assert.True(t, l.Removed())
	_, ok := n.Connectable("L")
	assert.False(t, ok)
	terms, err := vl.ConfiguredBuses()[0].Terminals()
	require.NoError(t, err)
	assert.Equal(t, []*network.Terminal{gt}, terms)

	require.NoError(t, g.Remove(ctx))
	assert.Nil(t, rp.Terminal())
	assert.Equal(t, 0, n.Referrers().Targets(), "no registration outlives its owner")
	assert.Empty(t, vl.Connectables())
	require.ErrorIs(t, g.Remove(ctx), network.ErrRemoved)
}

func TestConnectable_RemoveReleasesVariantState(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)
	before := n.Variants().Entities()
	l := load(t, vl, "L", 0)
	assert.Equal(t, before+1, n.Variants().Entities())

	require.NoError(t, l.Remove(ctx))
	assert.Equal(t, before, n.Variants().Entities())
}

func TestConnectable_MoveTerminalRepointsReferrers(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl1 := newVL(t, n, "VL1", network.NodeBreaker)
	vl2 := newVL(t, n, "VL2", network.BusBreaker)
	configuredBuses(t, vl2, "B")
	line, err := n.NewBranch(ctx, network.BranchSpec{
		ID:   "LINE",
		Kind: network.Line,
		End1: network.TerminalSpec{VoltageLevel: vl1, Location: network.AtNode(0)},
		End2: network.TerminalSpec{VoltageLevel: vl2, Location: network.AtBus("B"), Connected: true},
	})
	require.NoError(t, err)
	t1 := terminal(t, line, network.One)
	require.NoError(t, t1.SetP(ctx, 12.5))

	g := inject(t, vl2, "G", network.Generator, network.AtBus("B"), true)
	require.NoError(t, g.RegulatingPoint().SetTerminal(ctx, t1))
	w := &terminalWatcher{}
	referrer.Bind(&referrer.Scope{}, n.Referrers(), t1, w)

	moved, err := line.MoveTerminal(ctx, network.One, network.TerminalSpec{VoltageLevel: vl1, Location: network.AtNode(3)})
	require.NoError(t, err)
	assert.False(t, t1.Attached())
	assert.Equal(t, network.AtNode(3), moved.Location())
	assert.Equal(t, []int{3}, vl1.Nodes())
	p, err := moved.P(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p)

	assert.Same(t, moved, g.RegulatingPoint().Terminal())
	assert.Equal(t, [][2]*network.Terminal{{t1, moved}}, w.replaced)
	assert.Equal(t, 0, n.Referrers().Len(t1))
	assert.Equal(t, 2, n.Referrers().Len(moved))
}

func TestConnectable_ConnectIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	vl, _, _ := feeder(t)
	n := vl.Network()
	// end 1 can reach the busbar through B5, end 2 has no path at all
	line, err := n.NewBranch(ctx, network.BranchSpec{
		ID:   "LINE",
		Kind: network.Line,
		End1: network.TerminalSpec{VoltageLevel: vl, Location: network.AtNode(5)},
		End2: network.TerminalSpec{VoltageLevel: vl, Location: network.AtNode(6)},
	})
	require.NoError(t, err)
	b5 := nodeSwitch(t, vl, "B5", network.Breaker, 5, 1, true)

	done, err := line.Connect(ctx, nil)
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, isOpen(t, ctx, b5), "first end left untouched")

	done, err = terminal(t, line, network.One).Connect(ctx, nil)
	require.NoError(t, err)
	assert.True(t, done)
	assert.False(t, isOpen(t, ctx, b5))
}

func TestConnectable_KindChecks(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl := newVL(t, n, "VL", network.NodeBreaker)

	_, err := vl.NewInjection(ctx, network.InjectionSpec{ID: "X", Kind: network.Line, Location: network.AtNode(0)})
	require.ErrorIs(t, err, network.ErrWrongConnectableKind)
	_, err = n.NewBranch(ctx, network.BranchSpec{ID: "X", Kind: network.Load})
	require.ErrorIs(t, err, network.ErrWrongConnectableKind)
	_, err = n.NewBranch(ctx, network.BranchSpec{
		ID:   "X",
		Kind: network.Line,
		End1: network.TerminalSpec{VoltageLevel: vl, Location: network.AtNode(1)},
		End2: network.TerminalSpec{VoltageLevel: vl, Location: network.AtNode(1)},
	})
	require.ErrorIs(t, err, network.ErrNodeOccupied)

	l := load(t, vl, "L", 0)
	_, err = l.ReactiveLimits()
	require.ErrorIs(t, err, network.ErrWrongConnectableKind)
	_, err = l.Terminal(network.Two)
	require.ErrorIs(t, err, network.ErrInvalidSide)
	assert.Nil(t, l.RegulatingPoint())
	_, err = vl.NewInjection(ctx, network.InjectionSpec{ID: "L", Kind: network.Load, Location: network.AtNode(2)})
	require.ErrorIs(t, err, network.ErrDuplicateID)
}

func TestTerminal_Traverse(t *testing.T) {
	ctx := context.Background()
	n := network.New("n")
	vl1 := newVL(t, n, "VL1", network.BusBreaker)
	vl2 := newVL(t, n, "VL2", network.BusBreaker)
	configuredBuses(t, vl1, "A")
	configuredBuses(t, vl2, "B")
	start := inject(t, vl1, "L1", network.Load, network.AtBus("A"), true)
	_, err := n.NewBranch(ctx, network.BranchSpec{
		ID:   "LINE",
		Kind: network.Line,
		End1: network.TerminalSpec{VoltageLevel: vl1, Location: network.AtBus("A"), Connected: true},
		End2: network.TerminalSpec{VoltageLevel: vl2, Location: network.AtBus("B"), Connected: true},
	})
	require.NoError(t, err)
	inject(t, vl2, "L2", network.Load, network.AtBus("B"), true)

	onTerminal := func(r traverse.Result, seen *[]string) network.TraverserFuncs {
		return network.TraverserFuncs{OnTerminal: func(term *network.Terminal) traverse.Result {
			*seen = append(*seen, term.String())
			return r
		}}
	}

	var seen []string
	done, err := terminal(t, start, network.One).Traverse(ctx, onTerminal(traverse.Continue, &seen))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []string{"LINE/ONE", "LINE/TWO", "L2/ONE"}, seen)

	seen = nil
	done, err = terminal(t, start, network.One).Traverse(ctx, onTerminal(traverse.TerminatePath, &seen))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []string{"LINE/ONE"}, seen)

	done, err = terminal(t, start, network.One).Traverse(ctx, onTerminal(traverse.TerminateTraverser, new([]string)))
	require.NoError(t, err)
	assert.False(t, done)
}

func TestTerminal_TraverseSwitches(t *testing.T) {
	ctx := context.Background()
	_, l, br := feeder(t)
	start := terminal(t, l, network.One)

	type step struct {
		sw   string
		open bool
	}
	tests := []struct {
		name      string
		onOpen    traverse.Result
		wantDone  bool
		switches  []step
		terminals []string
	}{
		{"cross everything", traverse.Continue, true, []step{{"BR", true}, {"D", false}}, []string{"BBS/ONE"}},
		{"stop at open switches", traverse.TerminatePath, true, []step{{"BR", true}}, nil},
		{"abort at open switches", traverse.TerminateTraverser, false, []step{{"BR", true}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var switches []step
			var terminals []string
			done, err := start.Traverse(ctx, network.TraverserFuncs{
				OnSwitch: func(sw *network.Switch, open bool) traverse.Result {
					switches = append(switches, step{sw.ID(), open})
					if open {
						return tc.onOpen
					}
					return traverse.Continue
				},
				OnTerminal: func(term *network.Terminal) traverse.Result {
					terminals = append(terminals, term.String())
					return traverse.Continue
				},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantDone, done)
			assert.Equal(t, tc.switches, switches)
			assert.Equal(t, tc.terminals, terminals)
		})
	}

	// closing the breaker makes the busbar reachable through closed switches only
	require.NoError(t, br.SetOpen(ctx, false))
	var terminals []string
	done, err := start.Traverse(ctx, network.TraverserFuncs{
		OnSwitch: func(_ *network.Switch, open bool) traverse.Result {
			if open {
				return traverse.TerminatePath
			}
			return traverse.Continue
		},
		OnTerminal: func(term *network.Terminal) traverse.Result {
			terminals = append(terminals, term.String())
			return traverse.Continue
		},
	})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []string{"BBS/ONE"}, terminals)
}
