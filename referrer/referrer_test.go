package referrer_test

import (
	"testing"

	"github.com/katalvlaran/netmodel/referrer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type terminal struct{ id string }

// counter records the notifications it receives.
type counter struct {
	removals     []string
	replacements [][2]string
	onRemoval    func()
}

func (c *counter) OnReferencedRemoval(t *terminal) {
	c.removals = append(c.removals, t.id)
	if c.onRemoval != nil {
		c.onRemoval()
	}
}

func (c *counter) OnReferencedReplacement(old, replacement *terminal) {
	c.replacements = append(c.replacements, [2]string{old.id, replacement.id})
}

func TestRegistry_RemovalCallsEachReferrerOnce(t *testing.T) {
	g := referrer.NewRegistry[*terminal]()
	t1, t2 := &terminal{"T1"}, &terminal{"T2"}
	a, b, c := &counter{}, &counter{}, &counter{}

	g.Register(t1, a)
	g.Register(t1, a) // duplicate
	g.Register(t1, b)
	reg := g.Register(t1, c)
	g.Register(t2, c)
	reg.Release()

	n := g.NotifyRemoval(t1)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"T1"}, a.removals)
	assert.Equal(t, []string{"T1"}, b.removals)
	assert.Empty(t, c.removals)
	assert.Equal(t, 0, g.Len(t1))
	assert.Equal(t, 1, g.Len(t2))
}

func TestRegistry_UnregisterDuringNotification(t *testing.T) {
	g := referrer.NewRegistry[*terminal]()
	t1 := &terminal{"T1"}
	a, b, c := &counter{}, &counter{}, &counter{}

	// a unregisters itself and b, which has not been called yet
	a.onRemoval = func() {
		g.Unregister(t1, a)
		g.Unregister(t1, b)
	}
	g.Register(t1, a)
	g.Register(t1, b)
	g.Register(t1, c)

	n := g.NotifyRemoval(t1)

	assert.Equal(t, 2, n)
	assert.Len(t, a.removals, 1)
	assert.Empty(t, b.removals)
	assert.Len(t, c.removals, 1)
}

func TestRegistry_Replacement(t *testing.T) {
	g := referrer.NewRegistry[*terminal]()
	oldT, newT := &terminal{"old"}, &terminal{"new"}
	a, b := &counter{}, &counter{}
	regA := g.Register(oldT, a)
	g.Register(oldT, b)
	g.Register(newT, b)

	n := g.NotifyReplacement(oldT, newT)

	assert.Equal(t, 2, n)
	assert.Equal(t, [][2]string{{"old", "new"}}, a.replacements)
	assert.Equal(t, [][2]string{{"old", "new"}}, b.replacements)
	assert.Equal(t, 0, g.Len(oldT))
	assert.Equal(t, 2, g.Len(newT))

	// the registration followed its entry
	regA.Release()
	assert.Equal(t, []referrer.Referrer[*terminal]{b}, g.Referrers(newT))

	assert.Equal(t, 0, g.NotifyReplacement(newT, newT))
}

func TestDependents(t *testing.T) {
	var d referrer.Dependents[string]
	var got []string
	f1 := &referrer.Funcs[string]{Removal: func(s string) { got = append(got, "f1:"+s) }}
	f2 := &referrer.Funcs[string]{
		Removal:     func(s string) { got = append(got, "f2:"+s) },
		Replacement: func(o, n string) { got = append(got, "f2:"+o+">"+n) },
	}
	d.Add(f1)
	d.Add(f1)
	reg := d.Add(f2)
	assert.Equal(t, 2, d.Len())

	assert.Equal(t, 2, d.NotifyReplacement("VL1", "VL1bis"))
	reg.Release()
	reg.Release()
	assert.Equal(t, 1, d.NotifyRemoval("VL1"))
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, []string{"f2:VL1>VL1bis", "f1:VL1"}, got)
}

func TestDependents_RemoveOtherDuringNotification(t *testing.T) {
	var d referrer.Dependents[int]
	calls := 0
	var second *referrer.Funcs[int]
	first := &referrer.Funcs[int]{Removal: func(int) { calls++; d.Remove(second) }}
	second = &referrer.Funcs[int]{Removal: func(int) { calls++ }}
	d.Add(first)
	d.Add(second)

	assert.Equal(t, 1, d.NotifyRemoval(1))
	assert.Equal(t, 1, calls)
}

func TestScope_ReleasesEverything(t *testing.T) {
	g := referrer.NewRegistry[*terminal]()
	var d referrer.Dependents[*terminal]
	t1, t2 := &terminal{"T1"}, &terminal{"T2"}
	r := &counter{}

	var s referrer.Scope
	referrer.Bind(&s, g, t1, r)
	referrer.Bind(&s, g, t2, r)
	referrer.Depend(&s, &d, r)
	require.Equal(t, 3, s.Len())

	s.Close()
	s.Close()

	assert.True(t, s.Closed())
	assert.Equal(t, 0, g.Targets())
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, g.NotifyRemoval(t1))

	// tracking after close releases at once
	referrer.Bind(&s, g, t1, r)
	assert.Equal(t, 0, g.Len(t1))
}

func TestScope_Untrack(t *testing.T) {
	g := referrer.NewRegistry[*terminal]()
	t1 := &terminal{"T1"}
	r := &counter{}

	var s referrer.Scope
	reg := g.Register(t1, r)
	s.Track(reg)
	require.Equal(t, 1, s.Len())

	assert.True(t, s.Untrack(reg))
	assert.False(t, s.Untrack(reg))
	assert.Equal(t, 0, s.Len())

	s.Close()
	assert.Equal(t, 1, g.Len(t1), "untracked registrations outlive the scope")
	reg.Release()
	assert.Equal(t, 0, g.Len(t1))
}
