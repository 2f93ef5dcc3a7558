package network

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netmodel/referrer"
)

// RegulatingPoint is the terminal a regulating equipment controls. It refers
// to that terminal: when the terminal is removed the point falls back to the
// equipment's own terminal, and it follows the terminal when it is replaced.
type RegulatingPoint struct {
	owner      *Connectable
	local      *Terminal
	regulating *Terminal
	reg        *referrer.Registration
}

func newRegulatingPoint(owner *Connectable, local *Terminal) *RegulatingPoint {
	rp := &RegulatingPoint{owner: owner, local: local}
	rp.bind(local)
	return rp
}

// bind keeps at most one registration of rp in the owner's scope.
func (rp *RegulatingPoint) bind(t *Terminal) {
	rp.release()
	rp.regulating = t
	if t != nil {
		rp.reg = rp.owner.network.referrers.Register(t, rp)
		rp.owner.scope.Track(rp.reg)
	}
}

// Terminal returns the regulated terminal, nil once the local terminal is
// gone.
func (rp *RegulatingPoint) Terminal() *Terminal { return rp.regulating }

// Local returns the equipment's own terminal.
func (rp *RegulatingPoint) Local() *Terminal { return rp.local }

// IsLocal reports whether the equipment regulates its own terminal.
func (rp *RegulatingPoint) IsLocal() bool { return rp.regulating == rp.local }

// SetTerminal points the regulation at t; nil selects the local terminal.
func (rp *RegulatingPoint) SetTerminal(ctx context.Context, t *Terminal) error {
	if t == nil {
		t = rp.local
	}
	if t.connectable.network != rp.owner.network || t.connectable.removed {
		return fmt.Errorf("%w: regulated terminal %s", ErrNotFound, t)
	}
	old := rp.regulating
	if old == t {
		return nil
	}
	rp.bind(t)
	rp.owner.network.notifyUpdate(ctx, rp.owner, "regulatingTerminal", old, t)
	return nil
}

func (rp *RegulatingPoint) release() {
	if rp.reg == nil {
		return
	}
	rp.owner.scope.Untrack(rp.reg)
	rp.reg.Release()
	rp.reg = nil
}

// OnReferencedRemoval falls back to the local terminal, or to none when the
// local terminal itself is removed.
func (rp *RegulatingPoint) OnReferencedRemoval(t *Terminal) {
	// the registry drops the entry after notifying; releasing is a no-op
	rp.release()
	if t == rp.local {
		rp.regulating = nil
		return
	}
	rp.bind(rp.local)
}

// OnReferencedReplacement follows a terminal moved by MoveTerminal.
func (rp *RegulatingPoint) OnReferencedReplacement(old, replacement *Terminal) {
	if rp.regulating == old {
		rp.regulating = replacement
	}
	if rp.local == old {
		rp.local = replacement
	}
}
