package network

import "context"

// ConnectionElements is the ordered set of switches and bus-breaker
// terminals a connect or disconnect operates. Elements are collected first
// and applied together, so a refused operation changes nothing.
type ConnectionElements struct {
	switches  []*Switch
	terminals []*Terminal
	seen      map[any]struct{}
}

// NewConnectionElements returns an empty set.
func NewConnectionElements() *ConnectionElements {
	return &ConnectionElements{seen: make(map[any]struct{})}
}

// AddSwitch appends sw unless already present.
func (ce *ConnectionElements) AddSwitch(sw *Switch) {
	if _, ok := ce.seen[sw]; ok || sw == nil {
		return
	}
	ce.seen[sw] = struct{}{}
	ce.switches = append(ce.switches, sw)
}

// AddTerminal appends t unless already present.
func (ce *ConnectionElements) AddTerminal(t *Terminal) {
	if _, ok := ce.seen[t]; ok || t == nil {
		return
	}
	ce.seen[t] = struct{}{}
	ce.terminals = append(ce.terminals, t)
}

// Merge adds the elements of o in order.
func (ce *ConnectionElements) Merge(o *ConnectionElements) {
	if o == nil {
		return
	}
	for _, sw := range o.switches {
		ce.AddSwitch(sw)
	}
	for _, t := range o.terminals {
		ce.AddTerminal(t)
	}
}

// Switches returns the switches in insertion order.
func (ce *ConnectionElements) Switches() []*Switch { return append([]*Switch(nil), ce.switches...) }

// Terminals returns the terminals in insertion order.
func (ce *ConnectionElements) Terminals() []*Terminal {
	return append([]*Terminal(nil), ce.terminals...)
}

// Empty reports whether there is nothing to operate.
func (ce *ConnectionElements) Empty() bool { return len(ce.switches) == 0 && len(ce.terminals) == 0 }

// apply closes (connect) or opens the switches and sets the terminal flags.
func (ce *ConnectionElements) apply(ctx context.Context, connect bool) error {
	for _, sw := range ce.switches {
		if err := sw.SetOpen(ctx, !connect); err != nil {
			return err
		}
	}
	for _, t := range ce.terminals {
		if err := t.setConnected(ctx, connect); err != nil {
			return err
		}
	}
	return nil
}
