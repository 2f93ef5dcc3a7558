// Package builder provides internal helper functions used by Constructor
// implementations to build common network fixtures.
//
// Design principles:
//   - Single Responsibility: each helper does one well-defined job.
//   - Error Context: wrap errors with builderErrorf for uniform reporting.
package builder

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netmodel/network"
)

// builderErrorf wraps sentinel with the given method context and message.
// It returns an error of the form "<Method>: <formatted message>: <sentinel>".
//
// Complexity: O(len(format) + Σlen(args)), negligible for our use.
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	inner := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %s: %w", method, inner, sentinel)
}

// wrapNetwork attaches method context to an error returned by the network,
// keeping both the network sentinel and ErrConstructFailed reachable.
func wrapNetwork(method, what string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", method, what, ErrConstructFailed, err)
}

// newVoltageLevel creates a substation "S_<id>" holding a single voltage
// level id of the given kind.
func newVoltageLevel(method string, n *network.Network, cfg builderConfig, id string, kind network.TopologyKind) (*network.VoltageLevel, error) {
	s, err := n.NewSubstation("S_" + id)
	if err != nil {
		return nil, wrapNetwork(method, "NewSubstation", err)
	}
	vl, err := s.NewVoltageLevel(network.VoltageLevelSpec{ID: id, Kind: kind, NominalV: cfg.nominalV})
	if err != nil {
		return nil, wrapNetwork(method, "NewVoltageLevel", err)
	}
	return vl, nil
}

// addLoad creates a connected load at loc and sets its active power from
// cfg.powerFn in the working variant of ctx.
func addLoad(ctx context.Context, method string, vl *network.VoltageLevel, cfg builderConfig, id string, loc network.Location) error {
	load, err := vl.NewInjection(ctx, network.InjectionSpec{ID: id, Kind: network.Load, Location: loc, Connected: true})
	if err != nil {
		return wrapNetwork(method, "NewInjection("+id+")", err)
	}
	term, err := load.Terminal(network.One)
	if err != nil {
		return wrapNetwork(method, "Terminal", err)
	}
	if err = term.SetP(ctx, cfg.powerFn(cfg.rng)); err != nil {
		return wrapNetwork(method, "SetP("+id+")", err)
	}
	return nil
}

// lookupVoltageLevel resolves a voltage level created by an earlier constructor.
func lookupVoltageLevel(method string, n *network.Network, id string) (*network.VoltageLevel, error) {
	vl, ok := n.VoltageLevel(id)
	if !ok {
		return nil, builderErrorf(method, ErrUnknownVoltageLevel, "%q", id)
	}
	return vl, nil
}
