package network

import "fmt"

// TopologyKind selects how a voltage level models its internal wiring.
type TopologyKind int

const (
	// NodeBreaker: anonymous nodes, switches as edges, terminals on nodes.
	NodeBreaker TopologyKind = iota
	// BusBreaker: named configured buses, terminals on buses.
	BusBreaker
)

func (k TopologyKind) String() string {
	switch k {
	case NodeBreaker:
		return "NODE_BREAKER"
	case BusBreaker:
		return "BUS_BREAKER"
	default:
		return fmt.Sprintf("TopologyKind(%d)", int(k))
	}
}

// SwitchKind classifies switches for switch filters.
type SwitchKind int

const (
	Breaker SwitchKind = iota
	Disconnector
	LoadBreakSwitch
)

func (k SwitchKind) String() string {
	switch k {
	case Breaker:
		return "BREAKER"
	case Disconnector:
		return "DISCONNECTOR"
	case LoadBreakSwitch:
		return "LOAD_BREAK_SWITCH"
	default:
		return fmt.Sprintf("SwitchKind(%d)", int(k))
	}
}

// ConnectableKind is the closed set of equipment kinds the model knows.
type ConnectableKind int

const (
	BusbarSection ConnectableKind = iota
	Load
	Generator
	Battery
	ShuntCompensator
	StaticVarCompensator
	HvdcConverterStation
	Ground
	Line
	TwoWindingsTransformer
)

var connectableKindNames = [...]string{
	BusbarSection:          "BUSBAR_SECTION",
	Load:                   "LOAD",
	Generator:              "GENERATOR",
	Battery:                "BATTERY",
	ShuntCompensator:       "SHUNT_COMPENSATOR",
	StaticVarCompensator:   "STATIC_VAR_COMPENSATOR",
	HvdcConverterStation:   "HVDC_CONVERTER_STATION",
	Ground:                 "GROUND",
	Line:                   "LINE",
	TwoWindingsTransformer: "TWO_WINDINGS_TRANSFORMER",
}

func (k ConnectableKind) String() string {
	if k >= 0 && int(k) < len(connectableKindNames) {
		return connectableKindNames[k]
	}
	return fmt.Sprintf("ConnectableKind(%d)", int(k))
}

// IsBranch reports whether k has two terminals.
func (k ConnectableKind) IsBranch() bool {
	return k == Line || k == TwoWindingsTransformer
}

// Side designates a terminal of a connectable; injections only have One.
type Side int

const (
	One Side = iota + 1
	Two
)

func (s Side) String() string {
	switch s {
	case One:
		return "ONE"
	case Two:
		return "TWO"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Location is the graph location of a terminal: a node of a node-breaker
// voltage level or a configured bus of a bus-breaker one.
type Location struct {
	node  int
	bus   string
	valid bool
}

// AtNode returns a node-breaker location.
func AtNode(node int) Location { return Location{node: node, bus: "", valid: true} }

// AtBus returns a bus-breaker location.
func AtBus(busID string) Location { return Location{node: -1, bus: busID, valid: true} }

// IsNode reports whether l is a node location.
func (l Location) IsNode() bool { return l.valid && l.bus == "" }

// IsBus reports whether l is a configured bus location.
func (l Location) IsBus() bool { return l.valid && l.bus != "" }

// Node returns the node, -1 for bus locations.
func (l Location) Node() int {
	if !l.IsNode() {
		return -1
	}
	return l.node
}

// BusID returns the configured bus id, "" for node locations.
func (l Location) BusID() string { return l.bus }

func (l Location) String() string {
	switch {
	case l.IsNode():
		return fmt.Sprintf("node %d", l.node)
	case l.IsBus():
		return "bus " + l.bus
	default:
		return "nowhere"
	}
}

// SwitchFilter selects the switches a connect or disconnect may operate.
type SwitchFilter func(*Switch) bool

// NonFictitiousBreaker accepts breakers that are not fictitious; it is the
// default connect filter.
func NonFictitiousBreaker(s *Switch) bool { return s.Kind() == Breaker && !s.Fictitious() }

// AnySwitch accepts every switch.
func AnySwitch(*Switch) bool { return true }

// AnyBreaker accepts every breaker; it is the default disconnect filter.
// Disconnect only considers closed switches, so the filter selects kinds.
func AnyBreaker(s *Switch) bool { return s.Kind() == Breaker }

func (k ConnectableKind) regulates() bool {
	switch k {
	case Generator, StaticVarCompensator, ShuntCompensator, HvdcConverterStation:
		return true
	}
	return false
}

func (k ConnectableKind) hasReactiveLimits() bool {
	return k == Generator || k == Battery || k == HvdcConverterStation
}
