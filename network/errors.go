package network

import "errors"

// Sentinel errors for network model operations.
var (
	// ErrEmptyID indicates an identifiable created without id.
	ErrEmptyID = errors.New("network: empty id")

	// ErrDuplicateID indicates an id already present in the index.
	ErrDuplicateID = errors.New("network: duplicate id")

	// ErrNotFound indicates an unknown identifiable.
	ErrNotFound = errors.New("network: object not found")

	// ErrIncompatibleTerminal indicates a node location given to a bus-breaker
	// voltage level, or a bus location given to a node-breaker one.
	ErrIncompatibleTerminal = errors.New("network: terminal incompatible with topology kind")

	// ErrInvalidNode indicates a node outside [0, NodeIndexLimit).
	ErrInvalidNode = errors.New("network: invalid node")

	// ErrNodeOccupied indicates a node already carrying a terminal.
	ErrNodeOccupied = errors.New("network: node already occupied")

	// ErrBusNotFound indicates an unknown configured bus.
	ErrBusNotFound = errors.New("network: configured bus not found")

	// ErrTerminalDetached indicates an operation on a detached terminal.
	ErrTerminalDetached = errors.New("network: terminal is detached")

	// ErrBusInvalidated indicates access to a calculated bus dropped by a
	// cache invalidation.
	ErrBusInvalidated = errors.New("network: calculated bus has been invalidated")

	// ErrWrongTopologyKind indicates an operation not available for the
	// voltage level topology kind.
	ErrWrongTopologyKind = errors.New("network: wrong topology kind")

	// ErrWrongLimitsKind indicates a typed reactive limits view of the wrong kind.
	ErrWrongLimitsKind = errors.New("network: wrong reactive limits kind")

	// ErrWrongConnectableKind indicates a connectable of an unexpected kind.
	ErrWrongConnectableKind = errors.New("network: wrong connectable kind")

	// ErrVoltageLevelNotEmpty indicates removal of a voltage level that still
	// holds connectables.
	ErrVoltageLevelNotEmpty = errors.New("network: voltage level is not empty")

	// ErrSubstationNotEmpty indicates removal of a substation that still holds
	// voltage levels.
	ErrSubstationNotEmpty = errors.New("network: substation is not empty")

	// ErrConfiguredBusInUse indicates removal of a configured bus that still
	// carries terminals or switches.
	ErrConfiguredBusInUse = errors.New("network: configured bus in use")

	// ErrStationInUse indicates removal of an HVDC converter station still
	// linked by an HVDC line.
	ErrStationInUse = errors.New("network: converter station in use by an HVDC line")

	// ErrRemoved indicates an operation on a removed object.
	ErrRemoved = errors.New("network: object has been removed")

	// ErrInvalidSide indicates a terminal side the connectable does not have.
	ErrInvalidSide = errors.New("network: invalid terminal side")
)
