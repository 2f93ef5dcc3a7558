// Package builder defines shared constants used by network constructors,
// ensuring consistent defaults and validation.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodNodeBreakerRing is the canonical name for the NodeBreakerRing constructor.
	MethodNodeBreakerRing = "NodeBreakerRing"
	// MethodBusBreakerChain is the canonical name for the BusBreakerChain constructor.
	MethodBusBreakerChain = "BusBreakerChain"
	// MethodLine is the canonical name for the Line constructor.
	MethodLine = "Line"
	// MethodHvdcLink is the canonical name for the HvdcLink constructor.
	MethodHvdcLink = "HvdcLink"
	// MethodRandomSwitchStates is the canonical name for the RandomSwitchStates constructor.
	MethodRandomSwitchStates = "RandomSwitchStates"
	// MethodVariants is the canonical name for the Variants constructor.
	MethodVariants = "Variants"
)

//-----------------------------------------------------------------------------
// Element kind tokens, used in generated ids ("<vl>_<kind><suffix>")
//-----------------------------------------------------------------------------

const (
	KindBusbarSection = "BBS"
	KindCoupler       = "C"
	KindDisconnector  = "D"
	KindBreaker       = "BR"
	KindLoad          = "L"
	KindBus           = "B"
	KindBusSwitch     = "SW"
	KindStation       = "CS"
)

//-----------------------------------------------------------------------------
// Minimum sizes
//-----------------------------------------------------------------------------

// MinRingSections is the smallest ring: two sections joined by one coupler.
const MinRingSections = 2

// MinChainBuses is the smallest chain: a single configured bus, no switch.
const MinChainBuses = 1

//-----------------------------------------------------------------------------
// Defaults and probability bounds
//-----------------------------------------------------------------------------

// DefaultNominalV is the nominal voltage (kV) of generated voltage levels.
const DefaultNominalV = 400.0

// DefaultLoadP is the active power (MW) of generated loads when no PowerFn is set.
const DefaultLoadP = 10.0

const (
	// MinProbability is the lower bound for probabilities.
	MinProbability = 0.0
	// MaxProbability is the upper bound for probabilities.
	MaxProbability = 1.0
)
