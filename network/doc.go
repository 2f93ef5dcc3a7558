// Package network is the in-memory model of an electrical network: substations,
// voltage levels, switches and connectables, each voltage level wired either
// as a node-breaker or a bus-breaker topology.
//
// Every value that may differ between scenarios (switch states, terminal
// flows, bus voltages, cached bus views and components) lives in a
// variant.Array registered with the network's variant.Manager, so creating,
// cloning or removing a variant resizes all of them together.
//
// Views:
//
//   - Bus view: calculated buses grouping what is joined by closed switches.
//     Built lazily per variant and dropped on any change that may alter it.
//   - Bus-breaker view: the configured buses of a bus-breaker level, or the
//     node groups of a node-breaker level cut at open and retained switches.
//   - Components: connected (through branches and HVDC lines) and
//     synchronous (branches only) partitions of the bus view.
//
// A CalculatedBus read after the cache holding it was dropped returns
// ErrBusInvalidated; callers re-query the view instead.
//
// Removal is cascaded through package referrer: referrers of a removed
// terminal are told before it goes, dependents of a removed voltage level
// likewise, and the registrations an object made are released with it.
//
// A Network is not safe for concurrent mutation. Concurrent readers may work
// on different variants through sessions (see variant.ExecutionContext) once
// multi-execution access is enabled.
package network
