// Package netmodel is an in-memory electrical network model: substations,
// voltage levels, switches and connectable equipment, with every mutable
// value held per named variant.
//
// What is in the box?
//
//	variant/   - variant manager, shared and per-execution variant contexts,
//	             stateful arrays extended, deleted and compacted in lockstep
//	graph/     - arena graph with stable integer handles and listeners
//	traverse/  - walks with three-way results, all-paths search
//	referrer/  - registries of objects that must hear about removals
//	network/   - node-breaker and bus-breaker topologies, calculated bus
//	             views, connect/disconnect planning, components
//	builder/   - deterministic fixtures (rings, chains, links, random states)
//	config/    - YAML configuration, validation, logger and metrics wiring
//	metrics/   - Prometheus instrumentation
//
// A node-breaker voltage level in two lines:
//
//	BBS(0) ──D── 1 ──BR── 2(LOAD)
//
// with both switches closed is a single calculated bus holding the busbar
// section and the load.
//
// The model is not safe for concurrent mutation; concurrent readers may work
// on different variants through execution sessions (see variant.Session).
package netmodel
