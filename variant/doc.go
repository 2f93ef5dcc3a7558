// Package variant holds the per-variant state machinery of a network model.
//
// A variant is an integer coordinate i in [0, N) shared by every stateful
// entity of a network. Each entity keeps its variant-dependent attributes in
// an Array[T] whose length always equals N; the Manager drives the same
// structural operation (create, clone, remove) across every registered
// Stateful before returning, so no reader observes entities of different
// lengths.
//
// Which variant a caller works on is resolved by a Context:
//
//   - SharedContext: one binding shared by every caller.
//   - ExecutionContext: one binding per Session; sessions travel in a
//     context.Context (WithSession / SessionFrom), so concurrent executions
//     can each read a different variant.
//
// Errors:
//
//   - ErrUnsetContext      - no variant bound for the caller.
//   - ErrVariantOutOfRange - bound index outside [0, N).
//   - ErrVariantNotFound   - unknown variant id.
//   - ErrVariantExists     - variant id already used.
//   - ErrInitialVariantRemoval - the initial variant cannot be removed.
//
// Concurrency:
//
// Variant mutations take the Manager write lock; Array reads do not lock.
// Callers must not read arrays while a variant mutation is running. A panic
// raised by a Stateful mid-pass leaves entities with different lengths; that
// state is unrecoverable and the network must be discarded.
package variant
