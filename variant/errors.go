package variant

import "errors"

// Sentinel errors for variant handling.
var (
	// ErrUnsetContext indicates that no variant is bound for the caller.
	ErrUnsetContext = errors.New("variant: no working variant set")

	// ErrNoSession indicates an execution-bound context was used without a
	// Session in the context.Context.
	ErrNoSession = errors.New("variant: no session in context")

	// ErrVariantOutOfRange indicates an index outside [0, N).
	ErrVariantOutOfRange = errors.New("variant: index out of range")

	// ErrVariantNotFound indicates an unknown variant id.
	ErrVariantNotFound = errors.New("variant: variant not found")

	// ErrVariantExists indicates a variant id is already in use.
	ErrVariantExists = errors.New("variant: variant already exists")

	// ErrInitialVariantRemoval indicates an attempt to remove the initial variant.
	ErrInitialVariantRemoval = errors.New("variant: initial variant cannot be removed")

	// ErrEmptyVariantID indicates an empty variant id.
	ErrEmptyVariantID = errors.New("variant: empty variant id")

	// ErrSizeMismatch indicates a Stateful registered with a length other than N.
	ErrSizeMismatch = errors.New("variant: array size does not match variant count")

	// ErrSingleExecution indicates sessions were requested while the manager
	// uses a shared context.
	ErrSingleExecution = errors.New("variant: multi-execution access not allowed")
)

// ErrLastVariant indicates an attempt to remove the only remaining variant.
var ErrLastVariant = errors.New("variant: cannot remove the last variant")
