package state

import "errors"

// Sentinel errors for the EditorState.Update pipeline (spec.md §7).
var (
	// ErrTransactionFilterOverflow is returned when transaction filters
	// keep replacing the spec list past coreconfig.TransactionFilterMaxReentries
	// reentries.
	ErrTransactionFilterOverflow = errors.New("state: transaction filter reentry exceeded the bound")

	// ErrFieldUpdateFailure wraps a panic recovered from a StateField's
	// update callback; the field keeps its prior value and the error is
	// forwarded to the error-sink facet rather than aborting the update.
	ErrFieldUpdateFailure = errors.New("state: field update failed")
)
