package gridlegend

import "errors"

// Validation errors returned by Place and ComputeLayout. They are wrapped
// with context, so test with errors.Is.
var (
	// ErrInvalidAlignment is returned for an alignment token other than
	// left, center, or right.
	ErrInvalidAlignment = errors.New("invalid alignment token")

	// ErrAlignmentLengthMismatch is returned when the alignment list is
	// neither a single broadcastable entry nor C nor C+1 entries long.
	ErrAlignmentLengthMismatch = errors.New("alignment count mismatch")

	// ErrTooManyItems is returned when more sample items are supplied
	// than the grid has cells.
	ErrTooManyItems = errors.New("more sample items than grid cells")

	// ErrEmptyGrid is returned when the grid has zero rows or zero
	// columns. A legend needs at least one of each.
	ErrEmptyGrid = errors.New("legend grid has no rows or no columns")
)
