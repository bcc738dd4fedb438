package managers

import "errors"

// Construction contract violations. These surface from ToSQL rather than
// panicking mid-chain, so fluent call sites stay clean.
var (
	// ErrHavingWithoutGroup is returned when a query has HAVING conditions
	// but no GROUP BY clause.
	ErrHavingWithoutGroup = errors.New("arbor: HAVING requires GROUP BY")

	// ErrNoColumns is returned when a CREATE TABLE has no column definitions.
	ErrNoColumns = errors.New("arbor: CREATE TABLE requires at least one column")

	// ErrMergeIncomplete is returned when a MERGE statement is missing its
	// source, ON condition, or WHEN actions.
	ErrMergeIncomplete = errors.New("arbor: MERGE requires a source, an ON condition, and at least one action")
)
