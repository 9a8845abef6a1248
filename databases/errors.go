// Sentinel errors shared by the database accessors. Handlers match these with
// errors.Is to pick the right HTTP status: a missing case is a 404, a write
// against a closed case is a 409, and anything wrapping ErrStoreUnavailable
// means the backing store itself failed and must never be mistaken for
// "no such case".
package databases

import "errors"

// ErrCaseNotFound is returned when no case matches the given ID, globally or
// within the requested guild.
var ErrCaseNotFound = errors.New("case not found")

// ErrCaseClosed is returned when a close or field update targets a case that
// has already been closed. Closing is a one-way transition.
var ErrCaseClosed = errors.New("case already closed")

// ErrMassActionNotFound is returned when no mass action matches the given ID.
var ErrMassActionNotFound = errors.New("mass action not found")

// ErrMassActionCompleted is returned when a completion targets a mass action
// that has already been completed. Completion is a one-way transition.
var ErrMassActionCompleted = errors.New("mass action already completed")

// ErrStoreUnavailable wraps connectivity or query failures from the backing
// store. The ID allocator propagates this rather than assuming a candidate
// ID is free.
var ErrStoreUnavailable = errors.New("unable to access case data")
