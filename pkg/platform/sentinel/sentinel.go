package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: row does not exist
//   - ErrAlreadyUsed: a unique constraint rejected the write
//   - ErrInUse: a protected reference blocks the delete
//   - ErrInvalidState: entity in wrong state for requested operation
//   - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInUse        = errors.New("in use")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)

// ConstraintError names the storage constraint behind ErrAlreadyUsed or
// ErrInUse so services can scope the resulting error to an input field.
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return e.Err.Error() + " (" + e.Constraint + ")"
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Violation builds a ConstraintError for the given sentinel.
func Violation(err error, constraint string) error {
	return &ConstraintError{Err: err, Constraint: constraint}
}

// Constraint returns the constraint name carried by err, or "".
func Constraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
