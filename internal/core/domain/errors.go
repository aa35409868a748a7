package domain

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrStorage         = errors.New("storage failure")
)

// IsValidationError reports whether err was caused by caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTitle) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrNothingToUpdate)
}
