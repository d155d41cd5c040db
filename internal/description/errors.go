package description

import (
	"errors"
	"fmt"
)

// ErrMissingCategoryDescription is returned when category label has no configured description.
var ErrMissingCategoryDescription = errors.New("missing category description")

// MissingCategoryError names category label without configured description.
type MissingCategoryError struct {
	Label string
}

// Error returns error message with offending label.
func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("%s for label '%s'", ErrMissingCategoryDescription, e.Label)
}

// Is reports whether target is ErrMissingCategoryDescription.
func (e *MissingCategoryError) Is(target error) bool {
	return target == ErrMissingCategoryDescription
}
