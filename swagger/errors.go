package swagger

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a detail document is requested for
// a category no resource belongs to.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError reports the category that was not found.
type UnknownCategoryError struct {
	Category string
}

// Error returns a human-readable error message.
func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Category)
}

// Is reports whether target matches this error type.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}
