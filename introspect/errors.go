package introspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vitalvas/apidocs/dispatch"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrCyclicGraph indicates a node recurs within its own ancestor chain.
	ErrCyclicGraph = errors.New("cyclic dispatch graph")

	// ErrMissingResourceClass indicates a leaf node without a resource class.
	ErrMissingResourceClass = errors.New("missing resource class")

	// ErrExtractorFailure indicates an extractor failed on one element.
	ErrExtractorFailure = errors.New("extractor failure")
)

// CyclicGraphError reports a branch abandoned because a node recurred
// within its own ancestor chain. Sibling branches are still walked.
type CyclicGraphError struct {
	// Path is the accumulated path at which the cycle closed.
	Path string
	// Cycle lists the node ids from the root to the recurring node.
	Cycle []dispatch.NodeID
}

// Error returns a human-readable error message.
func (e *CyclicGraphError) Error() string {
	ids := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		ids[i] = strconv.Itoa(int(id))
	}
	return fmt.Sprintf("cyclic dispatch graph at %q: %s", e.Path, strings.Join(ids, " -> "))
}

// Is reports whether target matches this error type.
func (e *CyclicGraphError) Is(target error) bool {
	return target == ErrCyclicGraph
}

// MissingResourceClassError reports a leaf node that has no resource class.
type MissingResourceClassError struct {
	Path string
	Node dispatch.NodeID
}

// Error returns a human-readable error message.
func (e *MissingResourceClassError) Error() string {
	return fmt.Sprintf("missing resource class for leaf %d at %q", e.Node, e.Path)
}

// Is reports whether target matches this error type.
func (e *MissingResourceClassError) Is(target error) bool {
	return target == ErrMissingResourceClass
}

// ExtractorFailure reports an extractor that failed, or panicked, while
// contributing to one element. The contribution was discarded.
type ExtractorFailure struct {
	// Extractor is the name of the failing extractor.
	Extractor string
	// Element identifies the element, e.g. "operation GET /bookmarks".
	Element string
	// Err is the underlying error.
	Err error
}

// Error returns a human-readable error message.
func (e *ExtractorFailure) Error() string {
	return fmt.Sprintf("extractor %s failed on %s: %v", e.Extractor, e.Element, e.Err)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ExtractorFailure) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error type.
func (e *ExtractorFailure) Is(target error) bool {
	return target == ErrExtractorFailure
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return u.Unwrap()
	}
	return []error{err}
}
