package dispatch

import (
	"slices"
	"strings"
)

// ResourceClass is the type bound to a leaf node. It lists the methods the
// resource supports and, optionally, the Go values describing the payloads
// each method consumes and produces.
type ResourceClass struct {
	// Name identifies the class. It is the key used by metadata sources
	// and the default documentation category.
	Name string

	// Description is an optional human readable description.
	Description string

	// Methods lists the supported operations in declaration order.
	Methods []MethodSpec
}

// MethodSpec describes one method of a resource class.
//
// Input and Output hold sample values (typically zero values) whose Go
// types describe the request and response payloads:
//
//	dispatch.MethodSpec{Method: http.MethodGet, Output: []Bookmark{}}
type MethodSpec struct {
	// Method is the HTTP method token, e.g. "GET".
	Method string

	// Name is the handler name used for metadata lookups and operation
	// nicknames. Defaults to the upper-cased Method when empty.
	Name string

	// Input is a sample request payload, or nil when the method takes none.
	Input any

	// Output is a sample response payload, or nil when the method returns none.
	Output any

	// Status is the success status code. Zero means 200 OK.
	Status int
}

// Key returns the name used to look up metadata for the method.
func (m MethodSpec) Key() string {
	if m.Name != "" {
		return m.Name
	}
	return strings.ToUpper(m.Method)
}

// Method returns the spec registered for the given HTTP method.
func (c *ResourceClass) Method(method string) (MethodSpec, bool) {
	method = strings.ToUpper(method)
	for _, m := range c.Methods {
		if strings.ToUpper(m.Method) == method {
			return m, true
		}
	}
	return MethodSpec{}, false
}

// SupportedMethods returns the distinct, upper-cased method tokens of the
// class in declaration order.
func (c *ResourceClass) SupportedMethods() []string {
	if c == nil {
		return nil
	}

	methods := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		token := strings.ToUpper(strings.TrimSpace(m.Method))
		if token == "" || slices.Contains(methods, token) {
			continue
		}
		methods = append(methods, token)
	}
	return methods
}
