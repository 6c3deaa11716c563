package introspect

import (
	"errors"
	"slices"
	"strings"

	"github.com/vitalvas/apidocs/dispatch"
)

// Record is one reachable leaf of a dispatch graph.
type Record struct {
	// Path is the accumulated path template, including macros.
	Path string
	// Node is the leaf node.
	Node dispatch.NodeID
	// Class is the resource class bound to the leaf.
	Class *dispatch.ResourceClass
	// Methods lists the distinct methods the class supports.
	Methods []string
}

// frame is one pending node of the traversal. The parent chain is the
// ancestor path of this branch and is used for cycle detection.
type frame struct {
	node   dispatch.NodeID
	prefix string
	parent *frame
}

func (f *frame) onPath(id dispatch.NodeID) bool {
	for p := f; p != nil; p = p.parent {
		if p.node == id {
			return true
		}
	}
	return false
}

func (f *frame) chain() []dispatch.NodeID {
	var ids []dispatch.NodeID
	for p := f; p != nil; p = p.parent {
		ids = append(ids, p.node)
	}
	slices.Reverse(ids)
	return ids
}

// Walk traverses the graph depth-first from its root, visiting children in
// declaration order, and returns one record per reachable (leaf, path)
// pair. Prefix is prepended to every path.
//
// Composite nodes contribute their edge segment to the accumulated path;
// empty segments are transparent. A leaf reachable through several paths
// is reported once per path.
//
// A node that recurs within its own ancestor chain abandons that branch
// only; the returned error joins one *CyclicGraphError per abandoned
// branch and one *MissingResourceClassError per leaf without a class,
// while the records of every other branch are still returned.
func Walk(r dispatch.Reader, prefix string) ([]Record, error) {
	var (
		records []Record
		errs    []error
	)

	stack := []*frame{{node: r.Root(), prefix: prefix}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.parent != nil && f.parent.onPath(f.node) {
			errs = append(errs, &CyclicGraphError{Path: f.prefix, Cycle: f.chain()})
			continue
		}

		if r.IsLeaf(f.node) {
			path := f.prefix
			if path == "" {
				path = "/"
			}

			class := r.ResourceClassOf(f.node)
			if class == nil {
				errs = append(errs, &MissingResourceClassError{Path: path, Node: f.node})
				continue
			}

			records = append(records, Record{
				Path:    path,
				Node:    f.node,
				Class:   class,
				Methods: distinctMethods(r.SupportedMethods(class)),
			})
			continue
		}

		children := r.Children(f.node)
		for i := len(children) - 1; i >= 0; i-- {
			edge := children[i]
			stack = append(stack, &frame{
				node:   edge.Node,
				prefix: dispatch.JoinPath(f.prefix, edge.Segment),
				parent: f,
			})
		}
	}

	return records, errors.Join(errs...)
}

func distinctMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(m)
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}
