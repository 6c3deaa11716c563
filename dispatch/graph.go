package dispatch

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownNode is returned when a node id does not belong to the graph.
var ErrUnknownNode = errors.New("dispatch: unknown node")

// NodeID addresses a node inside a Graph arena.
type NodeID int

// Edge connects a composite node to one of its children. Segment is the
// path template the edge contributes; an empty segment is transparent.
type Edge struct {
	Segment string
	Node    NodeID
}

// Reader is the read-only view of a dispatch graph consumed by the
// documentation engine.
type Reader interface {
	// Root returns the entry node of the graph.
	Root() NodeID

	// Children returns the outgoing edges of a node in declaration order.
	// Leaf nodes have no children.
	Children(id NodeID) []Edge

	// IsLeaf reports whether the node terminates in a resource class.
	IsLeaf(id NodeID) bool

	// ResourceClassOf returns the class bound to a leaf node, or nil.
	ResourceClassOf(id NodeID) *ResourceClass

	// SupportedMethods returns the method tokens the class supports.
	SupportedMethods(class *ResourceClass) []string
}

type node struct {
	leaf     bool
	class    *ResourceClass
	children []Edge
}

// Graph is an arena-backed dispatch graph. Node 0 is the root composite.
//
// Graph is not safe for concurrent mutation. Once built it may be read
// from any number of goroutines.
type Graph struct {
	nodes []node
}

// NewGraph returns a graph holding only the root composite node.
func NewGraph() *Graph {
	return &Graph{nodes: []node{{}}}
}

// Root returns the id of the root node.
func (g *Graph) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Composite adds a composite node under parent, reached through segment.
func (g *Graph) Composite(parent NodeID, segment string) NodeID {
	return g.addChild(parent, segment, node{})
}

// Filter adds a composite node with no path contribution under parent.
// Filters model pass-through dispatch elements such as authenticators.
func (g *Graph) Filter(parent NodeID) NodeID {
	return g.Composite(parent, "")
}

// Leaf adds a leaf node bound to class under parent, reached through segment.
func (g *Graph) Leaf(parent NodeID, segment string, class *ResourceClass) NodeID {
	return g.addChild(parent, segment, node{leaf: true, class: class})
}

// Link adds an edge from parent to an existing node. It is used to share a
// node between several parents, which may create cycles.
func (g *Graph) Link(parent NodeID, segment string, child NodeID) error {
	if err := g.checkParent(parent); err != nil {
		return err
	}
	if !g.valid(child) {
		return fmt.Errorf("%w: child %d", ErrUnknownNode, child)
	}

	g.nodes[parent].children = append(g.nodes[parent].children, Edge{Segment: segment, Node: child})
	return nil
}

// Children implements Reader.
func (g *Graph) Children(id NodeID) []Edge {
	if !g.valid(id) {
		return nil
	}
	return slices.Clone(g.nodes[id].children)
}

// IsLeaf implements Reader.
func (g *Graph) IsLeaf(id NodeID) bool {
	return g.valid(id) && g.nodes[id].leaf
}

// ResourceClassOf implements Reader.
func (g *Graph) ResourceClassOf(id NodeID) *ResourceClass {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].class
}

// SupportedMethods implements Reader.
func (g *Graph) SupportedMethods(class *ResourceClass) []string {
	return class.SupportedMethods()
}

// addChild appends n to the arena under parent. It panics on an invalid
// parent before touching the arena: builder calls with ids that were not
// returned by the same graph are programming errors.
func (g *Graph) addChild(parent NodeID, segment string, n node) NodeID {
	if err := g.checkParent(parent); err != nil {
		panic(err)
	}

	g.nodes = append(g.nodes, n)
	id := NodeID(len(g.nodes) - 1)
	g.nodes[parent].children = append(g.nodes[parent].children, Edge{Segment: segment, Node: id})
	return id
}

func (g *Graph) checkParent(parent NodeID) error {
	if !g.valid(parent) {
		return fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	if g.nodes[parent].leaf {
		return fmt.Errorf("dispatch: node %d is a leaf and cannot have children", parent)
	}
	return nil
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
