package mux

import (
	"slices"
	"strings"
	"sync"

	"github.com/vitalvas/apidocs/dispatch"
)

// Reader exposes the documented routes of a router as a dispatch graph.
//
// The graph is built from the route tree on the first Root call and
// rebuilt by Refresh. Routes must not be registered concurrently with
// either call.
type Reader struct {
	router *Router

	mu    sync.RWMutex
	graph *dispatch.Graph
}

var _ dispatch.Reader = (*Reader)(nil)

// NewReader returns a dispatch.Reader over router.
func NewReader(router *Router) *Reader {
	return &Reader{router: router}
}

// Refresh rebuilds the graph from the current route tree.
func (rd *Reader) Refresh() {
	g := buildGraph(rd.router)

	rd.mu.Lock()
	rd.graph = g
	rd.mu.Unlock()
}

// Graph returns the current snapshot, building it when needed.
func (rd *Reader) Graph() *dispatch.Graph {
	rd.mu.RLock()
	g := rd.graph
	rd.mu.RUnlock()
	if g != nil {
		return g
	}

	rd.mu.Lock()
	defer rd.mu.Unlock()
	if rd.graph == nil {
		rd.graph = buildGraph(rd.router)
	}
	return rd.graph
}

// Root implements dispatch.Reader.
func (rd *Reader) Root() dispatch.NodeID {
	return rd.Graph().Root()
}

// Children implements dispatch.Reader.
func (rd *Reader) Children(id dispatch.NodeID) []dispatch.Edge {
	return rd.Graph().Children(id)
}

// IsLeaf implements dispatch.Reader.
func (rd *Reader) IsLeaf(id dispatch.NodeID) bool {
	return rd.Graph().IsLeaf(id)
}

// ResourceClassOf implements dispatch.Reader.
func (rd *Reader) ResourceClassOf(id dispatch.NodeID) *dispatch.ResourceClass {
	return rd.Graph().ResourceClassOf(id)
}

// SupportedMethods implements dispatch.Reader.
func (rd *Reader) SupportedMethods(class *dispatch.ResourceClass) []string {
	return class.SupportedMethods()
}

type leafKey struct {
	parent dispatch.NodeID
	tpl    string
	class  string
}

type graphBuilder struct {
	g       *dispatch.Graph
	routers map[*Router]dispatch.NodeID
	leaves  map[leafKey]*dispatch.ResourceClass
}

func buildGraph(router *Router) *dispatch.Graph {
	b := &graphBuilder{
		g:       dispatch.NewGraph(),
		routers: make(map[*Router]dispatch.NodeID),
		leaves:  make(map[leafKey]*dispatch.ResourceClass),
	}
	if router != nil {
		b.routers[router] = b.g.Root()
		b.addRoutes(b.g.Root(), router)
	}
	return b.g
}

func (b *graphBuilder) addRoutes(parent dispatch.NodeID, router *Router) {
	for _, route := range router.routes {
		if route.err != nil {
			continue
		}

		if sub, ok := route.handler.(*Router); ok {
			if id, seen := b.routers[sub]; seen {
				// Shared or cyclic subrouter.
				_ = b.g.Link(parent, route.tpl, id)
				continue
			}
			id := b.g.Composite(parent, route.tpl)
			b.routers[sub] = id
			b.addRoutes(id, sub)
			continue
		}

		if route.class != nil {
			b.addLeaf(parent, route)
		}
	}
}

// addLeaf documents route under parent. Routes with the same parent,
// template and class share one leaf whose class holds the union of their
// methods.
func (b *graphBuilder) addLeaf(parent dispatch.NodeID, route *Route) {
	key := leafKey{parent: parent, tpl: route.tpl, class: route.class.Name}

	class, ok := b.leaves[key]
	if !ok {
		class = &dispatch.ResourceClass{
			Name:        route.class.Name,
			Description: route.class.Description,
		}
		b.leaves[key] = class
		b.g.Leaf(parent, route.tpl, class)
	}

	methods := route.methods
	if len(methods) == 0 {
		methods = route.class.SupportedMethods()
	}

	for _, m := range methods {
		if slices.ContainsFunc(class.Methods, func(s dispatch.MethodSpec) bool {
			return strings.EqualFold(s.Method, m)
		}) {
			continue
		}

		spec, ok := route.class.Method(m)
		if !ok {
			spec = dispatch.MethodSpec{Method: m}
		}
		class.Methods = append(class.Methods, spec)
	}
}
