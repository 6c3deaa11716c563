package mux

import (
	"errors"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrMethodMismatch is set on a RouteMatch when a route matched the
	// path but not the method.
	ErrMethodMismatch = errors.New("mux: method is not allowed")

	// ErrNotFound is set on a RouteMatch when no route matched.
	ErrNotFound = errors.New("mux: no matching route was found")

	// SkipRouter tells Walk to skip the subrouter of the current route.
	SkipRouter = errors.New("mux: skip router")
)

// MiddlewareFunc wraps the handler of a matched route.
type MiddlewareFunc func(http.Handler) http.Handler

// WalkFunc is called by Walk for every route. ancestors lists the routes
// holding the subrouters that lead to route.
type WalkFunc func(route *Route, router *Router, ancestors []*Route) error

// RouteMatch is the result of matching a request.
type RouteMatch struct {
	Route    *Route
	Handler  http.Handler
	Vars     map[string]string
	MatchErr error
}

// Router registers routes and dispatches requests to the first route that
// matches. It implements http.Handler.
//
// Routes must be registered before the router serves requests.
type Router struct {
	// NotFoundHandler is called when no route matches. Nil means
	// http.NotFoundHandler().
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path but
	// not the method. The Allow header is set before it runs.
	MethodNotAllowedHandler http.Handler

	parent      *Route
	routes      []*Route
	middlewares []MiddlewareFunc

	// handlers caches the middleware-wrapped handler per matched route.
	handlers sync.Map
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{}
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
		u := *req.URL
		u.Path = cleaned
		u.RawPath = ""
		req = req.Clone(req.Context())
		req.URL = &u
	}

	var match RouteMatch
	if r.Match(req, &match) {
		handler := match.Handler
		if handler == nil {
			handler = http.NotFoundHandler()
		}
		handler.ServeHTTP(w, setRouteContext(req, match.Route, match.Vars))
		return
	}

	if errors.Is(match.MatchErr, ErrMethodMismatch) {
		w.Header().Set("Allow", strings.Join(r.allowedMethods(req.URL.Path), ", "))
		if r.MethodNotAllowedHandler != nil {
			r.MethodNotAllowedHandler.ServeHTTP(w, req)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if r.NotFoundHandler != nil {
		r.NotFoundHandler.ServeHTTP(w, req)
		return
	}
	http.NotFoundHandler().ServeHTTP(w, req)
}

// Match matches req against the routes in registration order. When no
// route matches, match.MatchErr tells a method mismatch from a missing
// route.
func (r *Router) Match(req *http.Request, match *RouteMatch) bool {
	var methodMismatch bool

	for _, route := range r.routes {
		if route.Match(req, match) {
			if match.Handler != nil && len(r.middlewares) > 0 {
				match.Handler = r.wrap(match.Route, match.Handler)
			}
			return true
		}
		if errors.Is(match.MatchErr, ErrMethodMismatch) {
			methodMismatch = true
		}
	}

	if methodMismatch {
		match.MatchErr = ErrMethodMismatch
	} else {
		match.MatchErr = ErrNotFound
	}
	return false
}

func (r *Router) wrap(route *Route, handler http.Handler) http.Handler {
	if cached, ok := r.handlers.Load(route); ok {
		return cached.(http.Handler)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	r.handlers.Store(route, handler)
	return handler
}

// allowedMethods collects the methods of every route matching path.
func (r *Router) allowedMethods(path string) []string {
	var methods []string
	for _, route := range r.routes {
		if route.err != nil || (route.path != nil && !route.path.regexp.MatchString(path)) {
			continue
		}
		if sub, ok := route.handler.(*Router); ok {
			methods = append(methods, sub.allowedMethods(path)...)
			continue
		}
		for _, m := range route.methods {
			if !slices.Contains(methods, m) {
				methods = append(methods, m)
			}
		}
	}
	return methods
}

// Use appends middlewares applied to the handlers of routes matched by
// this router, including routes of its subrouters.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)
}

// NewRoute registers an empty route.
func (r *Router) NewRoute() *Route {
	route := &Route{router: r}
	r.routes = append(r.routes, route)
	return route
}

// Handle registers a route for the path template.
func (r *Router) Handle(tpl string, handler http.Handler) *Route {
	return r.NewRoute().Path(tpl).Handler(handler)
}

// HandleFunc registers a route for the path template.
func (r *Router) HandleFunc(tpl string, f func(http.ResponseWriter, *http.Request)) *Route {
	return r.NewRoute().Path(tpl).HandlerFunc(f)
}

// Path registers a route matching the path template.
func (r *Router) Path(tpl string) *Route {
	return r.NewRoute().Path(tpl)
}

// PathPrefix registers a route matching paths that start with tpl.
func (r *Router) PathPrefix(tpl string) *Route {
	return r.NewRoute().PathPrefix(tpl)
}

// Methods registers a route matching the methods.
func (r *Router) Methods(methods ...string) *Route {
	return r.NewRoute().Methods(methods...)
}

// Walk calls walkFn for every route of the router and its subrouters,
// depth first in registration order.
func (r *Router) Walk(walkFn WalkFunc) error {
	return r.walk(walkFn, nil)
}

func (r *Router) walk(walkFn WalkFunc, ancestors []*Route) error {
	for _, route := range r.routes {
		err := walkFn(route, r, ancestors)
		if errors.Is(err, SkipRouter) {
			continue
		}
		if err != nil {
			return err
		}
		if sub, ok := route.handler.(*Router); ok {
			if err := sub.walk(walkFn, append(slices.Clip(ancestors), route)); err != nil {
				return err
			}
		}
	}
	return nil
}

// template returns the full path template of the route holding this
// router, or "" for the root router.
func (r *Router) template() string {
	if r.parent == nil {
		return ""
	}
	return r.parent.fullTemplate()
}

// cleanPath removes dot segments and duplicate slashes, keeping a
// trailing slash.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
