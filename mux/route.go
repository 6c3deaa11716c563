package mux

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/vitalvas/apidocs/dispatch"
)

// Route matches requests by path template and methods. Its configuration
// methods return the route for chaining; the first configuration error is
// kept and reported by GetError, and a route with an error never matches.
type Route struct {
	router  *Router
	tpl     string
	path    *pathTemplate
	methods []string
	handler http.Handler
	class   *dispatch.ResourceClass
	err     error
}

// Match matches req against the route, delegating to the subrouter when
// the route holds one.
func (r *Route) Match(req *http.Request, match *RouteMatch) bool {
	if r.err != nil {
		return false
	}

	var vars map[string]string
	if r.path != nil {
		var ok bool
		if vars, ok = r.path.match(req.URL.Path); !ok {
			return false
		}
	}

	if len(r.methods) > 0 && !slices.Contains(r.methods, req.Method) {
		match.MatchErr = ErrMethodMismatch
		return false
	}

	if sub, ok := r.handler.(*Router); ok {
		return sub.Match(req, match)
	}

	match.Route = r
	match.Handler = r.handler
	match.Vars = vars
	match.MatchErr = nil
	return true
}

// Path sets the path template. Templates of routes inside a subrouter are
// relative to the prefix of the route holding it.
func (r *Route) Path(tpl string) *Route {
	return r.setPath(tpl, false)
}

// PathPrefix sets a path template matching every path that starts with it.
func (r *Route) PathPrefix(tpl string) *Route {
	return r.setPath(tpl, true)
}

func (r *Route) setPath(tpl string, prefix bool) *Route {
	if r.err != nil {
		return r
	}
	if tpl != "" && !strings.HasPrefix(tpl, "/") {
		r.err = errors.New("mux: path must start with a slash, got " + tpl)
		return r
	}

	r.tpl = tpl
	r.path, r.err = compileTemplate(r.fullTemplate(), prefix)
	return r
}

// fullTemplate joins the template of the enclosing routes with the
// route's own template.
func (r *Route) fullTemplate() string {
	parent := r.router.template()
	if r.tpl == "" {
		return parent
	}
	return strings.TrimRight(parent, "/") + r.tpl
}

// Methods restricts the route to the methods. Calling it again replaces
// the previous set.
func (r *Route) Methods(methods ...string) *Route {
	if r.err != nil {
		return r
	}
	r.methods = r.methods[:0]
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" && !slices.Contains(r.methods, m) {
			r.methods = append(r.methods, m)
		}
	}
	return r
}

// Handler sets the handler of the route.
func (r *Route) Handler(handler http.Handler) *Route {
	if r.err == nil {
		r.handler = handler
	}
	return r
}

// HandlerFunc sets the handler of the route.
func (r *Route) HandlerFunc(f func(http.ResponseWriter, *http.Request)) *Route {
	return r.Handler(http.HandlerFunc(f))
}

// Subrouter replaces the handler of the route with a new router whose
// routes are relative to the route's path.
func (r *Route) Subrouter() *Router {
	router := &Router{parent: r}
	r.handler = router
	return router
}

// Resource binds the route to a resource class, which makes it part of
// the documented dispatch graph. Only the class methods the route matches
// are documented; a route without methods documents all of them.
func (r *Route) Resource(class *dispatch.ResourceClass) *Route {
	if r.err == nil {
		r.class = class
	}
	return r
}

// GetHandler returns the handler of the route.
func (r *Route) GetHandler() http.Handler {
	return r.handler
}

// GetResource returns the resource class bound to the route, or nil.
func (r *Route) GetResource() *dispatch.ResourceClass {
	return r.class
}

// GetPathTemplate returns the full path template of the route.
func (r *Route) GetPathTemplate() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.path == nil {
		return "", errors.New("mux: route doesn't have a path")
	}
	return r.path.template, nil
}

// GetMethods returns the methods the route matches.
func (r *Route) GetMethods() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.methods) == 0 {
		return nil, errors.New("mux: route doesn't have methods")
	}
	return slices.Clone(r.methods), nil
}

// GetVarNames returns the variable names of the full path template.
func (r *Route) GetVarNames() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.path == nil {
		return nil, nil
	}
	return slices.Clone(r.path.vars), nil
}

// GetError returns the first configuration error of the route.
func (r *Route) GetError() error {
	return r.err
}
