package mux

import (
	"context"
	"net/http"
)

type routeContextKey struct{}

type routeContext struct {
	route *Route
	vars  map[string]string
}

// Vars returns the route variables of the request, if any.
func Vars(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(routeContextKey{}).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// CurrentRoute returns the route matched for the request. It is only set
// inside the handler of that route.
func CurrentRoute(r *http.Request) *Route {
	if rc, ok := r.Context().Value(routeContextKey{}).(*routeContext); ok {
		return rc.route
	}
	return nil
}

// SetURLVars returns a copy of r carrying vars, for testing handlers.
func SetURLVars(r *http.Request, vars map[string]string) *http.Request {
	return setRouteContext(r, CurrentRoute(r), vars)
}

func setRouteContext(r *http.Request, route *Route, vars map[string]string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), routeContextKey{}, &routeContext{route: route, vars: vars}))
}
