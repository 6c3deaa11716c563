package mux

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestRouterServeHTTP(t *testing.T) {
	t.Run("exact path", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/health", textHandler("ok"))

		w := serve(r, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())

		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/health/x").Code)
	})

	t.Run("first match wins", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items/new", textHandler("new"))
		r.HandleFunc("/items/{id}", textHandler("item"))

		assert.Equal(t, "new", serve(r, http.MethodGet, "/items/new").Body.String())
		assert.Equal(t, "item", serve(r, http.MethodGet, "/items/42").Body.String())
	})

	t.Run("vars", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/users/{user}/posts/{post:int}", func(w http.ResponseWriter, req *http.Request) {
			vars := Vars(req)
			_, _ = w.Write([]byte(vars["user"] + ":" + vars["post"]))
		})

		assert.Equal(t, "alice:7", serve(r, http.MethodGet, "/users/alice/posts/7").Body.String())
		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/users/alice/posts/x").Code)
	})

	t.Run("macros", func(t *testing.T) {
		tests := []struct {
			tpl   string
			match string
			miss  string
		}{
			{"/r/{id:uuid}", "/r/0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", "/r/123"},
			{"/r/{id:int}", "/r/123", "/r/12a"},
			{"/r/{v:float}", "/r/1.5", "/r/1.5.2"},
			{"/r/{s:slug}", "/r/my-post-1", "/r/my--post"},
			{"/r/{s:alpha}", "/r/abc", "/r/ab1"},
			{"/r/{s:alphanum}", "/r/ab1", "/r/ab-1"},
			{"/r/{d:date}", "/r/2024-01-31", "/r/2024-1-31"},
			{"/r/{h:hex}", "/r/deadBEEF", "/r/xyz"},
			{"/r/{d:domain}", "/r/api.example.com", "/r/-bad.com"},
		}

		for _, tt := range tests {
			t.Run(tt.tpl, func(t *testing.T) {
				r := NewRouter()
				r.HandleFunc(tt.tpl, textHandler("ok"))

				assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, tt.match).Code)
				assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, tt.miss).Code)
			})
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items", textHandler("list")).Methods(http.MethodGet)
		r.HandleFunc("/items", textHandler("create")).Methods("post")

		assert.Equal(t, "create", serve(r, http.MethodPost, "/items").Body.String())

		w := serve(r, http.MethodPut, "/items")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
	})

	t.Run("custom handlers", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items", textHandler("list")).Methods(http.MethodGet)
		r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		assert.Equal(t, http.StatusTeapot, serve(r, http.MethodGet, "/missing").Code)

		w := serve(r, http.MethodDelete, "/items")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "GET", w.Header().Get("Allow"))
	})

	t.Run("cleans paths", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/a/b", textHandler("ok"))

		assert.Equal(t, "ok", serve(r, http.MethodGet, "/a//x/../b").Body.String())
	})

	t.Run("current route", func(t *testing.T) {
		r := NewRouter()
		var route *Route
		route = r.HandleFunc("/me", func(w http.ResponseWriter, req *http.Request) {
			assert.Same(t, route, CurrentRoute(req))
		})

		serve(r, http.MethodGet, "/me")
		assert.Nil(t, CurrentRoute(httptest.NewRequest(http.MethodGet, "/me", nil)))
	})
}

func TestSubrouter(t *testing.T) {
	r := NewRouter()
	api := r.PathPrefix("/v1").Subrouter()
	items := api.PathPrefix("/items").Subrouter()
	items.HandleFunc("", textHandler("list")).Methods(http.MethodGet)
	items.HandleFunc("/{id:int}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("item " + Vars(req)["id"]))
	}).Methods(http.MethodGet, http.MethodDelete)

	private := api.NewRoute().Subrouter()
	private.HandleFunc("/admin", textHandler("admin"))

	assert.Equal(t, "list", serve(r, http.MethodGet, "/v1/items").Body.String())
	assert.Equal(t, "item 3", serve(r, http.MethodGet, "/v1/items/3").Body.String())
	assert.Equal(t, "admin", serve(r, http.MethodGet, "/v1/admin").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/v2/items").Code)

	w := serve(r, http.MethodPost, "/v1/items/3")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, DELETE", w.Header().Get("Allow"))

	route := items.HandleFunc("/{id:int}/tags", textHandler("tags"))
	tpl, err := route.GetPathTemplate()
	require.NoError(t, err)
	assert.Equal(t, "/v1/items/{id:int}/tags", tpl)

	names, err := route.GetVarNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, names)
}

func TestMiddleware(t *testing.T) {
	var trace []string
	mark := func(name string) MiddlewareFunc {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				trace = append(trace, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := NewRouter()
	r.Use(mark("outer"))
	api := r.PathPrefix("/v1").Subrouter()
	api.Use(mark("first"), mark("second"))
	api.HandleFunc("/items", func(http.ResponseWriter, *http.Request) {
		trace = append(trace, "handler")
	})

	serve(r, http.MethodGet, "/v1/items")
	assert.Equal(t, []string{"outer", "first", "second", "handler"}, trace)

	trace = nil
	serve(r, http.MethodGet, "/v1/items")
	assert.Equal(t, []string{"outer", "first", "second", "handler"}, trace)

	trace = nil
	serve(r, http.MethodGet, "/missing")
	assert.Empty(t, trace)
}

func TestRouteErrors(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		msg  string
	}{
		{"relative", "items", "must start with a slash"},
		{"unbalanced", "/items/{id", "unbalanced braces"},
		{"duplicated variable", "/{id}/{id}", "duplicated route variable"},
		{"missing name", "/{:int}", "missing name"},
		{"capturing group", "/{id:(a|b)}", "capturing groups"},
		{"invalid pattern", "/{id:[}", "invalid template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter()
			route := r.HandleFunc(tt.tpl, textHandler("ok")).Methods(http.MethodGet)

			require.Error(t, route.GetError())
			assert.Contains(t, route.GetError().Error(), tt.msg)

			_, err := route.GetPathTemplate()
			assert.Error(t, err)
			_, err = route.GetMethods()
			assert.Error(t, err)
		})
	}

	t.Run("route without path or methods", func(t *testing.T) {
		route := NewRouter().NewRoute()

		_, err := route.GetPathTemplate()
		assert.ErrorContains(t, err, "doesn't have a path")
		_, err = route.GetMethods()
		assert.ErrorContains(t, err, "doesn't have methods")
	})

	t.Run("methods are normalized", func(t *testing.T) {
		route := NewRouter().Path("/x").Methods("get", " POST ", "GET")

		methods, err := route.GetMethods()
		require.NoError(t, err)
		assert.Equal(t, []string{"GET", "POST"}, methods)
	})
}

func TestWalk(t *testing.T) {
	r := NewRouter()
	r.HandleFunc("/health", textHandler("ok"))
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/items", textHandler("items"))
	hidden := r.PathPrefix("/internal").Subrouter()
	hidden.HandleFunc("/debug", textHandler("debug"))

	t.Run("ancestors", func(t *testing.T) {
		var visited []string
		err := r.Walk(func(route *Route, _ *Router, ancestors []*Route) error {
			tpl, err := route.GetPathTemplate()
			require.NoError(t, err)
			visited = append(visited, strings.Repeat(">", len(ancestors))+tpl)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"/health", "/v1", ">/v1/items", "/internal", ">/internal/debug"}, visited)
	})

	t.Run("skip router", func(t *testing.T) {
		var visited []string
		err := r.Walk(func(route *Route, _ *Router, _ []*Route) error {
			tpl, _ := route.GetPathTemplate()
			visited = append(visited, tpl)
			if tpl == "/internal" {
				return SkipRouter
			}
			return nil
		})

		require.NoError(t, err)
		assert.NotContains(t, visited, "/internal/debug")
	})

	t.Run("stops on error", func(t *testing.T) {
		stop := errors.New("stop")
		var count int
		err := r.Walk(func(*Route, *Router, []*Route) error {
			count++
			return stop
		})

		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, count)
	})
}
