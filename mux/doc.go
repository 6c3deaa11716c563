/*
Package mux is a request router whose route tree doubles as a documented
dispatch graph.

Routes match a path template and, optionally, a set of methods. Templates
hold variables in the form {name} or {name:pattern}, where pattern is a
regular expression or one of the macros uuid, int, float, slug, alpha,
alphanum, date, hex and domain:

	r := mux.NewRouter()
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/bookmarks/{id:uuid}", getBookmark).Methods(http.MethodGet)

	func getBookmark(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		...
	}

A route without a path that holds a subrouter groups routes behind shared
middleware, such as authentication:

	private := api.NewRoute().Subrouter()
	private.Use(requireToken)

Routes bound to a resource class with Route.Resource are documented.
NewReader exposes them as a dispatch.Reader: subrouters become composite
nodes reached through their path prefix and documented routes become
leaves. Routes sharing a parent, a template and a resource class are
merged into one leaf carrying the union of their methods:

	api.HandleFunc("/bookmarks", list).Methods(http.MethodGet).Resource(bookmarks)
	api.HandleFunc("/bookmarks", create).Methods(http.MethodPost).Resource(bookmarks)

	h, err := docs.New(mux.NewReader(r), docs.Config{})

Routes without a resource class, such as health checks or the
documentation endpoint itself, are served but not documented.
*/
package mux
