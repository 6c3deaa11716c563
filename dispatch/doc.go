// Package dispatch describes the routing topology of a host application
// as a read-only graph that documentation tooling can walk.
//
// A graph is made of composite nodes, which route to their children by
// path segment, and leaf nodes, which terminate in a ResourceClass. Nodes
// live in an arena and are addressed by NodeID, so the same node may be
// reachable from several parents and a graph may even contain cycles.
//
// # Building a Graph
//
//	g := dispatch.NewGraph()
//
//	bookmarks := &dispatch.ResourceClass{
//	    Name: "Bookmarks",
//	    Methods: []dispatch.MethodSpec{
//	        {Method: http.MethodGet, Name: "List", Output: []Bookmark{}},
//	        {Method: http.MethodPost, Name: "Create", Input: Bookmark{}, Output: Bookmark{}},
//	    },
//	}
//
//	users := g.Composite(g.Root(), "/users/{username}")
//	g.Leaf(users, "/bookmarks", bookmarks)
//
// # Path Templates
//
// Segments may contain variables in the form {name} or {name:macro}.
// The macro names follow the router macros (uuid, int, float, slug, alpha,
// alphanum, date, hex, domain) and are kept for typing the generated
// path parameters:
//
//	path, vars := dispatch.ParseTemplate("/items/{id:uuid}")
//	// path == "/items/{id}", vars[0].Macro == "uuid"
//
// # Reader
//
// Consumers depend on the Reader interface only. Graph implements it, and
// any other routing engine can be adapted by implementing the five methods.
package dispatch
