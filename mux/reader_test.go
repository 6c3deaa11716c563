package mux

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
	"github.com/vitalvas/apidocs/introspect"
)

type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var (
	itemsClass = &dispatch.ResourceClass{
		Name:        "Items",
		Description: "Item collection.",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Name: "listItems", Output: []Item{}},
			{Method: http.MethodPost, Name: "createItem", Input: Item{}, Output: Item{}, Status: http.StatusCreated},
		},
	}
	itemClass = &dispatch.ResourceClass{
		Name: "Item",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Name: "getItem", Output: Item{}},
			{Method: http.MethodPut, Name: "replaceItem", Input: Item{}, Output: Item{}},
			{Method: http.MethodDelete, Name: "deleteItem", Status: http.StatusNoContent},
		},
	}
)

func noop(http.ResponseWriter, *http.Request) {}

// itemsRouter serves /health, /v1/items and /v1/items/{id:uuid}, with the
// item routes behind a pathless subrouter.
func itemsRouter() *Router {
	r := NewRouter()
	r.HandleFunc("/health", noop)

	api := r.PathPrefix("/v1").Subrouter()
	private := api.NewRoute().Subrouter()
	private.HandleFunc("/items", noop).Methods(http.MethodGet).Resource(itemsClass)
	private.HandleFunc("/items", noop).Methods(http.MethodPost).Resource(itemsClass)
	private.HandleFunc("/items/{id:uuid}", noop).Methods(http.MethodGet, http.MethodDelete).Resource(itemClass)
	return r
}

func TestReaderGraph(t *testing.T) {
	rd := NewReader(itemsRouter())
	root := rd.Root()

	rootEdges := rd.Children(root)
	require.Len(t, rootEdges, 1, "undocumented routes are not part of the graph")
	assert.Equal(t, "/v1", rootEdges[0].Segment)
	assert.False(t, rd.IsLeaf(rootEdges[0].Node))

	apiEdges := rd.Children(rootEdges[0].Node)
	require.Len(t, apiEdges, 1)
	assert.Equal(t, "", apiEdges[0].Segment)

	leaves := rd.Children(apiEdges[0].Node)
	require.Len(t, leaves, 2)

	assert.Equal(t, "/items", leaves[0].Segment)
	require.True(t, rd.IsLeaf(leaves[0].Node))
	items := rd.ResourceClassOf(leaves[0].Node)
	require.NotNil(t, items)
	assert.Equal(t, "Items", items.Name)
	assert.Equal(t, "Item collection.", items.Description)
	assert.Equal(t, []string{"GET", "POST"}, rd.SupportedMethods(items))

	assert.Equal(t, "/items/{id:uuid}", leaves[1].Segment)
	item := rd.ResourceClassOf(leaves[1].Node)
	require.NotNil(t, item)
	assert.Equal(t, []string{"GET", "DELETE"}, rd.SupportedMethods(item))

	spec, ok := item.Method(http.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "getItem", spec.Name)
	assert.Equal(t, Item{}, spec.Output)

	_, ok = item.Method(http.MethodPut)
	assert.False(t, ok, "methods the routes do not serve are not documented")
}

func TestReaderMethods(t *testing.T) {
	t.Run("route without methods documents the class", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items/{id}", noop).Resource(itemClass)

		rd := NewReader(r)
		edges := rd.Children(rd.Root())
		require.Len(t, edges, 1)
		assert.Equal(t, []string{"GET", "PUT", "DELETE"}, rd.SupportedMethods(rd.ResourceClassOf(edges[0].Node)))
	})

	t.Run("methods missing from the class", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items", noop).Methods(http.MethodGet, http.MethodPatch).Resource(itemsClass)

		rd := NewReader(r)
		class := rd.ResourceClassOf(rd.Children(rd.Root())[0].Node)
		require.Len(t, class.Methods, 2)
		assert.Equal(t, "listItems", class.Methods[0].Name)
		assert.Equal(t, dispatch.MethodSpec{Method: http.MethodPatch}, class.Methods[1])
	})

	t.Run("different templates stay apart", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items", noop).Methods(http.MethodGet).Resource(itemsClass)
		r.HandleFunc("/archive", noop).Methods(http.MethodGet).Resource(itemsClass)

		rd := NewReader(r)
		assert.Len(t, rd.Children(rd.Root()), 2)
	})

	t.Run("broken routes are skipped", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc("/items/{id", noop).Methods(http.MethodGet).Resource(itemClass)

		rd := NewReader(r)
		assert.Empty(t, rd.Children(rd.Root()))
	})
}

func TestReaderSharedRouters(t *testing.T) {
	t.Run("shared subrouter", func(t *testing.T) {
		r := NewRouter()
		v1 := r.PathPrefix("/v1").Subrouter()
		v1.HandleFunc("/items", noop).Methods(http.MethodGet).Resource(itemsClass)
		r.PathPrefix("/latest").Handler(v1)

		rd := NewReader(r)
		edges := rd.Children(rd.Root())
		require.Len(t, edges, 2)
		assert.Equal(t, "/latest", edges[1].Segment)
		assert.Equal(t, edges[0].Node, edges[1].Node)
	})

	t.Run("cycle", func(t *testing.T) {
		r := NewRouter()
		api := r.PathPrefix("/v1").Subrouter()
		api.HandleFunc("/items", noop).Methods(http.MethodGet).Resource(itemsClass)
		api.PathPrefix("/loop").Handler(r)

		records, err := introspect.Walk(NewReader(r), "")
		assert.ErrorIs(t, err, introspect.ErrCyclicGraph)
		require.Len(t, records, 1)
		assert.Equal(t, "/v1/items", records[0].Path)
	})
}

func TestReaderRefresh(t *testing.T) {
	r := NewRouter()
	r.HandleFunc("/items", noop).Methods(http.MethodGet).Resource(itemsClass)

	rd := NewReader(r)
	assert.Len(t, rd.Children(rd.Root()), 1)

	r.HandleFunc("/items/{id}", noop).Methods(http.MethodGet).Resource(itemClass)
	assert.Len(t, rd.Children(rd.Root()), 1, "the snapshot is kept until refreshed")

	rd.Refresh()
	assert.Len(t, rd.Children(rd.Root()), 2)
}

func TestReaderIntrospect(t *testing.T) {
	result, err := introspect.New(introspect.Config{
		Graph:      NewReader(itemsRouter()),
		Extractors: introspect.DefaultExtractors(),
	}).Introspect()
	require.NoError(t, err)
	require.NoError(t, result.Err())

	def := result.Definition

	items, ok := def.Resource("/v1/items", "Items")
	require.True(t, ok)
	require.Len(t, items.Operations, 2)
	assert.Equal(t, "GET", items.Operations[0].Method)
	assert.Equal(t, "POST", items.Operations[1].Method)

	item, ok := def.Resource("/v1/items/{id}", "Item")
	require.True(t, ok)
	require.Len(t, item.Operations, 2)

	get, ok := item.Operation(http.MethodGet)
	require.True(t, ok)
	param, ok := get.Parameter("id", definition.InPath)
	require.True(t, ok)
	assert.Equal(t, "string", param.Type)
	assert.Equal(t, "uuid", param.Format)

	_, ok = def.Representation("Item")
	assert.True(t, ok)

	_, ok = def.Resource("/health", "")
	assert.False(t, ok)
}
