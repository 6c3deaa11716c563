package introspect

import (
	"net/http"
	"time"

	"github.com/vitalvas/apidocs/dispatch"
)

type testUser struct {
	Name string `json:"name"`
}

type Bookmark struct {
	URI       string    `json:"uri" doc:"description=Bookmarked URI,format=uri"`
	Rating    int       `json:"rating,omitempty" doc:"min=0,max=5"`
	Tags      []string  `json:"tags,omitempty"`
	Owner     *testUser `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at" doc:"readOnly"`
	secret    string
}

func (Bookmark) APIDescription() string {
	return "A bookmarked URI"
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Page[T any] struct {
	Items []T    `json:"items"`
	Next  string `json:"next,omitempty"`
}

var (
	bookmarksClass = &dispatch.ResourceClass{
		Name:        "Bookmarks",
		Description: "Bookmark collection",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Output: []Bookmark{}},
			{Method: http.MethodPost, Input: Bookmark{}, Output: Bookmark{}, Status: http.StatusCreated},
		},
	}

	bookmarkClass = &dispatch.ResourceClass{
		Name: "Bookmark",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Name: "getBookmark", Output: Bookmark{}},
			{Method: http.MethodDelete, Status: http.StatusNoContent},
		},
	}
)

// bookmarksGraph builds /v1 -> filter -> {/bookmarks, /bookmarks/{id:int}}.
func bookmarksGraph() *dispatch.Graph {
	g := dispatch.NewGraph()
	api := g.Composite(g.Root(), "/v1")
	auth := g.Filter(api)
	g.Leaf(auth, "/bookmarks", bookmarksClass)
	g.Leaf(auth, "/bookmarks/{id:int}", bookmarkClass)
	return g
}
