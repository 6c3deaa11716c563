package oas3

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
	"github.com/vitalvas/apidocs/introspect"
	"github.com/vitalvas/apidocs/metadata"
)

type User struct {
	Name string `json:"name"`
}

type Bookmark struct {
	URI    string   `json:"uri" doc:"description=Bookmarked URI"`
	Rating int      `json:"rating,omitempty" doc:"min=0,max=5,enum=1|3|5"`
	Tags   []string `json:"tags,omitempty"`
	Owner  *User    `json:"owner,omitempty"`
}

func bookmarksDefinition(t *testing.T) *definition.Definition {
	t.Helper()

	list := &dispatch.ResourceClass{
		Name:        "Bookmarks",
		Description: "Bookmark collection",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Output: []Bookmark{}},
			{Method: http.MethodPost, Input: Bookmark{}, Output: Bookmark{}, Status: http.StatusCreated},
		},
	}
	item := &dispatch.ResourceClass{
		Name: "Bookmark",
		Methods: []dispatch.MethodSpec{
			{Method: http.MethodGet, Name: "getBookmark", Output: Bookmark{}},
			{Method: http.MethodDelete},
		},
	}

	g := dispatch.NewGraph()
	g.Leaf(g.Root(), "/bookmarks", list)
	g.Leaf(g.Root(), "/bookmarks/{id:int}", item)

	store := metadata.NewStore().
		SetOperation("Bookmarks", "GET", &metadata.Operation{
			Summary:    "List bookmarks",
			Parameters: []*metadata.Parameter{{Name: "tag", In: "query", AllowMultiple: true}},
			Responses:  []*metadata.Response{{Code: 400, Message: "Invalid filter", Model: "Error"}},
		}).
		SetProperty("Error", "message", &metadata.Property{Type: "string"})

	res, err := introspect.New(introspect.Config{
		Graph:      g,
		Version:    "1.2.0",
		BasePath:   "https://api.example.com/v1",
		Title:      "Bookmarks",
		Extractors: append(introspect.DefaultExtractors(), metadata.NewExtractor(store)),
	}).Introspect()
	require.NoError(t, err)
	return res.Definition
}

func TestTranslate(t *testing.T) {
	def := bookmarksDefinition(t)

	doc, err := Translate(def)
	require.NoError(t, err)

	t.Run("info", func(t *testing.T) {
		assert.Equal(t, OpenAPIVersion, doc.OpenAPI)
		assert.Equal(t, "Bookmarks", doc.Info.Title)
		assert.Equal(t, "1.2.0", doc.Info.Version)
		require.Len(t, doc.Servers, 1)
		assert.Equal(t, "https://api.example.com/v1", doc.Servers[0].URL)
	})

	t.Run("tags", func(t *testing.T) {
		require.Len(t, doc.Tags, 2)
		assert.Equal(t, "bookmarks", doc.Tags[0].Name)
		assert.Equal(t, "Bookmark collection", doc.Tags[0].Description)
		assert.Equal(t, "bookmark", doc.Tags[1].Name)
	})

	t.Run("list", func(t *testing.T) {
		item := doc.Paths.Value("/bookmarks")
		require.NotNil(t, item)
		require.NotNil(t, item.Get)

		get := item.Get
		assert.Equal(t, "getBookmarks", get.OperationID)
		assert.Equal(t, "List bookmarks", get.Summary)
		assert.Equal(t, []string{"bookmarks"}, get.Tags)

		require.Len(t, get.Parameters, 1)
		tag := get.Parameters[0].Value
		assert.Equal(t, "query", tag.In)
		assert.True(t, tag.Schema.Value.Type.Is("array"))

		ok := get.Responses.Value("200")
		require.NotNil(t, ok)
		schema := ok.Value.Content.Get("application/json").Schema
		require.NotNil(t, schema.Value)
		assert.True(t, schema.Value.Type.Is("array"))
		assert.Equal(t, "#/components/schemas/Bookmark", schema.Value.Items.Ref)

		bad := get.Responses.Value("400")
		require.NotNil(t, bad)
		assert.Equal(t, "Invalid filter", *bad.Value.Description)
		assert.Equal(t, "#/components/schemas/Error", bad.Value.Content.Get("application/json").Schema.Ref)
	})

	t.Run("create", func(t *testing.T) {
		post := doc.Paths.Value("/bookmarks").Post
		require.NotNil(t, post)
		require.NotNil(t, post.RequestBody)
		assert.True(t, post.RequestBody.Value.Required)
		assert.Equal(t, "#/components/schemas/Bookmark", post.RequestBody.Value.Content.Get("application/json").Schema.Ref)
		assert.NotNil(t, post.Responses.Value("201"))
	})

	t.Run("item", func(t *testing.T) {
		item := doc.Paths.Value("/bookmarks/{id}")
		require.NotNil(t, item)

		require.NotNil(t, item.Get)
		require.Len(t, item.Get.Parameters, 1)
		id := item.Get.Parameters[0].Value
		assert.Equal(t, "path", id.In)
		assert.True(t, id.Required)
		assert.True(t, id.Schema.Value.Type.Is("integer"))

		require.NotNil(t, item.Delete)
		assert.Equal(t, "deleteBookmark", item.Delete.OperationID)
		assert.NotNil(t, item.Delete.Responses.Value("default"))
	})

	t.Run("components", func(t *testing.T) {
		require.NotNil(t, doc.Components)
		assert.Len(t, doc.Components.Schemas, 3)

		bm := doc.Components.Schemas["Bookmark"].Value
		assert.Equal(t, []string{"uri"}, bm.Required)
		assert.Equal(t, "Bookmarked URI", bm.Properties["uri"].Value.Description)

		rating := bm.Properties["rating"].Value
		assert.Equal(t, 5.0, *rating.Max)
		assert.Equal(t, []any{int64(1), int64(3), int64(5)}, rating.Enum)

		assert.True(t, bm.Properties["tags"].Value.Type.Is("array"))
		assert.Equal(t, "#/components/schemas/User", bm.Properties["owner"].Ref)
	})

	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"$ref":"#/components/schemas/Bookmark"`)
		assert.Contains(t, string(data), `"openapi":"3.0.3"`)
	})

	t.Run("pure", func(t *testing.T) {
		before := def.Clone()
		_, err := Translate(def)
		require.NoError(t, err)
		assert.Equal(t, before, def)
	})
}

func TestTranslateEdgeCases(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		doc, err := Translate(definition.New())
		require.NoError(t, err)
		assert.Equal(t, "API", doc.Info.Title)
		assert.Equal(t, definition.DefaultVersion, doc.Info.Version)
		assert.Nil(t, doc.Components)
		assert.Empty(t, doc.Servers)
	})

	t.Run("duplicate nicknames", func(t *testing.T) {
		def := definition.New()
		a := &definition.Resource{Path: "/a", Name: "A", Category: "a"}
		a.AddOperation(&definition.Operation{Method: "GET", Name: "list"})
		b := &definition.Resource{Path: "/b", Name: "B", Category: "b"}
		b.AddOperation(&definition.Operation{Method: "GET", Name: "list"})
		def.AddResource(a)
		def.AddResource(b)

		doc, err := Translate(def)
		require.NoError(t, err)
		assert.Equal(t, "list", doc.Paths.Value("/a").Get.OperationID)
		assert.Equal(t, "list2", doc.Paths.Value("/b").Get.OperationID)
	})

	t.Run("unsupported method", func(t *testing.T) {
		def := definition.New()
		res := &definition.Resource{Path: "/dav", Name: "Dav", Category: "dav"}
		res.AddOperation(&definition.Operation{Method: "PROPFIND", Name: "propfind"})
		res.AddOperation(&definition.Operation{Method: "GET", Name: "get"})
		def.AddResource(res)

		doc, err := Translate(def)
		require.NoError(t, err)
		assert.Len(t, doc.Paths.Value("/dav").Operations(), 1)
	})

	t.Run("duplicate operation", func(t *testing.T) {
		def := definition.New()
		for _, name := range []string{"A", "B"} {
			res := &definition.Resource{Path: "/x", Name: name, Category: "x"}
			res.AddOperation(&definition.Operation{Method: "GET", Name: "get" + name})
			def.AddResource(res)
		}

		_, err := Translate(def)
		assert.Error(t, err)
	})

	t.Run("undeclared path parameter", func(t *testing.T) {
		def := definition.New()
		res := &definition.Resource{Path: "/x/{id}", Name: "X", Category: "x"}
		res.AddOperation(&definition.Operation{Method: "GET", Name: "getX"})
		def.AddResource(res)

		_, err := Translate(def)
		assert.Error(t, err)
	})

	t.Run("form parameters", func(t *testing.T) {
		def := definition.New()
		res := &definition.Resource{Path: "/login", Name: "Login", Category: "login"}
		op := res.AddOperation(&definition.Operation{Method: "POST", Name: "login"})
		op.SetParameter(&definition.Parameter{Name: "user", In: definition.InForm, Type: "string", Required: true})
		op.SetParameter(&definition.Parameter{Name: "remember", In: definition.InForm, Type: "boolean"})
		def.AddResource(res)

		doc, err := Translate(def)
		require.NoError(t, err)

		body := doc.Paths.Value("/login").Post.RequestBody.Value
		form := body.Content.Get("application/x-www-form-urlencoded").Schema.Value
		assert.Equal(t, []string{"user"}, form.Required)
		assert.Len(t, form.Properties, 2)
		assert.Empty(t, doc.Paths.Value("/login").Post.Parameters)
	})

	t.Run("unknown model reference", func(t *testing.T) {
		def := definition.New()
		res := &definition.Resource{Path: "/x", Name: "X", Category: "x"}
		op := res.AddOperation(&definition.Operation{Method: "GET", Name: "getX", Output: &definition.Payload{Type: "Ghost"}})
		op.Responses.Set(&definition.Response{Code: 200, Representation: "Ghost"})
		def.AddResource(res)

		doc, err := Translate(def)
		require.NoError(t, err)
		require.NotNil(t, doc.Components)
		assert.Contains(t, doc.Components.Schemas, "Ghost")
		assert.Equal(t, "OK", *doc.Paths.Value("/x").Get.Responses.Value("200").Value.Description)
	})
}

func TestMarshalYAML(t *testing.T) {
	t.Run("block style", func(t *testing.T) {
		doc, err := Translate(bookmarksDefinition(t))
		require.NoError(t, err)

		data, err := MarshalYAML(doc)
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "openapi: 3.0.3\n")
		assert.Contains(t, out, "#/components/schemas/Bookmark")
		assert.NotContains(t, out, "{\"")
	})

	t.Run("string scalars stay strings", func(t *testing.T) {
		doc, err := Translate(definition.New())
		require.NoError(t, err)

		data, err := MarshalYAML(doc)
		require.NoError(t, err)

		var decoded struct {
			Info struct {
				Version any `yaml:"version"`
			} `yaml:"info"`
		}
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, "1.0", decoded.Info.Version)
	})
}
