package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookmarksYAML = `
api:
  version: "2.0"
  title: Bookmarks API
  contact:
    name: API team
    email: api@example.com
  license:
    name: MIT
    url: https://opensource.org/licenses/MIT
resources:
  Bookmarks:
    category: bookmarks
    description: Operations on bookmarks
    operations:
      GET:
        nickname: listBookmarks
        summary: List bookmarks
        notes: Returns the bookmarks of the current user.
        parameters:
          - name: limit
            in: query
            type: integer
            format: int32
            minimum: 1
            maximum: 100
        responses:
          - code: 400
            message: Invalid limit
            model: Error
      createBookmark:
        summary: Create a bookmark
models:
  Error:
    description: Error payload
    properties:
      message:
        type: string
        required: true
      code:
        type: integer
        format: int32
  Bookmark:
    properties:
      uri:
        description: Bookmarked URI
`

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc, err := Parse([]byte(bookmarksYAML))
		require.NoError(t, err)

		api, ok := doc.Definition()
		require.True(t, ok)
		assert.Equal(t, "Bookmarks API", api.Title)
		assert.Equal(t, "api@example.com", api.Contact.Email)

		res, ok := doc.Resource("Bookmarks")
		require.True(t, ok)
		assert.Equal(t, "bookmarks", res.Category)

		op, ok := doc.Operation("Bookmarks", "GET")
		require.True(t, ok)
		assert.Equal(t, "listBookmarks", op.Nickname)
		require.Len(t, op.Parameters, 1)
		assert.Equal(t, 100.0, *op.Parameters[0].Maximum)
		require.Len(t, op.Responses, 1)
		assert.Equal(t, "Error", op.Responses[0].Model)

		_, ok = doc.Operation("Bookmarks", "DELETE")
		assert.False(t, ok)
		_, ok = doc.Operation("Missing", "GET")
		assert.False(t, ok)

		model, ok := doc.Representation("Error")
		require.True(t, ok)
		assert.Equal(t, []string{"message", "code"}, model.Order)

		msg, ok := doc.Property("Error", "message")
		require.True(t, ok)
		assert.True(t, *msg.Required)

		_, ok = doc.Property("Error", "missing")
		assert.False(t, ok)
		_, ok = doc.Property("Missing", "message")
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		doc, err := Parse(nil)
		require.NoError(t, err)
		_, ok := doc.Definition()
		assert.False(t, ok)
		_, ok = doc.Representation("Error")
		assert.False(t, ok)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("resources: ["))
		assert.Error(t, err)
	})

	t.Run("invalid parameter location", func(t *testing.T) {
		_, err := Parse([]byte(`
resources:
  Bookmarks:
    operations:
      GET:
        parameters:
          - name: limit
            in: cookie
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Contains(t, err.Error(), "in")
		assert.Contains(t, err.Error(), "must be one of")
	})

	t.Run("invalid response", func(t *testing.T) {
		_, err := Parse([]byte(`
resources:
  Bookmarks:
    operations:
      GET:
        responses:
          - code: 42
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Contains(t, err.Error(), "must be at least 100")
		assert.Contains(t, err.Error(), "message")
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := Parse([]byte(`
models:
  Bookmark:
    properties:
      rating:
        minimum: 5
        maximum: 1
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Contains(t, err.Error(), "models.Bookmark.properties.rating")
	})

	t.Run("invalid contact", func(t *testing.T) {
		_, err := Parse([]byte(`
api:
  contact:
    email: not-an-email
`))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "apidocs.yaml")
		require.NoError(t, os.WriteFile(path, []byte(bookmarksYAML), 0o600))

		doc, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, doc.Models, 2)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMerge(t *testing.T) {
	base, err := Parse([]byte(bookmarksYAML))
	require.NoError(t, err)

	base.Merge(&Document{
		Info:   &API{Title: "Overridden"},
		Models: map[string]*Model{"Error": {Description: "Replaced"}, "Link": {}},
	})
	base.Merge(nil)

	assert.Equal(t, "Overridden", base.Info.Title)
	assert.Len(t, base.Models, 3)
	assert.Equal(t, "Replaced", base.Models["Error"].Description)
	assert.Len(t, base.Resources, 1)

	empty := &Document{}
	empty.Merge(base)
	assert.Len(t, empty.Models, 3)
}

func TestPropertyNames(t *testing.T) {
	m := &Model{
		Properties: map[string]*Property{"b": {}, "a": {}, "c": {}},
		Order:      []string{"c", "missing"},
	}
	assert.Equal(t, []string{"c", "a", "b"}, m.PropertyNames())
}
