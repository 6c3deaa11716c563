package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store := NewStore().
		SetOperation("Bookmarks", "GET", &Operation{Summary: "List bookmarks"}).
		SetResource("Bookmarks", &Resource{Category: "bookmarks"}).
		SetProperty("Error", "message", &Property{Type: "string"}).
		SetProperty("Error", "code", &Property{Type: "integer"}).
		SetProperty("Error", "message", &Property{Type: "string", Description: "Reason"}).
		SetRepresentation("Error", &Model{Description: "Error payload"}).
		SetDefinition(&API{Title: "Bookmarks API"})

	t.Run("resource keeps operations", func(t *testing.T) {
		res, ok := store.Resource("Bookmarks")
		require.True(t, ok)
		assert.Equal(t, "bookmarks", res.Category)

		op, ok := store.Operation("Bookmarks", "GET")
		require.True(t, ok)
		assert.Equal(t, "List bookmarks", op.Summary)
	})

	t.Run("representation keeps properties", func(t *testing.T) {
		m, ok := store.Representation("Error")
		require.True(t, ok)
		assert.Equal(t, "Error payload", m.Description)
		assert.Equal(t, []string{"message", "code"}, m.PropertyNames())

		p, ok := store.Property("Error", "message")
		require.True(t, ok)
		assert.Equal(t, "Reason", p.Description)
	})

	t.Run("definition", func(t *testing.T) {
		api, ok := store.Definition()
		require.True(t, ok)
		assert.Equal(t, "Bookmarks API", api.Title)
	})

	t.Run("validates", func(t *testing.T) {
		assert.NoError(t, store.Validate())

		store := NewStore().SetOperation("Bookmarks", "GET", &Operation{
			Parameters: []*Parameter{{Name: "limit", In: "nowhere"}},
		})
		assert.ErrorIs(t, store.Validate(), ErrInvalidDocument)
	})
}
