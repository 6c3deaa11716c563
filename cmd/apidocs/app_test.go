package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api_version: "2.0"
resources:
  - name: Bookmarks
    description: Bookmark collection
    methods:
      - method: GET
        output: "[]Bookmark"
routes:
  - path: /bookmarks
    resource: Bookmarks
metadata:
  models:
    Bookmark:
      properties:
        uri: {type: string, required: true}
`

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "apidocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	a.root.SetArgs(append([]string{"--config", path, "--log-level", "error"}, args...))

	err = a.Execute()
	return out.String(), errOut.String(), err
}

func TestPrint(t *testing.T) {
	t.Run("index", func(t *testing.T) {
		out, _, err := run(t, "print")
		require.NoError(t, err)

		var listing map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &listing))
		assert.Equal(t, "2.0", listing["apiVersion"])
	})

	t.Run("category yaml", func(t *testing.T) {
		out, _, err := run(t, "print", "bookmarks", "--yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "resourcePath: /bookmarks")
		assert.Contains(t, out, "Bookmark:")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, stderr, err := run(t, "print", "users")
		require.Error(t, err)
		assert.Contains(t, stderr, "users")
	})

	t.Run("too many args", func(t *testing.T) {
		_, _, err := run(t, "print", "a", "b")
		assert.Error(t, err)
	})
}

func TestOpenAPI(t *testing.T) {
	out, _, err := run(t, "openapi")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	out, _, err = run(t, "openapi", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi: 3.0.3")
}

func TestErrors(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := run(t, "--log-level", "loud", "print")
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("missing config", func(t *testing.T) {
		var out, errOut bytes.Buffer
		a := newApp(&out, &errOut)
		a.root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "print"})

		err := a.Execute()
		assert.ErrorContains(t, err, "reading config")
	})
}
