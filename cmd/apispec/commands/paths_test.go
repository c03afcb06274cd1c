package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apispec/internal/testutil"
	"github.com/erraggy/apispec/parser"
)

func TestListPaths(t *testing.T) {
	result := &parser.ParseResult{Data: testutil.NewToolDocument()}

	all, err := ListPaths(result, "")
	require.NoError(t, err)
	assert.Equal(t, []PathEntry{
		{Path: "/notes", Method: "post", OperationID: "createNote"},
		{Path: "/upload", Method: "post", OperationID: "upload"},
		{Path: "/users/{id}", Method: "get"},
		{Path: "/users/{id}", Method: "put", OperationID: "update user!"},
	}, all)

	users, err := ListPaths(result, "/users")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	empty, err := ListPaths(&parser.ParseResult{Data: map[string]any{"openapi": "3.1.0"}}, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ListPaths(&parser.ParseResult{Data: map[string]any{"paths": []any{}}}, "")
	assert.Error(t, err)
}

func TestHandlePaths_Text(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempYAML(t, testutil.NewAuthDocument())

	require.NoError(t, HandlePaths([]string{"-f", path}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"POST", "/auth", "login"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"GET", "/health", "health"}, strings.Fields(lines[1]))
}

func TestHandlePaths_JSON(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempJSON(t, testutil.NewPetStoreOAS2Document())

	require.NoError(t, HandlePaths([]string{"--file", path, "--prefix", "/pets", "-o", "json"}))

	var entries []PathEntry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Path, "/pets"), e.Path)
	}
}

func TestHandlePaths_Errors(t *testing.T) {
	captureOutput(t)
	path := testutil.WriteTempYAML(t, testutil.NewAuthDocument())

	assert.ErrorContains(t, HandlePaths([]string{"-f", path, "-o", "xml"}), "invalid output format")
	assert.ErrorContains(t, HandlePaths([]string{"-f", path, "extra"}), "no arguments")
	assert.ErrorContains(t, HandlePaths([]string{"-u", "https://a", "-f", path}), "mutually exclusive")
}
