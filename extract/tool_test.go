package extract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apispec/internal/testutil"
	"github.com/erraggy/apispec/oaserrors"
)

func toolOptions() Options {
	opts := DefaultOptions()
	opts.ToolMode = true
	return opts
}

func TestTools_PathAndQueryParameters(t *testing.T) {
	frag, err := Extract(testutil.NewToolDocument(), PathLocator("/users/{id}"), toolOptions())
	require.NoError(t, err)
	require.Len(t, frag.Tools, 2)

	get := frag.Tools[0]
	assert.Equal(t, "getUsersId", get.Name)
	assert.Equal(t, "Get a user", get.Description)
	assert.Equal(t, "get", get.Method)
	assert.Equal(t, "/users/{id}", get.Path)
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"verbose": map[string]any{"type": "boolean"},
			"X-Trace": map[string]any{"type": "string"},
		},
		"required": []string{"id"},
	}, get.Parameters)

	put := frag.Tools[1]
	assert.Equal(t, "update_user", put.Name)
	assert.Equal(t, "Replaces a user.", put.Description)
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"name":    map[string]any{"type": "string"},
			"email":   map[string]any{"type": []any{"string", "null"}, "format": "email"},
			"address": map[string]any{"$ref": "#/$defs/Address"},
		},
		"required": []string{"id", "name"},
		"$defs": map[string]any{
			"Address": map[string]any{
				"type":       "object",
				"properties": map[string]any{"city": map[string]any{"type": "string"}},
			},
		},
	}, put.Parameters)
}

func TestTools_ParameterDescriptionsWhenDocsKept(t *testing.T) {
	opts := toolOptions()
	opts.StripDocs = false
	frag, err := Extract(testutil.NewToolDocument(), PathLocator("/users/{id}"), opts)
	require.NoError(t, err)

	props := frag.Tools[0].Parameters["properties"].(map[string]any)
	assert.Equal(t, "User id", dig(t, props, "id", "description"))
	assert.NotContains(t, props["verbose"], "description")
}

func TestTools_ScalarBody(t *testing.T) {
	frag, err := Extract(testutil.NewToolDocument(), PathLocator("/notes"), toolOptions())
	require.NoError(t, err)
	require.Len(t, frag.Tools, 1)

	tool := frag.Tools[0]
	assert.Equal(t, "createNote", tool.Name)
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"body": map[string]any{"type": "string", "maxLength": 140},
		},
		"required": []string{"body"},
	}, tool.Parameters)
}

func TestTools_BinaryBodyWithoutSchema(t *testing.T) {
	_, err := Extract(testutil.NewToolDocument(), PathLocator("/upload"), toolOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedOperation))

	var opErr *oaserrors.OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "/upload", opErr.Path)
	assert.Equal(t, "post", opErr.Method)
	assert.Equal(t, "upload", opErr.OperationID)
	assert.Contains(t, opErr.Message, "application/octet-stream")

	// Without tool mode the same path extracts fine.
	_, err = Extract(testutil.NewToolDocument(), PathLocator("/upload"), DefaultOptions())
	assert.NoError(t, err)
}

func TestTools_OAS2(t *testing.T) {
	frag, err := Extract(testutil.NewPetStoreOAS2Document(), PathLocator("/pets"), toolOptions())
	require.NoError(t, err)
	require.Len(t, frag.Tools, 2)

	list := frag.Tools[0]
	assert.Equal(t, "listPets", list.Name)
	assert.Equal(t, "List pets", list.Description)
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit": map[string]any{"type": "integer", "format": "int32"},
		},
	}, list.Parameters)

	create := frag.Tools[1]
	assert.Equal(t, "createPet", create.Name)
	assert.Equal(t, "Adds a pet to the store.", create.Description)
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"tag":  map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}, create.Parameters)

	// Tool mode keeps the operation description in the fragment document.
	out := render(t, frag)
	assert.Equal(t, "Adds a pet to the store.", dig(t, out, "paths", "/pets", "post", "description"))
	assert.NotContains(t, dig(t, out, "paths", "/pets", "get"), "summary")
}

func TestTools_QueryMatches(t *testing.T) {
	t.Run("operation", func(t *testing.T) {
		frag, err := Extract(testutil.NewAuthDocument(), QueryLocator(`paths."/auth".post`, ""), toolOptions())
		require.NoError(t, err)
		require.Len(t, frag.Tools, 1)
		assert.Equal(t, "login", frag.Tools[0].Name)
		assert.Equal(t, "/auth", frag.Tools[0].Path)
		assert.Equal(t, "post", frag.Tools[0].Method)

		props := frag.Tools[0].Parameters["properties"].(map[string]any)
		assert.Equal(t, map[string]any{"$ref": "#/$defs/Token"}, props["token"])
		assert.Contains(t, frag.Tools[0].Parameters["$defs"], "Token")
		assert.Equal(t, []string{"username", "password"}, frag.Tools[0].Parameters["required"])
	})

	t.Run("path items", func(t *testing.T) {
		frag, err := Extract(testutil.NewAuthDocument(), QueryLocator("$.paths.*", "jsonpath"), toolOptions())
		require.NoError(t, err)
		names := make([]string, len(frag.Tools))
		for i, tool := range frag.Tools {
			names[i] = tool.Name
		}
		assert.Equal(t, []string{"login", "health"}, names)
	})

	t.Run("not an operation", func(t *testing.T) {
		_, err := Extract(testutil.NewAuthDocument(), QueryLocator("info", ""), toolOptions())
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedOperation))
	})

	t.Run("name map", func(t *testing.T) {
		_, err := Extract(testutil.NewAuthDocument(), QueryLocator("paths", ""), toolOptions())
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedOperation))
	})
}

// docKeywords returns the location of every description and summary
// keyword in v. Members of properties maps are names and are skipped.
func docKeywords(v any, at string, names bool) []string {
	var found []string
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if !names && (k == "description" || k == "summary") {
				found = append(found, at+"."+k)
			}
			found = append(found, docKeywords(child, at+"."+k, !names && k == "properties")...)
		}
	case []any:
		for _, child := range n {
			found = append(found, docKeywords(child, at+"[]", false)...)
		}
	}
	return found
}

func TestTools_DocumentKeepsOnlyOperationDescription(t *testing.T) {
	opts := toolOptions()
	require.True(t, opts.StripDocs)
	frag, err := Extract(testutil.NewAuthDocument(), PathLocator("/auth"), opts)
	require.NoError(t, err)

	out := render(t, frag)
	assert.Equal(t, []string{"$.paths./auth.post.description"}, docKeywords(out, "$", false))
	assert.Equal(t, "Exchanges credentials for a token.", dig(t, out, "paths", "/auth", "post", "description"))
	assert.Contains(t, dig(t, out, "components", "schemas", "Credentials", "properties"), "description")
}

func TestTools_DuplicateNames(t *testing.T) {
	doc := testutil.NewAuthDocument()
	health := doc["paths"].(map[string]any)["/health"].(map[string]any)["get"].(map[string]any)
	health["operationId"] = "login"

	frag, err := Extract(doc, QueryLocator("$.paths.*", "jsonpath"), toolOptions())
	require.NoError(t, err)
	require.Len(t, frag.Tools, 2)
	assert.Equal(t, "login", frag.Tools[0].Name)
	assert.Equal(t, "login2", frag.Tools[1].Name)
}

func TestTools_ParameterOverride(t *testing.T) {
	doc := testutil.NewToolDocument()
	item := doc["paths"].(map[string]any)["/users/{id}"].(map[string]any)
	get := item["get"].(map[string]any)
	get["parameters"] = append(get["parameters"].([]any),
		map[string]any{"name": "id", "in": "path", "required": true, "schema": map[string]any{"type": "integer"}},
		map[string]any{"name": "id", "in": "query", "schema": map[string]any{"type": "boolean"}},
	)

	frag, err := Extract(doc, PathLocator("/users/{id}"), toolOptions())
	require.NoError(t, err)

	props := frag.Tools[0].Parameters["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "integer"}, props["id"], "operation parameter replaces the path parameter")
	assert.Equal(t, map[string]any{"type": "boolean"}, props["query_id"], "name clash is qualified by location")
}

func TestTools_ExclusiveBounds(t *testing.T) {
	got := toJSONSchema(map[string]any{
		"type":             "integer",
		"minimum":          1,
		"exclusiveMinimum": true,
		"maximum":          10,
		"exclusiveMaximum": false,
		"nullable":         false,
		"enum":             []any{map[string]any{"nullable": true}},
	})
	assert.Equal(t, map[string]any{
		"type":             "integer",
		"exclusiveMinimum": 1,
		"maximum":          10,
		"enum":             []any{map[string]any{"nullable": true}},
	}, got)
}

func TestTools_SchemaDialectFollowsKinds(t *testing.T) {
	got := toJSONSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"default": map[string]any{"type": "string", "nullable": true},
			"example": map[string]any{"type": "number", "minimum": 0, "exclusiveMinimum": true},
		},
		"default": map[string]any{"nullable": true},
		"x-meta":  map[string]any{"nullable": true},
	})
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"default": map[string]any{"type": []any{"string", "null"}},
			"example": map[string]any{"type": "number", "exclusiveMinimum": 0},
		},
		"default": map[string]any{"nullable": true},
		"x-meta":  map[string]any{"nullable": true},
	}, got)
}

func TestTool_InputSchema(t *testing.T) {
	frag, err := Extract(testutil.NewToolDocument(), PathLocator("/users/{id}"), toolOptions())
	require.NoError(t, err)

	for _, tool := range frag.Tools {
		s, err := tool.InputSchema()
		require.NoError(t, err, tool.Name)
		assert.Equal(t, "object", s.Type)
		assert.Contains(t, s.Properties, "id")
	}

	bad := &Tool{Name: "bad", Parameters: map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"$ref": "#/$defs/Missing"}},
	}}
	_, err = bad.InputSchema()
	assert.Error(t, err)
}

func TestFragment_ToolOutput(t *testing.T) {
	frag, err := Extract(testutil.NewToolDocument(), PathLocator("/notes"), toolOptions())
	require.NoError(t, err)

	data, err := frag.MarshalJSONIndent()
	require.NoError(t, err)

	var tools []map[string]any
	require.NoError(t, json.Unmarshal(data, &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, "createNote", tools[0]["name"])
	assert.Equal(t, "post", tools[0]["method"])
	assert.Equal(t, "/notes", tools[0]["path"])
	assert.NotContains(t, tools[0], "description")
	assert.Contains(t, tools[0], "parameters")

	yml, err := frag.MarshalYAML()
	require.NoError(t, err)
	assert.Contains(t, string(yml), "name: createNote")
}
