package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apispec/internal/pathutil"
)

func identityRefs(ref string, _ *pathutil.PathBuilder) (string, error) { return ref, nil }

func TestCleaner_StripPolicy(t *testing.T) {
	src := map[string]any{
		"description": "an operation",
		"summary":     "op",
		"x-internal":  true,
		"example":     map[string]any{"a": 1},
		"examples":    map[string]any{"one": map[string]any{"value": 1}},
		"x-example":   "e",
		"parameters": []any{
			map[string]any{"name": "q", "in": "query", "description": "query", "schema": map[string]any{"type": "string", "default": map[string]any{"description": "literal"}}},
		},
		"responses": map[string]any{
			"200":     map[string]any{"description": "OK"},
			"x-extra": "drop",
		},
		"callbacks": map[string]any{
			"onEvent": map[string]any{
				"{$request.body#/url}": map[string]any{
					"post": map[string]any{"summary": "cb", "responses": map[string]any{"200": map[string]any{"description": "ok"}}},
				},
				"x-cb": 1,
			},
		},
	}

	tests := []struct {
		name  string
		strip stripPolicy
		want  map[string]any
	}{
		{
			name:  "strip everything",
			strip: stripPolicy{docs: true, examples: true, extensions: true},
			want: map[string]any{
				"parameters": []any{
					map[string]any{"name": "q", "in": "query", "schema": map[string]any{"type": "string", "default": map[string]any{"description": "literal"}}},
				},
				"responses": map[string]any{"200": map[string]any{}},
				"callbacks": map[string]any{
					"onEvent": map[string]any{
						"{$request.body#/url}": map[string]any{
							"post": map[string]any{"responses": map[string]any{"200": map[string]any{}}},
						},
					},
				},
			},
		},
		{
			name:  "keep everything",
			strip: stripPolicy{},
			want:  src,
		},
		{
			name:  "strip extensions only",
			strip: stripPolicy{extensions: true},
			want: map[string]any{
				"description": "an operation",
				"summary":     "op",
				"example":     map[string]any{"a": 1},
				"examples":    map[string]any{"one": map[string]any{"value": 1}},
				"x-example":   "e",
				"parameters":  src["parameters"],
				"responses":   map[string]any{"200": map[string]any{"description": "OK"}},
				"callbacks": map[string]any{
					"onEvent": map[string]any{
						"{$request.body#/url}": map[string]any{
							"post": map[string]any{"summary": "cb", "responses": map[string]any{"200": map[string]any{"description": "ok"}}},
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cleaner{strip: tt.strip, onRef: identityRefs}
			got, err := c.clean(src, kindObject, &pathutil.PathBuilder{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleaner_KeywordsNotNames(t *testing.T) {
	// Names chosen by the author are never treated as keywords.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":     map[string]any{"type": "string"},
			"x-custom":    map[string]any{"type": "integer"},
			"example":     map[string]any{"type": "boolean"},
			"description": map[string]any{"type": "string", "description": "drop me"},
		},
		"required": []any{"summary", "description"},
		"enum":     []any{map[string]any{"$ref": "#/not/a/ref"}},
	}

	var seen []string
	c := &cleaner{
		strip: stripPolicy{docs: true, examples: true, extensions: true},
		onRef: func(ref string, _ *pathutil.PathBuilder) (string, error) {
			seen = append(seen, ref)
			return ref, nil
		},
	}
	got, err := c.clean(schema, kindObject, &pathutil.PathBuilder{})
	require.NoError(t, err)
	assert.Empty(t, seen, "refs inside enum are literal data")
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":     map[string]any{"type": "string"},
			"x-custom":    map[string]any{"type": "integer"},
			"example":     map[string]any{"type": "boolean"},
			"description": map[string]any{"type": "string"},
		},
		"required": []any{"summary", "description"},
		"enum":     []any{map[string]any{"$ref": "#/not/a/ref"}},
	}, got)
}

func TestCleaner_RewritesRefsAndLeavesSourceAlone(t *testing.T) {
	src := map[string]any{
		"allOf": []any{
			map[string]any{"$ref": "#/components/schemas/A"},
			map[string]any{"properties": map[string]any{"b": map[string]any{"$ref": "#/components/schemas/B"}}},
		},
	}
	var locs []string
	c := &cleaner{
		strip: stripPolicy{docs: true},
		onRef: func(ref string, loc *pathutil.PathBuilder) (string, error) {
			locs = append(locs, loc.String())
			return ref + "X", nil
		},
	}
	b := &pathutil.PathBuilder{}
	b.Push("root")
	got, err := c.clean(src, kindObject, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"root.allOf[0]", "root.allOf[1].properties.b"}, locs)
	assert.Equal(t, "#/components/schemas/AX", dig(t, got.(map[string]any)["allOf"].([]any)[0], "$ref"))
	assert.Equal(t, "#/components/schemas/A", dig(t, src["allOf"].([]any)[0], "$ref"))
}

func TestStripPolicy_Member(t *testing.T) {
	all := stripPolicy{docs: true, examples: true, extensions: true}
	tests := []struct {
		key      string
		wantKind nodeKind
		wantDrop bool
	}{
		{"description", kindOpaque, true},
		{"summary", kindOpaque, true},
		{"example", kindOpaque, true},
		{"examples", kindExamples, true},
		{"x-example", kindOpaque, true},
		{"x-anything", kindRaw, true},
		{"properties", kindNames, false},
		{"responses", kindExtensibleNames, false},
		{"callbacks", kindCallbacks, false},
		{"mapping", kindMapping, false},
		{"enum", kindOpaque, false},
		{"items", kindObject, false},
		{"type", kindObject, false},
	}
	for _, tt := range tests {
		kind, drop := all.member(tt.key)
		assert.Equal(t, tt.wantKind, kind, tt.key)
		assert.Equal(t, tt.wantDrop, drop, tt.key)
	}
}

func TestStripPolicy_Child(t *testing.T) {
	none := stripPolicy{}
	all := stripPolicy{docs: true, examples: true, extensions: true}
	tests := []struct {
		name     string
		strip    stripPolicy
		parent   nodeKind
		key      string
		wantKind nodeKind
		wantDrop bool
	}{
		{"keyword description", all, kindObject, "description", kindOpaque, true},
		{"property named description", all, kindNames, "description", kindObject, false},
		{"property named x-", all, kindNames, "x-id", kindObject, false},
		{"property named default", all, kindNames, "default", kindObject, false},
		{"path extension stripped", all, kindExtensibleNames, "x-meta", kindRaw, true},
		{"path extension kept", none, kindExtensibleNames, "x-meta", kindRaw, false},
		{"path template", all, kindExtensibleNames, "/users", kindObject, false},
		{"callback expression", all, kindCallbacks, "onEvent", kindExtensibleNames, false},
		{"inside extension", all, kindRaw, "description", kindRaw, false},
		{"inside literal", all, kindOpaque, "$ref", kindOpaque, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, drop := tt.strip.child(tt.parent, tt.key)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantDrop, drop)
		})
	}
}

func TestCleaner_KeptExtensionRefs(t *testing.T) {
	src := map[string]any{
		"operationId": "a",
		"x-body": map[string]any{
			"description": "kept",
			"schema":      map[string]any{"$ref": "#/components/schemas/Ext"},
			"list":        []any{map[string]any{"$ref": "#/components/schemas/Item"}},
		},
	}

	tests := []struct {
		name     string
		strip    stripPolicy
		wantRefs []string
	}{
		{"extensions kept", stripPolicy{docs: true}, []string{"#/components/schemas/Item", "#/components/schemas/Ext"}},
		{"extensions stripped", stripPolicy{docs: true, extensions: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []string
			c := &cleaner{
				strip: tt.strip,
				onRef: func(ref string, _ *pathutil.PathBuilder) (string, error) {
					seen = append(seen, ref)
					return ref + "X", nil
				},
			}
			got, err := c.clean(src, kindObject, &pathutil.PathBuilder{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRefs, seen)
			if tt.strip.extensions {
				assert.NotContains(t, got, "x-body")
				return
			}
			body := got.(map[string]any)["x-body"].(map[string]any)
			assert.Equal(t, "kept", body["description"])
			assert.Equal(t, "#/components/schemas/ExtX", dig(t, body["schema"], "$ref"))
		})
	}
}
