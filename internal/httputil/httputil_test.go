package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		expected  bool
	}{
		// Valid: Universal wildcard
		{"universal wildcard", "*/*", true},

		// Valid: Type wildcards
		{"type wildcard application", "application/*", true},
		{"type wildcard text", "text/*", true},
		{"type wildcard image", "image/*", true},
		{"type wildcard audio", "audio/*", true},
		{"type wildcard video", "video/*", true},
		{"type wildcard multipart", "multipart/*", true},

		// Note: mime.ParseMediaType actually accepts */subtype (though uncommon)
		// The Go MIME parser is permissive here
		{"subtype wildcard json", "*/json", true},
		{"subtype wildcard xml", "*/xml", true},
		{"subtype wildcard html", "*/html", true},

		// Valid: Standard media types
		{"standard application/json", "application/json", true},
		{"standard text/html", "text/html", true},
		{"standard text/plain", "text/plain", true},
		{"standard application/xml", "application/xml", true},
		{"standard image/png", "image/png", true},
		{"standard image/jpeg", "image/jpeg", true},
		{"standard audio/mpeg", "audio/mpeg", true},
		{"standard video/mp4", "video/mp4", true},
		{"standard multipart/form-data", "multipart/form-data", true},

		// Valid: Media types with parameters
		{"with charset", "text/html; charset=utf-8", true},
		{"with boundary", "multipart/form-data; boundary=----WebKitFormBoundary", true},
		{"with multiple params", "text/html; charset=utf-8; version=1.0", true},

		// Valid: Vendor-specific types
		{"vendor json api", "application/vnd.api+json", true},
		{"vendor hal", "application/hal+json", true},
		{"vendor custom", "application/vnd.mycompany.myapp-v1+json", true},

		// Invalid: Malformed media types
		{"missing subtype", "application/", false},
		{"missing type", "/json", false},
		// Note: mime.ParseMediaType accepts single tokens as media types
		{"no slash", "applicationjson", true},
		{"multiple slashes", "application/json/extra", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},

		// Invalid: Wildcard only on left
		{"type wildcard only", "application/", false},
		{"empty type wildcard", "/", false},

		// Edge cases: Special characters
		{"with plus", "application/json+ld", true},
		{"with dash", "application/atom+xml", true},
		{"with dot", "application/vnd.ms-excel", true},

		// Edge cases: Case sensitivity (MIME types are case-insensitive)
		{"uppercase", "APPLICATION/JSON", true},
		{"mixed case", "Application/Json", true},
		{"lowercase", "application/json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidMediaType(tt.mediaType)
			assert.Equal(t, tt.expected, result, "IsValidMediaType(%q) = %v, want %v", tt.mediaType, result, tt.expected)
		})
	}
}

// TestHTTPMethodConstants verifies that method constants have expected lowercase values.
// This ensures consistency with OpenAPI specification requirements.
func TestHTTPMethodConstants(t *testing.T) {
	assert.Equal(t, "get", MethodGet, "MethodGet should be lowercase")
	assert.Equal(t, "put", MethodPut, "MethodPut should be lowercase")
	assert.Equal(t, "post", MethodPost, "MethodPost should be lowercase")
	assert.Equal(t, "delete", MethodDelete, "MethodDelete should be lowercase")
	assert.Equal(t, "options", MethodOptions, "MethodOptions should be lowercase")
	assert.Equal(t, "head", MethodHead, "MethodHead should be lowercase")
	assert.Equal(t, "patch", MethodPatch, "MethodPatch should be lowercase")
	assert.Equal(t, "trace", MethodTrace, "MethodTrace should be lowercase")
	assert.Equal(t, "query", MethodQuery, "MethodQuery should be lowercase")
}

func TestMethods(t *testing.T) {
	got := Methods()
	assert.Equal(t, []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"}, got)

	got[0] = "mutated"
	assert.Equal(t, MethodGet, Methods()[0], "Methods must return a copy")
}

func TestIsMethod(t *testing.T) {
	for _, m := range []string{"get", "post", "trace"} {
		assert.True(t, IsMethod(m), m)
	}
	for _, m := range []string{"GET", "parameters", "summary", "servers", "x-get", ""} {
		assert.False(t, IsMethod(m), m)
	}
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "get", NormalizeMethod(" GET "))
	assert.Equal(t, "patch", NormalizeMethod("Patch"))
	assert.Equal(t, "", NormalizeMethod("connect"))
	assert.Equal(t, "", NormalizeMethod(""))
}

func TestClassifyMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		want      MediaKind
	}{
		{"application/json", MediaJSON},
		{"application/json; charset=utf-8", MediaJSON},
		{"application/vnd.api+json", MediaJSON},
		{"Application/JSON", MediaJSON},
		{"application/x-www-form-urlencoded", MediaForm},
		{"multipart/form-data; boundary=x", MediaForm},
		{"application/octet-stream", MediaBinary},
		{"image/png", MediaBinary},
		{"video/mp4", MediaBinary},
		{"text/plain", MediaOther},
		{"application/xml", MediaOther},
		{"*/*", MediaOther},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMediaType(tt.mediaType))
		})
	}
}

func TestPreferredMediaType(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		want     string
		wantKind MediaKind
	}{
		{"empty", nil, "", MediaOther},
		{"json wins over xml", []string{"application/xml", "application/json"}, "application/json", MediaJSON},
		{"form over text", []string{"text/plain", "multipart/form-data"}, "multipart/form-data", MediaForm},
		{"text over binary", []string{"application/octet-stream", "text/plain"}, "text/plain", MediaOther},
		{"binary only", []string{"application/octet-stream"}, "application/octet-stream", MediaBinary},
		{"first json kept", []string{"application/hal+json", "application/json"}, "application/hal+json", MediaJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := PreferredMediaType(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestContentTypeHelpers(t *testing.T) {
	assert.True(t, IsJSONMediaType("application/json; charset=utf-8"))
	assert.True(t, IsJSONMediaType("text/json"))
	assert.False(t, IsJSONMediaType("application/yaml"))

	assert.True(t, IsYAMLMediaType("application/yaml"))
	assert.True(t, IsYAMLMediaType("text/x-yaml; charset=utf-8"))
	assert.True(t, IsYAMLMediaType("application/openapi+yaml"))
	assert.False(t, IsYAMLMediaType("text/plain"))
	assert.False(t, IsYAMLMediaType(""))
}

func TestMediaKindString(t *testing.T) {
	assert.Equal(t, "json", MediaJSON.String())
	assert.Equal(t, "form", MediaForm.String())
	assert.Equal(t, "binary", MediaBinary.String())
	assert.Equal(t, "other", MediaOther.String())
}
