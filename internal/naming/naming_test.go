package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Empty and single characters
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "single uppercase letter", input: "A", want: "A"},
		{name: "single digit", input: "1", want: "1"},

		// Underscore separators
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "snake_case three words", input: "get_user_by_id", want: "GetUserById"},
		{name: "leading underscore", input: "_private", want: "Private"},
		{name: "trailing underscore", input: "value_", want: "Value"},
		{name: "double underscore", input: "double__under", want: "DoubleUnder"},

		// Hyphen separators
		{name: "kebab-case simple", input: "api-client", want: "ApiClient"},
		{name: "kebab-case three words", input: "get-user-by-id", want: "GetUserById"},
		{name: "leading hyphen", input: "-private", want: "Private"},
		{name: "trailing hyphen", input: "value-", want: "Value"},

		// Dot separators
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "leading dot", input: ".hidden", want: "Hidden"},

		// Slash separators
		{name: "slash separator", input: "users/profile", want: "UsersProfile"},
		{name: "path-like", input: "/api/v1/users", want: "ApiV1Users"},

		// Mixed separators
		{name: "mixed separators", input: "get_user-by.id/name", want: "GetUserByIdName"},
		{name: "consecutive mixed separators", input: "foo_-bar", want: "FooBar"},

		// Already cased
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "all caps", input: "API", want: "API"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},

		// Unicode characters
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "unicode uppercase", input: "Über_user", want: "ÜberUser"},
		{name: "japanese characters", input: "日本語_test", want: "日本語Test"},

		// Numbers
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
		{name: "leading number", input: "123_abc", want: "123Abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPascalCase(tt.input)
			assert.Equal(t, tt.want, got, "ToPascalCase(%q)", tt.input)
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Empty and single characters
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "a"},
		{name: "single uppercase letter", input: "A", want: "a"},
		{name: "single digit", input: "1", want: "1"},

		// Underscore separators
		{name: "snake_case simple", input: "user_profile", want: "userProfile"},
		{name: "snake_case three words", input: "get_user_by_id", want: "getUserById"},

		// Hyphen separators
		{name: "kebab-case simple", input: "api-client", want: "apiClient"},

		// Already cased
		{name: "already camelCase", input: "userProfile", want: "userProfile"},
		{name: "PascalCase", input: "UserProfile", want: "userProfile"},

		// Mixed separators
		{name: "mixed separators", input: "get_user-by.id", want: "getUserById"},

		// Unicode characters
		{name: "unicode lowercase", input: "über_user", want: "überUser"},
		{name: "unicode uppercase", input: "Über_user", want: "überUser"},

		// Numbers
		{name: "with numbers", input: "api_v2_client", want: "apiV2Client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCamelCase(tt.input)
			assert.Equal(t, tt.want, got, "ToCamelCase(%q)", tt.input)
		})
	}
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		method, path, want string
	}{
		{"get", "/users/{id}", "getUsersId"},
		{"POST", "/auth", "postAuth"},
		{"get", "/", "get"},
		{"delete", "/user-profiles/{profile_id}", "deleteUserProfilesProfileId"},
		{"put", "/v2/pets.json", "putV2PetsJson"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationName(tt.method, tt.path))
		})
	}
}

func TestSanitizeToolName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already valid", input: "listPets", want: "listPets"},
		{name: "keeps hyphen and underscore", input: "list-pets_v2", want: "list-pets_v2"},
		{name: "collapses invalid runs", input: "pets.list  all", want: "pets_list_all"},
		{name: "drops leading invalid", input: "/pets", want: "pets"},
		{name: "drops trailing invalid", input: "pets!", want: "pets"},
		{name: "non-ascii letters", input: "cafélist", want: "caf_list"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeToolName(tt.input))
		})
	}

	t.Run("truncates to max length", func(t *testing.T) {
		long := strings.Repeat("a", MaxToolNameLength+10)
		assert.Len(t, SanitizeToolName(long), MaxToolNameLength)
	})
}

func TestDisambiguate(t *testing.T) {
	assert.Equal(t, "Error", Disambiguate("Error", 0))
	assert.Equal(t, "Error", Disambiguate("Error", 1))
	assert.Equal(t, "Error2", Disambiguate("Error", 2))
	assert.Equal(t, "Error10", Disambiguate("Error", 10))
}

// Edge case tests for additional coverage
func TestEdgeCases(t *testing.T) {
	t.Run("consecutive separators in PascalCase", func(t *testing.T) {
		tests := []struct {
			input string
			want  string
		}{
			{"a__b", "AB"},
			{"a---b", "AB"},
			{"a...b", "AB"},
			{"a///b", "AB"},
			{"_-._", ""},
		}
		for _, tt := range tests {
			got := ToPascalCase(tt.input)
			assert.Equal(t, tt.want, got, "ToPascalCase(%q)", tt.input)
		}
	})

	t.Run("only separators in camelCase", func(t *testing.T) {
		tests := []struct {
			input string
			want  string
		}{
			{"___", ""},
			{"---", ""},
			{"...", ""},
			{"///", ""},
		}
		for _, tt := range tests {
			got := ToCamelCase(tt.input)
			assert.Equal(t, tt.want, got, "ToCamelCase(%q)", tt.input)
		}
	})
}
