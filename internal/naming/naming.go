package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/apispec/internal/pathutil"
)

// MaxToolNameLength is the longest tool name accepted by function-calling APIs.
const MaxToolNameLength = 64

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))
	capitalizeNext := true

	for _, r := range s {
		if isSeparator(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// OperationName derives a camelCase identifier from an HTTP verb and a path template.
// Example: ("GET", "/users/{id}") -> "getUsersId"
func OperationName(method, path string) string {
	words := append([]string{strings.ToLower(method)}, pathutil.TemplateWords(path)...)
	return ToCamelCase(strings.Join(words, "_"))
}

// SanitizeToolName reduces s to the character set accepted for tool names
// ([A-Za-z0-9_-]) and truncates it to MaxToolNameLength. Runs of other
// characters collapse into a single underscore.
func SanitizeToolName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	out := b.String()
	if len(out) > MaxToolNameLength {
		out = out[:MaxToolNameLength]
	}
	return out
}

// Disambiguate returns the n-th name for base: base itself for n <= 1,
// otherwise base followed by n ("Error", "Error2", "Error3", ...).
func Disambiguate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + strconv.Itoa(n)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || r == ' '
}
