package pathutil

import (
	"strconv"
	"strings"
)

// OAS 2.0 reference prefixes
const (
	RefPrefixDefinitions         = "#/definitions/"
	RefPrefixParameters          = "#/parameters/"
	RefPrefixResponses           = "#/responses/"
	RefPrefixSecurityDefinitions = "#/securityDefinitions/"
)

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters3     = "#/components/parameters/"
	RefPrefixResponses3      = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// RefPrefixDefs is the local definitions prefix of a standalone JSON Schema (2020-12).
const RefPrefixDefs = "#/$defs/"

// ComponentCategories3 lists the OAS 3.x component categories in emission order.
var ComponentCategories3 = []string{
	"schemas",
	"parameters",
	"requestBodies",
	"responses",
	"headers",
	"examples",
	"links",
	"callbacks",
	"pathItems",
	"securitySchemes",
}

// ComponentCategories2 lists the OAS 2.0 top-level definition sections in emission order.
var ComponentCategories2 = []string{
	"definitions",
	"parameters",
	"responses",
	"securityDefinitions",
}

// SchemaRef builds "#/components/schemas/{name}" (OAS 3.x).
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapeToken(name)
}

// DefinitionRef builds "#/definitions/{name}" (OAS 2.0).
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + EscapeToken(name)
}

// DefsRef builds "#/$defs/{name}".
func DefsRef(name string) string {
	return RefPrefixDefs + EscapeToken(name)
}

// ComponentRef builds the local ref of a named definition in category.
// If oas2 is true, category is a top-level section ("definitions", "parameters", ...);
// otherwise it is a key under "components".
func ComponentRef(category, name string, oas2 bool) string {
	if oas2 {
		return "#/" + EscapeToken(category) + "/" + EscapeToken(name)
	}
	return "#/components/" + EscapeToken(category) + "/" + EscapeToken(name)
}

// EscapeToken escapes a single JSON pointer reference token (RFC 6901).
func EscapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// UnescapeToken reverses EscapeToken. Order matters: "~1" first, then "~0".
func UnescapeToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// IsLocalRef reports whether ref points into the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// SplitPointer splits a local ref ("#/a/b~1c") into its unescaped tokens ("a", "b/c").
// The root pointer "#" yields no tokens. ok is false for non-local refs.
func SplitPointer(ref string) (tokens []string, ok bool) {
	if !IsLocalRef(ref) {
		return nil, false
	}
	ptr := ref[1:]
	if ptr == "" {
		return nil, true
	}
	if ptr[0] != '/' {
		return nil, false
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		parts[i] = UnescapeToken(p)
	}
	return parts, true
}

// JoinPointer builds a local ref from unescaped tokens.
func JoinPointer(tokens ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// CanonicalRef normalizes the escaping of a local ref so that equivalent
// spellings produce the same key. Non-local refs are returned unchanged.
func CanonicalRef(ref string) string {
	tokens, ok := SplitPointer(ref)
	if !ok {
		return ref
	}
	return JoinPointer(tokens...)
}

// ParseComponentRef splits a named-component ref into its category and name.
// It recognizes "#/components/{category}/{name}" (OAS 3.x) and
// "#/{definitions|parameters|responses|securityDefinitions}/{name}" (OAS 2.0).
// Deeper pointers return ok=false.
func ParseComponentRef(ref string) (category, name string, oas2, ok bool) {
	tokens, isLocal := SplitPointer(ref)
	if !isLocal {
		return "", "", false, false
	}
	switch {
	case len(tokens) == 3 && tokens[0] == "components":
		return tokens[1], tokens[2], false, true
	case len(tokens) == 2 && isCategory2(tokens[0]):
		return tokens[0], tokens[1], true, true
	}
	return "", "", false, false
}

func isCategory2(s string) bool {
	for _, c := range ComponentCategories2 {
		if c == s {
			return true
		}
	}
	return false
}

// IsIndex reports whether token is a non-negative array index.
func IsIndex(token string) bool {
	if token == "" {
		return false
	}
	_, err := strconv.Atoi(token)
	return err == nil && token[0] != '-' && (token == "0" || token[0] != '0')
}
