package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/naming"
	"github.com/erraggy/apispec/internal/pathutil"
	"github.com/erraggy/apispec/oaserrors"
)

// Definition is an addressable node a reference can point at.
type Definition struct {
	// Ref is the canonical local reference ("#/components/schemas/Pet").
	Ref string
	// Category is the component category the node lives in, or the category
	// inferred from its position for deep pointers.
	Category string
	// Name is the component name, or a name derived from the pointer.
	Name string
	// Value is the source node. It is never modified.
	Value any
}

// RefIndex maps canonical reference strings to the named definitions of a document.
type RefIndex struct {
	doc  map[string]any
	defs map[string]Definition
}

// NewRefIndex indexes every named component of doc: the OAS 3.x
// components.* categories and the OAS 2.0 top-level definitions,
// parameters, responses and securityDefinitions sections.
//
// References are not checked here; a missing target surfaces when it is
// resolved. A section that is not an object is a *oaserrors.DocumentError.
func NewRefIndex(doc map[string]any) (*RefIndex, error) {
	if doc == nil {
		return nil, &oaserrors.DocumentError{Path: "$", Got: "nil", Message: "document root must be an object"}
	}
	if paths, ok := doc["paths"]; ok && paths != nil {
		if _, isMap := paths.(map[string]any); !isMap {
			return nil, &oaserrors.DocumentError{Path: "paths", Got: fmt.Sprintf("%T", paths), Message: "paths must be an object"}
		}
	}

	idx := &RefIndex{doc: doc, defs: make(map[string]Definition)}

	if raw, ok := doc["components"]; ok && raw != nil {
		components, isMap := raw.(map[string]any)
		if !isMap {
			return nil, &oaserrors.DocumentError{Path: "components", Got: fmt.Sprintf("%T", raw), Message: "components must be an object"}
		}
		for _, category := range pathutil.ComponentCategories3 {
			if err := idx.addSection(components[category], "components."+category, category, false); err != nil {
				return nil, err
			}
		}
	}

	for _, category := range pathutil.ComponentCategories2 {
		if err := idx.addSection(doc[category], category, category, true); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *RefIndex) addSection(raw any, loc, category string, oas2 bool) error {
	if raw == nil {
		return nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return &oaserrors.DocumentError{Path: loc, Got: fmt.Sprintf("%T", raw), Message: "component section must be an object"}
	}
	for name, value := range section {
		ref := pathutil.ComponentRef(category, name, oas2)
		idx.defs[ref] = Definition{Ref: ref, Category: category, Name: name, Value: value}
	}
	return nil
}

// Len returns the number of indexed definitions.
func (idx *RefIndex) Len() int {
	return len(idx.defs)
}

// Lookup returns the named definition for ref.
func (idx *RefIndex) Lookup(ref string) (Definition, bool) {
	def, ok := idx.defs[pathutil.CanonicalRef(ref)]
	return def, ok
}

// Resolve returns the node ref points at. Named components come from the
// index; any other local pointer is walked through the document. External
// references and missing targets are *oaserrors.ReferenceError values
// matching oaserrors.ErrDanglingReference.
func (idx *RefIndex) Resolve(ref string) (Definition, error) {
	if def, ok := idx.Lookup(ref); ok {
		return def, nil
	}

	tokens, local := pathutil.SplitPointer(ref)
	if !local {
		return Definition{}, &oaserrors.ReferenceError{
			Ref:        ref,
			IsExternal: !strings.HasPrefix(ref, "#"),
			Message:    "only local references are supported",
		}
	}
	if len(tokens) == 0 {
		return Definition{}, &oaserrors.ReferenceError{Ref: ref, Message: "reference to the document root"}
	}

	var node any = idx.doc
	for i, tok := range tokens {
		next, ok := child(node, tok)
		if !ok {
			return Definition{}, &oaserrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("target not found at %q", pathutil.JoinPointer(tokens[:i+1]...)),
			}
		}
		node = next
	}

	category := inferCategory(tokens)
	return Definition{
		Ref:      pathutil.JoinPointer(tokens...),
		Category: category,
		Name:     inferName(tokens, category),
		Value:    node,
	}, nil
}

func child(node any, token string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[token]
		return v, ok
	case []any:
		if !pathutil.IsIndex(token) {
			return nil, false
		}
		i, err := strconv.Atoi(token)
		if err != nil || i >= len(n) {
			return nil, false
		}
		return n[i], true
	}
	return nil, false
}

// inferCategory picks the component category of a deep pointer target from
// the slot it occupies.
func inferCategory(tokens []string) string {
	n := len(tokens)
	last := tokens[n-1]
	parent := ""
	if n > 1 {
		parent = tokens[n-2]
	}
	switch {
	case last == "requestBody":
		return "requestBodies"
	case parent == "parameters" && !inSchema(tokens[:n-1]):
		return "parameters"
	case parent == "responses" && !inSchema(tokens[:n-1]):
		return "responses"
	case parent == "headers" && !inSchema(tokens[:n-1]):
		return "headers"
	}
	return "schemas"
}

// inSchema reports whether the last token of prefix sits inside a schema
// body, where "parameters" and friends are ordinary property names.
func inSchema(prefix []string) bool {
	n := len(prefix)
	return n > 1 && (prefix[n-2] == "properties" || prefix[n-2] == "patternProperties")
}

// structuralTokens never name a definition on their own.
var structuralTokens = map[string]bool{
	"paths": true, "components": true, "definitions": true, "schemas": true,
	"schema": true, "items": true, "properties": true, "additionalProperties": true,
	"patternProperties": true, "allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"content": true, "parameters": true, "responses": true, "requestBody": true,
	"requestBodies": true, "headers": true, "$defs": true, "prefixItems": true,
}

// inferName derives a component name from the last meaningful pointer token.
func inferName(tokens []string, category string) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if structuralTokens[tok] || pathutil.IsIndex(tok) || httputil.IsMethod(tok) || isMediaType(tok) {
			continue
		}
		if name := componentName(tok); name != "" {
			return name
		}
	}
	return fallbackNames[category]
}

var fallbackNames = map[string]string{
	"schemas":       "Schema",
	"parameters":    "Parameter",
	"responses":     "Response",
	"headers":       "Header",
	"requestBodies": "RequestBody",
}

// componentName reduces tok to the component key character set [A-Za-z0-9._-].
func componentName(tok string) string {
	valid := func(r rune) bool {
		return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-')
	}
	if strings.IndexFunc(tok, func(r rune) bool { return !valid(r) }) < 0 {
		return tok
	}
	return naming.ToPascalCase(strings.Map(func(r rune) rune {
		if valid(r) {
			return r
		}
		return '_'
	}, tok))
}

func isMediaType(tok string) bool {
	return strings.Contains(tok, "/") && httputil.IsValidMediaType(tok)
}
