package extract

import (
	"strings"

	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/internal/pathutil"
)

// nodeKind says how the members of a node are interpreted.
type nodeKind int

const (
	// kindObject is a keyword object: schema, operation, parameter, response...
	kindObject nodeKind = iota
	// kindNames maps user-chosen names to keyword objects (properties, content, headers).
	kindNames
	// kindExtensibleNames is kindNames where x- members are extensions (paths, responses).
	kindExtensibleNames
	// kindCallbacks maps callback names to callback objects.
	kindCallbacks
	// kindMapping is a discriminator mapping of names to refs or schema names.
	kindMapping
	// kindExamples is a map of named examples, or a list of literal examples.
	kindExamples
	// kindOpaque is literal data. It is copied verbatim and never searched for refs.
	kindOpaque
	// kindRaw is a kept extension payload: nothing is stripped, but refs
	// anywhere inside it are followed and rewritten.
	kindRaw
)

// stripPolicy selects which keywords are removed from keyword objects.
type stripPolicy struct {
	docs       bool
	examples   bool
	extensions bool
}

var namedMembers = map[string]nodeKind{
	"properties":          kindNames,
	"patternProperties":   kindNames,
	"dependentSchemas":    kindNames,
	"$defs":               kindNames,
	"definitions":         kindNames,
	"headers":             kindNames,
	"content":             kindNames,
	"encoding":            kindNames,
	"links":               kindNames,
	"variables":           kindNames,
	"scopes":              kindNames,
	"schemas":             kindNames,
	"parameters":          kindNames,
	"requestBodies":       kindNames,
	"securitySchemes":     kindNames,
	"securityDefinitions": kindNames,
	"pathItems":           kindNames,
	"paths":               kindExtensibleNames,
	"responses":           kindExtensibleNames,
	"webhooks":            kindExtensibleNames,
	"callbacks":           kindCallbacks,
	"mapping":             kindMapping,
	"enum":                kindOpaque,
	"default":             kindOpaque,
	"const":               kindOpaque,
	"value":               kindOpaque,
	"required":            kindOpaque,
	"security":            kindOpaque,
}

// member classifies a member of a keyword object. drop is true when the
// policy removes it.
func (s stripPolicy) member(key string) (kind nodeKind, drop bool) {
	switch key {
	case "description", "summary":
		return kindOpaque, s.docs
	case "example", "x-example":
		return kindOpaque, s.examples
	case "examples":
		return kindExamples, s.examples
	}
	if k, ok := namedMembers[key]; ok {
		return k, false
	}
	if strings.HasPrefix(key, "x-") {
		return kindRaw, s.extensions
	}
	return kindObject, false
}

// child classifies the member key of a map of the given kind.
func (s stripPolicy) child(parent nodeKind, key string) (kind nodeKind, drop bool) {
	switch parent {
	case kindObject:
		return s.member(key)
	case kindCallbacks:
		return kindExtensibleNames, false
	case kindExtensibleNames:
		if strings.HasPrefix(key, "x-") {
			return kindRaw, s.extensions
		}
		return kindObject, false
	case kindNames, kindExamples:
		return kindObject, false
	case kindRaw:
		return kindRaw, false
	default:
		return kindOpaque, false
	}
}

// element classifies the items of an array of the given kind.
func element(parent nodeKind) nodeKind {
	switch parent {
	case kindExamples, kindOpaque, kindMapping:
		return kindOpaque
	case kindRaw:
		return kindRaw
	default:
		return kindObject
	}
}

// rewritesRefs reports whether a "$ref" member of a map of this kind is a reference.
func rewritesRefs(kind nodeKind) bool {
	return kind == kindObject || kind == kindRaw
}

// refFunc is called for every reference found while cleaning. It returns
// the string to write in place of ref.
type refFunc func(ref string, loc *pathutil.PathBuilder) (string, error)

// cleaner deep-copies document nodes, applying a strip policy and
// rewriting references. Source nodes are never modified.
type cleaner struct {
	strip stripPolicy
	onRef refFunc
	// schemaRef resolves a bare discriminator mapping name to a ref, if indexed.
	schemaRef func(name string) (string, bool)
}

func (c *cleaner) clean(node any, kind nodeKind, loc *pathutil.PathBuilder) (any, error) {
	if kind == kindOpaque {
		return deepCopy(node), nil
	}

	switch n := node.(type) {
	case map[string]any:
		if kind == kindMapping {
			return c.cleanMapping(n, loc)
		}
		return c.cleanMap(n, kind, loc)
	case []any:
		ek := element(kind)
		if ek == kindOpaque {
			return deepCopy(n), nil
		}
		out := make([]any, len(n))
		for i, v := range n {
			loc.PushIndex(i)
			cv, err := c.clean(v, ek, loc)
			loc.Pop()
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return node, nil
	}
}

func (c *cleaner) cleanMap(m map[string]any, kind nodeKind, loc *pathutil.PathBuilder) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for _, k := range maputil.SortedKeys(m) {
		v := m[k]
		if k == "$ref" && rewritesRefs(kind) {
			if ref, ok := v.(string); ok {
				rewritten, err := c.onRef(ref, loc)
				if err != nil {
					return nil, err
				}
				out[k] = rewritten
				continue
			}
		}
		ck, drop := c.strip.child(kind, k)
		if drop {
			continue
		}
		loc.Push(k)
		cv, err := c.clean(v, ck, loc)
		loc.Pop()
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	return out, nil
}

func (c *cleaner) cleanMapping(m map[string]any, loc *pathutil.PathBuilder) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for _, k := range maputil.SortedKeys(m) {
		s, ok := m[k].(string)
		if !ok {
			out[k] = deepCopy(m[k])
			continue
		}
		loc.Push(k)
		v, err := c.mappingValue(s, loc)
		loc.Pop()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// mappingValue rewrites one discriminator mapping value. Values are refs, or
// bare schema names that keep their bare form.
func (c *cleaner) mappingValue(s string, loc *pathutil.PathBuilder) (string, error) {
	if pathutil.IsLocalRef(s) {
		return c.onRef(s, loc)
	}
	if c.schemaRef == nil {
		return s, nil
	}
	ref, ok := c.schemaRef(s)
	if !ok {
		return s, nil
	}
	rewritten, err := c.onRef(ref, loc)
	if err != nil {
		return "", err
	}
	tokens, _ := pathutil.SplitPointer(rewritten)
	if len(tokens) == 0 {
		return s, nil
	}
	return tokens[len(tokens)-1], nil
}

func deepCopy(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, val := range n {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
