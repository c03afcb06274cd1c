package query

import (
	"reflect"
	"sort"
	"strings"

	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/oaserrors"
)

// Evaluator evaluates a query expression against a document tree and returns
// the matched nodes in order. An empty result is not an error.
type Evaluator interface {
	Evaluate(tree any, expr string) ([]any, error)
}

// EvaluatorFunc adapts an ordinary function to the Evaluator interface.
type EvaluatorFunc func(tree any, expr string) ([]any, error)

// Evaluate calls f(tree, expr).
func (f EvaluatorFunc) Evaluate(tree any, expr string) ([]any, error) {
	return f(tree, expr)
}

// Dialect names.
const (
	DialectJMESPath = "jmespath"
	DialectJSONPath = "jsonpath"
	DialectExpr     = "expr"

	// DefaultDialect is used when no dialect is named.
	DefaultDialect = DialectJMESPath
)

var dialects = map[string]Evaluator{
	DialectJMESPath: JMESPath{},
	DialectJSONPath: JSONPath{},
	DialectExpr:     Expr{},
}

// Get returns the evaluator for the named dialect. The lookup is
// case-insensitive and an empty name selects DefaultDialect.
func Get(name string) (Evaluator, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultDialect
	}
	ev, ok := dialects[key]
	if !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "dialect",
			Value:   name,
			Message: "unknown query dialect (use " + strings.Join(Names(), ", ") + ")",
		}
	}
	return ev, nil
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs expr in the named dialect.
func Evaluate(dialect string, tree any, expr string) ([]any, error) {
	ev, err := Get(dialect)
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(tree, expr)
}

// sequence turns a single dialect result into an ordered list of matches.
func sequence(result any) []any {
	switch v := result.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if item != nil {
				out = append(out, item)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return []any{v}
	}
}

// documentOrder sorts matches into the order a sorted-key walk of tree
// visits them. Dialects call it only for object projections, whose order
// would otherwise follow Go map iteration. It is a no-op unless every
// match is an object of tree.
func documentOrder(tree any, matches []any) []any {
	if len(matches) < 2 {
		return matches
	}
	wanted := make(map[uintptr]int, len(matches))
	for _, m := range matches {
		obj, ok := m.(map[string]any)
		if !ok {
			return matches
		}
		wanted[reflect.ValueOf(obj).Pointer()] = -1
	}

	next := 0
	var walk func(node any)
	walk = func(node any) {
		switch n := node.(type) {
		case map[string]any:
			ptr := reflect.ValueOf(n).Pointer()
			if pos, ok := wanted[ptr]; ok && pos < 0 {
				wanted[ptr] = next
				next++
			}
			for _, k := range maputil.SortedKeys(n) {
				walk(n[k])
			}
		case []any:
			for _, v := range n {
				walk(v)
			}
		}
	}
	walk(tree)

	for _, pos := range wanted {
		if pos < 0 {
			return matches
		}
	}
	sorted := make([]any, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return wanted[reflect.ValueOf(sorted[i]).Pointer()] < wanted[reflect.ValueOf(sorted[j]).Pointer()]
	})
	return sorted
}

func syntaxError(dialect, expr string, err error) error {
	return &oaserrors.LocatorError{
		Locator: expr,
		Mode:    dialect,
		Message: "syntax error",
		Cause:   err,
	}
}

func evalError(dialect, expr string, err error) error {
	return &oaserrors.LocatorError{
		Locator: expr,
		Mode:    dialect,
		Message: "evaluation failed",
		Cause:   err,
	}
}
