package query

import (
	"github.com/erraggy/apispec/internal/jsonpath"
)

// JSONPath evaluates RFC 9535 JSONPath expressions. Every node the path
// selects is a match, so "$.paths.*" yields one match per path item.
type JSONPath struct{}

// Evaluate implements Evaluator.
func (JSONPath) Evaluate(tree any, expr string) ([]any, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, syntaxError(DialectJSONPath, expr, err)
	}
	var out []any
	for _, node := range p.Get(tree) {
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}
