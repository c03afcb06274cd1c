package query

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expr evaluates expr-lang expressions (https://expr-lang.org).
//
// The document's top-level members are variables ("paths", "components")
// and the whole tree is also bound to "doc", so both
// paths["/users"].get and doc.paths["/users"].get work.
type Expr struct{}

// Evaluate implements Evaluator.
func (Expr) Evaluate(tree any, input string) ([]any, error) {
	program, err := expr.Compile(input, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, syntaxError(DialectExpr, input, err)
	}
	result, err := expr.Run(program, exprEnv(tree))
	if err != nil {
		return nil, evalError(DialectExpr, input, err)
	}
	matches := sequence(result)
	if iteratesMaps(input) {
		matches = documentOrder(tree, matches)
	}
	return matches, nil
}

func exprEnv(tree any) map[string]any {
	env := map[string]any{}
	if m, ok := tree.(map[string]any); ok {
		for k, v := range m {
			env[k] = v
		}
	}
	if _, taken := env["doc"]; !taken {
		env["doc"] = tree
	}
	return env
}

// builtinScan records which builtins an expression calls.
type builtinScan struct {
	values, sorted bool
}

func (s *builtinScan) Visit(node *ast.Node) {
	b, ok := (*node).(*ast.BuiltinNode)
	if !ok {
		return
	}
	switch b.Name {
	case "values":
		s.values = true
	case "sort", "sortBy", "reverse":
		s.sorted = true
	}
}

// iteratesMaps reports whether input pulls values out of a map without
// sorting them afterwards.
func iteratesMaps(input string) bool {
	tree, err := parser.Parse(input)
	if err != nil {
		return false
	}
	var scan builtinScan
	ast.Walk(&tree.Node, &scan)
	return scan.values && !scan.sorted
}
