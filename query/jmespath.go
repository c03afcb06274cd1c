package query

import (
	"regexp"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// JMESPath evaluates JMESPath expressions (https://jmespath.org).
// Path keys containing "/" must be quoted: paths."/users/{id}".get.
type JMESPath struct{}

// Evaluate implements Evaluator.
func (JMESPath) Evaluate(tree any, expr string) ([]any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, syntaxError(DialectJMESPath, expr, err)
	}
	result, err := compiled.Search(tree)
	if err != nil {
		return nil, evalError(DialectJMESPath, expr, err)
	}
	matches := sequence(result)
	if projectsObjects(expr) {
		matches = documentOrder(tree, matches)
	}
	return matches, nil
}

var (
	valuesCall  = regexp.MustCompile(`ASTFunctionExpression \{\n\s+value: "values"`)
	orderedCall = regexp.MustCompile(`ASTFunctionExpression \{\n\s+value: "(sort|sort_by|reverse)"`)
)

// projectsObjects reports whether expr iterates the members of an object
// ("*" on a hash, values()), the only constructs whose result order
// go-jmespath leaves to Go map iteration. Explicit sorting wins.
func projectsObjects(expr string) bool {
	ast, err := jmespath.NewParser().Parse(expr)
	if err != nil {
		return false
	}
	printed := ast.String()
	if orderedCall.MatchString(printed) {
		return false
	}
	return strings.Contains(printed, "ASTValueProjection {") || valuesCall.MatchString(printed)
}
