package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/apispec/internal/equalutil"
)

// FilterExpr is a boolean expression evaluated against each candidate child.
type FilterExpr interface {
	Match(node any) bool
	String() string
}

// Comparison tests a field of the candidate ("@.a.b"). With an empty
// Operator it is an existence test.
type Comparison struct {
	Field    []string // Field path after @ (e.g., ["x-internal"] for @.x-internal)
	Operator string   // ==, !=, <, >, <=, >= or "" for existence
	Value    any      // The comparison value (string, float64, bool, nil)
}

// Match implements FilterExpr.
func (c *Comparison) Match(node any) bool {
	val, exists := fieldValue(node, c.Field)
	if c.Operator == "" {
		return exists
	}
	if !exists {
		return c.Operator == "!="
	}
	return compare(val, c.Operator, c.Value)
}

func (c *Comparison) String() string {
	field := "@"
	if len(c.Field) > 0 {
		field += "." + strings.Join(c.Field, ".")
	}
	if c.Operator == "" {
		return field
	}
	return fmt.Sprintf("%s %s %v", field, c.Operator, c.Value)
}

// Logical combines two expressions with && or ||.
type Logical struct {
	Operator    string
	Left, Right FilterExpr
}

// Match implements FilterExpr.
func (l *Logical) Match(node any) bool {
	if l.Operator == "&&" {
		return l.Left.Match(node) && l.Right.Match(node)
	}
	return l.Left.Match(node) || l.Right.Match(node)
}

func (l *Logical) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// Not negates an expression.
type Not struct {
	Expr FilterExpr
}

// Match implements FilterExpr.
func (n *Not) Match(node any) bool {
	return !n.Expr.Match(node)
}

func (n *Not) String() string {
	return "!" + n.Expr.String()
}

func (p *parser) parseFilterOr() (FilterExpr, error) {
	left, err := p.parseFilterAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if !p.consumeString("||") {
			return left, nil
		}
		right, err := p.parseFilterAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{Operator: "||", Left: left, Right: right}
	}
}

func (p *parser) parseFilterAnd() (FilterExpr, error) {
	left, err := p.parseFilterUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if !p.consumeString("&&") {
			return left, nil
		}
		right, err := p.parseFilterUnary()
		if err != nil {
			return nil, err
		}
		left = &Logical{Operator: "&&", Left: left, Right: right}
	}
}

func (p *parser) parseFilterUnary() (FilterExpr, error) {
	p.skipWhitespace()
	if p.peek() == '!' && !strings.HasPrefix(p.input[p.pos:], "!=") {
		p.advance()
		inner, err := p.parseFilterUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Expr: inner}, nil
	}
	if p.consume('(') {
		inner, err := p.parseFilterOr()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if !p.consume(')') {
			return nil, fmt.Errorf("jsonpath: expected ')' in filter at position %d", p.pos)
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (FilterExpr, error) {
	if !p.consume('@') {
		return nil, fmt.Errorf("jsonpath: expected '@' in filter expression at position %d", p.pos)
	}

	var field []string
	for {
		if p.consume('.') {
			name := p.parseIdentifier()
			if name == "" {
				return nil, fmt.Errorf("jsonpath: expected field name in filter at position %d", p.pos)
			}
			field = append(field, name)
			continue
		}
		if p.peek() == '[' {
			p.advance()
			quote := p.peek()
			if quote != '\'' && quote != '"' {
				return nil, fmt.Errorf("jsonpath: expected quoted field name in filter at position %d", p.pos)
			}
			p.advance()
			name, err := p.parseQuotedString(quote)
			if err != nil {
				return nil, err
			}
			if !p.consume(']') {
				return nil, fmt.Errorf("jsonpath: expected ']' after field name at position %d", p.pos)
			}
			field = append(field, name)
			continue
		}
		break
	}

	p.skipWhitespace()
	op := p.parseOperator()
	if op == "" {
		return &Comparison{Field: field}, nil
	}

	p.skipWhitespace()
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Comparison{Field: field, Operator: op, Value: value}, nil
}

func (p *parser) parseOperator() string {
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if p.consumeString(op) {
			return op
		}
	}
	return ""
}

func (p *parser) parseValue() (any, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("jsonpath: expected value at position %d", p.pos)
	}

	ch := p.peek()
	switch {
	case ch == '\'' || ch == '"':
		p.advance()
		return p.parseQuotedString(ch)
	case p.consumeString("true"):
		return true, nil
	case p.consumeString("false"):
		return false, nil
	case p.consumeString("null"):
		return nil, nil
	case unicode.IsDigit(rune(ch)) || ch == '-':
		start := p.pos
		p.advance()
		for p.pos < len(p.input) && (unicode.IsDigit(rune(p.input[p.pos])) || strings.ContainsRune(".eE+-", rune(p.input[p.pos]))) {
			p.pos++
		}
		f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
		if err != nil {
			return nil, fmt.Errorf("jsonpath: invalid number %q: %w", p.input[start:p.pos], err)
		}
		return f, nil
	}

	return nil, fmt.Errorf("jsonpath: unexpected character %q when parsing value at position %d", ch, p.pos)
}

// fieldValue walks a field path from node. An empty path yields node itself.
func fieldValue(node any, field []string) (any, bool) {
	cur := node
	for _, name := range field {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[name]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// compare performs a comparison between two values using the given operator.
func compare(left any, op string, right any) bool {
	l, r := normalizeValue(left), normalizeValue(right)
	switch op {
	case "==":
		return valuesEqual(l, r)
	case "!=":
		return !valuesEqual(l, r)
	case "<":
		return compareLess(l, r)
	case "<=":
		return compareLess(l, r) || valuesEqual(l, r)
	case ">":
		return compareLess(r, l)
	case ">=":
		return compareLess(r, l) || valuesEqual(l, r)
	default:
		return false
	}
}

// normalizeValue folds the integer types YAML decoding produces into float64.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

func valuesEqual(left, right any) bool {
	return equalutil.Nodes(left, right)
}

func compareLess(left, right any) bool {
	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		return ok && l < r
	case string:
		r, ok := right.(string)
		return ok && l < r
	}
	return false
}
