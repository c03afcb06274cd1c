// Package jsonpath provides a read-only JSONPath evaluator for query locators.
//
// It implements the subset of RFC 9535 JSONPath that is useful for picking
// nodes out of an OpenAPI document tree. Evaluation is deterministic: object
// members are visited in sorted key order, array elements in index order.
//
// Supported syntax:
//   - $ (root)
//   - .field or ['field'] (child access), ['a','b'] (union of names)
//   - .* or [*] (wildcard - all children)
//   - [0], [-1], [0,2] (array index and index union)
//   - [start:end:step] (array slice)
//   - ..field, ..* and ..[0] (recursive descent)
//   - [?@.field], [?@.a.b == value] (existence and comparison filters)
//   - &&, || and ! inside filters, with parentheses for grouping
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Path represents a parsed JSONPath expression.
type Path struct {
	raw      string
	segments []Segment
}

// String returns the original JSONPath expression.
func (p *Path) String() string {
	return p.raw
}

// Segment represents a single segment in a JSONPath expression.
type Segment interface {
	segmentType() string
}

// ChildSegment selects one or more object members by name.
type ChildSegment struct {
	Keys []string
}

func (s ChildSegment) segmentType() string { return "child" }

// WildcardSegment selects every child of an object or array.
type WildcardSegment struct{}

func (s WildcardSegment) segmentType() string { return "wildcard" }

// IndexSegment selects one or more array elements. Negative indices count from the end.
type IndexSegment struct {
	Indices []int
}

func (s IndexSegment) segmentType() string { return "index" }

// SliceSegment selects array elements in [Start:End:Step]. Nil bounds take their defaults.
type SliceSegment struct {
	Start, End *int
	Step       int
}

func (s SliceSegment) segmentType() string { return "slice" }

// FilterSegment selects the children of a collection for which Expr holds.
type FilterSegment struct {
	Expr FilterExpr
}

func (s FilterSegment) segmentType() string { return "filter" }

// RecursiveSegment applies Child to the current node and every descendant.
type RecursiveSegment struct {
	Child Segment
}

func (s RecursiveSegment) segmentType() string { return "recursive" }

// Parse parses a JSONPath expression string into a Path.
//
// Examples:
//
//	Parse("$.paths['/users'].get")             // one operation
//	Parse("$.paths.*.get")                     // every GET operation
//	Parse("$.paths.*[?@.deprecated == true]")  // deprecated operations
//	Parse("$..[?@.operationId == 'listPets']") // an operation anywhere
func Parse(expr string) (*Path, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("jsonpath: empty expression")
	}

	p := &parser{input: strings.TrimSpace(expr)}
	segments, err := p.parse()
	if err != nil {
		return nil, err
	}

	return &Path{raw: expr, segments: segments}, nil
}

// parser is the internal JSONPath parser.
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]Segment, error) {
	var segments []Segment

	if !p.consume('$') {
		return nil, fmt.Errorf("jsonpath: expression must start with '$'")
	}

	for p.pos < len(p.input) {
		switch ch := p.peek(); ch {
		case '.':
			p.advance()
			if p.consume('.') {
				child, err := p.parseDescendantSelector()
				if err != nil {
					return nil, err
				}
				segments = append(segments, RecursiveSegment{Child: child})
				continue
			}
			seg, err := p.parseDotSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		case '[':
			p.advance()
			seg, err := p.parseBracketSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		default:
			return nil, fmt.Errorf("jsonpath: unexpected character %q at position %d", ch, p.pos)
		}
	}

	return segments, nil
}

// parseDescendantSelector parses what follows "..": a name, "*" or a bracket segment.
func (p *parser) parseDescendantSelector() (Segment, error) {
	if p.consume('[') {
		return p.parseBracketSegment()
	}
	return p.parseDotSegment()
}

func (p *parser) parseDotSegment() (Segment, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("jsonpath: unexpected end after '.'")
	}

	if p.consume('*') {
		return WildcardSegment{}, nil
	}

	key := p.parseIdentifier()
	if key == "" {
		return nil, fmt.Errorf("jsonpath: expected identifier after '.' at position %d", p.pos)
	}
	return ChildSegment{Keys: []string{key}}, nil
}

func (p *parser) parseBracketSegment() (Segment, error) {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("jsonpath: unexpected end after '['")
	}

	switch ch := p.peek(); {
	case ch == '?':
		p.advance()
		expr, err := p.parseFilterOr()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if !p.consume(']') {
			return nil, fmt.Errorf("jsonpath: expected ']' after filter expression at position %d", p.pos)
		}
		return FilterSegment{Expr: expr}, nil

	case ch == '*':
		p.advance()
		p.skipWhitespace()
		if !p.consume(']') {
			return nil, fmt.Errorf("jsonpath: expected ']' after '[*'")
		}
		return WildcardSegment{}, nil

	case ch == '\'' || ch == '"':
		return p.parseNameUnion()

	case unicode.IsDigit(rune(ch)) || ch == '-' || ch == ':':
		return p.parseIndexOrSlice()
	}

	return nil, fmt.Errorf("jsonpath: unexpected character %q in bracket at position %d", p.peek(), p.pos)
}

func (p *parser) parseNameUnion() (Segment, error) {
	var keys []string
	for {
		p.skipWhitespace()
		quote := p.peek()
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("jsonpath: expected quoted name at position %d", p.pos)
		}
		p.advance()
		key, err := p.parseQuotedString(quote)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		p.skipWhitespace()
		if p.consume(']') {
			return ChildSegment{Keys: keys}, nil
		}
		if !p.consume(',') {
			return nil, fmt.Errorf("jsonpath: expected ',' or ']' after quoted name at position %d", p.pos)
		}
	}
}

func (p *parser) parseIndexOrSlice() (Segment, error) {
	first, hasFirst, err := p.parseOptionalInt()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	if p.peek() == ':' {
		p.advance()
		seg := SliceSegment{Step: 1}
		if hasFirst {
			seg.Start = &first
		}
		end, hasEnd, err := p.parseOptionalInt()
		if err != nil {
			return nil, err
		}
		if hasEnd {
			seg.End = &end
		}
		if p.consume(':') {
			step, hasStep, err := p.parseOptionalInt()
			if err != nil {
				return nil, err
			}
			if hasStep {
				if step == 0 {
					return nil, fmt.Errorf("jsonpath: slice step cannot be zero")
				}
				seg.Step = step
			}
		}
		p.skipWhitespace()
		if !p.consume(']') {
			return nil, fmt.Errorf("jsonpath: expected ']' after slice at position %d", p.pos)
		}
		return seg, nil
	}

	if !hasFirst {
		return nil, fmt.Errorf("jsonpath: expected index at position %d", p.pos)
	}
	indices := []int{first}
	for {
		p.skipWhitespace()
		if p.consume(']') {
			return IndexSegment{Indices: indices}, nil
		}
		if !p.consume(',') {
			return nil, fmt.Errorf("jsonpath: expected ',' or ']' after index at position %d", p.pos)
		}
		p.skipWhitespace()
		idx, ok, err := p.parseOptionalInt()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("jsonpath: expected index at position %d", p.pos)
		}
		indices = append(indices, idx)
	}
}

func (p *parser) parseOptionalInt() (int, bool, error) {
	p.skipWhitespace()
	start := p.pos
	if p.peek() == '-' {
		p.advance()
	}
	for p.pos < len(p.input) && unicode.IsDigit(rune(p.input[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return 0, false, nil
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, false, fmt.Errorf("jsonpath: invalid index %q: %w", p.input[start:p.pos], err)
	}
	return n, true, nil
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) parseQuotedString(quote byte) (string, error) {
	var result strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == quote {
			p.pos++
			return result.String(), nil
		}
		if ch == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			switch escaped := p.input[p.pos]; escaped {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			default:
				result.WriteByte(escaped)
			}
			p.pos++
			continue
		}
		result.WriteByte(ch)
		p.pos++
	}
	return "", fmt.Errorf("jsonpath: unterminated string at position %d", p.pos)
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.advance()
		return true
	}
	return false
}

func (p *parser) consumeString(s string) bool {
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '-' || ch == '$'
}
