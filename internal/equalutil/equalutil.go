// Package equalutil compares decoded document nodes.
package equalutil

// Nodes reports whether a and b are the same document tree. Numbers are
// compared by value, so an int decoded from YAML equals the float64 JSON
// decoding gives for the same literal.
func Nodes(a, b any) bool {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Nodes(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Nodes(x[i], y[i]) {
				return false
			}
		}
		return true
	}

	if xf, ok := number(a); ok {
		yf, ok := number(b)
		return ok && xf == yf
	}
	return a == b
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
