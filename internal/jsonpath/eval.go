package jsonpath

import (
	"github.com/erraggy/apispec/internal/maputil"
)

// Get evaluates the path against doc and returns every matching node.
// A path with no segments ("$") returns the document itself.
func (p *Path) Get(doc any) []any {
	current := []any{doc}
	for _, seg := range p.segments {
		current = applySegment(current, seg)
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

func applySegment(nodes []any, seg Segment) []any {
	var out []any
	for _, node := range nodes {
		out = append(out, selectFrom(node, seg)...)
	}
	return out
}

func selectFrom(node any, seg Segment) []any {
	switch s := seg.(type) {
	case ChildSegment:
		return selectChildren(node, s.Keys)
	case WildcardSegment:
		return childrenOf(node)
	case IndexSegment:
		return selectIndices(node, s.Indices)
	case SliceSegment:
		return selectSlice(node, s)
	case FilterSegment:
		var out []any
		for _, child := range childrenOf(node) {
			if s.Expr.Match(child) {
				out = append(out, child)
			}
		}
		return out
	case RecursiveSegment:
		var out []any
		walkDescendants(node, func(n any) {
			out = append(out, selectFrom(n, s.Child)...)
		})
		return out
	}
	return nil
}

func selectChildren(node any, keys []string) []any {
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	var out []any
	for _, k := range keys {
		if v, exists := m[k]; exists {
			out = append(out, v)
		}
	}
	return out
}

// childrenOf returns object members in sorted key order, or array elements in order.
func childrenOf(node any) []any {
	switch n := node.(type) {
	case map[string]any:
		keys := maputil.SortedKeys(n)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, n[k])
		}
		return out
	case []any:
		out := make([]any, len(n))
		copy(out, n)
		return out
	}
	return nil
}

func selectIndices(node any, indices []int) []any {
	arr, ok := node.([]any)
	if !ok {
		return nil
	}
	var out []any
	for _, idx := range indices {
		if idx < 0 {
			idx += len(arr)
		}
		if idx >= 0 && idx < len(arr) {
			out = append(out, arr[idx])
		}
	}
	return out
}

func selectSlice(node any, s SliceSegment) []any {
	arr, ok := node.([]any)
	if !ok {
		return nil
	}
	n := len(arr)
	step := s.Step
	if step == 0 {
		step = 1
	}

	normalize := func(i int) int {
		if i < 0 {
			return i + n
		}
		return i
	}

	var out []any
	if step > 0 {
		start, end := 0, n
		if s.Start != nil {
			start = clamp(normalize(*s.Start), 0, n)
		}
		if s.End != nil {
			end = clamp(normalize(*s.End), 0, n)
		}
		for i := start; i < end; i += step {
			out = append(out, arr[i])
		}
		return out
	}

	start, end := n-1, -1
	if s.Start != nil {
		start = clamp(normalize(*s.Start), -1, n-1)
	}
	if s.End != nil {
		end = clamp(normalize(*s.End), -1, n-1)
	}
	for i := start; i > end; i += step {
		out = append(out, arr[i])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// walkDescendants calls fn for node and every node beneath it, depth first,
// visiting object members in sorted key order.
func walkDescendants(node any, fn func(any)) {
	fn(node)
	switch n := node.(type) {
	case map[string]any:
		for _, k := range maputil.SortedKeys(n) {
			walkDescendants(n[k], fn)
		}
	case []any:
		for _, v := range n {
			walkDescendants(v, fn)
		}
	}
}
