package parser

import (
	"fmt"
	"time"
)

// normalize converts a YAML-decoded tree into the shape encoding/json would
// produce: mappings become map[string]any even when YAML typed their keys
// (unquoted response codes such as 200 decode as ints), and timestamps
// become RFC 3339 strings.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[keyString(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

func keyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}
