package parser

import (
	"strconv"
	"strings"
)

// OASVersion identifies the specification family of a document. Reference
// syntax only differs between families, so patch releases are not tracked.
type OASVersion int

const (
	// Unknown represents an unknown or missing version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification Version 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification Version 3.1.x
	OASVersion31
	// OASVersion32 OpenAPI Specification Version 3.2.x
	OASVersion32
)

func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	case OASVersion32:
		return "3.2"
	default:
		return "unknown"
	}
}

// IsOAS3 reports whether v is any 3.x family.
func (v OASVersion) IsOAS3() bool {
	return v == OASVersion30 || v == OASVersion31 || v == OASVersion32
}

// ParseVersion maps a version string such as "2.0", "3.0.3" or "3.1.0-rc1"
// to its family. Future 3.x minors map to the newest known family.
func ParseVersion(s string) (OASVersion, bool) {
	base, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	parts := strings.Split(base, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Unknown, false
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Unknown, false
		}
		nums[i] = n
	}

	switch major, minor := nums[0], nums[1]; {
	case major == 2 && minor == 0:
		return OASVersion20, true
	case major == 3 && minor == 0:
		return OASVersion30, true
	case major == 3 && minor == 1:
		return OASVersion31, true
	case major == 3 && minor >= 2:
		return OASVersion32, true
	}
	return Unknown, false
}

// DetectVersion reads the "swagger" or "openapi" root field of doc.
// It returns the raw value (possibly "") and the parsed family.
func DetectVersion(doc map[string]any) (string, OASVersion) {
	for _, key := range []string{"openapi", "swagger"} {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		s := versionString(raw)
		v, _ := ParseVersion(s)
		if key == "swagger" && v != OASVersion20 {
			v = Unknown
		}
		if key == "openapi" && !v.IsOAS3() {
			v = Unknown
		}
		return s, v
	}
	return "", Unknown
}

// versionString tolerates unquoted YAML versions ("swagger: 2.0" decodes as a float).
func versionString(raw any) string {
	switch t := raw.(type) {
	case string:
		return t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case int:
		return strconv.Itoa(t) + ".0"
	default:
		return ""
	}
}
