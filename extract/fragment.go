package extract

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v4"
)

// Fragment is the result of an extraction: a standalone document holding
// the matched nodes and every definition they reference.
type Fragment struct {
	// Document is the output document with keys in canonical order.
	Document *Map
	// Tools holds one function-calling definition per matched operation in tool mode.
	Tools []*Tool
	// Closure lists the referenced source definitions in discovery order.
	Closure []Definition
	// Renames maps source refs to output refs for every definition whose
	// reference changed (collision suffixes, hoisted deep pointers,
	// OAS 2.0 style sections in 3.x documents).
	Renames map[string]string
	// Matches is the number of nodes the locator matched.
	Matches int
}

// Output returns the value to serialize: the tool list in tool mode,
// the document otherwise.
func (f *Fragment) Output() any {
	if f.Tools != nil {
		return f.Tools
	}
	return f.Document
}

// MarshalJSONIndent renders Output as JSON with two-space indentation.
func (f *Fragment) MarshalJSONIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.Output()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML renders Output as YAML.
func (f *Fragment) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(f.Output())
}
