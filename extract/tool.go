package extract

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/internal/naming"
	"github.com/erraggy/apispec/internal/pathutil"
	"github.com/erraggy/apispec/oaserrors"
)

// Tool is a function-calling definition derived from one operation.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Method      string `json:"method,omitempty" yaml:"method,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	// Parameters is a JSON Schema object merging the operation's parameters
	// and request body. Referenced schemas live under its "$defs".
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// InputSchema decodes Parameters as a JSON Schema and resolves it, which
// fails if any reference points outside the schema.
func (t *Tool) InputSchema() (*jsonschema.Schema, error) {
	data, err := json.Marshal(t.Parameters)
	if err != nil {
		return nil, fmt.Errorf("extract: tool %s: %w", t.Name, err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("extract: tool %s: invalid schema: %w", t.Name, err)
	}
	if _, err := s.Resolve(&jsonschema.ResolveOptions{}); err != nil {
		return nil, fmt.Errorf("extract: tool %s: %w", t.Name, err)
	}
	return &s, nil
}

func (r *run) tools(matches []Match) ([]*Tool, error) {
	tools := make([]*Tool, 0, len(matches))
	seen := make(map[string]int)
	add := func(t *Tool) {
		seen[t.Name]++
		if n := seen[t.Name]; n > 1 {
			t.Name = naming.Disambiguate(t.Name, n)
		}
		tools = append(tools, t)
	}

	for _, m := range matches {
		node, _ := m.Node.(map[string]any)
		if !m.isObject() {
			node = nil
		}
		switch {
		case node != nil && isPathItemNode(node):
			for _, method := range httputil.Methods() {
				op, ok := node[method].(map[string]any)
				if !ok {
					continue
				}
				t, err := r.tool(m.Path, method, op, node)
				if err != nil {
					return nil, err
				}
				add(t)
			}
		case node != nil && (m.Method != "" || isOperationNode(node)):
			item, _ := r.paths()[m.Path].(map[string]any)
			t, err := r.tool(m.Path, m.Method, node, item)
			if err != nil {
				return nil, err
			}
			add(t)
		default:
			return nil, &oaserrors.OperationError{
				Path:    m.Path,
				Message: fmt.Sprintf("query match of type %T is not an operation or path item", m.Node),
			}
		}
	}
	return tools, nil
}

func isOperationNode(node map[string]any) bool {
	_, hasResponses := node["responses"]
	_, hasID := node["operationId"]
	return hasResponses || hasID
}

// tool builds the Tool for op. item is the enclosing path item, if known.
func (r *run) tool(path, method string, op, item map[string]any) (*Tool, error) {
	opID, _ := op["operationId"].(string)
	name := naming.SanitizeToolName(opID)
	if name == "" && (path != "" || method != "") {
		name = naming.SanitizeToolName(naming.OperationName(method, path))
	}
	if name == "" {
		name = "operation"
	}

	desc, _ := op["description"].(string)
	if desc == "" {
		desc, _ = op["summary"].(string)
	}

	loc := pathutil.Get()
	defer pathutil.Put(loc)
	if path != "" {
		loc.Push("paths")
		loc.Push(path)
		if method != "" {
			loc.Push(method)
		}
	}

	ts := &toolSchema{
		r:       r,
		op:      &oaserrors.OperationError{Path: path, Method: method, OperationID: opID},
		props:   make(map[string]any),
		descs:   make(map[string]string),
		reqSeen: make(map[string]bool),
	}

	params, err := r.operationParameters(op, item, loc)
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if err := ts.addParameter(p, r.consumes(op), loc); err != nil {
			return nil, err
		}
	}
	if rb, ok := op["requestBody"]; ok {
		loc.Push("requestBody")
		err := ts.addRequestBody(rb, loc)
		loc.Pop()
		if err != nil {
			return nil, err
		}
	}

	schema, err := ts.finish()
	if err != nil {
		return nil, err
	}
	return &Tool{Name: name, Description: desc, Method: method, Path: path, Parameters: schema}, nil
}

// operationParameters merges path-level and operation-level parameters,
// resolving refs. An operation parameter replaces a path parameter with the
// same name and location.
func (r *run) operationParameters(op, item map[string]any, loc *pathutil.PathBuilder) ([]map[string]any, error) {
	var out []map[string]any
	index := make(map[string]int)

	add := func(list any) error {
		raw, _ := list.([]any)
		for i, p := range raw {
			loc.Push("parameters")
			loc.PushIndex(i)
			resolved, err := r.deref(p, loc)
			loc.Pop()
			loc.Pop()
			if err != nil {
				return err
			}
			if resolved == nil {
				continue
			}
			key := fmt.Sprint(resolved["in"], ":", resolved["name"])
			if at, ok := index[key]; ok {
				out[at] = resolved
				continue
			}
			index[key] = len(out)
			out = append(out, resolved)
		}
		return nil
	}

	if item != nil {
		if err := add(item["parameters"]); err != nil {
			return nil, err
		}
	}
	if err := add(op["parameters"]); err != nil {
		return nil, err
	}
	return out, nil
}

// deref follows a chain of $refs from node and returns the object it ends
// at, or nil when the target is not an object.
func (r *run) deref(node any, loc *pathutil.PathBuilder) (map[string]any, error) {
	seen := make(map[string]bool)
	for {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, nil
		}
		ref, ok := m["$ref"].(string)
		if !ok {
			return m, nil
		}
		def, err := r.idx.Resolve(ref)
		if err != nil {
			return nil, withLocation(err, loc)
		}
		if seen[def.Ref] {
			return nil, &oaserrors.ReferenceError{Ref: ref, Location: loc.String(), Message: "reference cycle"}
		}
		seen[def.Ref] = true
		node = def.Value
	}
}

// consumes returns the OAS 2.0 body media kind of op.
func (r *run) consumes(op map[string]any) httputil.MediaKind {
	list, ok := op["consumes"].([]any)
	if !ok {
		list, _ = r.doc["consumes"].([]any)
	}
	var types []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			types = append(types, s)
		}
	}
	if len(types) == 0 {
		return httputil.MediaJSON
	}
	_, kind := httputil.PreferredMediaType(types)
	return kind
}

// toolSchema accumulates the flattened parameters of one operation. Property
// values are source schema nodes until finish cleans them.
type toolSchema struct {
	r        *run
	op       *oaserrors.OperationError
	props    map[string]any
	descs    map[string]string
	required []string
	reqSeen  map[string]bool
}

func (ts *toolSchema) fail(format string, args ...any) error {
	err := *ts.op
	err.Message = fmt.Sprintf(format, args...)
	return &err
}

func (ts *toolSchema) addRequired(name string) {
	if !ts.reqSeen[name] {
		ts.reqSeen[name] = true
		ts.required = append(ts.required, name)
	}
}

// propertyName returns name, or a qualified name when it is already taken.
func (ts *toolSchema) propertyName(name, qualifier string) string {
	if _, taken := ts.props[name]; !taken {
		return name
	}
	base := qualifier + "_" + name
	for i := 1; ; i++ {
		candidate := naming.Disambiguate(base, i)
		if _, taken := ts.props[candidate]; !taken {
			return candidate
		}
	}
}

var nonSchemaParameterKeys = map[string]bool{
	"name": true, "in": true, "required": true, "description": true,
	"allowEmptyValue": true, "collectionFormat": true,
}

func (ts *toolSchema) addParameter(p map[string]any, bodyKind httputil.MediaKind, loc *pathutil.PathBuilder) error {
	in, _ := p["in"].(string)
	name, _ := p["name"].(string)
	if name == "" {
		return ts.fail("parameter without a name")
	}
	required, _ := p["required"].(bool)

	if in == "body" {
		return ts.addBody(p["schema"], required, bodyKind, "body parameter", loc)
	}

	var schema any
	if s, ok := p["schema"]; ok {
		schema = s
	} else if content, ok := p["content"].(map[string]any); ok && len(content) > 0 {
		mt, _ := httputil.PreferredMediaType(maputil.SortedKeys(content))
		if media, ok := content[mt].(map[string]any); ok {
			schema = media["schema"]
		}
	} else if t, ok := p["type"]; ok {
		s := make(map[string]any)
		for k, v := range p {
			if !nonSchemaParameterKeys[k] {
				s[k] = v
			}
		}
		if t == "file" {
			s["type"] = "string"
			s["format"] = "binary"
		}
		schema = s
	}
	if schema == nil {
		return ts.fail("parameter %q has no schema", name)
	}

	prop := ts.propertyName(name, in)
	ts.props[prop] = schema
	if d, ok := p["description"].(string); ok {
		ts.descs[prop] = d
	}
	if required {
		ts.addRequired(prop)
	}
	return nil
}

func (ts *toolSchema) addRequestBody(rb any, loc *pathutil.PathBuilder) error {
	body, err := ts.r.deref(rb, loc)
	if err != nil {
		return err
	}
	content, _ := body["content"].(map[string]any)
	if len(content) == 0 {
		return ts.fail("request body has no content")
	}
	mt, kind := httputil.PreferredMediaType(maputil.SortedKeys(content))
	media, _ := content[mt].(map[string]any)
	schema, ok := media["schema"]
	if !ok || schema == nil {
		return ts.fail("request body %s has no schema", mt)
	}
	required, _ := body["required"].(bool)
	return ts.addBody(schema, required, kind, mt, loc)
}

// addBody merges an object body's properties into the top level, or adds
// the whole body as a "body" property.
func (ts *toolSchema) addBody(schema any, required bool, kind httputil.MediaKind, what string, loc *pathutil.PathBuilder) error {
	if schema == nil {
		return ts.fail("%s has no schema", what)
	}
	target, err := ts.r.deref(schema, loc)
	if err != nil {
		return err
	}

	if props, ok := objectProperties(target); ok && !ts.clashes(props) {
		for _, k := range maputil.SortedKeys(props) {
			ts.props[k] = props[k]
		}
		if required {
			reqs, _ := target["required"].([]any)
			for _, v := range reqs {
				if s, ok := v.(string); ok {
					ts.addRequired(s)
				}
			}
		}
		return nil
	}

	if kind == httputil.MediaBinary {
		return ts.fail("binary request body (%s) has no object schema", what)
	}
	name := "body"
	if _, taken := ts.props[name]; taken {
		name = ts.propertyName("requestBody", "body")
	}
	ts.props[name] = schema
	if required {
		ts.addRequired(name)
	}
	return nil
}

func objectProperties(schema map[string]any) (map[string]any, bool) {
	if schema == nil {
		return nil, false
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil, false
	}
	t, hasType := schema["type"]
	return props, !hasType || t == "object"
}

func (ts *toolSchema) clashes(props map[string]any) bool {
	for k := range props {
		if _, taken := ts.props[k]; taken {
			return true
		}
	}
	return false
}

// finish cleans the collected properties and gathers the schemas they
// reference under $defs.
func (ts *toolSchema) finish() (map[string]any, error) {
	strip := ts.r.opts.strip()
	names := maputil.SortedKeys(ts.props)

	cl := newClosure(ts.r.idx, strip)
	loc := pathutil.Get()
	defer pathutil.Put(loc)
	loc.Push("properties")
	for _, name := range names {
		loc.Push(name)
		err := cl.addRoot(ts.props[name], kindObject, loc)
		loc.Pop()
		if err != nil {
			return nil, err
		}
	}

	nm := newNamer(
		func(_, name string) string { return pathutil.DefsRef(name) },
		func(string) string { return "$defs" },
	)
	nm.assign(cl.definitions())
	c := &cleaner{
		strip:     strip,
		onRef:     func(ref string, _ *pathutil.PathBuilder) (string, error) { return nm.rewrite(ref), nil },
		schemaRef: cl.schemaRef,
	}

	props := make(map[string]any, len(names))
	for _, name := range names {
		v, err := c.clean(ts.props[name], kindObject, loc)
		if err != nil {
			return nil, err
		}
		v = toJSONSchema(v)
		if d, ok := ts.descs[name]; ok && !strip.docs {
			if m, ok := v.(map[string]any); ok {
				if _, has := m["description"]; !has {
					m["description"] = d
				}
			}
		}
		props[name] = v
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(ts.required) > 0 {
		schema["required"] = ts.required
	}
	if len(nm.emitted) > 0 {
		defs := make(map[string]any, len(nm.emitted))
		for _, p := range nm.emitted {
			v, err := c.clean(p.def.Value, definitionKind(p.def.Category), loc)
			if err != nil {
				return nil, err
			}
			defs[p.name] = toJSONSchema(v)
		}
		schema["$defs"] = defs
	}
	return schema, nil
}

// toJSONSchema rewrites the OpenAPI 3.0 schema dialect into JSON Schema
// 2020-12: nullable becomes a "null" type and boolean exclusive bounds
// become numeric ones. It modifies the cleaned copy in place.
func toJSONSchema(node any) any {
	return schemaDialect(node, kindObject)
}

// schemaDialect rewrites node, a value of the given kind. Only keyword
// objects are rewritten; literal values and extensions are left alone.
func schemaDialect(node any, kind nodeKind) any {
	switch n := node.(type) {
	case map[string]any:
		if kind == kindObject {
			if nullable, ok := n["nullable"].(bool); ok {
				delete(n, "nullable")
				if t, ok := n["type"].(string); ok && nullable {
					n["type"] = []any{t, "null"}
				}
			}
			exclusiveBound(n, "exclusiveMinimum", "minimum")
			exclusiveBound(n, "exclusiveMaximum", "maximum")
		}
		var keep stripPolicy
		for k, v := range n {
			ck, _ := keep.child(kind, k)
			if isLiteral(ck) {
				continue
			}
			n[k] = schemaDialect(v, ck)
		}
	case []any:
		ek := element(kind)
		if isLiteral(ek) {
			return node
		}
		for i, v := range n {
			n[i] = schemaDialect(v, ek)
		}
	}
	return node
}

func isLiteral(kind nodeKind) bool {
	switch kind {
	case kindOpaque, kindRaw, kindExamples, kindMapping:
		return true
	}
	return false
}

func exclusiveBound(schema map[string]any, exclusive, bound string) {
	flag, ok := schema[exclusive].(bool)
	if !ok {
		return
	}
	delete(schema, exclusive)
	if v, has := schema[bound]; has && flag {
		schema[exclusive] = v
		delete(schema, bound)
	}
}
