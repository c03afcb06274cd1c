package extract

import (
	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/internal/pathutil"
	"github.com/erraggy/apispec/oaserrors"
	"github.com/erraggy/apispec/parser"
)

// run holds the state of one extraction.
type run struct {
	doc     map[string]any
	idx     *RefIndex
	opts    Options
	log     parser.Logger
	oas2    bool
	methods map[string]bool
}

// Extract returns the fragment of doc selected by loc: the matched nodes,
// cleaned per opts, plus every definition they transitively reference,
// re-scoped to the fragment's own component sections.
//
// doc is never modified. Errors are the oaserrors types: LocatorError for
// empty locators, unknown paths and bad queries, ReferenceError for dangling
// references, OperationError when a tool cannot be built and DocumentError
// for structurally invalid input.
func Extract(doc map[string]any, loc Locator, opts Options) (*Fragment, error) {
	loc, err := loc.normalize()
	if err != nil {
		return nil, err
	}
	methods, err := opts.methods()
	if err != nil {
		return nil, err
	}
	idx, err := NewRefIndex(doc)
	if err != nil {
		return nil, err
	}

	_, version := parser.DetectVersion(doc)
	r := &run{
		doc:     doc,
		idx:     idx,
		opts:    opts,
		log:     opts.log(),
		oas2:    version == parser.OASVersion20,
		methods: methods,
	}

	matches, err := r.locate(loc)
	if err != nil {
		return nil, err
	}
	r.log.Debug("located matches", "mode", loc.Kind.String(), "locator", loc.Value, "matches", len(matches))

	return r.build(loc, matches)
}

// ExtractResult extracts loc from a parse result.
func ExtractResult(result *parser.ParseResult, loc Locator, opts Options) (*Fragment, error) {
	if result == nil {
		return nil, &oaserrors.DocumentError{Path: "$", Got: "nil", Message: "parse result is nil"}
	}
	return Extract(result.Data, loc, opts)
}

func (r *run) build(loc Locator, matches []Match) (*Fragment, error) {
	strip := r.opts.strip()
	cl := newClosure(r.idx, strip)

	for i, m := range matches {
		b := matchLocation(m, i)
		err := cl.addRoot(m.Node, m.kind, b)
		pathutil.Put(b)
		if err != nil {
			return nil, err
		}
	}
	if r.opts.KeepSecurity {
		if err := r.followSecurity(cl, matches); err != nil {
			return nil, err
		}
	}
	defs := cl.definitions()

	nm := newNamer(r.componentRef, r.outputCategory)
	nm.assign(defs)
	for _, p := range nm.suffixed {
		r.log.Warn("renamed colliding definition", "ref", p.def.Ref, "name", p.name)
	}

	out := &cleaner{
		strip:     strip,
		onRef:     func(ref string, _ *pathutil.PathBuilder) (string, error) { return nm.rewrite(ref), nil },
		schemaRef: cl.schemaRef,
	}

	doc := NewMap()
	r.header(doc)

	if loc.Kind == LocatorQuery {
		cleaned := make([]any, 0, len(matches))
		for i, m := range matches {
			v, err := r.cleanMatch(out, m, i)
			if err != nil {
				return nil, err
			}
			cleaned = append(cleaned, v)
		}
		doc.Set("matches", cleaned)
	} else {
		paths := NewMap()
		for i, m := range matches {
			v, err := r.cleanMatch(out, m, i)
			if err != nil {
				return nil, err
			}
			paths.Set(m.Path, v)
		}
		doc.Set("paths", paths)
	}

	if err := r.components(doc, out, nm.emitted); err != nil {
		return nil, err
	}
	if r.opts.KeepSecurity {
		if sec, ok := r.doc["security"]; ok {
			doc.Set("security", deepCopy(sec))
		}
	}

	frag := &Fragment{
		Document: doc,
		Closure:  defs,
		Renames:  nm.renames,
		Matches:  len(matches),
	}
	r.log.Debug("resolved closure", "definitions", len(defs), "emitted", len(nm.emitted), "renamed", len(nm.renames))

	if r.opts.ToolMode {
		tools, err := r.tools(matches)
		if err != nil {
			return nil, err
		}
		frag.Tools = tools
	}
	return frag, nil
}

// matchLocation returns a builder positioned at the match's source location.
func matchLocation(m Match, i int) *pathutil.PathBuilder {
	b := pathutil.Get()
	switch {
	case m.Path != "":
		b.Push("paths")
		b.Push(m.Path)
		if m.Method != "" && !isPathItemNode(m.Node) {
			b.Push(m.Method)
		}
	default:
		b.Push("matches")
		b.PushIndex(i)
	}
	return b
}

// isPathItemNode reports whether node looks like a path item rather than an operation.
func isPathItemNode(node any) bool {
	m, ok := node.(map[string]any)
	return ok && hasOperation(m)
}

// header writes the version, info and server members.
func (r *run) header(doc *Map) {
	switch {
	case r.oas2:
		doc.Set("swagger", r.doc["swagger"])
	default:
		if v, ok := r.doc["openapi"]; ok {
			doc.Set("openapi", v)
		}
	}

	if info, ok := r.doc["info"].(map[string]any); ok {
		if r.opts.KeepInfo {
			doc.Set("info", deepCopy(info))
		} else {
			doc.Set("info", map[string]any{"title": stringOr(info["title"]), "version": stringOr(info["version"])})
		}
	} else if _, isOAS := doc.Get(versionKey(r.oas2)); isOAS {
		doc.Set("info", map[string]any{"title": "", "version": ""})
	}

	if !r.opts.KeepServers {
		return
	}
	keys := []string{"servers"}
	if r.oas2 {
		keys = []string{"host", "basePath", "schemes"}
	}
	for _, k := range keys {
		if v, ok := r.doc[k]; ok {
			doc.Set(k, deepCopy(v))
		}
	}
}

func versionKey(oas2 bool) string {
	if oas2 {
		return "swagger"
	}
	return "openapi"
}

func stringOr(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// cleanMatch produces the output form of one match.
func (r *run) cleanMatch(c *cleaner, m Match, i int) (any, error) {
	b := matchLocation(m, i)
	defer pathutil.Put(b)
	v, err := c.clean(m.Node, m.kind, b)
	if err != nil {
		return nil, err
	}
	out, ok := v.(map[string]any)
	if !ok || !m.isObject() {
		return v, nil
	}
	src := m.Node.(map[string]any)

	switch {
	case isPathItemNode(src):
		for _, method := range httputil.Methods() {
			op, ok := out[method].(map[string]any)
			if !ok {
				continue
			}
			r.finishOperation(op, src[method].(map[string]any))
		}
	case m.Method != "":
		r.finishOperation(out, src)
	}
	return out, nil
}

// finishOperation applies the operation-level rules the generic cleaner
// does not know about.
func (r *run) finishOperation(out, src map[string]any) {
	if !r.opts.KeepSecurity {
		delete(out, "security")
	}
	if r.opts.ToolMode {
		if d, ok := src["description"].(string); ok && d != "" {
			out["description"] = d
		}
	}
}

// components writes the definition sections in canonical category order.
func (r *run) components(doc *Map, c *cleaner, emitted []placed) error {
	byCategory := make(map[string]*Map)
	for _, p := range emitted {
		b := pathutil.Get()
		tokens, _ := pathutil.SplitPointer(p.def.Ref)
		for _, tok := range tokens {
			b.Push(tok)
		}
		v, err := c.clean(p.def.Value, definitionKind(p.def.Category), b)
		pathutil.Put(b)
		if err != nil {
			return err
		}
		m := byCategory[p.category]
		if m == nil {
			m = NewMap()
			byCategory[p.category] = m
		}
		m.Set(p.name, v)
	}

	if r.oas2 {
		for _, cat := range pathutil.ComponentCategories2 {
			if m, ok := byCategory[cat]; ok {
				doc.Set(cat, m)
			}
		}
		return nil
	}
	if len(byCategory) == 0 {
		return nil
	}
	components := NewMap()
	for _, cat := range pathutil.ComponentCategories3 {
		if m, ok := byCategory[cat]; ok {
			components.Set(cat, m)
		}
	}
	doc.Set("components", components)
	return nil
}

// followSecurity adds the schemes named by the kept security requirements.
func (r *run) followSecurity(cl *closure, matches []Match) error {
	names := make(map[string]bool)
	collect := func(v any) {
		reqs, _ := v.([]any)
		for _, req := range reqs {
			if m, ok := req.(map[string]any); ok {
				for name := range m {
					names[name] = true
				}
			}
		}
	}

	collect(r.doc["security"])
	for _, m := range matches {
		node, ok := m.Node.(map[string]any)
		if !ok || !m.isObject() {
			continue
		}
		if isPathItemNode(node) {
			for _, method := range httputil.Methods() {
				if op, ok := node[method].(map[string]any); ok {
					collect(op["security"])
				}
			}
			continue
		}
		collect(node["security"])
	}

	category := "securitySchemes"
	if r.oas2 {
		category = "securityDefinitions"
	}
	b := pathutil.Get()
	defer pathutil.Put(b)
	b.Push("security")
	for _, name := range maputil.SortedKeys(names) {
		ref := pathutil.ComponentRef(category, name, r.oas2)
		if _, ok := r.idx.Lookup(ref); !ok {
			r.log.Warn("security requirement names an undefined scheme", "scheme", name)
			continue
		}
		if _, err := cl.follow(ref, b); err != nil {
			return err
		}
	}
	return nil
}

// outputCategory maps a source category to the section it is emitted in.
func (r *run) outputCategory(category string) string {
	if r.oas2 {
		switch category {
		case "parameters", "responses", "securityDefinitions":
			return category
		case "securitySchemes":
			return "securityDefinitions"
		default:
			return "definitions"
		}
	}
	switch category {
	case "definitions":
		return "schemas"
	case "securityDefinitions":
		return "securitySchemes"
	default:
		return category
	}
}

func (r *run) componentRef(category, name string) string {
	return pathutil.ComponentRef(category, name, r.oas2)
}
