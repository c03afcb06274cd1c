package extract

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/oaserrors"
	"github.com/erraggy/apispec/query"
)

// Match is one node selected by a locator.
type Match struct {
	// Path is the path template the node belongs to, when known.
	Path string
	// Method is set when the node is a single operation.
	Method string
	// Node is the matched source node. Path and operationId matches are a
	// path item restricted to the selected operations.
	Node any

	// kind is how the node's members are read. Query matches may be name
	// maps (a properties map, components.schemas) rather than keyword objects.
	kind nodeKind
}

// isObject reports whether the match is a keyword object.
func (m Match) isObject() bool {
	return m.kind == kindObject
}

func (r *run) locate(loc Locator) ([]Match, error) {
	switch loc.Kind {
	case LocatorPath:
		return r.locatePath(loc)
	case LocatorOperationID:
		return r.locateOperationID(loc)
	default:
		return r.locateQuery(loc)
	}
}

func (r *run) paths() map[string]any {
	paths, _ := r.doc["paths"].(map[string]any)
	return paths
}

func (r *run) locatePath(loc Locator) ([]Match, error) {
	raw, ok := r.paths()[loc.Value]
	if !ok {
		return nil, &oaserrors.LocatorError{Locator: loc.Value, Mode: loc.Kind.String(), NotFound: true}
	}
	item, ok := raw.(map[string]any)
	if !ok {
		return nil, &oaserrors.DocumentError{Path: "paths." + loc.Value, Got: fmt.Sprintf("%T", raw), Message: "path item must be an object"}
	}

	filtered := r.filterMethods(item, "")
	if len(r.methods) > 0 && !hasOperation(filtered) {
		return nil, &oaserrors.LocatorError{
			Locator:  loc.Value,
			Mode:     loc.Kind.String(),
			NotFound: true,
			Message:  "no operation with the requested methods",
		}
	}
	return []Match{{Path: loc.Value, Node: filtered}}, nil
}

func (r *run) locateOperationID(loc Locator) ([]Match, error) {
	paths := r.paths()
	for _, path := range maputil.SortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httputil.Methods() {
			if r.methods != nil && !r.methods[method] {
				continue
			}
			op, ok := item[method].(map[string]any)
			if !ok || op["operationId"] != loc.Value {
				continue
			}
			return []Match{{Path: path, Method: method, Node: r.filterMethods(item, method)}}, nil
		}
	}
	return nil, &oaserrors.LocatorError{Locator: loc.Value, Mode: loc.Kind.String(), NotFound: true}
}

// filterMethods returns a shallow copy of item holding the shared members
// and the selected operations: only, if set, else those passing the method filter.
func (r *run) filterMethods(item map[string]any, only string) map[string]any {
	if only == "" && r.methods == nil {
		return item
	}
	out := make(map[string]any, len(item))
	for k, v := range item {
		if httputil.IsMethod(k) {
			if only != "" && k != only {
				continue
			}
			if only == "" && !r.methods[k] {
				continue
			}
		}
		out[k] = v
	}
	return out
}

func hasOperation(item map[string]any) bool {
	for k := range item {
		if httputil.IsMethod(k) {
			return true
		}
	}
	return false
}

func (r *run) locateQuery(loc Locator) ([]Match, error) {
	ev := r.opts.Evaluator
	if ev == nil {
		var err error
		if ev, err = query.Get(loc.Dialect); err != nil {
			return nil, err
		}
	}

	nodes, err := ev.Evaluate(r.doc, loc.Value)
	if err != nil {
		var locErr *oaserrors.LocatorError
		if errors.As(err, &locErr) {
			return nil, err
		}
		return nil, &oaserrors.LocatorError{Locator: loc.Value, Mode: loc.Kind.String(), Message: "query failed", Cause: err}
	}

	owners := r.owners()
	kinds := nodeKinds(r.doc)
	matches := make([]Match, 0, len(nodes))
	for _, node := range nodes {
		m := Match{Node: node}
		if o, ok := owners[identity(node)]; ok {
			m.Path, m.Method = o.path, o.method
		}
		if k, ok := kinds[identity(node)]; ok {
			m.kind = k
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// nodeKinds maps the identity of every map in doc to the kind it has at
// its position, classified without stripping.
func nodeKinds(doc map[string]any) map[uintptr]nodeKind {
	out := make(map[uintptr]nodeKind)
	var keep stripPolicy
	var walk func(node any, kind nodeKind)
	walk = func(node any, kind nodeKind) {
		switch n := node.(type) {
		case map[string]any:
			id := identity(n)
			if _, seen := out[id]; seen {
				return
			}
			out[id] = kind
			for _, k := range maputil.SortedKeys(n) {
				ck, _ := keep.child(kind, k)
				walk(n[k], ck)
			}
		case []any:
			ek := element(kind)
			for _, v := range n {
				walk(v, ek)
			}
		}
	}
	walk(doc, kindObject)
	return out
}

type owner struct {
	path, method string
}

// owners maps the identity of every path item and operation map to its location.
func (r *run) owners() map[uintptr]owner {
	out := make(map[uintptr]owner)
	for path, raw := range r.paths() {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out[identity(item)] = owner{path: path}
		for _, method := range httputil.Methods() {
			if op, ok := item[method].(map[string]any); ok {
				out[identity(op)] = owner{path: path, method: method}
			}
		}
	}
	return out
}

// identity returns the address of a map node, or 0 for anything else.
// Query dialects return the document's own maps, so addresses identify them.
func identity(node any) uintptr {
	m, ok := node.(map[string]any)
	if !ok || m == nil {
		return 0
	}
	return reflect.ValueOf(m).Pointer()
}
