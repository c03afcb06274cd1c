package extract

import (
	"errors"

	"github.com/erraggy/apispec/internal/pathutil"
	"github.com/erraggy/apispec/oaserrors"
)

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// closure collects the definitions transitively referenced from a set of
// root nodes. Each definition is recorded once, in discovery order; a ref
// to a definition that is in progress or done ends that branch.
type closure struct {
	idx   *RefIndex
	strip stripPolicy
	state map[string]visitState
	defs  []Definition
}

func newClosure(idx *RefIndex, strip stripPolicy) *closure {
	return &closure{
		idx:   idx,
		strip: strip,
		state: make(map[string]visitState),
	}
}

// addRoot walks node (found at loc) and follows every reference in it.
func (c *closure) addRoot(node any, kind nodeKind, loc *pathutil.PathBuilder) error {
	w := &cleaner{strip: c.strip, onRef: c.follow, schemaRef: c.schemaRef}
	_, err := w.clean(node, kind, loc)
	return err
}

// follow records the target of ref and walks it, unless it has been seen.
func (c *closure) follow(ref string, loc *pathutil.PathBuilder) (string, error) {
	def, err := c.idx.Resolve(ref)
	if err != nil {
		return "", withLocation(err, loc)
	}
	switch c.state[def.Ref] {
	case visiting, visited:
		return ref, nil
	}

	c.state[def.Ref] = visiting
	c.defs = append(c.defs, def)

	defLoc := pathutil.Get()
	defer pathutil.Put(defLoc)
	tokens, _ := pathutil.SplitPointer(def.Ref)
	for _, tok := range tokens {
		defLoc.Push(tok)
	}
	if err := c.addRoot(def.Value, definitionKind(def.Category), defLoc); err != nil {
		return "", err
	}

	c.state[def.Ref] = visited
	return ref, nil
}

func (c *closure) schemaRef(name string) (string, bool) {
	for _, ref := range []string{pathutil.SchemaRef(name), pathutil.DefinitionRef(name)} {
		if _, ok := c.idx.Lookup(ref); ok {
			return ref, true
		}
	}
	return "", false
}

// definitions returns the closure in discovery order.
func (c *closure) definitions() []Definition {
	return c.defs
}

// definitionKind is the node kind of a definition's value.
func definitionKind(category string) nodeKind {
	if category == "callbacks" {
		return kindExtensibleNames
	}
	return kindObject
}

// withLocation records where a failing reference was found.
func withLocation(err error, loc *pathutil.PathBuilder) error {
	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.Location == "" {
		cp := *refErr
		cp.Location = loc.String()
		return &cp
	}
	return err
}
