package extract

import (
	"github.com/erraggy/apispec/internal/equalutil"
	"github.com/erraggy/apispec/internal/naming"
	"github.com/erraggy/apispec/internal/pathutil"
)

// placed is a closure definition with its name in the output document.
type placed struct {
	def      Definition
	category string
	name     string
}

// namer assigns output names to closure definitions. A definition keeps
// its source name unless another definition with different content already
// holds it in the same output category; then it becomes Name2, Name3, ...
// Definitions with identical content share one entry.
type namer struct {
	target  func(category, name string) string
	outCat  func(category string) string
	taken   map[string]map[string]any
	local   map[string]string
	renames map[string]string
	emitted []placed
	// suffixed lists the emitted definitions that could not keep their name.
	suffixed []placed
}

func newNamer(target func(category, name string) string, outCat func(category string) string) *namer {
	return &namer{
		target:  target,
		outCat:  outCat,
		taken:   make(map[string]map[string]any),
		local:   make(map[string]string),
		renames: make(map[string]string),
	}
}

func (n *namer) assign(defs []Definition) {
	for _, def := range defs {
		if _, done := n.local[def.Ref]; done {
			continue
		}
		cat := n.outCat(def.Category)
		names := n.taken[cat]
		if names == nil {
			names = make(map[string]any)
			n.taken[cat] = names
		}

		for i := 1; ; i++ {
			name := naming.Disambiguate(def.Name, i)
			existing, ok := names[name]
			if ok && !equalutil.Nodes(existing, def.Value) {
				continue
			}
			ref := n.target(cat, name)
			n.local[def.Ref] = ref
			if ref != def.Ref {
				n.renames[def.Ref] = ref
			}
			if !ok {
				names[name] = def.Value
				p := placed{def: def, category: cat, name: name}
				n.emitted = append(n.emitted, p)
				if i > 1 {
					n.suffixed = append(n.suffixed, p)
				}
			}
			break
		}
	}
}

// rewrite maps a source ref to its output ref. Unknown refs are returned as is.
func (n *namer) rewrite(ref string) string {
	if local, ok := n.local[pathutil.CanonicalRef(ref)]; ok {
		return local
	}
	return ref
}
