// Package extract pulls minimal, self-contained fragments out of OpenAPI
// 2.0 and 3.x documents.
//
// An extraction takes a decoded document (see the parser package), a
// Locator and Options. The locator selects nodes: an exact path template,
// an operationId, or a query expression in one of the query package's
// dialects. Every $ref reachable from the selected nodes is resolved,
// cycles included, and the referenced definitions are copied into the
// fragment's own component sections so the fragment stands alone.
//
// # Cleaning
//
// By default description, summary, example, examples, x-example and every
// x- extension keyword are removed. Only keywords are removed: a schema
// property named "description" or a response code is never touched, and
// structural keywords (type, required, enum, format, $ref) always survive.
//
// # Naming
//
// Definitions keep their source names. When two different definitions
// land on the same name in the same section, the later one is renamed
// Name2, Name3 and so on, and every reference to it is rewritten. Identical
// definitions share one entry. Fragment.Renames records every reference
// that changed.
//
// # Tool mode
//
// With Options.ToolMode each matched operation is also turned into a Tool:
// a name, a description and one JSON Schema object that merges the
// operation's parameters and request body, with referenced schemas under
// "$defs".
//
// # Example
//
//	frag, err := extract.Extract(result.Data, extract.PathLocator("/auth"), extract.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	out, err := frag.MarshalJSONIndent()
//
// The engine performs no I/O, keeps no global state and never modifies the
// input document, so concurrent extractions need no coordination.
package extract
