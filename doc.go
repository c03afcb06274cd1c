// Package apispec extracts minimal, self-contained fragments from large
// OpenAPI 2.0 and 3.x documents.
//
// Given a document and a locator (an exact endpoint path, an operationId or
// a structured query expression), apispec returns only the matching
// operation(s) plus every schema, parameter and response they transitively
// reference. Documentation, examples and vendor extensions are stripped,
// references are re-scoped to the fragment's own component section, and
// the result can optionally be reshaped into function-calling tool
// definitions.
//
// # Packages
//
//   - parser: load documents from files, URLs, readers or bytes (JSON or YAML)
//   - extract: the extraction engine (locators, reference index, closure, cleaning, tools)
//   - query: pluggable query dialects (JMESPath, JSONPath, expr)
//   - oaserrors: structured error kinds for errors.Is / errors.As
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	frag, err := extract.Extract(result.Data, extract.PathLocator("/auth"), extract.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := frag.MarshalJSONIndent()
//	fmt.Println(string(out))
//
// The apispec command wraps the same engine with fetch, local, stdin, query
// and paths subcommands, and an MCP server (apispec mcp) exposes it to
// LLM agents.
//
// This root package only carries build metadata.
package apispec
