// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apispec extraction as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apispec"
)

const serverInstructions = `apispec MCP server: extracts minimal, self-contained fragments from large OpenAPI 2.0/3.x documents.

Start with list_paths to discover endpoints and operationIds, then call extract with exactly one of path, operation_id or query. Use extract_tools to get function-calling tool definitions for the selected operations.

Configuration: All defaults are configurable via APISPEC_* environment variables set in your MCP client config.

Key settings:
- APISPEC_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- APISPEC_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- APISPEC_CACHE_ENABLED (default: true): disable document caching entirely
- APISPEC_DEFAULT_DIALECT (default: jmespath): query dialect when none is given (jmespath, jsonpath, expr)
- APISPEC_TOOL_MODE (default: false): make extract return tool definitions by default
- APISPEC_LIST_LIMIT (default: 100): default result limit for list_paths
- APISPEC_ALLOW_PRIVATE_IPS (default: false): allow url inputs on private networks

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "apispec", Version: apispec.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract a minimal, self-contained fragment from an OpenAPI document. Set exactly one of path (exact path template, e.g. /users/{id}), operation_id, or query (a JMESPath, JSONPath or expr expression over the whole document; pick with dialect). The fragment holds only the matched operations plus every schema, parameter and response they transitively reference, with refs rewritten to the fragment's own components. Descriptions, examples and x- extensions are stripped unless keep_docs, keep_examples or keep_extensions are set. Use methods to restrict path and operation_id matches to some HTTP verbs.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_tools",
		Description: "Like extract, but reshapes every matched operation into a function-calling tool definition: name (operationId or method+path), description, and a JSON Schema parameters object merging path, query, header and cookie parameters with the request body. Referenced schemas are inlined under $defs of each tool.",
	}, handleExtractTools)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_paths",
		Description: "List the paths of an OpenAPI document with their HTTP methods and operationIds. Use prefix to narrow results and offset/limit to paginate. Use the returned path or operation_id values as extract locators.",
	}, handleListPaths)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
