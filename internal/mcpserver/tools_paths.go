package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/maputil"
)

type listPathsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to list"`
	Prefix string    `json:"prefix,omitempty" jsonschema:"Only list paths starting with this prefix"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
}

type pathSummary struct {
	Path         string   `json:"path"`
	Methods      []string `json:"methods"`
	OperationIDs []string `json:"operation_ids,omitempty"`
}

type listPathsOutput struct {
	Version    string        `json:"version"`
	Total      int           `json:"total"`
	Operations int           `json:"operations"`
	Returned   int           `json:"returned"`
	Paths      []pathSummary `json:"paths,omitempty"`
}

func handleListPaths(_ context.Context, _ *mcp.CallToolRequest, input listPathsInput) (*mcp.CallToolResult, listPathsOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listPathsOutput{}, nil
	}
	paths, ok := result.Data["paths"].(map[string]any)
	if !ok {
		if _, present := result.Data["paths"]; present {
			return errResult(fmt.Errorf("document paths must be an object")), listPathsOutput{}, nil
		}
		return nil, listPathsOutput{Version: result.Version}, nil
	}

	var all []pathSummary
	operations := 0
	for _, p := range maputil.SortedKeys(paths) {
		if !strings.HasPrefix(p, input.Prefix) {
			continue
		}
		item, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		summary := pathSummary{Path: p, Methods: []string{}}
		for _, method := range httputil.Methods() {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			summary.Methods = append(summary.Methods, method)
			if id, ok := op["operationId"].(string); ok && id != "" {
				summary.OperationIDs = append(summary.OperationIDs, id)
			}
		}
		operations += len(summary.Methods)
		all = append(all, summary)
	}

	page := paginate(all, input.Offset, input.Limit)
	return nil, listPathsOutput{
		Version:    result.Version,
		Total:      len(all),
		Operations: operations,
		Returned:   len(page),
		Paths:      page,
	}, nil
}
