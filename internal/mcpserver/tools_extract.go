package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apispec/extract"
	"github.com/erraggy/apispec/parser"
)

type extractInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI document to extract from"`
	Path           string    `json:"path,omitempty"            jsonschema:"Exact path template to extract, e.g. /users/{id}. A missing leading slash is added"`
	OperationID    string    `json:"operation_id,omitempty"    jsonschema:"operationId of the single operation to extract"`
	Query          string    `json:"query,omitempty"           jsonschema:"Query expression evaluated against the whole document"`
	Dialect        string    `json:"dialect,omitempty"         jsonschema:"Query dialect: jmespath (default), jsonpath or expr"`
	Methods        []string  `json:"methods,omitempty"         jsonschema:"Restrict path and operation_id matches to these HTTP methods"`
	KeepDocs       bool      `json:"keep_docs,omitempty"       jsonschema:"Keep description and summary keywords"`
	KeepExamples   bool      `json:"keep_examples,omitempty"   jsonschema:"Keep example and examples keywords"`
	KeepExtensions bool      `json:"keep_extensions,omitempty" jsonschema:"Keep x- vendor extensions"`
	KeepInfo       bool      `json:"keep_info,omitempty"       jsonschema:"Copy the full info object instead of title and version"`
	KeepServers    bool      `json:"keep_servers,omitempty"    jsonschema:"Copy servers (3.x) or host, basePath and schemes (2.0)"`
	KeepSecurity   bool      `json:"keep_security,omitempty"   jsonschema:"Copy security requirements and the schemes they reference"`
	Format         string    `json:"format,omitempty"          jsonschema:"Output format for document: json (default) or yaml"`
}

type extractOutput struct {
	Version     string            `json:"version"`
	Matches     int               `json:"matches"`
	Definitions []string          `json:"definitions,omitempty"`
	Renames     map[string]string `json:"renames,omitempty"`
	ToolCount   int               `json:"tool_count,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
	Document    string            `json:"document"`
}

type extractToolsOutput struct {
	Version  string          `json:"version"`
	Matches  int             `json:"matches"`
	Tools    []*extract.Tool `json:"tools"`
	Warnings []string        `json:"warnings,omitempty"`
}

// locator returns the single locator named by the input.
func (in extractInput) locator() (extract.Locator, error) {
	var set []string
	var loc extract.Locator
	if in.Path != "" {
		set = append(set, "path")
		loc = extract.PathLocator(in.Path)
	}
	if in.OperationID != "" {
		set = append(set, "operation_id")
		loc = extract.OperationIDLocator(in.OperationID)
	}
	if in.Query != "" {
		set = append(set, "query")
		dialect := in.Dialect
		if dialect == "" {
			dialect = cfg.DefaultDialect
		}
		loc = extract.QueryLocator(in.Query, dialect)
	}
	if len(set) != 1 {
		return extract.Locator{}, fmt.Errorf("exactly one of path, operation_id, or query must be provided (got %d)", len(set))
	}
	return loc, nil
}

func (in extractInput) options(toolMode bool) extract.Options {
	return extract.Options{
		StripDocs:       !in.KeepDocs,
		StripExamples:   !in.KeepExamples,
		StripExtensions: !in.KeepExtensions,
		ToolMode:        toolMode,
		Methods:         in.Methods,
		KeepInfo:        in.KeepInfo,
		KeepServers:     in.KeepServers,
		KeepSecurity:    in.KeepSecurity,
	}
}

// run resolves the document and extracts the requested fragment.
func (in extractInput) run(toolMode bool) (*parser.ParseResult, *extract.Fragment, error) {
	loc, err := in.locator()
	if err != nil {
		return nil, nil, err
	}
	result, err := in.Spec.resolve()
	if err != nil {
		return nil, nil, err
	}
	frag, err := extract.ExtractResult(result, loc, in.options(toolMode))
	if err != nil {
		return nil, nil, err
	}
	return result, frag, nil
}

func handleExtract(_ context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	format := strings.ToLower(input.Format)
	if format != "" && format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), extractOutput{}, nil
	}

	result, frag, err := input.run(cfg.ToolMode)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	var data []byte
	if format == "yaml" {
		data, err = frag.MarshalYAML()
	} else {
		data, err = frag.MarshalJSONIndent()
	}
	if err != nil {
		return errResult(fmt.Errorf("failed to render fragment: %w", err)), extractOutput{}, nil
	}

	output := extractOutput{
		Version:   result.Version,
		Matches:   frag.Matches,
		Renames:   frag.Renames,
		ToolCount: len(frag.Tools),
		Warnings:  result.Warnings,
		Document:  string(data),
	}
	for _, def := range frag.Closure {
		output.Definitions = append(output.Definitions, def.Ref)
	}
	return nil, output, nil
}

func handleExtractTools(_ context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractToolsOutput, error) {
	result, frag, err := input.run(true)
	if err != nil {
		return errResult(err), extractToolsOutput{}, nil
	}
	tools := frag.Tools
	if tools == nil {
		tools = []*extract.Tool{}
	}
	return nil, extractToolsOutput{
		Version:  result.Version,
		Matches:  frag.Matches,
		Tools:    tools,
		Warnings: result.Warnings,
	}, nil
}
