// Package parser loads OpenAPI 2.0 and 3.x documents into their generic
// JSON tree form.
//
// Import path: github.com/erraggy/apispec/parser
//
// The parser does no semantic modeling: a document becomes a
// map[string]any exactly as encoding/json would decode it, which is the
// input the extract package works on. JSON input is decoded with
// encoding/json; YAML input with go.yaml.in/yaml/v4, after which mapping
// keys are normalized to strings (unquoted response codes such as 200
// decode as integers in YAML).
//
// # Sources
//
// Documents can be read from a local file, fetched from an http(s) URL,
// read from an io.Reader (e.g. stdin) or given as bytes:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("https://example.com/openapi.json"),
//	    parser.WithInsecureSkipVerify(true),
//	)
//	result, err := parser.ParseWithOptions(parser.WithReader(os.Stdin))
//
// For URLs the format is taken from the Content-Type header, then the URL
// path extension, then the content itself. For files the extension is
// used, with content sniffing as the fallback.
//
// # Errors
//
// Undecodable input yields an *oaserrors.ParseError; a document whose root
// is not an object yields an *oaserrors.DocumentError. A missing or
// unrecognized version field is only a warning (see ParseResult.Warnings):
// structured queries are meaningful on any JSON document.
//
// # Logging
//
// The [Logger] interface is the diagnostics sink shared with the extract
// package. [NopLogger] is used by default; [NewSlogAdapter] wraps log/slog.
package parser
