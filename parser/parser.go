package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apispec"
	"github.com/erraggy/apispec/oaserrors"
)

// Parser loads OpenAPI documents into their generic JSON tree form.
type Parser struct {
	// InsecureSkipVerify disables TLS certificate verification when fetching URLs.
	// Use with caution - only enable for testing or internal servers with self-signed certs
	InsecureSkipVerify bool
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "apispec/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with Timeout is created.
	// When set, InsecureSkipVerify and Timeout are ignored.
	HTTPClient *http.Client
	// Timeout bounds a URL fetch. Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxSize is the maximum accepted document size in bytes. Zero means DefaultMaxSize.
	MaxSize int64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

const (
	// DefaultTimeout is the URL fetch timeout used when none is configured.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxSize is the document size limit used when none is configured.
	DefaultMaxSize int64 = 64 << 20
)

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: apispec.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxSize() int64 {
	if p.MaxSize > 0 {
		return p.MaxSize
	}
	return DefaultMaxSize
}

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded document and metadata about its source.
//
// Data is the document as decoded JSON: objects are map[string]any, arrays are
// []any, scalars are string, float64/int, bool or nil. Callers should treat it
// as read-only; the extractor never mutates it.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from.
	// For bytes and readers it is "ParseBytes.<fmt>" / "ParseReader.<fmt>"
	// unless WithSourceName was given.
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the raw "swagger" or "openapi" value, if present
	Version string
	// OASVersion is the detected specification family
	OASVersion OASVersion
	// Data contains the decoded document tree
	Data map[string]any
	// Warnings contains non-fatal issues (e.g. missing version field)
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// IsOAS2 returns true if the document is an OpenAPI 2.0 (Swagger) specification.
func (pr *ParseResult) IsOAS2() bool {
	return pr.OASVersion == OASVersion20
}

// IsOAS3 returns true if the document is an OpenAPI 3.x specification.
func (pr *ParseResult) IsOAS3() bool {
	return pr.OASVersion.IsOAS3()
}

// Parse loads an OpenAPI document from a file path or URL.
// For URLs (http:// or https://), the content is fetched over HTTP.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
		p.log().Debug("fetched document", "url", specPath, "contentType", contentType, "size", FormatBytes(int64(len(data))))
	} else {
		data, err = p.readFile(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(specPath)
		p.log().Debug("read document", "file", specPath, "size", FormatBytes(int64(len(data))))
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseBytes(data, specPath, format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = specPath
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader loads an OpenAPI document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	limit := p.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: input exceeds maximum size of %s", FormatBytes(limit))
	}
	res, err := p.parseBytes(data, "ParseReader", SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes loads an OpenAPI document from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes", SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxSize() {
		return nil, fmt.Errorf("parser: file %s exceeds maximum size of %s", path, FormatBytes(p.maxSize()))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

// parseBytes decodes data using hint when known, falling back to content sniffing.
func (p *Parser) parseBytes(data []byte, source string, hint SourceFormat) (*ParseResult, error) {
	format := hint
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	if format == SourceFormatUnknown {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	raw, err := decode(data, format)
	if err != nil && hint != SourceFormatUnknown {
		// The extension or Content-Type may lie; sniff the content before giving up.
		if sniffed := detectFormatFromContent(data); sniffed != format && sniffed != SourceFormatUnknown {
			p.log().Debug("retrying decode with sniffed format", "declared", format, "sniffed", sniffed)
			if alt, altErr := decode(data, sniffed); altErr == nil {
				raw, err, format = alt, nil, sniffed
			}
		}
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: source, Format: string(format), Message: "failed to decode document", Cause: err}
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, &oaserrors.DocumentError{Path: "$", Got: fmt.Sprintf("%T", raw), Message: "document root must be an object"}
	}

	result := &ParseResult{
		SourceFormat: format,
		Data:         doc,
		Warnings:     make([]string, 0),
		SourceSize:   int64(len(data)),
	}

	result.Version, result.OASVersion = DetectVersion(doc)
	if result.OASVersion == Unknown {
		msg := "unable to detect OpenAPI version: document should contain 'swagger: \"2.0\"' or 'openapi: \"3.x.x\"' at the root level"
		if result.Version != "" {
			msg = fmt.Sprintf("unsupported OpenAPI version %q (only 2.0 and 3.x are recognized)", result.Version)
		}
		result.Warnings = append(result.Warnings, msg)
		p.log().Warn("version detection", "source", source, "warning", msg)
	}

	result.Stats = GetDocumentStats(doc)
	p.log().Debug("parsed document",
		"source", source,
		"format", format,
		"version", result.Version,
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"definitions", result.Stats.DefinitionCount,
	)
	return result, nil
}

// decode unmarshals data into a generic tree.
// JSON uses encoding/json directly, which is considerably cheaper than
// building a YAML AST for the same input.
func decode(data []byte, format SourceFormat) (any, error) {
	var raw any
	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalize(raw), nil
}
