package extract

import (
	"fmt"

	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/options"
	"github.com/erraggy/apispec/oaserrors"
	"github.com/erraggy/apispec/parser"
	"github.com/erraggy/apispec/query"
)

// Options controls an extraction.
type Options struct {
	// StripDocs removes description and summary keywords.
	StripDocs bool
	// StripExamples removes example, examples and x-example keywords.
	StripExamples bool
	// StripExtensions removes x- keywords.
	StripExtensions bool
	// ToolMode additionally reshapes each matched operation into a Tool.
	ToolMode bool
	// Methods restricts path and operationId matches to these verbs. Empty means all.
	Methods []string
	// KeepInfo copies the source info object instead of a title/version stub.
	KeepInfo bool
	// KeepServers copies servers (3.x) or host, basePath and schemes (2.0).
	KeepServers bool
	// KeepSecurity copies security requirements and the schemes they name.
	KeepSecurity bool
	// Logger receives diagnostics. Nil disables logging.
	Logger parser.Logger
	// Evaluator overrides the dialect named by a query locator.
	Evaluator query.Evaluator
}

// DefaultOptions strips docs, examples and extensions and keeps nothing optional.
func DefaultOptions() Options {
	return Options{
		StripDocs:       true,
		StripExamples:   true,
		StripExtensions: true,
	}
}

func (o Options) strip() stripPolicy {
	return stripPolicy{docs: o.StripDocs, examples: o.StripExamples, extensions: o.StripExtensions}
}

func (o Options) log() parser.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return parser.NopLogger{}
}

// methods validates and normalizes Methods. A nil result means every verb.
func (o Options) methods() (map[string]bool, error) {
	if len(o.Methods) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(o.Methods))
	for _, m := range o.Methods {
		norm := httputil.NormalizeMethod(m)
		if norm == "" {
			return nil, &oaserrors.ConfigError{Option: "methods", Value: m, Message: "not an HTTP method"}
		}
		set[norm] = true
	}
	return set, nil
}

// Option is a function that configures an extraction
type Option func(*extractConfig) error

// extractConfig holds configuration for an extraction
type extractConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	document map[string]any

	locator *Locator
	opts    Options
}

func applyOptions(opts ...Option) (*extractConfig, error) {
	cfg := &extractConfig{opts: DefaultOptions()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Extractor runs extractions with a fixed set of options. It holds no
// per-document state and is safe for concurrent use.
type Extractor struct {
	opts Options
}

// New returns an Extractor configured by opts. Input source and locator
// options are ignored; pass them to Extract.
func New(opts ...Option) (*Extractor, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("extract: invalid options: %w", err)
	}
	return &Extractor{opts: cfg.opts}, nil
}

// Options returns the extractor's options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract extracts loc from doc.
func (e *Extractor) Extract(doc map[string]any, loc Locator) (*Fragment, error) {
	return Extract(doc, loc, e.opts)
}

// ExtractWithOptions loads a document and extracts from it using functional options.
//
// Example:
//
//	frag, err := extract.ExtractWithOptions(
//	    extract.WithFilePath("openapi.yaml"),
//	    extract.WithLocator(extract.PathLocator("/auth")),
//	    extract.WithToolMode(true),
//	)
func ExtractWithOptions(opts ...Option) (*Fragment, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("extract: invalid options: %w", err)
	}
	if err := options.ValidateSingleInputSource("extract", []options.Source{
		{Name: "WithFilePath", Set: cfg.filePath != nil},
		{Name: "WithParsed", Set: cfg.parsed != nil},
		{Name: "WithDocument", Set: cfg.document != nil},
	}); err != nil {
		return nil, err
	}
	if cfg.locator == nil {
		return nil, &oaserrors.ConfigError{Option: "locator", Message: "extract: must specify a locator (use WithLocator)"}
	}

	switch {
	case cfg.filePath != nil:
		result, err := parser.ParseWithOptions(parser.WithFilePath(*cfg.filePath), parser.WithLogger(cfg.opts.log()))
		if err != nil {
			return nil, err
		}
		return ExtractResult(result, *cfg.locator, cfg.opts)
	case cfg.parsed != nil:
		return ExtractResult(cfg.parsed, *cfg.locator, cfg.opts)
	default:
		return Extract(cfg.document, *cfg.locator, cfg.opts)
	}
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *extractConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *extractConfig) error {
		if result == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result is nil"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithDocument specifies a decoded document as the input source
func WithDocument(doc map[string]any) Option {
	return func(cfg *extractConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "WithDocument", Message: "document is nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithLocator sets what to extract
func WithLocator(loc Locator) Option {
	return func(cfg *extractConfig) error {
		cfg.locator = &loc
		return nil
	}
}

// WithOptions replaces every extraction option at once
func WithOptions(o Options) Option {
	return func(cfg *extractConfig) error {
		cfg.opts = o
		return nil
	}
}

// WithStripDocs enables or disables removal of description and summary
// Default: true
func WithStripDocs(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.StripDocs = enabled
		return nil
	}
}

// WithStripExamples enables or disables removal of example values
// Default: true
func WithStripExamples(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.StripExamples = enabled
		return nil
	}
}

// WithStripExtensions enables or disables removal of x- keywords
// Default: true
func WithStripExtensions(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.StripExtensions = enabled
		return nil
	}
}

// WithToolMode enables or disables tool definitions
// Default: false
func WithToolMode(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.ToolMode = enabled
		return nil
	}
}

// WithMethods restricts path and operationId matches to the given verbs
func WithMethods(methods ...string) Option {
	return func(cfg *extractConfig) error {
		for _, m := range methods {
			if httputil.NormalizeMethod(m) == "" {
				return &oaserrors.ConfigError{Option: "WithMethods", Value: m, Message: "not an HTTP method"}
			}
		}
		cfg.opts.Methods = append(cfg.opts.Methods, methods...)
		return nil
	}
}

// WithKeepInfo keeps the full info object
// Default: false
func WithKeepInfo(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.KeepInfo = enabled
		return nil
	}
}

// WithKeepServers keeps server information
// Default: false
func WithKeepServers(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.KeepServers = enabled
		return nil
	}
}

// WithKeepSecurity keeps security requirements and their schemes
// Default: false
func WithKeepSecurity(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.KeepSecurity = enabled
		return nil
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.Logger = l
		return nil
	}
}

// WithEvaluator overrides the query dialect evaluator
func WithEvaluator(ev query.Evaluator) Option {
	return func(cfg *extractConfig) error {
		cfg.opts.Evaluator = ev
		return nil
	}
}
