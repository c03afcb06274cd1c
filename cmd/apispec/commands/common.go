// Package commands provides CLI command handlers for apispec.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/apispec/extract"
	"github.com/erraggy/apispec/internal/cliutil"
	"github.com/erraggy/apispec/parser"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log level names accepted by --loglevel.
const (
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// Streams used by the handlers. Tests swap them for files and buffers.
var (
	Stdin  = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid output format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// ParseLogLevel maps a --loglevel value to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case LevelError:
		return slog.LevelError, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("invalid log level '%s'. Valid levels: %s, %s, %s, %s", level, LevelError, LevelWarn, LevelInfo, LevelDebug)
}

// NewLogger builds a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (parser.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return parser.NewSlogAdapter(slog.New(handler)), nil
}

// methodList collects --method values. Repeated flags and comma lists both work.
type methodList []string

func (m *methodList) String() string {
	return strings.Join(*m, ",")
}

func (m *methodList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*m = append(*m, part)
		}
	}
	return nil
}

// ExtractFlags holds the output and cleaning flags shared by every extracting command.
type ExtractFlags struct {
	Output         string
	LogLevel       string
	Methods        methodList
	KeepDocs       bool
	KeepExamples   bool
	KeepExtensions bool
	KeepInfo       bool
	KeepServers    bool
	KeepSecurity   bool
	Tool           bool
}

func (f *ExtractFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Output, "o", FormatJSON, "output format: json or yaml")
	fs.StringVar(&f.Output, "output", FormatJSON, "output format: json or yaml")
	fs.StringVar(&f.LogLevel, "l", LevelError, "log level: error, warn, info or debug")
	fs.StringVar(&f.LogLevel, "loglevel", LevelError, "log level: error, warn, info or debug")
	fs.Var(&f.Methods, "method", "only extract these HTTP methods (repeatable or comma separated)")
	fs.BoolVar(&f.KeepDocs, "keep-docs", false, "keep description and summary keywords")
	fs.BoolVar(&f.KeepExamples, "keep-examples", false, "keep example and examples keywords")
	fs.BoolVar(&f.KeepExtensions, "keep-extensions", false, "keep x- vendor extensions")
	fs.BoolVar(&f.KeepInfo, "keep-info", false, "copy the full info object")
	fs.BoolVar(&f.KeepServers, "keep-servers", false, "copy servers (3.x) or host, basePath and schemes (2.0)")
	fs.BoolVar(&f.KeepSecurity, "keep-security", false, "copy security requirements and the schemes they name")
	fs.BoolVar(&f.Tool, "tool", false, "emit function-calling tool definitions instead of a document")
}

// Validate checks the flag values that are not free-form.
func (f *ExtractFlags) Validate() error {
	if err := ValidateOutputFormat(f.Output); err != nil {
		return err
	}
	_, err := ParseLogLevel(f.LogLevel)
	return err
}

// Options converts the flags to extraction options.
func (f *ExtractFlags) Options(logger parser.Logger) extract.Options {
	return extract.Options{
		StripDocs:       !f.KeepDocs,
		StripExamples:   !f.KeepExamples,
		StripExtensions: !f.KeepExtensions,
		ToolMode:        f.Tool,
		Methods:         f.Methods,
		KeepInfo:        f.KeepInfo,
		KeepServers:     f.KeepServers,
		KeepSecurity:    f.KeepSecurity,
		Logger:          logger,
	}
}

// LocatorFlags selects a path or an operationId.
type LocatorFlags struct {
	Path        string
	OperationID string
}

func (f *LocatorFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Path, "p", "", "exact path template to extract, e.g. /users/{id}")
	fs.StringVar(&f.Path, "path", "", "exact path template to extract, e.g. /users/{id}")
	fs.StringVar(&f.OperationID, "operation-id", "", "operationId of the operation to extract")
}

// Locator returns the single locator named by the flags. A leftover
// positional argument is accepted as the path.
func (f *LocatorFlags) Locator(args []string) (extract.Locator, error) {
	path := f.Path
	if path == "" && len(args) == 1 {
		path = args[0]
	} else if len(args) > 0 {
		return extract.Locator{}, fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	switch {
	case path != "" && f.OperationID != "":
		return extract.Locator{}, errors.New("--path and --operation-id are mutually exclusive")
	case f.OperationID != "":
		return extract.OperationIDLocator(f.OperationID), nil
	case path != "":
		return extract.PathLocator(path), nil
	}
	return extract.Locator{}, errors.New("one of --path or --operation-id is required")
}

// handleFlagError maps flag.ErrHelp to a clean exit.
func handleFlagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// runExtract extracts loc from result and writes the fragment to Stdout.
func runExtract(result *parser.ParseResult, loc extract.Locator, flags *ExtractFlags, logger parser.Logger) error {
	for _, w := range result.Warnings {
		logger.Warn("document warning", "source", result.SourcePath, "warning", w)
	}
	frag, err := extract.ExtractResult(result, loc, flags.Options(logger))
	if err != nil {
		return err
	}
	return WriteFragment(Stdout, frag, flags.Output)
}

// WriteFragment serializes frag in the given format.
func WriteFragment(w io.Writer, frag *extract.Fragment, format string) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = frag.MarshalJSONIndent()
	case FormatYAML:
		data, err = frag.MarshalYAML()
	default:
		return ValidateOutputFormat(format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// isURL reports whether s looks like an http(s) URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// writeUsage writes the common usage layout for a command.
func writeUsage(fs *flag.FlagSet, usage, summary string, examples ...string) {
	output := fs.Output()
	cliutil.Writef(output, "Usage: apispec %s\n\n", usage)
	cliutil.Writef(output, "%s\n\n", summary)
	cliutil.Writef(output, "Flags:\n")
	fs.PrintDefaults()
	if len(examples) > 0 {
		cliutil.Writef(output, "\nExamples:\n")
		for _, e := range examples {
			cliutil.Writef(output, "  %s\n", e)
		}
	}
}
