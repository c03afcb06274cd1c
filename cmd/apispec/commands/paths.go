package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apispec/internal/cliutil"
	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/maputil"
	"github.com/erraggy/apispec/parser"
)

// FormatText is the tabular output of the paths command.
const FormatText = "text"

// PathsFlags contains flags for the paths command
type PathsFlags struct {
	Source   SourceFlags
	Prefix   string
	Output   string
	LogLevel string
}

// PathEntry is one operation listed by the paths command.
type PathEntry struct {
	Path        string `json:"path" yaml:"path"`
	Method      string `json:"method" yaml:"method"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
}

// SetupPathsFlags creates and configures a FlagSet for the paths command.
func SetupPathsFlags() (*flag.FlagSet, *PathsFlags) {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	flags := &PathsFlags{}

	flags.Source.registerURL(fs)
	flags.Source.registerFile(fs)
	fs.StringVar(&flags.Prefix, "prefix", "", "only list paths starting with this prefix")
	fs.StringVar(&flags.Output, "o", FormatText, "output format: text, json or yaml")
	fs.StringVar(&flags.Output, "output", FormatText, "output format: text, json or yaml")
	fs.StringVar(&flags.LogLevel, "l", LevelError, "log level: error, warn, info or debug")
	fs.StringVar(&flags.LogLevel, "loglevel", LevelError, "log level: error, warn, info or debug")

	fs.Usage = func() {
		writeUsage(fs, "paths [-u <url> | -f <file>] [flags]",
			"List every operation of a document with its path, method and operationId.\nWith neither --url nor --file the document is read from stdin.",
			"apispec paths -f openapi.yaml",
			"apispec paths -u https://example.com/openapi.json --prefix /users -o json",
		)
	}
	return fs, flags
}

// HandlePaths executes the paths command
func HandlePaths(args []string) error {
	fs, flags := SetupPathsFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("paths command takes no arguments, got %q", strings.Join(fs.Args(), " "))
	}
	if flags.Output != FormatText {
		if err := ValidateOutputFormat(flags.Output); err != nil {
			return err
		}
	}

	logger, err := NewLogger(Stderr, flags.LogLevel)
	if err != nil {
		return err
	}
	result, err := flags.Source.Load(logger)
	if err != nil {
		return err
	}
	entries, err := ListPaths(result, flags.Prefix)
	if err != nil {
		return err
	}

	switch flags.Output {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to json: %w", err)
		}
		cliutil.Writef(Stdout, "%s\n", data)
	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling to yaml: %w", err)
		}
		cliutil.Writef(Stdout, "%s", data)
	default:
		tw := tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			cliutil.Writef(tw, "%s\t%s\t%s\n", strings.ToUpper(e.Method), e.Path, e.OperationID)
		}
		return tw.Flush()
	}
	return nil
}

// ListPaths returns every operation under paths whose template starts with
// prefix, with paths sorted and methods in canonical order.
func ListPaths(result *parser.ParseResult, prefix string) ([]PathEntry, error) {
	raw, present := result.Data["paths"]
	if !present {
		return []PathEntry{}, nil
	}
	paths, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("document paths must be an object")
	}
	entries := []PathEntry{}
	for _, p := range maputil.SortedKeys(paths) {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		item, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httputil.Methods() {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			id, _ := op["operationId"].(string)
			entries = append(entries, PathEntry{Path: p, Method: method, OperationID: id})
		}
	}
	return entries, nil
}
