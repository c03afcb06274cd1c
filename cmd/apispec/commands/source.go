package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apispec/internal/cliutil"
	"github.com/erraggy/apispec/parser"
)

// SourceFlags names where the source document comes from. With neither URL
// nor File set, the document is read from Stdin.
type SourceFlags struct {
	URL      string
	File     string
	Insecure bool
}

func (s *SourceFlags) registerURL(fs *flag.FlagSet) {
	fs.StringVar(&s.URL, "u", "", "URL of the OpenAPI document")
	fs.StringVar(&s.URL, "url", "", "URL of the OpenAPI document")
	fs.BoolVar(&s.Insecure, "insecure", false, "disable TLS certificate verification")
}

func (s *SourceFlags) registerFile(fs *flag.FlagSet) {
	fs.StringVar(&s.File, "f", "", "path of the OpenAPI document")
	fs.StringVar(&s.File, "file", "", "path of the OpenAPI document")
}

// Load parses the selected source.
func (s *SourceFlags) Load(logger parser.Logger) (*parser.ParseResult, error) {
	switch {
	case s.URL != "" && s.File != "":
		return nil, errors.New("--url and --file are mutually exclusive")
	case s.URL != "":
		return loadURL(s.URL, s.Insecure, logger)
	case s.File != "":
		return loadFile(s.File, logger)
	}
	return loadStdin(logger)
}

func loadURL(url string, insecure bool, logger parser.Logger) (*parser.ParseResult, error) {
	if !isURL(url) {
		return nil, fmt.Errorf("invalid URL %q: must start with http:// or https://", url)
	}
	result, err := parser.ParseWithOptions(
		parser.WithFilePath(url),
		parser.WithInsecureSkipVerify(insecure),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return result, nil
}

func loadFile(path string, logger parser.Logger) (*parser.ParseResult, error) {
	if isURL(path) {
		return nil, fmt.Errorf("%s is a URL; use the fetch command or --url", path)
	}
	result, err := parser.ParseWithOptions(
		parser.WithFilePath(path),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return result, nil
}

func loadStdin(logger parser.Logger) (*parser.ParseResult, error) {
	if cliutil.IsTerminal(Stdin) {
		return nil, errors.New("stdin is a terminal; pipe a document in or use --file/--url")
	}
	result, err := parser.ParseWithOptions(
		parser.WithReader(Stdin),
		parser.WithSourceName("<stdin>"),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing stdin: %w", err)
	}
	return result, nil
}
