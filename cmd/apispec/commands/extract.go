package commands

import (
	"errors"
	"flag"
	"fmt"
)

// ExtractCommandFlags contains flags for the fetch, local and stdin commands.
type ExtractCommandFlags struct {
	Source  SourceFlags
	Locator LocatorFlags
	Extract ExtractFlags
}

// SetupFetchFlags creates the FlagSet for the fetch command.
func SetupFetchFlags() (*flag.FlagSet, *ExtractCommandFlags) {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	flags := &ExtractCommandFlags{}
	flags.Source.registerURL(fs)
	flags.Locator.register(fs)
	flags.Extract.register(fs)
	fs.Usage = func() {
		writeUsage(fs, "fetch -u <url> (-p <path> | --operation-id <id>) [flags]",
			"Fetch an OpenAPI document over HTTP(S) and extract a self-contained fragment.",
			"apispec fetch -u https://example.com/openapi.yaml -p /auth",
			"apispec fetch -u https://example.com/openapi.json --operation-id login --tool",
			"apispec fetch -u https://internal/api.yaml --insecure -p /users/{id} -o yaml",
		)
	}
	return fs, flags
}

// SetupLocalFlags creates the FlagSet for the local command.
func SetupLocalFlags() (*flag.FlagSet, *ExtractCommandFlags) {
	fs := flag.NewFlagSet("local", flag.ContinueOnError)
	flags := &ExtractCommandFlags{}
	flags.Source.registerFile(fs)
	flags.Locator.register(fs)
	flags.Extract.register(fs)
	fs.Usage = func() {
		writeUsage(fs, "local -f <file> (-p <path> | --operation-id <id>) [flags]",
			"Read an OpenAPI document from disk and extract a self-contained fragment.",
			"apispec local -f openapi.yaml -p /auth",
			"apispec local -f openapi.yaml -p /pets --method get --keep-docs",
			"apispec local -f swagger.json --operation-id listPets -o yaml",
		)
	}
	return fs, flags
}

// SetupStdinFlags creates the FlagSet for the stdin command.
func SetupStdinFlags() (*flag.FlagSet, *ExtractCommandFlags) {
	fs := flag.NewFlagSet("stdin", flag.ContinueOnError)
	flags := &ExtractCommandFlags{}
	flags.Locator.register(fs)
	flags.Extract.register(fs)
	fs.Usage = func() {
		writeUsage(fs, "stdin (-p <path> | --operation-id <id>) [flags] < document",
			"Read an OpenAPI document from standard input and extract a self-contained fragment.",
			"cat openapi.yaml | apispec stdin -p /auth",
			"curl -s https://example.com/openapi.json | apispec stdin --operation-id login --tool",
		)
	}
	return fs, flags
}

// HandleFetch executes the fetch command.
func HandleFetch(args []string) error {
	fs, flags := SetupFetchFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	if flags.Source.URL == "" {
		fs.Usage()
		return errors.New("fetch command requires --url")
	}
	return flags.run(fs)
}

// HandleLocal executes the local command.
func HandleLocal(args []string) error {
	fs, flags := SetupLocalFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	if flags.Source.File == "" {
		fs.Usage()
		return errors.New("local command requires --file")
	}
	return flags.run(fs)
}

// HandleStdin executes the stdin command.
func HandleStdin(args []string) error {
	fs, flags := SetupStdinFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	return flags.run(fs)
}

func (f *ExtractCommandFlags) run(fs *flag.FlagSet) error {
	if err := f.Extract.Validate(); err != nil {
		return err
	}
	loc, err := f.Locator.Locator(fs.Args())
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	logger, err := NewLogger(Stderr, f.Extract.LogLevel)
	if err != nil {
		return err
	}
	result, err := f.Source.Load(logger)
	if err != nil {
		return err
	}
	return runExtract(result, loc, &f.Extract, logger)
}
