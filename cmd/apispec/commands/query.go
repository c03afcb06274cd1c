package commands

import (
	"errors"
	"flag"
	"strings"

	"github.com/erraggy/apispec/extract"
	"github.com/erraggy/apispec/query"
)

// QueryFlags contains flags for the query command
type QueryFlags struct {
	Source  SourceFlags
	Query   string
	Dialect string
	Extract ExtractFlags
}

// SetupQueryFlags creates and configures a FlagSet for the query command.
func SetupQueryFlags() (*flag.FlagSet, *QueryFlags) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	flags := &QueryFlags{}

	flags.Source.registerURL(fs)
	flags.Source.registerFile(fs)
	fs.StringVar(&flags.Query, "q", "", "query expression evaluated against the whole document")
	fs.StringVar(&flags.Query, "query", "", "query expression evaluated against the whole document")
	fs.StringVar(&flags.Dialect, "dialect", query.DefaultDialect, "query dialect: "+strings.Join(query.Names(), ", "))
	flags.Extract.register(fs)

	fs.Usage = func() {
		writeUsage(fs, "query -q <expression> [-u <url> | -f <file>] [flags]",
			"Extract every node matching a query expression, plus the definitions they reference.\nWith neither --url nor --file the document is read from stdin.",
			`apispec query -f openapi.yaml -q 'paths."/auth".post'`,
			`apispec query -f openapi.yaml --dialect jsonpath -q '$.paths.*[?@.deprecated == true]'`,
			`apispec query -f openapi.yaml --dialect expr -q 'filter(values(paths), #.post != nil)'`,
			`cat openapi.json | apispec query -q 'paths.*.get' --tool`,
		)
	}
	return fs, flags
}

// HandleQuery executes the query command
func HandleQuery(args []string) error {
	fs, flags := SetupQueryFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	expr := flags.Query
	if expr == "" && fs.NArg() == 1 {
		expr = fs.Arg(0)
	}
	if expr == "" || fs.NArg() > 1 || (flags.Query != "" && fs.NArg() > 0) {
		fs.Usage()
		return errors.New("query command requires exactly one --query expression")
	}
	if err := flags.Extract.Validate(); err != nil {
		return err
	}
	if _, err := query.Get(flags.Dialect); err != nil {
		return err
	}

	logger, err := NewLogger(Stderr, flags.Extract.LogLevel)
	if err != nil {
		return err
	}
	result, err := flags.Source.Load(logger)
	if err != nil {
		return err
	}
	return runExtract(result, extract.QueryLocator(expr, flags.Dialect), &flags.Extract, logger)
}
