package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/apispec/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It has no flags;
// the server is configured through APISPEC_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		writeUsage(fs, "mcp",
			"Serve the extract, extract_tools and list_paths tools over MCP on stdio.\nConfigure with APISPEC_* environment variables (see the server instructions).",
			"apispec mcp",
			"APISPEC_DEFAULT_DIALECT=jsonpath apispec mcp",
		)
	}
	return fs
}

// HandleMCP runs the MCP server until stdin closes or the process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		return handleFlagError(err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
