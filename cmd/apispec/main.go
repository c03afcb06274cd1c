package main

import (
	"fmt"
	"os"

	"github.com/erraggy/apispec"
	"github.com/erraggy/apispec/cmd/apispec/commands"
	"github.com/erraggy/apispec/internal/cliutil"
)

// handlers maps each command to its entry point.
var handlers = map[string]func([]string) error{
	"fetch": commands.HandleFetch,
	"local": commands.HandleLocal,
	"stdin": commands.HandleStdin,
	"query": commands.HandleQuery,
	"paths": commands.HandlePaths,
	"mcp":   commands.HandleMCP,
}

// commandNames lists every command, including the built-ins, for suggestions.
var commandNames = []string{"fetch", "local", "stdin", "query", "paths", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apispec %s\n", apispec.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
	if err := handler(os.Args[2:]); err != nil {
		cliutil.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Printf(`apispec - extract self-contained fragments from OpenAPI documents

Usage:
  apispec <command> [flags]

Commands:
  fetch     Extract from a document fetched over HTTP(S)
  local     Extract from a document on disk
  stdin     Extract from a document piped to standard input
  query     Extract every node matching a JMESPath, JSONPath or expr query
  paths     List the operations of a document
  mcp       Serve extraction tools over MCP (stdio)
  version   Show version information
  help      Show this help message

Examples:
  apispec local -f openapi.yaml -p /auth
  apispec fetch -u https://example.com/openapi.json --operation-id login --tool
  cat openapi.yaml | apispec stdin -p /users/{id} -o yaml
  apispec query -f openapi.yaml -q 'paths."/auth".post'

Run 'apispec <command> --help' for more information on a command.
`)
}
