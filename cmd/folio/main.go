// folio serves a portfolio owner's chatbot over HTTP and MCP.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/matiasleandrokruk/folio/internal/infra/logger"
	"github.com/matiasleandrokruk/folio/internal/version"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))
	os.Exit(run(os.Args[1:], os.Stdout))
}

// command is a subcommand entry point; args excludes the command name.
type command func(args []string, out io.Writer) int

var commands = map[string]command{
	"serve":          runServe,
	"migrate":        runMigrate,
	"import-profile": runImportProfile,
	"hash-password":  runHashPassword,
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(out, "unknown command %q\n\n", rest[0]) //nolint:errcheck
		printHelp(out)
		return 2
	}
	return cmd(rest[1:], out)
}

func printHelp(out io.Writer) {
	helpText := `folio - portfolio chatbot

Usage:
  folio [options] <command> [arguments]

Options:
  --version    Show version information
  --help       Show this help message

Commands:
  serve                         Start the HTTP server
  migrate                       Apply database migrations
  import-profile <path>         Store a profile document in the database
  hash-password <password>      Print a bcrypt hash for ADMIN_PASSWORD_HASH

Examples:
  folio --version
  HTTP_PORT=3000 folio serve
  folio import-profile --summary data/summary.txt data/portfolio.yaml
  folio hash-password 's3cret'`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
