package app

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "batch":
		return runBatch(args[1:])
	case "models":
		return runModels(args[1:])
	case "version":
		return runVersion(args[1:])
	case "stub-server":
		return runStubServer(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "mtran CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  mtran <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health       Check that the translation server reports status ok")
	fmt.Fprintln(os.Stderr, "  translate    Translate text given as arguments or on stdin")
	fmt.Fprintln(os.Stderr, "  batch        Translate each argument, or a JSON job file, in one request")
	fmt.Fprintln(os.Stderr, "  models       List models loaded on the server")
	fmt.Fprintln(os.Stderr, "  version      Print the server version")
	fmt.Fprintln(os.Stderr, "  stub-server  Start a local MTranServer-compatible stub")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"mtran <command> -h\" for command-specific flags.")
}
