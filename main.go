package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/goodbooks/goodbooks/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments, run the ETL pipeline with default options
	command := "etl"
	args := []string{}
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "etl":
		cmd := cli.NewEtlCommand()
		if err := cmd.ParseFlags(args); err != nil {
			exitOnParseError(err)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "recommend":
		cmd := cli.NewRecommendCommand()
		if err := cmd.ParseFlags(args); err != nil {
			exitOnParseError(err)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version", "-version", "--version":
		fmt.Printf("goodbooks %s (%s)\n", Version, Commit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// exitOnParseError maps flag parse failures to exit codes. The flag package
// has already printed the error and usage text.
func exitOnParseError(err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  etl        Run the extract-clean-load pipeline (default)\n")
	fmt.Fprintf(os.Stderr, "  recommend  Print ranked book candidates for a user\n")
	fmt.Fprintf(os.Stderr, "  version    Print version information\n")
	fmt.Fprintf(os.Stderr, "  help       Show this help\n\n")
	fmt.Fprintf(os.Stderr, "Run '%s <command> -h' for command options.\n", os.Args[0])
}
