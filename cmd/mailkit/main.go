package main

import (
	"fmt"
	"os"

	"github.com/mailkit/mailkit/version"
)

const serviceName = "mailkit"

func printUsage() {
	fmt.Print(`mailkit - email drafting pipeline

Usage:
  mailkit <command> [flags]

Commands:
  draft     Run the drafting pipeline and print the finished draft
  stream    Run the pipeline step by step, printing each update
  demo      Run a canned drafting scenario end to end
  steps     List the registered pipeline steps
  version   Print version information
  help      Show this help

Flags (draft, stream):
  -s, --subject string     Draft subject line
  -b, --body string        Draft body text
  -t, --to string          Recipient email address
  -c, --category string    Email category (business, personal, support, other)
      --sender string      Sender name for the signature
  -p, --pipeline string    Named pipeline definition to run instead of the default
      --config string      Path to a config file
      --run-id string      Correlation ID for this run (random UUID when omitted)
      --timing             Print per step timings after the run
`)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, rest := os.Args[1], os.Args[2:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println(serviceName + " " + version.Full())
	case "draft":
		os.Exit(cmdDraft(rest))
	case "stream":
		os.Exit(cmdStream(rest))
	case "demo":
		os.Exit(cmdDemo(rest))
	case "steps":
		os.Exit(cmdSteps(rest))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
}
