package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := stats(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("lsif version 0.1.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lsif - LSIF dump validation tool

Usage:
  lsif <command> [options]

Commands:
  validate   Validate an LSIF dump's consistency and schema conformance
  stats      Display per-label element counts for a dump
  runs       List recorded validation runs from a history database
  help       Show this help message
  version    Show version information

Examples:
  # Consistency checks only
  lsif validate dump.lsif

  # Consistency and schema checks
  lsif validate dump.lsif --schema lsif.json

  # Restrict the report to a handful of elements
  lsif validate dump.lsif --only 12,13,14

  # Record the run and inspect the history later
  lsif validate dump.lsif --db runs.db
  lsif runs --db runs.db`)
}
