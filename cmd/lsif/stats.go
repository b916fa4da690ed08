package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/chrismwendt/lsif-node/parser"
	"github.com/chrismwendt/lsif-node/protocol"
)

func stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lsif stats <dump.lsif>

Display per-label vertex and edge counts for an LSIF dump. No validation is
performed.

Examples:
  lsif stats dump.lsif
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("dump file required")
	}

	elements, err := parser.ParseFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	vertexCounts := make(map[string]int)
	edgeCounts := make(map[string]int)
	other := 0
	for _, el := range elements {
		switch el.Type {
		case protocol.ElementVertex:
			vertexCounts[el.Label]++
		case protocol.ElementEdge:
			edgeCounts[el.Label]++
		default:
			other++
		}
	}

	fmt.Printf("elements: %d\n\n", len(elements))
	printCounts("vertices", vertexCounts)
	printCounts("edges", edgeCounts)
	if other > 0 {
		fmt.Printf("unknown element types: %d\n", other)
	}
	return nil
}

func printCounts(heading string, counts map[string]int) {
	total := 0
	labels := make([]string, 0, len(counts))
	for label, n := range counts {
		labels = append(labels, label)
		total += n
	}
	sort.Strings(labels)

	fmt.Printf("%s: %d\n", heading, total)
	for _, label := range labels {
		name := label
		if name == "" {
			name = "(no label)"
		}
		fmt.Printf("  %-28s %d\n", name, counts[label])
	}
	fmt.Println()
}
