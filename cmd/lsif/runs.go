package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrismwendt/lsif-node/history"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "runs.db", "Path to the SQLite history database")
	limit := fs.Int("limit", 20, "Maximum number of runs to list (0 = all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lsif runs [options]

List recorded validation runs, newest first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := history.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	list, err := store.Runs(context.Background(), *limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range list {
		status := "FAIL"
		if run.Passed {
			status = "PASS"
		}
		schemaNote := ""
		if !run.SchemaCheck {
			schemaNote = " (schema skipped)"
		}
		fmt.Printf("%s  %s  %s  %dms  %d vertices, %d edges, %d issues%s\n",
			run.StartedAt.Local().Format(time.DateTime), status, run.Input,
			run.DurationMS, run.Vertices, run.Edges, run.IssueCount, schemaNote)
	}
	return nil
}
