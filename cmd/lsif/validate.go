package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chrismwendt/lsif-node/history"
	"github.com/chrismwendt/lsif-node/parser"
	"github.com/chrismwendt/lsif-node/protocol"
	"github.com/chrismwendt/lsif-node/schema"
	"github.com/chrismwendt/lsif-node/validation"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "Path to the LSIF JSON schema (schema validation is skipped if unset or unresolvable)")
	only := fs.String("only", "", "Comma-separated element ids to restrict statistics and reported errors to")
	outputJSON := fs.Bool("json", false, "Output the report as JSON")
	outputFile := fs.String("output", "", "Write the JSON report to file")
	dbPath := fs.String("db", "", "Record the run in a SQLite history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lsif validate <dump.lsif> [options]

Validate an LSIF dump: every edge's endpoints must exist and be emitted
before the edge, every non-metaData vertex must be referenced by some edge,
and every element must conform to the schema for its declared label.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Checks performed:
  - Element classification (unknown element types)
  - Edge properties (outV present, inV or inVs present)
  - Emit order (vertices before the edges that reference them)
  - Connectivity (no vertex left unreferenced, metaData exempt)
  - Schema conformance per label (with --schema)

Exit status is 0 when no issues were found, 1 otherwise.

Examples:
  lsif validate dump.lsif
  lsif validate dump.lsif --schema lsif.json
  lsif validate dump.lsif --only 12,13 --json
  lsif validate dump.lsif --db runs.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("dump file required")
	}
	dumpFile := fs.Arg(0)

	elements, err := parser.ParseFile(dumpFile)
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	reg := resolveSchema(*schemaPath, slog.Default())

	var ids validation.IDSet
	if *only != "" {
		var list []protocol.ID
		for _, id := range strings.Split(*only, ",") {
			if id = strings.TrimSpace(id); id != "" {
				list = append(list, protocol.ID(id))
			}
		}
		ids = validation.NewIDSet(list...)
	}

	start := time.Now()
	result := validation.Validate(elements, ids, reg)
	elapsed := time.Since(start)

	if *outputJSON || *outputFile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, data, 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Validation report written to %s\n", *outputFile)
		} else {
			fmt.Println(string(data))
		}
	} else {
		result.Render(os.Stdout)
	}

	if *dbPath != "" {
		recordRun(*dbPath, dumpFile, start, elapsed, result, reg != nil)
	}

	if result.ExitCode() != 0 {
		os.Exit(1)
	}
	return nil
}

// resolveSchema turns the --schema flag into a schema registry, or nil when
// schema validation should be skipped. Leaving the flag unset is the normal
// no-schema mode and skips silently; a source that was configured but cannot
// be used degrades to a skip with a warning rather than failing the run.
func resolveSchema(path string, logger *slog.Logger) *schema.Registry {
	if path == "" {
		return nil
	}
	reg, found, err := schema.Resolve(path)
	if err != nil {
		logger.Warn("schema source unusable, skipping schema validation", "path", path, "error", err)
		return nil
	}
	if !found {
		logger.Warn("schema source not found, skipping schema validation", "path", path)
		return nil
	}
	return reg
}

// recordRun appends one row to the history database. History is a sink: a
// failure to record is reported but never changes the validation outcome.
func recordRun(dbPath, input string, start time.Time, elapsed time.Duration, result *validation.Result, schemaChecked bool) {
	store, err := history.Open(dbPath)
	if err != nil {
		slog.Error("open history database", "path", dbPath, "error", err)
		return
	}
	defer store.Close()

	run := history.Run{
		ID:          result.RunID,
		Input:       input,
		StartedAt:   start,
		DurationMS:  elapsed.Milliseconds(),
		Vertices:    result.Vertices.Total,
		Edges:       result.Edges.Total,
		IssueCount:  result.TotalIssues,
		Passed:      result.ExitCode() == 0,
		SchemaCheck: schemaChecked,
	}
	if err := store.Record(context.Background(), run); err != nil {
		slog.Error("record run", "path", dbPath, "error", err)
	}
}
