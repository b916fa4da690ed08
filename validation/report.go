package validation

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/chrismwendt/lsif-node/protocol"
	"github.com/chrismwendt/lsif-node/schema"
)

// Result is the read-only summary of one validation run, restricted to the
// reported id subset. It marshals to JSON for machine consumption and
// renders as a plain-text report for the console.
type Result struct {
	RunID    string      `json:"runId"`
	Status   CheckStatus `json:"status"`
	Vertices Statistics  `json:"vertices"`
	Edges    Statistics  `json:"edges"`
	Issues   []Issue     `json:"issues,omitempty"`

	// TotalIssues counts every accumulated issue, including those filtered
	// out of Issues by the id subset. The exit code follows this count, so
	// a broken dump fails the run even when the report is restricted to a
	// clean subset of it.
	TotalIssues int `json:"totalIssues"`
}

// Report summarizes the run restricted to ids. Statistics and listed issues
// cover only elements whose id is in the set; validity flags were computed
// over the whole graph regardless. A nil set reports everything.
func (c *Context) Report(ids IDSet) *Result {
	r := &Result{
		RunID:       uuid.New().String(),
		Status:      c.status,
		Vertices:    c.VertexStatistics(ids),
		Edges:       c.EdgeStatistics(ids),
		TotalIssues: len(c.issues),
	}
	for _, issue := range c.issues {
		if ids.Contains(issue.ID) {
			r.Issues = append(r.Issues, issue)
		}
	}
	return r
}

// ExitCode returns the process exit code for the run: 0 if no issues were
// accumulated, 1 otherwise.
func (r *Result) ExitCode() int {
	if r.TotalIssues == 0 {
		return 0
	}
	return 1
}

// Render writes the human-readable report: the two check statuses, the
// vertex and edge counts, then each issue in accumulation order as
// "<KIND> <id>: FAIL> <message>" followed by the element's raw JSON.
func (r *Result) Render(w io.Writer) {
	fmt.Fprintln(w, "=== LSIF Validation ===")
	fmt.Fprintf(w, "vertex before edge: %s\n", passFail(r.Status.VertexBeforeEdge))
	fmt.Fprintf(w, "all vertices used: %s\n", passFail(r.Status.AllVerticesUsed))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "vertices: %d passed, %d failed, %d total\n",
		r.Vertices.Passed, r.Vertices.Failed, r.Vertices.Total)
	fmt.Fprintf(w, "edges: %d passed, %d failed, %d total\n",
		r.Edges.Passed, r.Edges.Failed, r.Edges.Total)

	if len(r.Issues) > 0 {
		fmt.Fprintln(w)
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "%s %s: FAIL> %s\n",
				elementKindLabel(issue.ElementType), issue.ID, issue.Message)
			if len(issue.Raw) > 0 {
				fmt.Fprintf(w, "%s\n", issue.Raw)
			}
		}
	}

	fmt.Fprintln(w)
	if r.ExitCode() == 0 {
		fmt.Fprintln(w, "✓ Validation PASSED")
	} else {
		fmt.Fprintf(w, "✗ Validation FAILED (%d issues)\n", r.TotalIssues)
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func elementKindLabel(t protocol.ElementType) string {
	if t == "" {
		return "ELEMENT"
	}
	return strings.ToUpper(string(t))
}

// Validate runs all four phases over elements and reports on ids. It is the
// single entry point callers outside this package need; reg may be nil to
// skip schema validation.
func Validate(elements []*protocol.Element, ids IDSet, reg *schema.Registry) *Result {
	c := NewContext()
	c.Ingest(elements)
	c.CheckConnectivity()
	c.ValidateSchema(reg)
	return c.Report(ids)
}
