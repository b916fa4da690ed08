// Package validation implements the consistency and schema checks for LSIF
// dumps: element registration, emit-order and connectivity verification,
// per-label schema validation, and the aggregated report.
//
// A run proceeds in four strictly sequential phases over one Context:
//
//	ctx := validation.NewContext()
//	ctx.Ingest(elements)       // register elements, check vertex-before-edge
//	ctx.CheckConnectivity()    // flag vertices no edge ever visited
//	ctx.ValidateSchema(reg)    // per-label schema conformance (optional)
//	result := ctx.Report(ids)  // read-only summary, exit code
//
// Invalidation is monotonic: once an element is flagged invalid it stays
// invalid for the rest of the run.
package validation

import (
	"encoding/json"
	"log/slog"

	"github.com/chrismwendt/lsif-node/protocol"
)

// Kind classifies a validation issue.
type Kind string

const (
	KindUnknownElementType Kind = "unknown-element-type"
	KindMissingProperty    Kind = "missing-property"
	KindDanglingReference  Kind = "dangling-reference"
	KindDisconnectedVertex Kind = "disconnected-vertex"
	KindUnknownLabel       Kind = "unknown-label"
	KindSchemaViolation    Kind = "schema-violation"
	KindSchemaUnavailable  Kind = "schema-unavailable"
)

// Issue records one validation failure against one element. Issues are
// accumulated in ingestion order and never deduplicated; an element can
// collect several issues over a run.
type Issue struct {
	Kind        Kind                 `json:"kind"`
	ElementType protocol.ElementType `json:"elementType"`
	ID          protocol.ID          `json:"id"`
	Message     string               `json:"message"`
	Raw         json.RawMessage      `json:"raw,omitempty"`
}

// CheckStatus holds the two whole-run booleans. Both start true and are
// cleared the first time any element violates the corresponding rule;
// neither is ever restored within a run.
type CheckStatus struct {
	VertexBeforeEdge bool `json:"vertexBeforeEdge"`
	AllVerticesUsed  bool `json:"allVerticesUsed"`
}

// Statistics counts valid and invalid elements among a reported subset.
// It is derived on demand from the registry's validity flags, never stored.
type Statistics struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// IDSet restricts reporting to a subset of element ids. A nil IDSet places
// no restriction.
type IDSet map[protocol.ID]struct{}

// NewIDSet builds an IDSet from the given ids.
func NewIDSet(ids ...protocol.ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. A nil set contains every id.
func (s IDSet) Contains(id protocol.ID) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// entry wraps a registered element with its validity flag. The registry is
// the sole owner of elements; every other component refers to them by id.
type entry struct {
	element *protocol.Element
	valid   bool
}

// Context carries all mutable state of one validation run. Constructing a
// fresh Context per run keeps runs independent, so tests and callers can
// validate several dumps without shared state.
type Context struct {
	vertices map[protocol.ID]*entry
	edges    map[protocol.ID]*entry

	// Registration order, needed because issue order must follow ingestion
	// order and map iteration does not.
	vertexOrder []protocol.ID
	edgeOrder   []protocol.ID

	// visited holds ids of registered vertices observed as an endpoint of
	// at least one edge that reached the ordering check.
	visited map[protocol.ID]struct{}

	// swept records that the connectivity sweep already ran, making
	// repeated sweeps no-ops instead of duplicate reports.
	swept bool

	issues []Issue
	status CheckStatus
	logger *slog.Logger
}

// NewContext creates an empty validation context with both check statuses
// passing.
func NewContext() *Context {
	return &Context{
		vertices: make(map[protocol.ID]*entry),
		edges:    make(map[protocol.ID]*entry),
		visited:  make(map[protocol.ID]struct{}),
		status: CheckStatus{
			VertexBeforeEdge: true,
			AllVerticesUsed:  true,
		},
		logger: slog.Default(),
	}
}

// SetLogger overrides the diagnostic logger (schema-skip warnings and the
// like). The report itself never goes through the logger.
func (c *Context) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Status returns the whole-run check booleans.
func (c *Context) Status() CheckStatus { return c.status }

// Issues returns the accumulated issues in ingestion order.
func (c *Context) Issues() []Issue { return c.issues }

// VertexStatistics counts valid and invalid registered vertices whose id is
// in ids. Calling it twice without intervening mutation yields identical
// counts.
func (c *Context) VertexStatistics(ids IDSet) Statistics {
	return c.statistics(c.vertexOrder, c.vertices, ids)
}

// EdgeStatistics counts valid and invalid registered edges whose id is in
// ids.
func (c *Context) EdgeStatistics(ids IDSet) Statistics {
	return c.statistics(c.edgeOrder, c.edges, ids)
}

func (c *Context) statistics(order []protocol.ID, reg map[protocol.ID]*entry, ids IDSet) Statistics {
	var stats Statistics
	for _, id := range order {
		if !ids.Contains(id) {
			continue
		}
		stats.Total++
		if reg[id].valid {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// addIssue appends one issue for el.
func (c *Context) addIssue(kind Kind, el *protocol.Element, message string) {
	c.issues = append(c.issues, Issue{
		Kind:        kind,
		ElementType: el.Type,
		ID:          el.ID,
		Message:     message,
		Raw:         el.Raw,
	})
}
