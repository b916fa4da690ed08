// Package protocol defines the LSIF dump element model: vertices, edges,
// and the closed sets of labels the format recognizes.
// An LSIF dump is an ordered sequence of JSON records, each either a vertex
// (a symbol, document, project, or result node) or an edge (a directed
// relation from one outV vertex to one inV or many inVs vertices).
package protocol

// ID identifies a vertex or edge within a dump. The JSON format allows both
// numeric and string ids; numeric ids are normalized to their decimal string
// form at parse time.
type ID string

// ElementType is the declared kind of a dump record.
type ElementType string

const (
	ElementVertex ElementType = "vertex"
	ElementEdge   ElementType = "edge"
)

// Element is a single dump record. Only the fields the consistency checks
// need are lifted out of the JSON; Raw keeps the original line for schema
// validation and error display.
type Element struct {
	ID    ID          `json:"id"`
	Type  ElementType `json:"type"`
	Label string      `json:"label,omitempty"`
	OutV  ID          `json:"outV,omitempty"`
	InV   ID          `json:"inV,omitempty"`
	InVs  []ID        `json:"inVs,omitempty"`
	Raw   []byte      `json:"-"`
}

// IsVertex reports whether the element declares itself a vertex.
func (e *Element) IsVertex() bool { return e.Type == ElementVertex }

// IsEdge reports whether the element declares itself an edge.
func (e *Element) IsEdge() bool { return e.Type == ElementEdge }

// HasShape reports whether the edge carries a usable endpoint shape:
// a single inV (1:1) or a non-empty inVs list (1:N).
func (e *Element) HasShape() bool {
	return e.InV != "" || len(e.InVs) > 0
}

// Endpoints returns the non-empty vertex references of an edge in emit
// order: outV first, then inV or the inVs entries.
func (e *Element) Endpoints() []ID {
	eps := make([]ID, 0, 2+len(e.InVs))
	if e.OutV != "" {
		eps = append(eps, e.OutV)
	}
	if e.InV != "" {
		eps = append(eps, e.InV)
	}
	for _, in := range e.InVs {
		if in != "" {
			eps = append(eps, in)
		}
	}
	return eps
}
