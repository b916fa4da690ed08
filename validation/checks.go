package validation

import (
	"fmt"
	"strings"

	"github.com/chrismwendt/lsif-node/protocol"
)

// Ingest consumes the dump elements in emit order. Vertices are registered
// unconditionally; edges are registered and immediately checked against the
// vertex-before-edge rule. Elements of unknown type are recorded nowhere and
// excluded from all later phases and from statistics. Ingestion is the only
// phase that adds elements to the registry.
func (c *Context) Ingest(elements []*protocol.Element) {
	for _, el := range elements {
		switch el.Type {
		case protocol.ElementVertex:
			c.registerVertex(el)
		case protocol.ElementEdge:
			c.registerEdge(el)
		default:
			c.addIssue(KindUnknownElementType, el,
				fmt.Sprintf("unknown element type %q", string(el.Type)))
		}
	}
}

func (c *Context) registerVertex(el *protocol.Element) {
	// Duplicate ids keep their first entry: a later reuse of the id must
	// never reset an earlier invalidation.
	if _, exists := c.vertices[el.ID]; exists {
		return
	}
	c.vertexOrder = append(c.vertexOrder, el.ID)
	c.vertices[el.ID] = &entry{element: el, valid: true}
}

func (c *Context) registerEdge(el *protocol.Element) {
	// Same first-entry rule as for vertices; the duplicate is ignored
	// entirely, its properties are never checked.
	if _, exists := c.edges[el.ID]; exists {
		return
	}
	e := &entry{element: el, valid: true}
	c.edgeOrder = append(c.edgeOrder, el.ID)
	c.edges[el.ID] = e

	// Property checks are not mutually exclusive: an edge without outV is
	// still shape-checked.
	if el.OutV == "" {
		c.addIssue(KindMissingProperty, el, `missing required property "outV"`)
		e.valid = false
	}
	if !el.HasShape() {
		c.addIssue(KindMissingProperty, el, `missing required property "inV or inVs"`)
		e.valid = false
		// No usable endpoint, nothing for the ordering check to look at.
		return
	}

	c.checkOrdering(e)
}

// checkOrdering enforces the vertex-before-edge rule: every endpoint of the
// edge must already be registered as a vertex. Endpoints that do exist are
// marked visited even when the check fails for the edge as a whole; the
// missing endpoint naturally cannot be marked. This keeps an invalid edge
// from cascading into spurious disconnected-vertex reports against its
// valid endpoints.
func (c *Context) checkOrdering(e *entry) {
	var missing []string
	for _, id := range e.element.Endpoints() {
		if _, exists := c.vertices[id]; exists {
			c.visited[id] = struct{}{}
		} else {
			missing = append(missing, string(id))
		}
	}

	if len(missing) > 0 {
		c.addIssue(KindDanglingReference, e.element,
			fmt.Sprintf("references vertices not yet emitted: %s", strings.Join(missing, ", ")))
		e.valid = false
		c.status.VertexBeforeEdge = false
	}
}

// CheckConnectivity sweeps every registered vertex after ingestion. A vertex
// no edge ever visited indicates a generator bug, unless it carries the
// exempt metaData label. Runs in O(V) set-membership checks. The sweep is
// idempotent: calling it again is a no-op.
func (c *Context) CheckConnectivity() {
	if c.swept {
		return
	}
	c.swept = true
	for _, id := range c.vertexOrder {
		e := c.vertices[id]
		if protocol.VertexLabel(e.element.Label) == protocol.VertexLabelMetaData {
			continue
		}
		if _, ok := c.visited[id]; ok {
			continue
		}
		c.addIssue(KindDisconnectedVertex, e.element, "not referenced by any edge")
		e.valid = false
		c.status.AllVerticesUsed = false
	}
}
