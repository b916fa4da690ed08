package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/chrismwendt/lsif-node/protocol"
	"github.com/chrismwendt/lsif-node/schema"
)

const schemaUnavailableMessage = "unable to provide details"

// ValidateSchema checks every element that survived the registry and
// connectivity phases against the schema for its declared label. A nil
// registry skips the whole phase with a warning; every element then keeps
// its current validity.
func (c *Context) ValidateSchema(reg *schema.Registry) {
	if reg == nil {
		c.logger.Warn("schema source unavailable, skipping schema validation")
		return
	}
	c.validateVertexSchemas(reg)
	c.validateEdgeSchemas(reg)
}

func (c *Context) validateVertexSchemas(reg *schema.Registry) {
	generic, err := reg.Vertex()
	if err != nil {
		c.logger.Warn("generic vertex schema unavailable, skipping vertex schema validation", "error", err)
		return
	}

	for _, id := range c.vertexOrder {
		ent := c.vertices[id]
		if !ent.valid {
			continue
		}
		el := ent.element

		result, err := generic.Validate(gojsonschema.NewBytesLoader(el.Raw))
		if err != nil {
			c.addIssue(KindSchemaUnavailable, el, schemaUnavailableMessage)
			ent.valid = false
			continue
		}
		if result.Valid() {
			continue
		}

		// The generic vertex schema is the union of all vertex types, so a
		// failure only says "something is wrong". Drill down by label for an
		// actionable message.
		if el.Label == "" {
			c.addIssue(KindMissingProperty, el, `missing required property "label"`)
			ent.valid = false
			continue
		}
		label, ok := protocol.ParseVertexLabel(el.Label)
		if !ok {
			c.addIssue(KindUnknownLabel, el, fmt.Sprintf("unknown vertex label %q", el.Label))
			ent.valid = false
			continue
		}

		specific, err := reg.ForVertexLabel(label)
		if err != nil {
			c.addIssue(KindSchemaUnavailable, el, schemaUnavailableMessage)
			ent.valid = false
			continue
		}
		specificResult, err := specific.Validate(gojsonschema.NewBytesLoader(el.Raw))
		if err != nil {
			c.addIssue(KindSchemaUnavailable, el, schemaUnavailableMessage)
			ent.valid = false
			continue
		}

		message := joinViolations(specificResult.Errors())
		if message == "" {
			message = fmt.Sprintf("does not conform to the vertex schema for label %q", el.Label)
		}
		c.addIssue(KindSchemaViolation, el, message)
		ent.valid = false
	}
}

func (c *Context) validateEdgeSchemas(reg *schema.Registry) {
	for _, id := range c.edgeOrder {
		ent := c.edges[id]
		if !ent.valid {
			continue
		}
		el := ent.element
		if !el.HasShape() {
			continue
		}

		if el.Label == "" {
			c.addIssue(KindMissingProperty, el, `missing required property "label"`)
			ent.valid = false
			continue
		}
		label, ok := protocol.ParseEdgeLabel(el.Label)
		if !ok {
			c.addIssue(KindUnknownLabel, el, fmt.Sprintf("unknown edge label %q", el.Label))
			ent.valid = false
			continue
		}

		s, err := reg.ForEdgeLabel(label)
		if err != nil {
			c.addIssue(KindSchemaUnavailable, el, schemaUnavailableMessage)
			ent.valid = false
			continue
		}
		result, err := s.Validate(gojsonschema.NewBytesLoader(el.Raw))
		if err != nil {
			c.addIssue(KindSchemaUnavailable, el, schemaUnavailableMessage)
			ent.valid = false
			continue
		}
		if result.Valid() {
			continue
		}

		// Keep only violations attributed to the instance document itself;
		// combinator bookkeeping (anyOf/oneOf wrappers) is noise here.
		message := joinViolations(result.Errors())
		if message == "" {
			continue
		}
		c.addIssue(KindSchemaViolation, el, message)
		ent.valid = false
	}
}

// combinatorTypes are gojsonschema error types produced by schema
// combinators rather than by a concrete field of the instance.
var combinatorTypes = map[string]struct{}{
	"number_any_of": {},
	"number_one_of": {},
	"number_all_of": {},
	"number_not":    {},
}

// joinViolations renders instance-level schema violations as one
// semicolon-joined message, in the order the validator reported them.
func joinViolations(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if _, ok := combinatorTypes[e.Type()]; ok {
			continue
		}
		if field := e.Field(); field != "" && field != "(root)" {
			parts = append(parts, fmt.Sprintf("%s: %s", field, e.Description()))
		} else {
			parts = append(parts, e.Description())
		}
	}
	return strings.Join(parts, "; ")
}
