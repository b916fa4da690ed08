package validation_test

import (
	"strings"
	"testing"

	"github.com/chrismwendt/lsif-node/schema"
	"github.com/chrismwendt/lsif-node/validation"
)

const testSchemaDoc = `{
	"definitions": {
		"Vertex": {
			"type": "object",
			"required": ["id", "type", "label"],
			"anyOf": [
				{"$ref": "#/definitions/MetaData"},
				{"$ref": "#/definitions/Document"},
				{"$ref": "#/definitions/Range"}
			]
		},
		"MetaData": {
			"type": "object",
			"properties": {"label": {"enum": ["metaData"]}, "version": {"type": "string"}},
			"required": ["label", "version"]
		},
		"Document": {
			"type": "object",
			"properties": {"label": {"enum": ["document"]}, "uri": {"type": "string"}},
			"required": ["label", "uri"]
		},
		"Range": {
			"type": "object",
			"properties": {"label": {"enum": ["range"]}},
			"required": ["label", "start", "end"]
		},
		"E11": {
			"type": "object",
			"required": ["id", "type", "label", "outV", "inV"]
		},
		"E1N": {
			"type": "object",
			"required": ["id", "type", "label", "outV", "inVs"],
			"properties": {"inVs": {"type": "array", "minItems": 1}}
		},
		"ItemEdge": {
			"type": "object",
			"required": ["id", "type", "label", "outV", "inVs", "document"]
		}
	}
}`

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Parse([]byte(testSchemaDoc))
	if err != nil {
		t.Fatalf("parse test schema: %v", err)
	}
	return reg
}

// validDump is structurally sound and schema-conformant against the test
// schema document.
const validDump = `{"id":1,"type":"vertex","label":"metaData","version":"0.4.3"}
{"id":2,"type":"vertex","label":"document","uri":"file:///a.go"}
{"id":3,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":2}}
{"id":4,"type":"edge","label":"contains","outV":2,"inVs":[3]}`

func TestValidateSchema_CleanDump(t *testing.T) {
	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, validDump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	if issues := ctx.Issues(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateSchema_SkippedWithoutRegistry(t *testing.T) {
	// Scenario: schema source unavailable. Ordering and connectivity still
	// ran; schema-based issues are zero.
	dump := validDump + "\n" + `{"id":5,"type":"vertex","label":"banana"}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(nil)

	for _, issue := range ctx.Issues() {
		switch issue.Kind {
		case validation.KindSchemaViolation, validation.KindUnknownLabel, validation.KindSchemaUnavailable:
			t.Errorf("schema phase was skipped but produced %v", issue)
		}
	}
	// The banana vertex is still caught by the connectivity sweep.
	if ctx.Status().AllVerticesUsed {
		t.Error("connectivity must still run when schema validation is skipped")
	}
}

func TestValidateSchema_UnknownVertexLabel(t *testing.T) {
	// Scenario: unrecognized label. No label-specific schema is derived;
	// the element is invalidated with unknown-label.
	dump := validDump + "\n" +
		`{"id":5,"type":"vertex","label":"banana"}` + "\n" +
		`{"id":6,"type":"edge","label":"contains","outV":2,"inVs":[5]}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var found *validation.Issue
	for i, issue := range ctx.Issues() {
		if issue.Kind == validation.KindUnknownLabel {
			found = &ctx.Issues()[i]
		}
	}
	if found == nil {
		t.Fatal("expected an unknown-label issue")
	}
	if found.ID != "5" {
		t.Errorf("expected unknown-label against vertex 5, got %s", found.ID)
	}
	if !strings.Contains(found.Message, "banana") {
		t.Errorf("expected message to name the label, got %q", found.Message)
	}
	if stats := ctx.VertexStatistics(nil); stats.Failed != 1 {
		t.Errorf("expected vertex 5 invalidated, got %+v", stats)
	}
}

func TestValidateSchema_MissingVertexLabel(t *testing.T) {
	dump := validDump + "\n" +
		`{"id":5,"type":"vertex"}` + "\n" +
		`{"id":6,"type":"edge","label":"contains","outV":2,"inVs":[5]}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var kinds []validation.Kind
	for _, issue := range ctx.Issues() {
		if issue.ID == "5" {
			kinds = append(kinds, issue.Kind)
		}
	}
	if len(kinds) != 1 || kinds[0] != validation.KindMissingProperty {
		t.Errorf("expected a single missing-property issue for the label, got %v", kinds)
	}
}

func TestValidateSchema_LabelSpecificViolation(t *testing.T) {
	// A document vertex without uri fails the generic union; the reported
	// message comes from the label-specific Document schema.
	dump := `{"id":1,"type":"vertex","label":"metaData","version":"0.4.3"}
{"id":2,"type":"vertex","label":"document"}
{"id":3,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":2}}
{"id":4,"type":"edge","label":"contains","outV":2,"inVs":[3]}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var violation *validation.Issue
	for i, issue := range ctx.Issues() {
		if issue.Kind == validation.KindSchemaViolation {
			violation = &ctx.Issues()[i]
		}
	}
	if violation == nil {
		t.Fatal("expected a schema-violation issue")
	}
	if violation.ID != "2" {
		t.Errorf("expected violation against vertex 2, got %s", violation.ID)
	}
	if !strings.Contains(violation.Message, "uri") {
		t.Errorf("expected message to name the missing field, got %q", violation.Message)
	}
}

func TestValidateSchema_MislabeledContainsEdge(t *testing.T) {
	// A contains edge shaped 1:1 must fail the 1:N schema selected by its
	// label instead of silently passing a generic check.
	dump := `{"id":1,"type":"vertex","label":"metaData","version":"0.4.3"}
{"id":2,"type":"vertex","label":"document","uri":"file:///a.go"}
{"id":3,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":2}}
{"id":4,"type":"edge","label":"contains","outV":2,"inV":3}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var violation *validation.Issue
	for i, issue := range ctx.Issues() {
		if issue.Kind == validation.KindSchemaViolation && issue.ID == "4" {
			violation = &ctx.Issues()[i]
		}
	}
	if violation == nil {
		t.Fatalf("expected a schema-violation against edge 4, got %v", ctx.Issues())
	}
	if !strings.Contains(violation.Message, "inVs") {
		t.Errorf("expected message to name inVs, got %q", violation.Message)
	}
	if stats := ctx.EdgeStatistics(nil); stats.Failed != 1 {
		t.Errorf("expected edge 4 invalidated, got %+v", stats)
	}
}

func TestValidateSchema_ItemEdgeRequiresDocument(t *testing.T) {
	dump := `{"id":1,"type":"vertex","label":"metaData","version":"0.4.3"}
{"id":2,"type":"vertex","label":"document","uri":"file:///a.go"}
{"id":3,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":2}}
{"id":4,"type":"edge","label":"contains","outV":2,"inVs":[3]}
{"id":5,"type":"edge","label":"item","outV":2,"inVs":[3]}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var violation *validation.Issue
	for i, issue := range ctx.Issues() {
		if issue.Kind == validation.KindSchemaViolation && issue.ID == "5" {
			violation = &ctx.Issues()[i]
		}
	}
	if violation == nil {
		t.Fatalf("expected a schema-violation against edge 5, got %v", ctx.Issues())
	}
	if !strings.Contains(violation.Message, "document") {
		t.Errorf("expected message to name the document property, got %q", violation.Message)
	}
}

func TestValidateSchema_UnknownEdgeLabel(t *testing.T) {
	dump := validDump + "\n" + `{"id":5,"type":"edge","label":"pointsAt","outV":2,"inV":3}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	var found bool
	for _, issue := range ctx.Issues() {
		if issue.Kind == validation.KindUnknownLabel && issue.ID == "5" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown-label against edge 5, got %v", ctx.Issues())
	}
}

func TestValidateSchema_SkipsAlreadyInvalidElements(t *testing.T) {
	// A disconnected vertex is already invalid; the schema phase must not
	// pile further issues onto it.
	dump := `{"id":1,"type":"vertex","label":"document"}`

	ctx := validation.NewContext()
	ctx.Ingest(parseElements(t, dump))
	ctx.CheckConnectivity()
	ctx.ValidateSchema(testRegistry(t))

	issues := ctx.Issues()
	if len(issues) != 1 || issues[0].Kind != validation.KindDisconnectedVertex {
		t.Errorf("expected only the disconnected-vertex issue, got %v", issues)
	}
}
