// Package schema resolves the LSIF JSON schema document and compiles
// per-label subschemas for validating individual dump elements.
//
// The schema document is the one shipped with the LSIF protocol definition:
// a single JSON object whose "definitions" section holds one named
// definition per vertex type plus the edge shapes (E11, E1N, ItemEdge) and
// the Vertex union. Each definition is compiled lazily into a standalone
// schema that can validate one dump line.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/chrismwendt/lsif-node/protocol"
)

var (
	// ErrNoDefinitions is returned for a schema document without a
	// definitions section.
	ErrNoDefinitions = errors.New("schema: document has no definitions")

	// ErrUnknownDefinition is returned when a named definition is absent
	// from the schema document.
	ErrUnknownDefinition = errors.New("schema: definition not found")
)

// Registry holds a parsed schema document and a cache of compiled
// definitions.
type Registry struct {
	defs     map[string]json.RawMessage
	compiled map[string]*gojsonschema.Schema
}

// Resolve loads the schema document at path. The boolean reports whether the
// source exists; a missing source is not an error, it signals the caller to
// skip schema validation.
func Resolve(path string) (*Registry, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("reading schema: %w", err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, true, err
	}
	return reg, true, nil
}

// Parse builds a Registry from a schema document held in memory.
func Parse(data []byte) (*Registry, error) {
	var doc struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if len(doc.Definitions) == 0 {
		return nil, ErrNoDefinitions
	}

	return &Registry{
		defs:     doc.Definitions,
		compiled: make(map[string]*gojsonschema.Schema),
	}, nil
}

// Definition compiles the named definition into a standalone schema.
// Compiled schemas are cached; internal $ref links between definitions keep
// working because the whole definitions section travels with each subschema.
func (r *Registry) Definition(name string) (*gojsonschema.Schema, error) {
	if s, ok := r.compiled[name]; ok {
		return s, nil
	}
	if _, ok := r.defs[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDefinition, name)
	}

	wrapper := struct {
		Ref  string                     `json:"$ref"`
		Defs map[string]json.RawMessage `json:"definitions"`
	}{
		Ref:  "#/definitions/" + name,
		Defs: r.defs,
	}
	data, err := json.Marshal(wrapper)
	if err != nil {
		return nil, fmt.Errorf("assembling schema for %s: %w", name, err)
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
	}

	r.compiled[name] = s
	return s, nil
}

// Vertex returns the generic vertex schema: the union of all vertex types.
func (r *Registry) Vertex() (*gojsonschema.Schema, error) {
	return r.Definition("Vertex")
}

// ForVertexLabel returns the label-specific vertex schema.
func (r *Registry) ForVertexLabel(label protocol.VertexLabel) (*gojsonschema.Schema, error) {
	name := label.SchemaDefinition()
	if name == "" {
		return nil, fmt.Errorf("%w: no definition for vertex label %q", ErrUnknownDefinition, string(label))
	}
	return r.Definition(name)
}

// ForEdgeLabel selects the edge schema by label: item edges and contains
// edges have distinguished shapes, everything else validates as a generic
// 1:1 edge. Selecting by label rather than by the declared shape lets a
// mislabeled edge (say, a contains edge emitted with a single inV) surface
// as a schema violation instead of passing a generic check.
func (r *Registry) ForEdgeLabel(label protocol.EdgeLabel) (*gojsonschema.Schema, error) {
	switch label {
	case protocol.EdgeLabelItem:
		return r.Definition("ItemEdge")
	case protocol.EdgeLabelContains:
		return r.Definition("E1N")
	default:
		return r.Definition("E11")
	}
}
