// Package parser reads LSIF dumps in the JSON Lines format.
// Each line of a dump is a single JSON object describing one vertex or edge;
// the parser preserves emit order, which the consistency checks depend on.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chrismwendt/lsif-node/protocol"
)

// maxLineSize bounds a single dump line. Hover results can embed whole
// documentation pages, so the default bufio.Scanner limit is too small.
const maxLineSize = 16 * 1024 * 1024

// ParseFile parses an LSIF dump from a file.
func ParseFile(filename string) ([]*protocol.Element, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}

// ParseReader parses an LSIF dump from a reader, one JSON object per line.
// Blank lines are skipped. Elements are returned in emit order.
func ParseReader(r io.Reader) ([]*protocol.Element, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var elements []*protocol.Element
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		element, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		elements = append(elements, element)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	return elements, nil
}

// ParseBytes parses an LSIF dump held in memory.
func ParseBytes(data []byte) ([]*protocol.Element, error) {
	return ParseReader(bytes.NewReader(data))
}

// rawElement mirrors the wire shape of a dump line. Ids may be JSON numbers
// or strings, so they are captured raw and normalized afterwards.
type rawElement struct {
	ID    json.RawMessage   `json:"id"`
	Type  string            `json:"type"`
	Label string            `json:"label"`
	OutV  json.RawMessage   `json:"outV"`
	InV   json.RawMessage   `json:"inV"`
	InVs  []json.RawMessage `json:"inVs"`
}

func parseLine(line []byte) (*protocol.Element, error) {
	var raw rawElement
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	outV, err := decodeID(raw.OutV)
	if err != nil {
		return nil, fmt.Errorf("outV: %w", err)
	}
	inV, err := decodeID(raw.InV)
	if err != nil {
		return nil, fmt.Errorf("inV: %w", err)
	}

	var inVs []protocol.ID
	for i, rv := range raw.InVs {
		v, err := decodeID(rv)
		if err != nil {
			return nil, fmt.Errorf("inVs[%d]: %w", i, err)
		}
		inVs = append(inVs, v)
	}

	// The scanner reuses its buffer, so keep a private copy of the line.
	rawCopy := make([]byte, len(line))
	copy(rawCopy, line)

	return &protocol.Element{
		ID:    id,
		Type:  protocol.ElementType(raw.Type),
		Label: raw.Label,
		OutV:  outV,
		InV:   inV,
		InVs:  inVs,
		Raw:   rawCopy,
	}, nil
}

// decodeID normalizes a JSON id value to its string form. Numeric ids keep
// their decimal representation; absent values decode to the empty id.
func decodeID(raw json.RawMessage) (protocol.ID, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return protocol.ID(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return protocol.ID(n.String()), nil
	}

	return "", fmt.Errorf("unsupported id value %s", raw)
}
