package protocol

// VertexLabel is one of the closed set of vertex labels the format defines.
type VertexLabel string

const (
	VertexLabelMetaData             VertexLabel = "metaData"
	VertexLabelProject              VertexLabel = "project"
	VertexLabelDocument             VertexLabel = "document"
	VertexLabelRange                VertexLabel = "range"
	VertexLabelResultSet            VertexLabel = "resultSet"
	VertexLabelMoniker              VertexLabel = "moniker"
	VertexLabelPackageInformation   VertexLabel = "packageInformation"
	VertexLabelHoverResult          VertexLabel = "hoverResult"
	VertexLabelDefinitionResult     VertexLabel = "definitionResult"
	VertexLabelDeclarationResult    VertexLabel = "declarationResult"
	VertexLabelReferenceResult      VertexLabel = "referenceResult"
	VertexLabelTypeDefinitionResult VertexLabel = "typeDefinitionResult"
	VertexLabelImplementationResult VertexLabel = "implementationResult"
	VertexLabelFoldingRangeResult   VertexLabel = "foldingRangeResult"
	VertexLabelDocumentSymbolResult VertexLabel = "documentSymbolResult"
	VertexLabelDocumentLinkResult   VertexLabel = "documentLinkResult"
	VertexLabelDiagnosticResult     VertexLabel = "diagnosticResult"
)

// vertexDefinitions maps each vertex label to the name of its definition in
// the LSIF JSON schema document. The mapping is an explicit table so that an
// unknown label is a lookup miss, never a malformed definition name.
var vertexDefinitions = map[VertexLabel]string{
	VertexLabelMetaData:             "MetaData",
	VertexLabelProject:              "Project",
	VertexLabelDocument:             "Document",
	VertexLabelRange:                "Range",
	VertexLabelResultSet:            "ResultSet",
	VertexLabelMoniker:              "Moniker",
	VertexLabelPackageInformation:   "PackageInformation",
	VertexLabelHoverResult:          "HoverResult",
	VertexLabelDefinitionResult:     "DefinitionResult",
	VertexLabelDeclarationResult:    "DeclarationResult",
	VertexLabelReferenceResult:      "ReferenceResult",
	VertexLabelTypeDefinitionResult: "TypeDefinitionResult",
	VertexLabelImplementationResult: "ImplementationResult",
	VertexLabelFoldingRangeResult:   "FoldingRangeResult",
	VertexLabelDocumentSymbolResult: "DocumentSymbolResult",
	VertexLabelDocumentLinkResult:   "DocumentLinkResult",
	VertexLabelDiagnosticResult:     "DiagnosticResult",
}

// ParseVertexLabel maps a raw label string to its VertexLabel. The boolean
// reports whether the label is part of the recognized set.
func ParseVertexLabel(s string) (VertexLabel, bool) {
	l := VertexLabel(s)
	_, ok := vertexDefinitions[l]
	return l, ok
}

// SchemaDefinition returns the schema definition name for the label.
// Unknown labels return an empty string.
func (l VertexLabel) SchemaDefinition() string {
	return vertexDefinitions[l]
}

// EdgeLabel is one of the closed set of edge labels the format defines.
type EdgeLabel string

const (
	EdgeLabelContains           EdgeLabel = "contains"
	EdgeLabelItem               EdgeLabel = "item"
	EdgeLabelNext               EdgeLabel = "next"
	EdgeLabelMoniker            EdgeLabel = "moniker"
	EdgeLabelNextMoniker        EdgeLabel = "nextMoniker"
	EdgeLabelPackageInformation EdgeLabel = "packageInformation"
	EdgeLabelDocumentSymbol     EdgeLabel = "textDocument/documentSymbol"
	EdgeLabelFoldingRange       EdgeLabel = "textDocument/foldingRange"
	EdgeLabelDocumentLink       EdgeLabel = "textDocument/documentLink"
	EdgeLabelDiagnostic         EdgeLabel = "textDocument/diagnostic"
	EdgeLabelDefinition         EdgeLabel = "textDocument/definition"
	EdgeLabelDeclaration        EdgeLabel = "textDocument/declaration"
	EdgeLabelHover              EdgeLabel = "textDocument/hover"
	EdgeLabelReferences         EdgeLabel = "textDocument/references"
	EdgeLabelTypeDefinition     EdgeLabel = "textDocument/typeDefinition"
	EdgeLabelImplementation     EdgeLabel = "textDocument/implementation"
)

var edgeLabels = map[EdgeLabel]struct{}{
	EdgeLabelContains:           {},
	EdgeLabelItem:               {},
	EdgeLabelNext:               {},
	EdgeLabelMoniker:            {},
	EdgeLabelNextMoniker:        {},
	EdgeLabelPackageInformation: {},
	EdgeLabelDocumentSymbol:     {},
	EdgeLabelFoldingRange:       {},
	EdgeLabelDocumentLink:       {},
	EdgeLabelDiagnostic:         {},
	EdgeLabelDefinition:         {},
	EdgeLabelDeclaration:        {},
	EdgeLabelHover:              {},
	EdgeLabelReferences:         {},
	EdgeLabelTypeDefinition:     {},
	EdgeLabelImplementation:     {},
}

// ParseEdgeLabel maps a raw label string to its EdgeLabel. The boolean
// reports whether the label is part of the recognized set.
func ParseEdgeLabel(s string) (EdgeLabel, bool) {
	l := EdgeLabel(s)
	_, ok := edgeLabels[l]
	return l, ok
}
