package spec

// Internal model built from a Swagger 2.0 document. Operations, tags, and
// object properties keep their source-document order so downstream
// generation is byte-stable across runs.

// SchemaKind discriminates SchemaNode variants.
type SchemaKind string

const (
	KindRef     SchemaKind = "ref"
	KindString  SchemaKind = "string"
	KindInteger SchemaKind = "integer"
	KindNumber  SchemaKind = "number"
	KindBoolean SchemaKind = "boolean"
	KindArray   SchemaKind = "array"
	KindObject  SchemaKind = "object"
	KindUnknown SchemaKind = "unknown"
)

// SchemaNode is a tagged variant describing one node of a schema tree.
// Only the fields matching Kind are populated; everything else stays zero.
type SchemaNode struct {
	Kind          SchemaKind
	Ref           string      // KindRef: raw reference string, e.g. "#/definitions/v1.Character"
	Enum          []string    // KindString: enumerated literal values, declaration order
	Items         *SchemaNode // KindArray: item schema
	Properties    []Property  // KindObject: declared properties, declaration order
	HasAdditional bool        // KindObject: an additionalProperties entry was present
}

// Property is one declared object property.
type Property struct {
	Name   string
	Schema *SchemaNode
}

// Parameter locations recognized by the generator.
const (
	InPath  = "path"
	InQuery = "query"
	InBody  = "body"
)

// Parameter is one declared operation parameter.
type Parameter struct {
	Name    string
	In      string      // path|query|body or any other literal the document uses
	Example string      // scalar example rendered as text; "" when absent
	Schema  *SchemaNode // body parameters only
}

// Operation is one HTTP method exposed at one path. Immutable once parsed.
type Operation struct {
	Path        string
	Method      string // lower-case
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	Consumes    []string
	Secured     bool
}

// Document is the parsed input document.
type Document struct {
	Title       string
	Version     string
	Host        string
	BasePath    string
	Schemes     []string
	Operations  []Operation            // source-document order
	Definitions map[string]*SchemaNode // by definition name
}
