package insomnia

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/docstack/swagger2insomnia/internal/spec"
)

// maxSampleDepth bounds schema recursion. Beyond it synthesis yields an
// empty object, so cyclic or absurdly nested $ref chains terminate.
const maxSampleDepth = 4

const definitionsPrefix = "#/definitions/"

var (
	// ErrUnsupportedRef reports a reference outside #/definitions/<Name>.
	ErrUnsupportedRef = errors.New("insomnia: unsupported reference kind")
	// ErrUnknownDefinition reports a reference to a definition that does not exist.
	ErrUnknownDefinition = errors.New("insomnia: unknown definition")
)

// Object is a JSON object that keeps insertion order when marshalled.
type Object []Field

// Field is one Object member.
type Field struct {
	Name  string
	Value any
}

// MarshalJSON renders members in insertion order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := encodeJSON(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := encodeJSON(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Synthesizer produces one representative example value per schema node,
// resolving local references against the document's definitions.
type Synthesizer struct {
	defs map[string]*spec.SchemaNode
}

func NewSynthesizer(defs map[string]*spec.SchemaNode) *Synthesizer {
	return &Synthesizer{defs: defs}
}

// Resolve returns the definition a local reference points at.
func (s *Synthesizer) Resolve(ref string) (*spec.SchemaNode, error) {
	name, ok := strings.CutPrefix(ref, definitionsPrefix)
	if !ok {
		return nil, ErrUnsupportedRef
	}
	def, ok := s.defs[name]
	if !ok || def == nil {
		return nil, ErrUnknownDefinition
	}
	return def, nil
}

// Sample synthesizes an example value for node. It is total: every tree,
// however malformed, yields some value. Unresolvable or unsupported
// references and unknown shapes all degrade to an empty object rather than
// failing, because input documents are frequently incomplete. The depth
// guard runs before reference resolution; a chain of refs would otherwise
// never reach it.
func (s *Synthesizer) Sample(node *spec.SchemaNode, depth int) any {
	if depth > maxSampleDepth {
		return Object{}
	}
	if node == nil {
		return Object{}
	}
	switch node.Kind {
	case spec.KindRef:
		resolved, err := s.Resolve(node.Ref)
		if err != nil {
			return Object{}
		}
		return s.Sample(resolved, depth+1)
	case spec.KindString:
		if len(node.Enum) > 0 {
			return node.Enum[0]
		}
		return "string"
	case spec.KindInteger, spec.KindNumber:
		return 0
	case spec.KindBoolean:
		return false
	case spec.KindArray:
		return []any{s.Sample(node.Items, depth+1)}
	case spec.KindObject:
		// An object with no declared properties synthesizes empty, even
		// when additionalProperties carries a schema.
		if len(node.Properties) == 0 {
			return Object{}
		}
		obj := make(Object, 0, len(node.Properties))
		for _, p := range node.Properties {
			obj = append(obj, Field{Name: p.Name, Value: s.Sample(p.Schema, depth+1)})
		}
		return obj
	default:
		return Object{}
	}
}

// RenderSample formats a synthesized value for a request body: two-space
// indent, no HTML escaping, no trailing newline.
func RenderSample(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
