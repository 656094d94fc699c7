package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// parseTree walks the document node tree into the model. All iteration runs
// over yaml.Node content slices, which keep source-document order.
func parseTree(doc *Document, root *yaml.Node) {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if defs := mappingValue(root, "definitions"); defs != nil && defs.Kind == yaml.MappingNode {
		doc.Definitions = make(map[string]*SchemaNode, len(defs.Content)/2)
		for i := 0; i+1 < len(defs.Content); i += 2 {
			doc.Definitions[defs.Content[i].Value] = parseSchema(defs.Content[i+1])
		}
	}

	paths := mappingValue(root, "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		item := paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			method := strings.ToLower(item.Content[j].Value)
			if op, ok := parseOperation(path, method, item.Content[j+1]); ok {
				doc.Operations = append(doc.Operations, op)
			}
		}
	}
}

// parseOperation converts one method entry of a path item. An entry that is
// not a mapping or lacks a responses key is not a valid operation and is
// skipped silently.
func parseOperation(path, method string, node *yaml.Node) (Operation, bool) {
	if node == nil || node.Kind != yaml.MappingNode || mappingValue(node, "responses") == nil {
		return Operation{}, false
	}

	op := Operation{
		Path:        path,
		Method:      method,
		Summary:     scalarValue(mappingValue(node, "summary")),
		Description: scalarValue(mappingValue(node, "description")),
		Tags:        stringSequence(mappingValue(node, "tags")),
		Consumes:    stringSequence(mappingValue(node, "consumes")),
	}
	if sec := mappingValue(node, "security"); sec != nil && sec.Kind == yaml.SequenceNode && len(sec.Content) > 0 {
		op.Secured = true
	}

	params := mappingValue(node, "parameters")
	if params != nil && params.Kind == yaml.SequenceNode {
		for _, p := range params.Content {
			if p.Kind != yaml.MappingNode {
				continue
			}
			pm := Parameter{
				Name:    scalarValue(mappingValue(p, "name")),
				In:      scalarValue(mappingValue(p, "in")),
				Example: scalarValue(mappingValue(p, "example")),
			}
			if sch := mappingValue(p, "schema"); sch != nil {
				pm.Schema = parseSchema(sch)
			}
			op.Parameters = append(op.Parameters, pm)
		}
	}
	return op, true
}

// parseSchema converts a schema subtree into a SchemaNode. $ref wins over
// everything; scalar and array types are matched by the type string; a node
// is an object when it says so or declares properties; anything else is
// unknown and synthesizes to an empty object downstream.
func parseSchema(node *yaml.Node) *SchemaNode {
	if node == nil || node.Kind != yaml.MappingNode {
		return &SchemaNode{Kind: KindUnknown}
	}
	if ref := mappingValue(node, "$ref"); ref != nil && ref.Kind == yaml.ScalarNode {
		return &SchemaNode{Kind: KindRef, Ref: ref.Value}
	}

	typ := scalarValue(mappingValue(node, "type"))
	switch typ {
	case "string":
		return &SchemaNode{Kind: KindString, Enum: stringSequence(mappingValue(node, "enum"))}
	case "integer":
		return &SchemaNode{Kind: KindInteger}
	case "number":
		return &SchemaNode{Kind: KindNumber}
	case "boolean":
		return &SchemaNode{Kind: KindBoolean}
	case "array":
		return &SchemaNode{Kind: KindArray, Items: parseSchema(mappingValue(node, "items"))}
	}

	props := mappingValue(node, "properties")
	if typ == "object" || (props != nil && props.Kind == yaml.MappingNode) {
		s := &SchemaNode{
			Kind:          KindObject,
			HasAdditional: mappingValue(node, "additionalProperties") != nil,
		}
		if props != nil && props.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(props.Content); i += 2 {
				s.Properties = append(s.Properties, Property{
					Name:   props.Content[i].Value,
					Schema: parseSchema(props.Content[i+1]),
				})
			}
		}
		return s
	}
	return &SchemaNode{Kind: KindUnknown}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func stringSequence(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode {
			out = append(out, item.Value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
