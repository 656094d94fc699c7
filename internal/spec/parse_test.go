package spec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `{
  "swagger": "2.0",
  "info": {"title": "Character Service", "version": "1.2.3"},
  "host": "api.characters.dev",
  "basePath": "/v1",
  "schemes": ["https"],
  "paths": {
    "/characters/{id}": {
      "get": {
        "summary": "Fetch a character",
        "tags": ["chain"],
        "security": [{"ApiKeyAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "example": "42"}
        ],
        "responses": {"200": {"description": "ok"}}
      },
      "options": {"description": "cors preflight, not an operation"}
    },
    "/characters": {
      "post": {
        "summary": "Create a character",
        "description": "Creates a character.",
        "tags": ["chain"],
        "consumes": ["application/json"],
        "parameters": [
          {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/Character"}}
        ],
        "responses": {"201": {"description": "created"}}
      }
    }
  },
  "definitions": {
    "Character": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "age": {"type": "integer"},
        "status": {"type": "string", "enum": ["idle", "active"]},
        "friends": {"type": "array", "items": {"$ref": "#/definitions/Character"}}
      }
    }
  }
}
`

func TestParse_Metadata(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Character Service" {
		t.Errorf("title: got %q", doc.Title)
	}
	if doc.Version != "1.2.3" {
		t.Errorf("version: got %q", doc.Version)
	}
	if doc.Host != "api.characters.dev" {
		t.Errorf("host: got %q", doc.Host)
	}
	if doc.BasePath != "/v1" {
		t.Errorf("basePath: got %q", doc.BasePath)
	}
	if want := []string{"https"}; !cmp.Equal(doc.Schemes, want) {
		t.Errorf("schemes: got %v", doc.Schemes)
	}
}

func TestParse_OperationsKeepDocumentOrder(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Operations) != 2 {
		t.Fatalf("expected 2 operations (options entry has no responses), got %d", len(doc.Operations))
	}

	first := doc.Operations[0]
	if first.Path != "/characters/{id}" || first.Method != "get" {
		t.Fatalf("first operation: got %s %s", first.Method, first.Path)
	}
	if !first.Secured {
		t.Errorf("expected first operation to be secured")
	}
	if len(first.Parameters) != 1 || first.Parameters[0].In != InPath || first.Parameters[0].Example != "42" {
		t.Errorf("path parameter mismatch: %+v", first.Parameters)
	}

	second := doc.Operations[1]
	if second.Path != "/characters" || second.Method != "post" {
		t.Fatalf("second operation: got %s %s", second.Method, second.Path)
	}
	if second.Secured {
		t.Errorf("expected second operation to be unsecured")
	}
	if want := []string{"application/json"}; !cmp.Equal(second.Consumes, want) {
		t.Errorf("consumes: got %v", second.Consumes)
	}
	if len(second.Parameters) != 1 || second.Parameters[0].In != InBody {
		t.Fatalf("body parameter mismatch: %+v", second.Parameters)
	}
	if got := second.Parameters[0].Schema; got == nil || got.Kind != KindRef || got.Ref != "#/definitions/Character" {
		t.Errorf("body schema mismatch: %+v", got)
	}
}

func TestParse_DefinitionPropertyOrder(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def := doc.Definitions["Character"]
	if def == nil || def.Kind != KindObject {
		t.Fatalf("Character definition missing or not an object: %+v", def)
	}

	var names []string
	for _, p := range def.Properties {
		names = append(names, p.Name)
	}
	want := []string{"name", "age", "status", "friends"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	if def.Properties[0].Schema.Kind != KindString {
		t.Errorf("name: got kind %v", def.Properties[0].Schema.Kind)
	}
	if def.Properties[1].Schema.Kind != KindInteger {
		t.Errorf("age: got kind %v", def.Properties[1].Schema.Kind)
	}
	if got := def.Properties[2].Schema; got.Kind != KindString || !cmp.Equal(got.Enum, []string{"idle", "active"}) {
		t.Errorf("status: got %+v", got)
	}
	friends := def.Properties[3].Schema
	if friends.Kind != KindArray || friends.Items == nil || friends.Items.Kind != KindRef {
		t.Errorf("friends: got %+v", friends)
	}
}

func TestParseSchema_Shapes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		doc  string
		want SchemaKind
	}{
		{"number", `{"definitions": {"X": {"type": "number"}}}`, KindNumber},
		{"boolean", `{"definitions": {"X": {"type": "boolean"}}}`, KindBoolean},
		{"implicit object", `{"definitions": {"X": {"properties": {"a": {"type": "string"}}}}}`, KindObject},
		{"no type", `{"definitions": {"X": {"description": "opaque"}}}`, KindUnknown},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, err := Parse([]byte(tc.doc))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := doc.Definitions["X"]
			if got == nil || got.Kind != tc.want {
				t.Fatalf("expected kind %v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseSchema_AdditionalPropertiesMarker(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`{"definitions": {"Bag": {"type": "object", "additionalProperties": {"type": "string"}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bag := doc.Definitions["Bag"]
	if bag == nil || bag.Kind != KindObject {
		t.Fatalf("expected object, got %+v", bag)
	}
	if !bag.HasAdditional {
		t.Errorf("expected additionalProperties marker")
	}
	if len(bag.Properties) != 0 {
		t.Errorf("expected no declared properties, got %v", bag.Properties)
	}
}
