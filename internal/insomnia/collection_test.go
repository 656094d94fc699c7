package insomnia

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/docstack/swagger2insomnia/internal/spec"
	"gopkg.in/yaml.v3"
)

func characterDocument() *spec.Document {
	return &spec.Document{
		Title:    "Character Service",
		Version:  "1.2.3",
		Host:     "api.characters.dev",
		BasePath: "/v1",
		Schemes:  []string{"https"},
		Operations: []spec.Operation{
			{
				Path:    "/characters/{id}",
				Method:  "get",
				Summary: "Fetch a character",
				Tags:    []string{"chain"},
				Secured: true,
				Parameters: []spec.Parameter{
					{Name: "id", In: spec.InPath, Example: "42"},
				},
			},
			{
				Path:     "/characters",
				Method:   "post",
				Summary:  "Create a character",
				Tags:     []string{"chain"},
				Consumes: []string{"application/json"},
				Parameters: []spec.Parameter{
					{Name: "body", In: spec.InBody, Schema: &spec.SchemaNode{Kind: spec.KindRef, Ref: "#/definitions/Character"}},
				},
			},
			{Path: "/health", Method: "get", Summary: "Health check"},
		},
		Definitions: characterDefs(),
	}
}

func TestGenerate_ByteStable(t *testing.T) {
	t.Parallel()
	doc := characterDocument()
	first := Generate(doc, Options{})
	second := Generate(characterDocument(), Options{})
	if first != second {
		t.Fatalf("regeneration is not byte-stable")
	}
}

func TestGenerate_DocumentShape(t *testing.T) {
	t.Parallel()
	out := Generate(characterDocument(), Options{})

	if !strings.HasPrefix(out, "type: collection.insomnia.rest/5.0\n") {
		t.Fatalf("unexpected document head:\n%s", out[:min(len(out), 120)])
	}
	if !strings.Contains(out, "name: Character Service (1.2.3)") {
		t.Fatalf("derived name missing:\n%s", out[:min(len(out), 200)])
	}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not well-formed YAML: %v", err)
	}
	for _, key := range []string{"collection", "cookieJar", "environments"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("missing top-level section %q", key)
		}
	}
}

func TestGenerate_SortKeysStrictlyDecrease(t *testing.T) {
	t.Parallel()
	out := Generate(characterDocument(), Options{})

	// The sub-environment sortKey is positive and excluded on purpose.
	matches := regexp.MustCompile(`sortKey: (-\d+)`).FindAllStringSubmatch(out, -1)
	if len(matches) < 4 {
		t.Fatalf("expected folder and request sort keys, found %d", len(matches))
	}
	prev := int64(0)
	for i, m := range matches {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			t.Fatalf("parse sort key %q: %v", m[1], err)
		}
		if i > 0 && v >= prev {
			t.Fatalf("sort keys not strictly decreasing: %d then %d", prev, v)
		}
		prev = v
	}
}

func TestGenerate_SecuredFolderGetsBearerAuth(t *testing.T) {
	t.Parallel()
	out := Generate(characterDocument(), Options{})

	if !strings.Contains(out, "authentication:") || !strings.Contains(out, "type: bearer") {
		t.Fatalf("secured folder should carry bearer authentication:\n%s", out)
	}
	// Only the chain folder is secured; health is not.
	if got := strings.Count(out, "type: bearer"); got != 1 {
		t.Fatalf("expected one bearer block, found %d", got)
	}
}

func TestGenerate_OptionOverrides(t *testing.T) {
	t.Parallel()
	out := Generate(characterDocument(), Options{
		Name:    "Custom Collection",
		EnvName: "Staging",
		Host:    "staging.characters.dev",
		APIKey:  "token-123",
		Color:   "#00ff00",
	})

	for _, want := range []string{
		"name: Custom Collection",
		"- name: Staging",
		"host: staging.characters.dev",
		"api_key: token-123",
		`color: "#00ff00"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestGenerate_EmptyDocumentStillValid(t *testing.T) {
	t.Parallel()
	out := Generate(&spec.Document{}, Options{})

	if !strings.Contains(out, "name: API (unknown)") {
		t.Fatalf("expected fallback name, got:\n%s", out[:min(len(out), 200)])
	}
	if !strings.Contains(out, "host: api.example.com") {
		t.Fatalf("expected fallback host:\n%s", out)
	}
	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not well-formed YAML: %v", err)
	}
}
