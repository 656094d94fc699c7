package insomnia

import (
	"fmt"

	"github.com/docstack/swagger2insomnia/internal/spec"
)

// Options tunes document-level values. Zero values fall back to defaults
// derived from the input document, so a bare Options{} always works.
type Options struct {
	Name    string // collection display name
	EnvName string // sub-environment display name
	Host    string // sub-environment host value
	APIKey  string // sub-environment credential placeholder
	Color   string // sub-environment display color
}

const (
	defaultEnvName = "Default"
	defaultHost    = "api.example.com"
	defaultAPIKey  = "replace-me"
	defaultColor   = "#ff4a00"
)

// sortKeys hands out strictly decreasing sort keys. Every rendered folder
// and request takes one, so the document reads top to bottom in the client.
// The counter is owned by Generate and never shared.
type sortKeys struct {
	next int64
}

func newSortKeys() *sortKeys { return &sortKeys{next: -itemEpochMillis} }

func (s *sortKeys) take() int64 {
	v := s.next
	s.next--
	return v
}

// Generate renders the complete collection document. It is a pure function
// of the input document and options: no randomness, no wall clock.
func Generate(doc *spec.Document, opts Options) string {
	name := opts.Name
	if name == "" {
		title := doc.Title
		if title == "" {
			title = "API"
		}
		version := doc.Version
		if version == "" {
			version = "unknown"
		}
		name = fmt.Sprintf("%s (%s)", title, version)
	}
	envName := opts.EnvName
	if envName == "" {
		envName = defaultEnvName
	}
	host := opts.Host
	if host == "" {
		host = doc.Host
	}
	if host == "" {
		host = defaultHost
	}
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	color := opts.Color
	if color == "" {
		color = defaultColor
	}
	scheme := "https"
	if len(doc.Schemes) > 0 && doc.Schemes[0] != "" {
		scheme = doc.Schemes[0]
	}

	syn := NewSynthesizer(doc.Definitions)
	folders := GroupByTag(doc.Operations)
	keys := newSortKeys()

	var b docBuilder
	b.line(0, "type: collection.insomnia.rest/5.0")
	b.line(0, "name: "+escapeScalar(name))
	b.line(0, "meta:")
	b.line(2, "id: "+StableID("wrk", "api-collection"))
	b.line(2, fmt.Sprintf("created: %d", workspaceEpochMillis))
	b.line(2, fmt.Sprintf("modified: %d", workspaceEpochMillis))
	b.line(0, "collection:")

	for _, folder := range folders {
		b.line(2, "- name: "+escapeScalar(folder.Tag))
		b.line(4, "meta:")
		b.line(6, "id: "+StableID("fld", "folder:"+folder.Tag))
		b.line(6, fmt.Sprintf("created: %d", itemEpochMillis))
		b.line(6, fmt.Sprintf("modified: %d", itemEpochMillis))
		b.line(6, fmt.Sprintf("sortKey: %d", keys.take()))
		b.line(4, "children:")
		for _, op := range folder.Operations {
			writeRequest(&b, syn, op, keys.take())
		}
		// Folder-level bearer auth once per folder, not per request.
		if folder.Secured {
			b.line(4, "authentication:")
			b.line(6, "type: bearer")
			b.line(6, "token: >-")
			b.line(8, "{{ _.api_key }}")
		}
	}

	b.line(0, "cookieJar:")
	b.line(2, "name: Default Jar")
	b.line(2, "meta:")
	b.line(4, "id: "+StableID("jar", "default-cookie-jar"))
	b.line(4, fmt.Sprintf("created: %d", workspaceEpochMillis+2))
	b.line(4, fmt.Sprintf("modified: %d", workspaceEpochMillis+2))

	b.line(0, "environments:")
	b.line(2, "name: Base Environment")
	b.line(2, "meta:")
	b.line(4, "id: "+StableID("env", "base-environment"))
	b.line(4, fmt.Sprintf("created: %d", workspaceEpochMillis+1))
	b.line(4, fmt.Sprintf("modified: %d", workspaceEpochMillis+1))
	b.line(4, "isPrivate: false")
	b.line(2, "data:")
	b.line(4, "scheme: "+escapeScalar(scheme))
	b.line(4, "base_path: "+quoteScalar(doc.BasePath))
	b.line(4, "base_url: >-")
	b.line(6, "{{ _.scheme }}://{{ _.host }}{{ _.base_path }}")
	b.line(2, "subEnvironments:")
	b.line(4, "- name: "+escapeScalar(envName))
	b.line(6, "meta:")
	b.line(8, "id: "+StableID("env", "sub-environment"))
	b.line(8, fmt.Sprintf("created: %d", itemEpochMillis))
	b.line(8, fmt.Sprintf("modified: %d", itemEpochMillis))
	b.line(8, "isPrivate: false")
	b.line(8, fmt.Sprintf("sortKey: %d", itemEpochMillis))
	b.line(6, "data:")
	b.line(8, "host: "+escapeScalar(host))
	b.line(8, "api_key: "+escapeScalar(apiKey))
	b.line(6, "color: "+quoteScalar(color))

	return b.String()
}
