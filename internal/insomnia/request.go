package insomnia

import (
	"fmt"
	"strings"

	"github.com/docstack/swagger2insomnia/internal/spec"
)

// defaultMime tags request bodies when the operation declares no consumes.
const defaultMime = "application/json"

// EmitRequest renders the document fragment for a single operation at the
// nesting depth of a folder child. Exposed for tests; Generate goes through
// writeRequest directly.
func EmitRequest(syn *Synthesizer, op spec.Operation, sortKey int64) string {
	var b docBuilder
	writeRequest(&b, syn, op, sortKey)
	return b.String()
}

func writeRequest(b *docBuilder, syn *Synthesizer, op spec.Operation, sortKey int64) {
	method := strings.ToUpper(op.Method)
	summary := op.Summary
	if summary == "" {
		summary = method + " " + op.Path
	}

	b.line(6, "- url: >-")
	b.line(12, "{{ _.base_url }}"+formatURLPath(op.Path, op.Parameters))
	b.line(8, "name: "+escapeScalar(summary))
	b.line(8, "meta:")
	b.line(10, "id: "+StableID("req", op.Method+":"+op.Path))
	b.line(10, fmt.Sprintf("created: %d", itemEpochMillis))
	b.line(10, fmt.Sprintf("modified: %d", itemEpochMillis))
	b.line(10, "isPrivate: false")
	if desc := strings.TrimSpace(op.Description); desc != "" {
		descLines := strings.Split(desc, "\n")
		if len(descLines) == 1 {
			b.line(10, "description: "+escapeScalar(descLines[0]))
		} else {
			b.line(10, "description: |-")
			for _, dl := range descLines {
				b.line(12, dl)
			}
		}
	}
	b.line(10, fmt.Sprintf("sortKey: %d", sortKey))
	b.line(8, "method: "+method)

	// Body only for methods that carry one and only when a body parameter
	// with a schema is declared.
	wroteHeaders := false
	if methodHasBody(method) {
		if bp := bodyParameter(op.Parameters); bp != nil {
			text, err := RenderSample(syn.Sample(bp.Schema, 0))
			if err == nil {
				mime := defaultMime
				if len(op.Consumes) > 0 && op.Consumes[0] != "" {
					mime = op.Consumes[0]
				}
				b.line(8, "body:")
				b.line(10, "mimeType: "+escapeScalar(mime))
				b.line(10, "text: |-")
				for _, bl := range strings.Split(text, "\n") {
					b.line(12, bl)
				}
				b.line(8, "headers:")
				b.line(10, "- name: Content-Type")
				b.line(12, "disabled: false")
				b.line(12, "value: "+escapeScalar(mime))
				wroteHeaders = true
			}
		}
	}

	// The Authorization entry shares one header list with Content-Type, so
	// it must be written before any parameters block opens.
	if op.Secured {
		if !wroteHeaders {
			b.line(8, "headers:")
		}
		b.line(10, "- name: Authorization")
		b.line(12, "disabled: false")
		b.line(12, "value: >-")
		b.line(14, "{{ _.api_key }}")
	}

	// Query parameters are disabled by default so they stay discoverable
	// without changing the request.
	wroteParams := false
	for _, p := range op.Parameters {
		if p.In != spec.InQuery {
			continue
		}
		if !wroteParams {
			b.line(8, "parameters:")
			wroteParams = true
		}
		b.line(10, "- name: "+escapeScalar(p.Name))
		b.line(12, "disabled: true")
		b.line(12, "value: "+quoteScalar(p.Example))
	}

	b.line(8, "settings:")
	b.line(10, "renderRequestBody: true")
	b.line(10, "encodeUrl: true")
	b.line(10, "followRedirects: global")
	b.line(10, "cookies:")
	b.line(12, "send: true")
	b.line(12, "store: true")
	b.line(10, "rebuildPath: true")
}

// formatURLPath substitutes {param} path segments: literally when the
// parameter declares an example, otherwise with an environment template
// so the value stays editable in the client.
func formatURLPath(path string, params []spec.Parameter) string {
	for _, p := range params {
		if p.In != spec.InPath {
			continue
		}
		placeholder := "{" + p.Name + "}"
		if p.Example != "" {
			path = strings.ReplaceAll(path, placeholder, p.Example)
		} else {
			path = strings.ReplaceAll(path, placeholder, "{{ _."+p.Name+" }}")
		}
	}
	return path
}

func methodHasBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

func bodyParameter(params []spec.Parameter) *spec.Parameter {
	for i := range params {
		if params[i].In == spec.InBody && params[i].Schema != nil {
			return &params[i]
		}
	}
	return nil
}
