package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"gopkg.in/yaml.v3"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError ErrorCode = "InputError"
	ParseError ErrorCode = "ParseError"
)

// SpecError is a structured error with an optional input location.
type SpecError struct {
	Code     ErrorCode
	Message  string
	Location string // file path
	Cause    error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

// Load reads and parses a Swagger 2.0 JSON document from disk.
// A missing or unreadable file is fatal (InputError); parsing is otherwise
// maximally permissive so incomplete hand-authored documents still convert.
func Load(path string) (*Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &SpecError{Code: InputError, Message: "spec: input path is empty"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: read %s: %v", path, err), Location: path, Cause: err}
	}
	doc, err := Parse(data)
	if err != nil {
		var se *SpecError
		if errors.As(err, &se) && se.Location == "" {
			se.Location = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse builds the Document from raw JSON bytes. The bytes are decoded
// twice: a typed kin-openapi pass for early diagnosis and document
// metadata, and a yaml.Node pass that preserves the key ordering the
// generator depends on (Go maps would lose it).
func Parse(data []byte) (*Document, error) {
	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: parse document: %v", err), Cause: err}
	}
	if v2.Swagger != "" && !strings.HasPrefix(strings.TrimSpace(v2.Swagger), "2.") {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: unsupported swagger version %q (expected 2.x)", v2.Swagger)}
	}

	doc := &Document{
		Title:    strings.TrimSpace(v2.Info.Title),
		Version:  strings.TrimSpace(v2.Info.Version),
		Host:     strings.TrimSpace(v2.Host),
		BasePath: strings.TrimSpace(v2.BasePath),
		Schemes:  append([]string(nil), v2.Schemes...),
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: parse document tree: %v", err), Cause: err}
	}
	parseTree(doc, &root)
	return doc, nil
}
