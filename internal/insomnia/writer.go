package insomnia

import "strings"

// yamlSpecials are the characters that force double-quoting of an emitted
// scalar. A leading "- " forces quoting too (it would read as a sequence).
const yamlSpecials = ":{}[]&*?|>!%@`#,\n"

// escapeScalar renders s as a YAML scalar, quoting only when required so
// the common case stays plain and readable.
func escapeScalar(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, yamlSpecials) || strings.HasPrefix(s, "- ") {
		return quoteScalar(s)
	}
	return s
}

// quoteScalar always double-quotes, escaping backslashes and double quotes.
func quoteScalar(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// docBuilder accumulates the output document line by line. Indentation is
// absolute (in spaces) because the format pins exact column positions.
type docBuilder struct {
	sb strings.Builder
}

func (b *docBuilder) line(indent int, s string) {
	for i := 0; i < indent; i++ {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *docBuilder) String() string { return b.sb.String() }
