package transcoder

import "strings"

// Code is the output of a converter: statements to emit in order, then the
// expression holding the converted value.
type Code struct {
	Statements []string
	Ref        string
}

// IsNoop reports whether the code leaves input untouched.
func (c Code) IsNoop(input string) bool {
	return len(c.Statements) == 0 && c.Ref == input
}

// Lines returns the statements split into individual lines.
func (c Code) Lines() []string {
	var lines []string
	for _, s := range c.Statements {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	return lines
}

// Converter produces Code converting the value held by ref.
type Converter func(ref string) Code

// TypeMapping is the compiled form of one schema type.
type TypeMapping struct {
	NativeToJSON Converter
	JSONToNative Converter
	NativeType   string
	JSONType     string
}

func identity(ref string) Code {
	return Code{Ref: ref}
}

func constant(value string) Converter {
	return func(string) Code {
		return Code{Ref: value}
	}
}

// indentUnit is the indentation used inside generated blocks.
const indentUnit = "    "

func indent(stmts []string) []string {
	out := make([]string, 0, len(stmts))
	for _, s := range stmts {
		for _, line := range strings.Split(s, "\n") {
			if line == "" {
				out = append(out, line)
				continue
			}
			out = append(out, indentUnit+line)
		}
	}
	return out
}

// block renders head, the indented body and tail as one multi-line statement.
func block(head string, body []string, tail string) string {
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, head)
	lines = append(lines, indent(body)...)
	lines = append(lines, tail)
	return strings.Join(lines, "\n")
}
