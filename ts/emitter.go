package ts

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Emitter builds source text with indentation.
type Emitter struct {
	buf    strings.Builder
	indent int
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString(indentUnit)
	}
}

// Line writes s at the current indentation. Multi-line strings are indented
// line by line.
func (e *Emitter) Line(s string) {
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			e.buf.WriteByte('\n')
			continue
		}
		e.writeIndent()
		e.buf.WriteString(line)
		e.buf.WriteByte('\n')
	}
}

// Linef writes a formatted line.
func (e *Emitter) Linef(format string, args ...any) {
	e.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (e *Emitter) Blank() {
	e.buf.WriteByte('\n')
}

// Block writes head followed by " {" and increases the indentation.
func (e *Emitter) Block(head string) {
	e.writeIndent()
	e.buf.WriteString(head)
	e.buf.WriteString(" {\n")
	e.indent++
}

// EndBlock closes a block.
func (e *Emitter) EndBlock() {
	e.EndBlockSuffix("")
}

// EndBlockSuffix closes a block with a suffix (e.g. ";" or " else {").
func (e *Emitter) EndBlockSuffix(suffix string) {
	if e.indent > 0 {
		e.indent--
	}
	e.writeIndent()
	e.buf.WriteByte('}')
	e.buf.WriteString(suffix)
	e.buf.WriteByte('\n')
}

// String returns the accumulated source.
func (e *Emitter) String() string {
	return e.buf.String()
}
