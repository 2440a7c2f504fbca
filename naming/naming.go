// Package naming provides identifier hygiene for generated TypeScript:
// unique temporaries, identifier-safe property access and string literals.
package naming

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Allocator hands out temporary identifiers of the form category+N where N
// increases for every call, across categories. It is owned by one
// generation run and is not safe for concurrent use.
type Allocator struct {
	counter int
}

// NewAllocator returns an allocator starting at zero.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh identifier for category.
func (a *Allocator) Next(category string) string {
	id := category + strconv.Itoa(a.counter)
	a.counter++
	return id
}

// Count returns how many identifiers have been allocated.
func (a *Allocator) Count() int {
	return a.counter
}

// IsIdentifier reports whether name can be used with dotted access.
func IsIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Access returns an expression reading property name of ref.
func Access(ref, name string) string {
	if IsIdentifier(name) {
		return ref + "." + name
	}
	return ref + "[" + Quote(name) + "]"
}

// Property returns an object literal entry defining name as value.
func Property(name, value string) string {
	return PropertyKey(name) + ": " + value
}

// PropertyKey returns name as an object literal or type literal key.
func PropertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return Quote(name)
}

// Quote returns s as a single-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		case utf8.RuneError:
			b.WriteString(`\ufffd`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\x`)
				b.WriteString(hex2(byte(r)))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func hex2(c byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[c>>4], digits[c&0xf]})
}

// PascalCase splits s on '-' and '_' and upper-cases the first letter of
// each segment. The rest of every segment is kept as is.
func PascalCase(s string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	for _, seg := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' }) {
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteString(upper.String(string(r)))
		b.WriteString(seg[size:])
	}
	return b.String()
}
