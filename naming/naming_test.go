package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatorIsMonotonicAcrossCategories(t *testing.T) {
	a := NewAllocator()
	assert.Equal(t, "list0", a.Next("list"))
	assert.Equal(t, "pair1", a.Next("pair"))
	assert.Equal(t, "list2", a.Next("list"))
	assert.Equal(t, 3, a.Count())

	b := NewAllocator()
	assert.Equal(t, "list0", b.Next("list"), "allocators are independent")
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"owner", true},
		{"_private", true},
		{"$ref", true},
		{"a1_$", true},
		{"", false},
		{"1abc", false},
		{"weird-name!", false},
		{"with space", false},
		{"ünicode", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsIdentifier(tt.name), tt.name)
	}
}

func TestAccessAndProperty(t *testing.T) {
	assert.Equal(t, "value.owner", Access("value", "owner"))
	assert.Equal(t, "value['weird-name!']", Access("value", "weird-name!"))
	assert.Equal(t, "owner: x", Property("owner", "x"))
	assert.Equal(t, "'weird-name!': x", Property("weird-name!", "x"))
	assert.Equal(t, "'1st'", PropertyKey("1st"))
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `'plain'`},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"line\nbreak\r\t", `'line\nbreak\r\t'`},
		{"\x01", `'\x01'`},
		{"sep\u2028", `'sep\u2028'`},
		{"ünï", `'ünï'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Quote(tt.in), tt.in)
	}
}

func TestPascalCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"transfer", "Transfer"},
		{"balanceOf", "BalanceOf"},
		{"set_metadata_url", "SetMetadataUrl"},
		{"update-operator", "UpdateOperator"},
		{"__double__", "Double"},
		{"énorme_chose", "ÉnormeChose"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PascalCase(tt.in), tt.in)
	}
}
