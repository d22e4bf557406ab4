package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSVLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{`"a,b"`, "c"}},
		{"empty line", "", []string{""}},
		{"trailing comma", "a,b,", []string{"a", "b", ""}},
		{"unbalanced quote eats the rest", `a,"b,c,d`, []string{"a", `"b,c,d`}},
		{"spaces kept", " a , b ", []string{" a ", " b "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSVLine(tt.line))
		})
	}
}

func TestParseCSVLine_QuotedCommaRoundTrip(t *testing.T) {
	fields := ParseCSVLine(`"a,b"`)
	assert.Len(t, fields, 1)
	assert.Equal(t, "a,b", cleanField(fields[0]))
}

func TestParseCSVLine_DoubledQuotesAreNotUnescaped(t *testing.T) {
	fields := ParseCSVLine(`"say ""hi""",x`)
	assert.Equal(t, []string{`"say ""hi"""`, "x"}, fields)
	assert.Equal(t, "say hi", cleanField(fields[0]))
}

func TestSplitLines(t *testing.T) {
	text := "\uFEFFtitle,description\r\n\r\n\"A1\",\"x\"\n   \n\"B2\",\"y\"\r\n"
	assert.Equal(t, []string{"title,description", `"A1","x"`, `"B2","y"`}, splitLines(text))
}
