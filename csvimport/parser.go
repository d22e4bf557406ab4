package csvimport

import (
	"strings"
)

// ParseCSVLine divide uma linha em campos. Aspas alternam o modo "dentro de campo"
// e, nesse modo, vírgulas fazem parte do valor. As aspas continuam no resultado
// (cleanField remove) e aspas duplicadas ("") não são tratadas como escape.
func ParseCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}

// cleanField remove as aspas e os espaços das pontas de um campo bruto
func cleanField(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

// splitLines quebra o texto em linhas não vazias, aceitando \r\n e BOM UTF-8
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
