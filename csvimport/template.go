package csvimport

import "strings"

var templateHeaders = []string{
	"title", "description", "category", "priority", "due_type", "due_date",
	"custom_due_date", "recurrence", "owner_notes", "assigned_to",
	"checklist_items", "attachments",
}

// Nenhum valor pode conter aspas: o parser não trata aspas duplicadas
var sampleRows = [][]string{
	{
		"Check autoclave", "Run the daily cycle test, then log the result", "operational", "high",
		"before_opening", "", "", "daily", "Log book is at the front desk", "",
		"Run test cycle|Check indicator strip|Record result", "",
	},
	{
		"Restock operatory supplies", "Gloves, masks and bibs for every operatory", "clinical", "medium",
		"end_of_day", "", "", "weekly", "", "frontdesk@clinic.example",
		"Count gloves|Count masks|Order missing items", "",
	},
	{
		"Review pending insurance claims", "Follow up on claims older than 30 days", "administrative", "low",
		"end_of_week", "2025-01-31T17:00:00Z", "", "monthly", "", "",
		"", "",
	},
}

// GenerateTemplate devolve o CSV modelo para download: cabeçalho + exemplos
func GenerateTemplate() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(templateHeaders, ","))
	sb.WriteString("\n")
	for _, row := range sampleRows {
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = `"` + v + `"`
		}
		sb.WriteString(strings.Join(quoted, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SampleTitles lista os títulos das linhas de exemplo, na ordem do arquivo
func SampleTitles() []string {
	titles := make([]string, len(sampleRows))
	for i, row := range sampleRows {
		titles[i] = row[0]
	}
	return titles
}
