package csvimport

import (
	"encoding/json"
	"strings"
	"time"

	"clinica-tarefas/models"
)

type field int

const (
	fieldUnknown field = iota
	fieldTitle
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDueType
	fieldDueDate
	fieldCustomDueDate
	fieldRecurrence
	fieldOwnerNotes
	fieldAssignedTo
	fieldChecklist
	fieldAttachments
)

// Chaves já normalizadas: sem "_", "-" ou espaços
var headerFields = map[string]field{
	"title":          fieldTitle,
	"description":    fieldDescription,
	"category":       fieldCategory,
	"priority":       fieldPriority,
	"duetype":        fieldDueType,
	"duedate":        fieldDueDate,
	"customduedate":  fieldCustomDueDate,
	"recurrence":     fieldRecurrence,
	"ownernotes":     fieldOwnerNotes,
	"assignedto":     fieldAssignedTo,
	"checklistitems": fieldChecklist,
	"checklist":      fieldChecklist,
	"attachments":    fieldAttachments,
}

// isoLayout reproduz o formato de Date.toISOString
const isoLayout = "2006-01-02T15:04:05.000Z"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// NormalizeHeader deixa o nome da coluna em minúsculas e trata "_" e "-" como
// equivalentes, então due_type, due-type e duetype viram a mesma chave.
func NormalizeHeader(h string) string {
	h = strings.ToLower(cleanField(h))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(h)
}

func hasTitleColumn(headers []string) bool {
	for _, h := range headers {
		if headerFields[h] == fieldTitle {
			return true
		}
	}
	return false
}

// MapRow converte os valores de uma linha em tarefa usando os cabeçalhos já
// normalizados. Os valores chegam sem aspas (quem chama limpa os campos do CSV).
// Devolve nil quando o título falta ou tem menos de 2 caracteres.
func MapRow(headers []string, values []string) *models.ImportableTask {
	task := &models.ImportableTask{}

	for i, h := range headers {
		if i >= len(values) {
			break
		}
		value := strings.TrimSpace(values[i])
		if value == "" {
			continue
		}

		switch headerFields[h] {
		case fieldTitle:
			task.Title = value
		case fieldDescription:
			task.Description = value
		case fieldCategory:
			task.Category = value
		case fieldPriority:
			task.Priority = value
		case fieldDueType:
			task.DueType = value
		case fieldRecurrence:
			task.Recurrence = value
		case fieldOwnerNotes:
			task.OwnerNotes = value
		case fieldAssignedTo:
			task.AssignedTo = value
		case fieldDueDate:
			if iso, ok := parseDate(value); ok {
				task.DueDate = iso
			}
		case fieldCustomDueDate:
			if iso, ok := parseDate(value); ok {
				task.CustomDueDate = iso
			}
		case fieldChecklist:
			task.ChecklistItems = splitChecklist(value)
		case fieldAttachments:
			task.Attachments = parseAttachments(value)
		}
	}

	if len([]rune(task.Title)) < 2 {
		return nil
	}
	return task
}

func parseDate(value string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(isoLayout), true
		}
	}
	return "", false
}

func splitChecklist(value string) []string {
	var items []string
	for _, part := range strings.Split(value, "|") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseAttachments(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}
	return decoded
}
