package csvimport

import (
	"strings"

	"clinica-tarefas/models"
)

// SanitizeTaskData apara os textos, preenche os enums ausentes e descarta itens
// vazios do checklist. Aplicar duas vezes dá o mesmo resultado que aplicar uma.
func SanitizeTaskData(t models.ImportableTask) models.ImportableTask {
	out := t
	out.Title = strings.TrimSpace(t.Title)
	out.Description = strings.TrimSpace(t.Description)
	out.OwnerNotes = strings.TrimSpace(t.OwnerNotes)
	out.AssignedTo = strings.TrimSpace(t.AssignedTo)
	out.Category = orDefault(t.Category, models.DefaultCategory)
	out.Priority = orDefault(t.Priority, models.DefaultPriority)
	out.DueType = orDefault(t.DueType, models.DefaultDueType)
	out.Recurrence = orDefault(t.Recurrence, models.DefaultRecurrence)

	out.ChecklistItems = nil
	for _, item := range t.ChecklistItems {
		if item = strings.TrimSpace(item); item != "" {
			out.ChecklistItems = append(out.ChecklistItems, item)
		}
	}
	return out
}

func SanitizeTemplate(tpl models.ImportableTaskTemplate) models.ImportableTaskTemplate {
	out := tpl
	out.Title = strings.TrimSpace(tpl.Title)
	out.Description = strings.TrimSpace(tpl.Description)
	out.Specialty = strings.TrimSpace(tpl.Specialty)
	out.Category = orDefault(tpl.Category, models.DefaultCategory)
	out.Priority = orDefault(tpl.Priority, models.DefaultPriority)
	out.DueType = orDefault(tpl.DueType, models.DefaultDueType)
	out.Recurrence = orDefault(tpl.Recurrence, models.DefaultRecurrence)
	return out
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
