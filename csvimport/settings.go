package csvimport

import "clinica-tarefas/models"

// TemplateSettings são os padrões do template, copiados da primeira tarefa
type TemplateSettings struct {
	Category   string
	Priority   string
	DueType    string
	Recurrence string
}

func defaultTemplateSettings() TemplateSettings {
	return TemplateSettings{
		Category:   models.DefaultCategory,
		Priority:   models.DefaultPriority,
		DueType:    models.DefaultDueType,
		Recurrence: models.DefaultRecurrence,
	}
}

// ExtractTemplateSettings olha apenas a primeira tarefa mapeada. As linhas
// seguintes nunca alteram os padrões do template.
func ExtractTemplateSettings(first *models.ImportableTask) TemplateSettings {
	s := defaultTemplateSettings()
	if first == nil {
		return s
	}
	if first.Category != "" {
		s.Category = first.Category
	}
	if first.Priority != "" {
		s.Priority = first.Priority
	}
	if first.DueType != "" {
		s.DueType = first.DueType
	}
	if first.Recurrence != "" {
		s.Recurrence = first.Recurrence
	}
	return s
}

func (s TemplateSettings) Apply(tpl *models.ImportableTaskTemplate) {
	tpl.Category = s.Category
	tpl.Priority = s.Priority
	tpl.DueType = s.DueType
	tpl.Recurrence = s.Recurrence
}
