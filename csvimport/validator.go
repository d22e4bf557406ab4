package csvimport

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"clinica-tarefas/models"
)

const (
	templateTitleMin  = 2
	templateTitleMax  = 200
	taskTitleMin      = 2
	taskTitleMax      = 255
	descriptionMax    = 1000
	ownerNotesMax     = 500
	checklistItemsMax = 20
)

var validate = validator.New()

// ValidationResult separa erros (bloqueiam o import) de avisos (apenas informativos)
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateImport confere o template e o conjunto de tarefas. É uma função pura:
// a mesma entrada sempre gera o mesmo resultado.
func ValidateImport(tpl models.ImportableTaskTemplate, tasks []models.ImportableTask) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}

	validateTemplate(tpl, &res)

	if len(tasks) == 0 {
		res.Errors = append(res.Errors, "At least one task is required")
	}
	for i, task := range tasks {
		validateTask(i+1, task, &res)
	}
	for _, title := range duplicateTitles(tasks) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Duplicate task title: %q", title))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func validateTemplate(tpl models.ImportableTaskTemplate, res *ValidationResult) {
	title := strings.TrimSpace(tpl.Title)
	n := utf8.RuneCountInString(title)
	switch {
	case title == "":
		res.Errors = append(res.Errors, "Template title is required")
	case n < templateTitleMin || n > templateTitleMax:
		res.Errors = append(res.Errors, fmt.Sprintf("Template title must be between %d and %d characters", templateTitleMin, templateTitleMax))
	}

	// Validação branda: o valor é aceito e a gravação usa o padrão
	if tpl.Category != "" && !models.TaskCategories[tpl.Category] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown category %q, %q will be used", tpl.Category, models.DefaultCategory))
	}
	if tpl.Priority != "" && !models.TaskPriorities[tpl.Priority] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown priority %q, %q will be used", tpl.Priority, models.DefaultPriority))
	}
	if tpl.Recurrence != "" && !models.TaskRecurrences[tpl.Recurrence] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown recurrence %q, %q will be used", tpl.Recurrence, models.DefaultRecurrence))
	}
	if tpl.DueType != "" && !models.TaskDueTypes[tpl.DueType] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown due type %q, %q will be used", tpl.DueType, models.DefaultDueType))
	}
}

func validateTask(n int, task models.ImportableTask, res *ValidationResult) {
	title := strings.TrimSpace(task.Title)
	length := utf8.RuneCountInString(title)
	switch {
	case title == "":
		res.Errors = append(res.Errors, fmt.Sprintf("Task %d: title is required", n))
	case length < taskTitleMin || length > taskTitleMax:
		res.Errors = append(res.Errors, fmt.Sprintf("Task %d: title must be between %d and %d characters", n, taskTitleMin, taskTitleMax))
	}

	if utf8.RuneCountInString(task.Description) > descriptionMax {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: description is longer than %d characters", n, descriptionMax))
	}
	if utf8.RuneCountInString(task.OwnerNotes) > ownerNotesMax {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: owner notes are longer than %d characters", n, ownerNotesMax))
	}
	if len(task.ChecklistItems) > checklistItemsMax {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: checklist has more than %d items", n, checklistItemsMax))
	}
	if task.DueDate != "" && !IsValidISODate(task.DueDate) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: due date %q is not an ISO-8601 date-time", n, task.DueDate))
	}
	if task.CustomDueDate != "" && !IsValidISODate(task.CustomDueDate) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: custom due date %q is not an ISO-8601 date-time", n, task.CustomDueDate))
	}
	if task.AssignedTo != "" && !isUUID(task.AssignedTo) && !isEmail(task.AssignedTo) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Task %d: assigned_to %q is neither a user id nor an email", n, task.AssignedTo))
	}
}

// IsValidISODate exige data parseável e com o separador "T" de data-hora.
// "2025-01-15" sozinho não passa.
func IsValidISODate(s string) bool {
	if !strings.Contains(s, "T") {
		return false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isUUID aceita somente a forma canônica de 36 caracteres, versões 1 a 5
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	v := id.Version()
	return v >= 1 && v <= 5 && id.Variant() == uuid.RFC4122
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// duplicateTitles devolve cada título repetido uma única vez, na ordem em que a
// repetição aparece. A comparação ignora caixa e espaços nas pontas.
func duplicateTitles(tasks []models.ImportableTask) []string {
	seen := make(map[string]int, len(tasks))
	var dups []string
	for _, task := range tasks {
		key := strings.ToLower(strings.TrimSpace(task.Title))
		if key == "" {
			continue
		}
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, key)
		}
	}
	return dups
}
