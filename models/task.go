package models

// Valores padrão aplicados quando a planilha não informa o campo
const (
	DefaultCategory   = "operational"
	DefaultPriority   = "medium"
	DefaultDueType    = "anytime"
	DefaultRecurrence = "once"

	SourceTypeCSV  = "csv_import"
	SourceTypeXLSX = "xlsx_import"
)

var TaskCategories = map[string]bool{
	"operational":    true,
	"administrative": true,
	"clinical":       true,
	"specialty":      true,
	"training":       true,
	"calendar":       true,
}

var TaskPriorities = map[string]bool{"low": true, "medium": true, "high": true}

var TaskDueTypes = map[string]bool{
	"before_opening": true,
	"before_1pm":     true,
	"end_of_day":     true,
	"end_of_week":    true,
	"anytime":        true,
}

var TaskRecurrences = map[string]bool{
	"once":     true,
	"daily":    true,
	"weekly":   true,
	"biweekly": true,
	"monthly":  true,
}

// ImportableTaskTemplate é o registro pai criado para cada arquivo importado.
// ClinicID e CreatedBy são preenchidos por quem chama o import, nunca pelo parser.
type ImportableTaskTemplate struct {
	ID          string `json:"id,omitempty"`
	ClinicID    string `json:"clinic_id,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueType     string `json:"due_type"`
	Recurrence  string `json:"recurrence"`
	Specialty   string `json:"specialty,omitempty"`
	SourceType  string `json:"source_type"`
}

// ImportableTask é uma linha da planilha. Campos vazios significam "não informado".
type ImportableTask struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	DueType        string   `json:"due_type,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`        // ISO-8601
	CustomDueDate  string   `json:"custom_due_date,omitempty"` // ISO-8601
	Recurrence     string   `json:"recurrence,omitempty"`
	OwnerNotes     string   `json:"owner_notes,omitempty"`
	AssignedTo     string   `json:"assigned_to,omitempty"` // UUID ou e-mail
	ChecklistItems []string `json:"checklist_items,omitempty"`
	// Attachments guarda o JSON decodificado ou, se não for JSON, o texto original
	Attachments any `json:"attachments,omitempty"`
}

// EnumOrDefault devolve value quando ele pertence ao conjunto, senão o padrão
func EnumOrDefault(value string, allowed map[string]bool, def string) string {
	if allowed[value] {
		return value
	}
	return def
}
