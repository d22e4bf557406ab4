package models

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// taskColumns segue a ordem dos argumentos montados em taskArgs
var taskColumns = []string{
	"template_id", "clinic_id", "created_by", "title", "description", "category",
	"priority", "due_type", "due_date", "custom_due_date", "recurrence",
	"owner_notes", "assigned_to", "checklist_items", "attachments",
}

// TemplateRepository grava templates importados e suas tarefas no PostgreSQL
type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

// CreateTemplate insere o template e devolve o id gerado pelo banco
func (r *TemplateRepository) CreateTemplate(ctx context.Context, tpl ImportableTaskTemplate) (string, error) {
	query := `
		INSERT INTO task_templates (clinic_id, created_by, title, description, category, priority, due_type, recurrence, specialty, source_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query,
		tpl.ClinicID,
		nullIfEmpty(tpl.CreatedBy),
		tpl.Title,
		tpl.Description,
		EnumOrDefault(tpl.Category, TaskCategories, DefaultCategory),
		EnumOrDefault(tpl.Priority, TaskPriorities, DefaultPriority),
		EnumOrDefault(tpl.DueType, TaskDueTypes, DefaultDueType),
		EnumOrDefault(tpl.Recurrence, TaskRecurrences, DefaultRecurrence),
		nullIfEmpty(tpl.Specialty),
		tpl.SourceType,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert task template: %w", err)
	}
	return id, nil
}

// CreateTasks insere um lote de tarefas ligadas ao template já criado (tpl.ID).
// O lote inteiro vai em um único INSERT com várias linhas.
func (r *TemplateRepository) CreateTasks(ctx context.Context, tpl ImportableTaskTemplate, tasks []ImportableTask) error {
	if len(tasks) == 0 {
		return nil
	}
	if tpl.ID == "" {
		return errors.New("template id is required to insert tasks")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO tasks (")
	sb.WriteString(strings.Join(taskColumns, ", "))
	sb.WriteString(", status, created_at) VALUES ")

	params := make([]interface{}, 0, len(tasks)*len(taskColumns))
	paramCount := 1
	for i, task := range tasks {
		args, err := taskArgs(tpl, task)
		if err != nil {
			return fmt.Errorf("failed to encode task %q: %w", task.Title, err)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range args {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", paramCount)
			paramCount++
		}
		sb.WriteString(", 'pending', NOW())")
		params = append(params, args...)
	}

	if _, err := r.DB.ExecContext(ctx, sb.String(), params...); err != nil {
		return fmt.Errorf("failed to insert tasks: %w", err)
	}
	return nil
}

// DeleteTemplate remove o template e as tarefas já gravadas para ele
func (r *TemplateRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM tasks WHERE template_id = $1", templateID); err != nil {
		return fmt.Errorf("failed to delete template tasks: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM task_templates WHERE id = $1", templateID); err != nil {
		return fmt.Errorf("failed to delete task template: %w", err)
	}
	return nil
}

func taskArgs(tpl ImportableTaskTemplate, t ImportableTask) ([]interface{}, error) {
	checklist := t.ChecklistItems
	if checklist == nil {
		checklist = []string{}
	}
	checklistJSON, err := json.Marshal(checklist)
	if err != nil {
		return nil, err
	}

	var attachments interface{}
	if t.Attachments != nil {
		b, err := json.Marshal(t.Attachments)
		if err != nil {
			return nil, err
		}
		attachments = string(b)
	}

	// Valores fora do enum caem no padrão do template (validação branda)
	return []interface{}{
		tpl.ID,
		tpl.ClinicID,
		nullIfEmpty(tpl.CreatedBy),
		t.Title,
		t.Description,
		EnumOrDefault(t.Category, TaskCategories, EnumOrDefault(tpl.Category, TaskCategories, DefaultCategory)),
		EnumOrDefault(t.Priority, TaskPriorities, EnumOrDefault(tpl.Priority, TaskPriorities, DefaultPriority)),
		EnumOrDefault(t.DueType, TaskDueTypes, EnumOrDefault(tpl.DueType, TaskDueTypes, DefaultDueType)),
		nullIfEmpty(t.DueDate),
		nullIfEmpty(t.CustomDueDate),
		EnumOrDefault(t.Recurrence, TaskRecurrences, EnumOrDefault(tpl.Recurrence, TaskRecurrences, DefaultRecurrence)),
		t.OwnerNotes,
		nullIfEmpty(t.AssignedTo),
		string(checklistJSON),
		attachments,
	}, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
