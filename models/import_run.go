package models

import "time"

// ImportRun é o registro de histórico de um import, salvo no Firestore em
// clinics/{clinic_id}/import_history.
type ImportRun struct {
	ClinicID     string    `firestore:"clinic_id"`
	UserUID      string    `firestore:"user_uid"`
	FileName     string    `firestore:"file_name"`
	SourceType   string    `firestore:"source_type"`
	TemplateID   string    `firestore:"template_id,omitempty"`
	TemplateName string    `firestore:"template_name,omitempty"`
	Success      bool      `firestore:"success"`
	DryRun       bool      `firestore:"dry_run"`
	TotalTasks   int       `firestore:"total_tasks"`
	ValidTasks   int       `firestore:"valid_tasks"`
	CreatedTasks int       `firestore:"created_tasks"`
	Warnings     []string  `firestore:"warnings,omitempty"`
	Error        string    `firestore:"error,omitempty"`
	Timestamp    time.Time `firestore:"timestamp"`
}
