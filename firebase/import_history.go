package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"clinica-tarefas/models"
	"clinica-tarefas/utilities"
)

// ImportHistoryLogger grava um documento por import em
// clinics/{clinic_id}/import_history. Falhas só são logadas.
type ImportHistoryLogger struct {
	client *firestore.Client
}

func NewImportHistoryLogger(client *firestore.Client) *ImportHistoryLogger {
	return &ImportHistoryLogger{client: client}
}

func historyCollectionPath(clinicID string) string {
	return fmt.Sprintf("clinics/%s/import_history", clinicID)
}

func (l *ImportHistoryLogger) LogImportRun(ctx context.Context, run models.ImportRun) {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	docRef, _, err := l.client.Collection(historyCollectionPath(run.ClinicID)).Add(ctx, run)
	if err != nil {
		utilities.LogErrorWithContext(err,
			utilities.ErrorContext{UserUID: run.UserUID, ClinicID: run.ClinicID},
			"LogImportRun: falha ao salvar histórico de import")
		return
	}
	utilities.LogDebug("LogImportRun: histórico salvo com ID %s para clínica %s", docRef.ID, run.ClinicID)
}
