package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"clinica-tarefas/csvimport"
	"clinica-tarefas/models"
	"clinica-tarefas/utilities"
)

const defaultMaxUploadSize = 5 << 20

// MembershipChecker responde se o usuário pertence à equipe da clínica
type MembershipChecker interface {
	IsMember(ctx context.Context, userFirebaseUID string, clinicID string) (bool, error)
}

// HistoryLogger registra cada execução de import (opcional)
type HistoryLogger interface {
	LogImportRun(ctx context.Context, run models.ImportRun)
}

type ImportHandlers struct {
	Importer      *csvimport.Importer
	Members       MembershipChecker
	History       HistoryLogger
	MaxUploadSize int64
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utilities.LogError(err, "Erro ao codificar resposta JSON")
	}
}

// ImportTemplateHandler recebe o arquivo (campo "file") e cria o template com as tarefas
func (h *ImportHandlers) ImportTemplateHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando import de template de tarefas")

	clinicID, ok := mux.Vars(r)["clinic_id"]
	if !ok {
		http.Error(w, "Clinic ID is required", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(clinicID); err != nil {
		utilities.LogError(err, "ImportTemplateHandler: clinic_id inválido")
		http.Error(w, "Invalid Clinic ID format", http.StatusBadRequest)
		return
	}

	uid, ok := UserUIDFromContext(r.Context())
	if !ok {
		utilities.LogError(errors.New("UID não encontrado no contexto"), "ImportTemplateHandler: Falha na autenticação")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ectx := utilities.ErrorContext{UserUID: uid, ClinicID: clinicID, RequestID: r.Header.Get("X-Request-ID")}

	isMember, err := h.Members.IsMember(r.Context(), uid, clinicID)
	if err != nil {
		utilities.LogErrorWithContext(err, ectx, "ImportTemplateHandler: erro ao verificar membresia")
		http.Error(w, "Failed to verify clinic membership", http.StatusInternalServerError)
		return
	}
	if !isMember {
		utilities.LogInfo("ImportTemplateHandler: usuário %s não é membro da clínica %s", uid, clinicID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	maxSize := h.MaxUploadSize
	if maxSize <= 0 {
		maxSize = defaultMaxUploadSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		utilities.LogErrorWithContext(err, ectx, "ImportTemplateHandler: erro ao ler formulário")
		http.Error(w, "Invalid upload or file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utilities.LogErrorWithContext(err, ectx, "ImportTemplateHandler: arquivo ausente")
		http.Error(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(r.FormValue("dry_run"))

	result := h.Importer.Import(r.Context(), csvimport.ImportRequest{
		File: csvimport.ImportFile{
			Name:          header.Filename,
			Reader:        file,
			TemplateTitle: r.FormValue("template_title"),
		},
		ClinicID:  clinicID,
		CreatedBy: uid,
		DryRun:    dryRun,
	})

	h.logHistory(r.Context(), uid, clinicID, header.Filename, dryRun, result)

	if !result.Success {
		utilities.LogErrorWithContext(errors.New(result.Error), ectx, "ImportTemplateHandler: import falhou")
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	utilities.LogInfo("ImportTemplateHandler: template %q importado para clínica %s (%d tarefas)",
		result.Summary.TemplateName, clinicID, result.Summary.ValidTasks)
	writeJSON(w, http.StatusOK, result)
}

func (h *ImportHandlers) logHistory(ctx context.Context, uid, clinicID, fileName string, dryRun bool, result *csvimport.ImportResult) {
	if h.History == nil {
		return
	}
	run := models.ImportRun{
		ClinicID: clinicID,
		UserUID:  uid,
		FileName: fileName,
		Success:  result.Success,
		DryRun:   dryRun,
		Error:    result.Error,
	}
	if result.Data != nil {
		run.TemplateID = result.Data.Template.ID
		run.SourceType = result.Data.Template.SourceType
	}
	if s := result.Summary; s != nil {
		run.TemplateName = s.TemplateName
		run.TotalTasks = s.TotalTasks
		run.ValidTasks = s.ValidTasks
		run.CreatedTasks = s.CreatedTasks
		run.Warnings = s.Warnings
	}
	h.History.LogImportRun(ctx, run)
}
