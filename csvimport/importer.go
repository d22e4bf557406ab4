package csvimport

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"clinica-tarefas/models"
	"clinica-tarefas/utilities"
)

const DefaultBatchSize = 5

// Store é a camada de persistência usada pelo import. CreateTemplate devolve o
// id gerado; CreateTasks recebe o template já com esse id.
type Store interface {
	CreateTemplate(ctx context.Context, tpl models.ImportableTaskTemplate) (string, error)
	CreateTasks(ctx context.Context, tpl models.ImportableTaskTemplate, tasks []models.ImportableTask) error
}

// TemplateDeleter é opcional; só é usado com Options.RollbackOnFailure
type TemplateDeleter interface {
	DeleteTemplate(ctx context.Context, templateID string) error
}

type ImportFile struct {
	Name   string
	Reader io.Reader
	// TemplateTitle sobrescreve o título derivado do nome do arquivo
	TemplateTitle string
}

type ImportRequest struct {
	File      ImportFile
	ClinicID  string
	CreatedBy string
	DryRun    bool
}

type ImportData struct {
	Template models.ImportableTaskTemplate `json:"template"`
	Tasks    []models.ImportableTask       `json:"tasks"`
}

type ImportSummary struct {
	TotalTasks   int      `json:"totalTasks"`
	ValidTasks   int      `json:"validTasks"`
	InvalidTasks int      `json:"invalidTasks"`
	TemplateName string   `json:"templateName"`
	Warnings     []string `json:"warnings,omitempty"`
	CreatedTasks int      `json:"createdTasks"`
}

// ImportResult é sempre devolvido no lugar de um error: falhas viram Success=false
type ImportResult struct {
	Success bool           `json:"success"`
	Data    *ImportData    `json:"data"`
	Error   string         `json:"error,omitempty"`
	Summary *ImportSummary `json:"summary,omitempty"`
}

func failure(msg string, summary *ImportSummary) *ImportResult {
	return &ImportResult{Success: false, Error: msg, Summary: summary}
}

type Options struct {
	BatchSize         int
	RollbackOnFailure bool
}

// Importer grava o template e depois as tarefas em lotes, parando no primeiro
// lote com erro. Lotes anteriores não são desfeitos, a menos que
// RollbackOnFailure esteja ligado e o Store saiba apagar templates.
type Importer struct {
	store Store
	opts  Options
}

func NewImporter(store Store, opts Options) *Importer {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Importer{store: store, opts: opts}
}

// ProcessFile lê, mapeia e valida o arquivo sem gravar nada
func ProcessFile(file ImportFile) (result *ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			utilities.LogError(fmt.Errorf("%v", r), "ProcessFile: panic ao processar arquivo")
			result = failure(fmt.Sprintf("unexpected error while processing file: %v", r), nil)
		}
	}()

	if file.Reader == nil {
		return failure("no file provided", nil)
	}

	sourceType := models.SourceTypeCSV
	var rows [][]string
	var err error
	if isXLSX(file.Name) {
		sourceType = models.SourceTypeXLSX
		rows, err = readXLSXRows(file.Reader)
	} else {
		rows, err = readCSVRows(file.Reader)
	}
	if err != nil {
		utilities.LogError(err, "ProcessFile: falha ao ler arquivo "+file.Name)
		return failure(fmt.Sprintf("failed to read file: %v", err), nil)
	}

	return processRows(file, sourceType, rows)
}

func readCSVRows(r io.Reader) ([][]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(content))
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		fields := ParseCSVLine(line)
		for i := range fields {
			fields[i] = cleanField(fields[i])
		}
		rows = append(rows, fields)
	}
	return rows, nil
}

func processRows(file ImportFile, sourceType string, rows [][]string) *ImportResult {
	if len(rows) < 2 {
		return failure("file must contain a header row and at least one data row", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}
	if !hasTitleColumn(headers) {
		return failure(`file must contain a "title" column`, nil)
	}

	dataRows := rows[1:]
	tasks := make([]models.ImportableTask, 0, len(dataRows))
	for i, values := range dataRows {
		task := MapRow(headers, values)
		if task == nil {
			// linha 1 é o cabeçalho
			utilities.LogDebug("ProcessFile: linha %d ignorada (título ausente ou curto demais)", i+2)
			continue
		}
		tasks = append(tasks, *task)
	}

	tpl := models.ImportableTaskTemplate{
		Title:      templateTitle(file),
		SourceType: sourceType,
	}
	if base := fileBase(file.Name); base != "" {
		tpl.Description = fmt.Sprintf("Imported from %s", base)
	}
	summary := &ImportSummary{
		TotalTasks:   len(dataRows),
		ValidTasks:   len(tasks),
		InvalidTasks: len(dataRows) - len(tasks),
		TemplateName: tpl.Title,
	}

	if len(tasks) == 0 {
		return failure("no valid tasks found in file", summary)
	}

	ExtractTemplateSettings(&tasks[0]).Apply(&tpl)

	validation := ValidateImport(tpl, tasks)
	if len(validation.Warnings) > 0 {
		summary.Warnings = validation.Warnings
	}
	if !validation.IsValid {
		return failure("validation failed: "+strings.Join(validation.Errors, "; "), summary)
	}

	return &ImportResult{
		Success: true,
		Data:    &ImportData{Template: tpl, Tasks: tasks},
		Summary: summary,
	}
}

const fallbackTemplateTitle = "Imported Template"

// templateTitle usa o título informado como está (o validador rejeita se for
// inválido). O derivado do nome do arquivo é truncado ou trocado pelo padrão.
func templateTitle(file ImportFile) string {
	if t := strings.TrimSpace(file.TemplateTitle); t != "" {
		return t
	}
	base := fileBase(file.Name)
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if utf8.RuneCountInString(name) < templateTitleMin {
		return fallbackTemplateTitle
	}
	if utf8.RuneCountInString(name) > templateTitleMax {
		name = strings.TrimSpace(string([]rune(name)[:templateTitleMax]))
	}
	return name
}

func fileBase(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// Import processa o arquivo e, se válido, grava o template e as tarefas
func (im *Importer) Import(ctx context.Context, req ImportRequest) (result *ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			utilities.LogError(fmt.Errorf("%v", r), "Import: panic durante o import")
			result = failure(fmt.Sprintf("unexpected error during import: %v", r), nil)
		}
	}()

	if strings.TrimSpace(req.ClinicID) == "" && !req.DryRun {
		return failure("clinic id is required", nil)
	}

	result = ProcessFile(req.File)
	if !result.Success || req.DryRun {
		return result
	}
	summary := result.Summary

	tpl := SanitizeTemplate(result.Data.Template)
	tpl.ClinicID = req.ClinicID
	tpl.CreatedBy = req.CreatedBy

	tasks := make([]models.ImportableTask, len(result.Data.Tasks))
	for i, t := range result.Data.Tasks {
		tasks[i] = SanitizeTaskData(t)
	}

	logger := utilities.Logger.WithFields(logrus.Fields{
		"clinic_id": req.ClinicID,
		"file":      req.File.Name,
	})

	id, err := im.store.CreateTemplate(ctx, tpl)
	if err != nil {
		logger.WithError(err).Error("Import: erro ao criar template")
		return failure(fmt.Sprintf("failed to create template: %v", err), summary)
	}
	tpl.ID = id
	logger = logger.WithField("template_id", id)

	batchSize := im.opts.BatchSize
	for start := 0; start < len(tasks); start += batchSize {
		end := min(start+batchSize, len(tasks))
		batch := start/batchSize + 1
		if err := im.store.CreateTasks(ctx, tpl, tasks[start:end]); err != nil {
			logger.WithError(err).WithField("batch", batch).Error("Import: erro ao criar lote de tarefas")
			if im.rollback(ctx, logger, id) {
				summary.CreatedTasks = 0
			}
			return failure(fmt.Sprintf("failed to create tasks (batch %d): %v", batch, err), summary)
		}
		summary.CreatedTasks = end
	}

	logger.Infof("Import concluído: %d tarefas criadas", summary.CreatedTasks)
	return &ImportResult{
		Success: true,
		Data:    &ImportData{Template: tpl, Tasks: tasks},
		Summary: summary,
	}
}

// rollback devolve true quando o template (e suas tarefas) foi removido
func (im *Importer) rollback(ctx context.Context, logger *logrus.Entry, templateID string) bool {
	if !im.opts.RollbackOnFailure {
		utilities.LogWarn("Import: template %s e lotes anteriores mantidos (sem rollback)", templateID)
		return false
	}
	deleter, ok := im.store.(TemplateDeleter)
	if !ok {
		utilities.LogWarn("Import: store não suporta remoção de template, rollback de %s ignorado", templateID)
		return false
	}
	if err := deleter.DeleteTemplate(ctx, templateID); err != nil {
		logger.WithError(err).Error("Import: falha ao remover template após erro")
		return false
	}
	logger.Info("Import: template removido após falha")
	return true
}
