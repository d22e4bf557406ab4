package csvimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clinica-tarefas/models"
)

type fakeStore struct {
	templateID  string
	templateErr error
	failOnBatch int
	panicOnCall bool

	templates []models.ImportableTaskTemplate
	batches   [][]models.ImportableTask
	deleted   []string
}

func (f *fakeStore) CreateTemplate(_ context.Context, tpl models.ImportableTaskTemplate) (string, error) {
	if f.panicOnCall {
		panic("driver exploded")
	}
	f.templates = append(f.templates, tpl)
	if f.templateErr != nil {
		return "", f.templateErr
	}
	return f.templateID, nil
}

func (f *fakeStore) CreateTasks(_ context.Context, tpl models.ImportableTaskTemplate, tasks []models.ImportableTask) error {
	f.batches = append(f.batches, tasks)
	if len(f.batches) == f.failOnBatch {
		return errors.New("insert failed")
	}
	return nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func csvFile(name, text string) ImportFile {
	return ImportFile{Name: name, Reader: strings.NewReader(text)}
}

func csvWithTasks(n int) string {
	var sb strings.Builder
	sb.WriteString("title,priority\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "\"Task number %d\",\"high\"\n", i)
	}
	return sb.String()
}

func TestProcessFile_SingleRowFile(t *testing.T) {
	text := "title,description,category,priority,due_type,recurrence\n" +
		`"Check autoclave","Daily check","operational","high","before_opening","daily"` + "\n"

	res := ProcessFile(csvFile("opening.csv", text))
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Tasks, 1)

	task := res.Data.Tasks[0]
	assert.Equal(t, "Check autoclave", task.Title)
	assert.Equal(t, "operational", task.Category)
	assert.Equal(t, "high", task.Priority)

	tpl := res.Data.Template
	assert.Equal(t, "opening", tpl.Title)
	assert.Equal(t, "operational", tpl.Category)
	assert.Equal(t, "high", tpl.Priority)
	assert.Equal(t, "before_opening", tpl.DueType)
	assert.Equal(t, "daily", tpl.Recurrence)
	assert.Equal(t, models.SourceTypeCSV, tpl.SourceType)

	assert.Equal(t, &ImportSummary{TotalTasks: 1, ValidTasks: 1, TemplateName: "opening"}, res.Summary)
}

func TestProcessFile_TemplateDefaultsComeFromFirstRowOnly(t *testing.T) {
	text := "title,category,priority\n" +
		"\"First task\",\"\",\"low\"\n" +
		"\"Second task\",\"clinical\",\"high\"\n"

	res := ProcessFile(csvFile("checklist.csv", text))
	require.True(t, res.Success, res.Error)

	tpl := res.Data.Template
	assert.Equal(t, models.DefaultCategory, tpl.Category)
	assert.Equal(t, "low", tpl.Priority)
	assert.Equal(t, models.DefaultDueType, tpl.DueType)
	assert.Equal(t, "clinical", res.Data.Tasks[1].Category)
}

func TestProcessFile_StructuralErrors(t *testing.T) {
	res := ProcessFile(csvFile("checklist.csv", "description,category\n\"a\",\"b\"\n"))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "title")
	assert.Nil(t, res.Data)

	res = ProcessFile(csvFile("checklist.csv", "title,description\n\n  \n"))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "header row")

	res = ProcessFile(ImportFile{Name: "x.csv"})
	assert.False(t, res.Success)
}

func TestProcessFile_NoValidTasks(t *testing.T) {
	res := ProcessFile(csvFile("checklist.csv", "title,description\n\"A\",\"too short\"\n\"\",\"empty\"\n"))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no valid tasks")
	assert.Equal(t, 2, res.Summary.InvalidTasks)
}

func TestProcessFile_SkipsShortTitleRows(t *testing.T) {
	res := ProcessFile(csvFile("checklist.csv", "title\n\"Good task\"\n\"B\"\n\"Another good one\"\n"))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 3, res.Summary.TotalTasks)
	assert.Equal(t, 2, res.Summary.ValidTasks)
	assert.Equal(t, 1, res.Summary.InvalidTasks)
}

func TestProcessFile_DuplicateTitlesWarnOnly(t *testing.T) {
	res := ProcessFile(csvFile("checklist.csv", "title\n\"Clean Room\"\n\"clean room \"\n"))
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Summary.Warnings, 1)
	assert.Contains(t, res.Summary.Warnings[0], "clean room")
}

func TestProcessFile_ValidationFailure(t *testing.T) {
	f := csvFile("checklist.csv", "title\n\""+strings.Repeat("t", 256)+"\"\n")
	res := ProcessFile(f)
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "validation failed: "))
	assert.Contains(t, res.Error, "Task 1")
	assert.Nil(t, res.Data)
}

func TestProcessFile_TemplateTitleOverride(t *testing.T) {
	f := csvFile("upload.csv", csvWithTasks(1))
	f.TemplateTitle = "  Sterilization  "
	res := ProcessFile(f)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Sterilization", res.Data.Template.Title)
	assert.Equal(t, "Sterilization", res.Summary.TemplateName)
}

func TestProcessFile_TitleFromFileNameStaysInBounds(t *testing.T) {
	const body = "title\n\"Check autoclave\"\n"

	res := ProcessFile(csvFile("a.csv", body))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Imported Template", res.Data.Template.Title)

	long := strings.Repeat("r", 210)
	res = ProcessFile(csvFile(long+".csv", body))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 200, utf8.RuneCountInString(res.Data.Template.Title))
	assert.Equal(t, res.Data.Template.Title, res.Summary.TemplateName)
}

func TestProcessFile_ExplicitTitleIsStillValidated(t *testing.T) {
	f := csvFile("rotina.csv", "title\n\"Check autoclave\"\n")
	f.TemplateTitle = "A"
	res := ProcessFile(f)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "Template title")
}

func TestProcessFile_NoFileName(t *testing.T) {
	res := ProcessFile(csvFile("", "title\n\"Check autoclave\"\n"))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Imported Template", res.Data.Template.Title)
	assert.Empty(t, res.Data.Template.Description)

	res = ProcessFile(csvFile("/uploads/rotina.csv", "title\n\"Check autoclave\"\n"))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Imported from rotina.csv", res.Data.Template.Description)
}

func TestProcessFile_TemplateRoundTrip(t *testing.T) {
	res := ProcessFile(csvFile("template.csv", GenerateTemplate()))
	require.True(t, res.Success, res.Error)

	titles := make([]string, len(res.Data.Tasks))
	for i, task := range res.Data.Tasks {
		titles[i] = task.Title
	}
	assert.Equal(t, SampleTitles(), titles)
	assert.Empty(t, res.Summary.Warnings)

	assert.Equal(t, "Run the daily cycle test, then log the result", res.Data.Tasks[0].Description)
	assert.Equal(t, []string{"Count gloves", "Count masks", "Order missing items"}, res.Data.Tasks[1].ChecklistItems)
	assert.Equal(t, "2025-01-31T17:00:00.000Z", res.Data.Tasks[2].DueDate)
}

func TestProcessFile_XLSXTemplateRoundTrip(t *testing.T) {
	data, err := GenerateTemplateXLSX()
	require.NoError(t, err)

	res := ProcessFile(ImportFile{Name: "template.XLSX", Reader: bytes.NewReader(data)})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, models.SourceTypeXLSX, res.Data.Template.SourceType)
	require.Len(t, res.Data.Tasks, len(SampleTitles()))
	for i, title := range SampleTitles() {
		assert.Equal(t, title, res.Data.Tasks[i].Title)
	}
}

func TestProcessFile_XLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"title", "due_date", "custom_due_date"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Check autoclave"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", "2025-02-01"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res := ProcessFile(ImportFile{Name: "dates.xlsx", Reader: bytes.NewReader(buf.Bytes())})
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Tasks, 1)
	assert.Equal(t, "2025-01-31T00:00:00.000Z", res.Data.Tasks[0].DueDate)
	assert.Equal(t, "2025-02-01T00:00:00.000Z", res.Data.Tasks[0].CustomDueDate)
}

func TestProcessFile_InvalidXLSX(t *testing.T) {
	res := ProcessFile(ImportFile{Name: "broken.xlsx", Reader: strings.NewReader("not a zip")})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "failed to read file")
}

func TestImporter_Import(t *testing.T) {
	store := &fakeStore{templateID: "tpl-1"}
	im := NewImporter(store, Options{})

	res := im.Import(context.Background(), ImportRequest{
		File:      csvFile("rotina.csv", csvWithTasks(12)),
		ClinicID:  "clinic-1",
		CreatedBy: "uid-1",
	})
	require.True(t, res.Success, res.Error)

	require.Len(t, store.templates, 1)
	assert.Equal(t, "clinic-1", store.templates[0].ClinicID)
	assert.Equal(t, "uid-1", store.templates[0].CreatedBy)
	assert.Equal(t, "tpl-1", res.Data.Template.ID)

	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 5)
	assert.Len(t, store.batches[1], 5)
	assert.Len(t, store.batches[2], 2)
	assert.Equal(t, 12, res.Summary.CreatedTasks)

	// tarefas saem sanitizadas, com padrões preenchidos
	assert.Equal(t, models.DefaultRecurrence, res.Data.Tasks[0].Recurrence)
}

func TestImporter_BatchFailFast(t *testing.T) {
	store := &fakeStore{templateID: "tpl-1", failOnBatch: 2}
	im := NewImporter(store, Options{BatchSize: 5})

	res := im.Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", csvWithTasks(15)),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "batch 2")
	assert.Len(t, store.batches, 2, "no batch after the failing one")
	assert.Equal(t, 5, res.Summary.CreatedTasks)
	assert.Empty(t, store.deleted, "earlier batches are kept")
}

func TestImporter_RollbackOnFailure(t *testing.T) {
	store := &fakeStore{templateID: "tpl-9", failOnBatch: 1}
	im := NewImporter(store, Options{RollbackOnFailure: true})

	res := im.Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", csvWithTasks(3)),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Equal(t, []string{"tpl-9"}, store.deleted)
}

func TestImporter_RollbackResetsCreatedTasks(t *testing.T) {
	store := &fakeStore{templateID: "tpl-9", failOnBatch: 2}
	im := NewImporter(store, Options{RollbackOnFailure: true})

	res := im.Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", csvWithTasks(12)),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Equal(t, []string{"tpl-9"}, store.deleted)
	assert.Zero(t, res.Summary.CreatedTasks)
}

func TestImporter_TemplateFailureCreatesNoTasks(t *testing.T) {
	store := &fakeStore{templateErr: errors.New("duplicate key")}
	res := NewImporter(store, Options{}).Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", csvWithTasks(3)),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "failed to create template")
	assert.Empty(t, store.batches)
}

func TestImporter_InvalidFileNeverTouchesStore(t *testing.T) {
	store := &fakeStore{templateID: "tpl-1"}
	res := NewImporter(store, Options{}).Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", "description\n\"x\"\n"),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Empty(t, store.templates)
	assert.Empty(t, store.batches)
}

func TestImporter_DryRun(t *testing.T) {
	store := &fakeStore{templateID: "tpl-1"}
	res := NewImporter(store, Options{}).Import(context.Background(), ImportRequest{
		File:   csvFile("rotina.csv", csvWithTasks(2)),
		DryRun: true,
	})

	assert.True(t, res.Success)
	assert.Empty(t, store.templates)
	assert.Zero(t, res.Summary.CreatedTasks)
}

func TestImporter_RequiresClinic(t *testing.T) {
	res := NewImporter(&fakeStore{}, Options{}).Import(context.Background(), ImportRequest{
		File: csvFile("rotina.csv", csvWithTasks(2)),
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "clinic")
}

func TestImporter_RecoversFromPanic(t *testing.T) {
	store := &fakeStore{panicOnCall: true}
	res := NewImporter(store, Options{}).Import(context.Background(), ImportRequest{
		File:     csvFile("rotina.csv", csvWithTasks(2)),
		ClinicID: "clinic-1",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "driver exploded")
}
