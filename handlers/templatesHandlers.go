package handlers

import (
	"io"
	"net/http"

	"clinica-tarefas/csvimport"
	"clinica-tarefas/utilities"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadCSVTemplateHandler devolve o CSV modelo com linhas de exemplo
func DownloadCSVTemplateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="task-import-template.csv"`)
	if _, err := io.WriteString(w, csvimport.GenerateTemplate()); err != nil {
		utilities.LogError(err, "DownloadCSVTemplateHandler: erro ao escrever resposta")
	}
}

// DownloadXLSXTemplateHandler devolve a mesma planilha modelo em XLSX
func DownloadXLSXTemplateHandler(w http.ResponseWriter, r *http.Request) {
	data, err := csvimport.GenerateTemplateXLSX()
	if err != nil {
		utilities.LogError(err, "DownloadXLSXTemplateHandler: erro ao gerar planilha")
		http.Error(w, "Failed to generate template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="task-import-template.xlsx"`)
	if _, err := w.Write(data); err != nil {
		utilities.LogError(err, "DownloadXLSXTemplateHandler: erro ao escrever resposta")
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
