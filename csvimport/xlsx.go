package csvimport

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Tasks"

// readXLSXRows lê a primeira planilha do arquivo, ignorando linhas em branco
func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx file has no sheets")
	}
	// valores crus: datas chegam como número serial e não no formato de exibição
	all, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	rows := make([][]string, 0, len(all))
	for _, row := range all {
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		convertDateSerials(rows[0], rows[1:])
	}
	return rows, nil
}

// convertDateSerials troca seriais do Excel nas colunas de data por ISO-8601
func convertDateSerials(header []string, data [][]string) {
	var dateCols []int
	for i, h := range header {
		switch headerFields[NormalizeHeader(h)] {
		case fieldDueDate, fieldCustomDueDate:
			dateCols = append(dateCols, i)
		}
	}
	for _, row := range data {
		for _, col := range dateCols {
			if col >= len(row) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				continue
			}
			row[col] = t.Format(isoLayout)
		}
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// GenerateTemplateXLSX gera a mesma planilha modelo de GenerateTemplate em XLSX
func GenerateTemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, err
	}

	rows := append([][]string{templateHeaders}, sampleRows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx template: %w", err)
	}
	return buf.Bytes(), nil
}
