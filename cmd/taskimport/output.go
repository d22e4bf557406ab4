package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"clinica-tarefas/csvimport"
)

var errImportFailed = errors.New("import failed")

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult imprime o resultado e devolve erro quando o import falhou
func writeResult(w io.Writer, res *csvimport.ImportResult) error {
	if err := writeJSON(w, res); err != nil {
		return err
	}
	if !res.Success {
		return errImportFailed
	}
	return nil
}

func openImportFile(path, templateTitle string) (csvimport.ImportFile, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvimport.ImportFile{}, nil, err
	}
	return csvimport.ImportFile{
		Name:          filepath.Base(path),
		Reader:        f,
		TemplateTitle: templateTitle,
	}, f.Close, nil
}
