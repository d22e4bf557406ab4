package main

import (
	"github.com/spf13/cobra"

	"clinica-tarefas/csvimport"
)

func newValidateCmd() *cobra.Command {
	var templateTitle string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse and validate a CSV/XLSX file without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, closeFile, err := openImportFile(args[0], templateTitle)
			if err != nil {
				return err
			}
			defer closeFile()

			return writeResult(cmd.OutOrStdout(), csvimport.ProcessFile(file))
		},
	}

	cmd.Flags().StringVar(&templateTitle, "template-title", "", "Template title (defaults to the file name)")
	return cmd
}
