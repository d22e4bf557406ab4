package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clinica-tarefas/csvimport"
)

func newTemplateCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the downloadable import template",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			switch format {
			case "csv":
				data = []byte(csvimport.GenerateTemplate())
			case "xlsx":
				b, err := csvimport.GenerateTemplateXLSX()
				if err != nil {
					return err
				}
				data = b
			default:
				return fmt.Errorf("invalid --format %q (expected csv or xlsx)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default stdout)")
	return cmd
}
