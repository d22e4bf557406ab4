package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clinica-tarefas/config"
	"clinica-tarefas/csvimport"
	"clinica-tarefas/database"
	"clinica-tarefas/models"
	"clinica-tarefas/utilities"
)

func newImportCmd() *cobra.Command {
	var (
		clinicID      string
		createdBy     string
		templateTitle string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV/XLSX file as a task template of a clinic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(clinicID); err != nil {
				return fmt.Errorf("invalid --clinic: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utilities.InitLoggerWithOutput(cfg.LogLevel, cmd.ErrOrStderr())

			db, err := database.ConnectPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			clinic, err := models.NewClinicRepository(db).GetClinic(cmd.Context(), clinicID)
			if err != nil {
				return err
			}
			utilities.LogInfo("Importando %s para a clínica %s (%s)", args[0], clinic.Name, clinic.ID)

			file, closeFile, err := openImportFile(args[0], templateTitle)
			if err != nil {
				return err
			}
			defer closeFile()

			importer := csvimport.NewImporter(models.NewTemplateRepository(db), csvimport.Options{
				BatchSize:         cfg.Import.BatchSize,
				RollbackOnFailure: cfg.Import.RollbackOnFailure,
			})
			res := importer.Import(cmd.Context(), csvimport.ImportRequest{
				File:      file,
				ClinicID:  clinic.ID,
				CreatedBy: createdBy,
				DryRun:    dryRun,
			})
			return writeResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&clinicID, "clinic", "", "Clinic UUID (required)")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Firebase UID recorded as the template author")
	cmd.Flags().StringVar(&templateTitle, "template-title", "", "Template title (defaults to the file name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only, do not write")
	_ = cmd.MarkFlagRequired("clinic")
	return cmd
}
