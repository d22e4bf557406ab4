package main

import (
	"context"
	"log"

	"clinica-tarefas/config"
	"clinica-tarefas/csvimport"
	"clinica-tarefas/database"
	"clinica-tarefas/firebase"
	"clinica-tarefas/handlers"
	"clinica-tarefas/models"
	"clinica-tarefas/utilities"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	// Inicializar o sistema de logs
	utilities.InitLogger(cfg.LogLevel)

	db, err := database.ConnectPostgres(cfg.Database)
	if err != nil {
		utilities.Logger.Fatalf("Erro ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		utilities.Logger.Fatalf("Erro ao inicializar Firebase: %v", err)
	}
	authClient, err := firebase.AuthClient(ctx, app)
	if err != nil {
		utilities.Logger.Fatalf("%v", err)
	}

	var history handlers.HistoryLogger
	if cfg.Import.HistoryEnabled {
		fs, err := firebase.FirestoreClient(ctx, app)
		if err != nil {
			utilities.Logger.Fatalf("%v", err)
		}
		defer fs.Close()
		history = firebase.NewImportHistoryLogger(fs)
		utilities.LogInfo("Histórico de imports habilitado no Firestore")
	}

	importer := csvimport.NewImporter(models.NewTemplateRepository(db), csvimport.Options{
		BatchSize:         cfg.Import.BatchSize,
		RollbackOnFailure: cfg.Import.RollbackOnFailure,
	})

	h := &handlers.ImportHandlers{
		Importer:      importer,
		Members:       models.NewClinicRepository(db),
		History:       history,
		MaxUploadSize: cfg.Import.MaxUploadSize,
	}

	if err := LoadRoutes(cfg, NewRouter(h, authClient)); err != nil {
		utilities.Logger.Fatalf("Servidor encerrado: %v", err)
	}
}
