package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"clinica-tarefas/config"
	"clinica-tarefas/utilities"
)

const pingTimeout = 5 * time.Second

func ConnectPostgres(opts config.DatabaseOptions) (*sql.DB, error) {
	// Abre a conexão
	db, err := sql.Open("postgres", opts.ConnectionString())
	if err != nil {
		utilities.LogError(err, "Erro ao abrir conexão com o banco de dados")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Testa a conexão
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		utilities.LogError(err, "Erro ao conectar ao banco de dados")
		return nil, fmt.Errorf("failed to connect to database %s@%s:%s: %w", opts.Name, opts.Host, opts.Port, err)
	}

	utilities.LogInfo("Conectado ao PostgreSQL com sucesso!")
	return db, nil
}
