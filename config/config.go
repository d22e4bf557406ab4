package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type DatabaseOptions struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"clinica"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// ConnectionString monta a string de conexão no formato aceito pelo lib/pq
func (d DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// ImportOptions controla o pipeline de importação de templates
type ImportOptions struct {
	BatchSize         int   `env:"IMPORT_BATCH_SIZE" envDefault:"5"`
	MaxUploadSize     int64 `env:"IMPORT_MAX_UPLOAD_SIZE" envDefault:"5242880"`
	RollbackOnFailure bool  `env:"IMPORT_ROLLBACK_ON_FAILURE" envDefault:"false"`
	HistoryEnabled    bool  `env:"IMPORT_HISTORY_ENABLED" envDefault:"false"`
}

func (o ImportOptions) Validate() error {
	if o.BatchSize < 1 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive, got %d", o.BatchSize)
	}
	if o.MaxUploadSize < 1 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_SIZE must be positive, got %d", o.MaxUploadSize)
	}
	return nil
}

type Configuration struct {
	Database DatabaseOptions
	Import   ImportOptions

	ServerPort              string   `env:"SERVER_PORT" envDefault:"8080"`
	CORSAllowedOrigins      []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	FirebaseCredentialsPath string   `env:"FIREBASE_CREDENTIALS_PATH"`
	LogLevel                string   `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnv carrega os arquivos .env que existirem, ignorando os ausentes.
func LoadEnv(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load lê .env/.env.local e preenche a configuração a partir das variáveis de ambiente
func Load() (*Configuration, error) {
	if err := LoadEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("failed to load .env files: %w", err)
	}
	return Parse()
}

// Parse lê somente as variáveis de ambiente já definidas no processo
func Parse() (*Configuration, error) {
	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Import.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AllowedOrigins devolve "*" quando nenhuma origem foi configurada
func (c *Configuration) AllowedOrigins() []string {
	if len(c.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return c.CORSAllowedOrigins
}
