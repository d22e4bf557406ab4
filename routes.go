package main

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"clinica-tarefas/config"
	"clinica-tarefas/handlers"
	"clinica-tarefas/utilities"
)

// NewRouter monta as rotas da API de importação
func NewRouter(h *handlers.ImportHandlers, verifier handlers.TokenVerifier) *mux.Router {
	auth := handlers.AuthMiddleware(verifier)

	r := mux.NewRouter()

	// Aplicar o middleware de logging global em todas as rotas
	r.Use(handlers.LoggingMiddleware)

	// --- Rotas públicas ---
	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")
	r.HandleFunc("/templates/import-template.csv", handlers.DownloadCSVTemplateHandler).Methods("GET")
	r.HandleFunc("/templates/import-template.xlsx", handlers.DownloadXLSXTemplateHandler).Methods("GET")

	// --- Import de templates (protegida, aninhada sob a clínica) ---
	r.HandleFunc("/clinic/{clinic_id}/templates/import", auth(h.ImportTemplateHandler)).Methods("POST")

	return r
}

// WithCORS aplica a configuração de CORS ao roteador
func WithCORS(cfg *config.Configuration, r http.Handler) http.Handler {
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "X-Request-ID", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})

	allowedOrigins := cfg.AllowedOrigins()
	if len(cfg.CORSAllowedOrigins) == 0 {
		utilities.LogWarn("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	}
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", allowedOrigins)

	return gorillahandlers.CORS(headers, methods, gorillahandlers.AllowedOrigins(allowedOrigins))(r)
}

func LoadRoutes(cfg *config.Configuration, r *mux.Router) error {
	handler := WithCORS(cfg, r)

	utilities.LogInfo("Servidor iniciado na porta %s", cfg.ServerPort)
	return http.ListenAndServe(":"+cfg.ServerPort, handler)
}
