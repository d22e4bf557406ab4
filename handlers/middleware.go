package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"clinica-tarefas/utilities"
)

type contextKey string

const userUIDKey contextKey = "userUID"

// TokenVerifier valida o ID token do Firebase. *auth.Client já satisfaz a interface.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserUIDFromContext devolve o UID colocado no contexto pelo AuthMiddleware
func UserUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userUIDKey).(string)
	return uid, ok && uid != ""
}

// AuthMiddleware verifica o token do header Authorization e coloca o UID no contexto
func AuthMiddleware(verifier TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utilities.LogError(errors.New("header de autorização ausente"), "Autenticação falhou")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			verifiedToken, err := verifier.VerifyIDToken(r.Context(), tokenString)
			if err != nil {
				utilities.LogError(err, "Token inválido")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userUIDKey, verifiedToken.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// ResponseWriter personalizado para capturar o status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		utilities.LogRequest(r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, time.Since(start))
	})
}

// responseWriter é um wrapper para http.ResponseWriter que captura o status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captura o status code antes de escrevê-lo
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
