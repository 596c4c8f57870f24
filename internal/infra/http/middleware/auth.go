package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

// BearerToken extrai o token do header Authorization.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireIdentity barra a requisição sem sessão válida e coloca o usuário no contexto.
func RequireIdentity(provider entity.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := provider.Current(r.Context(), BearerToken(r))
			if err != nil {
				if errors.Is(err, entity.ErrNoIdentity) {
					unauthorized(w)
					return
				}
				log.Printf("❌ Erro ao validar sessão: %v", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "SESSION_UNAVAILABLE",
					"message": "não foi possível validar a sessão",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(entity.WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": "faça login para continuar",
	})
}
