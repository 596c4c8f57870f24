package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/auth"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
)

type AuthHandler struct {
	Identity entity.IdentityProvider
	limiter  *RateLimiter
}

func NewAuthHandler(identity entity.IdentityProvider, signInPerMinute int) *AuthHandler {
	return &AuthHandler{
		Identity: identity,
		limiter:  NewRateLimiter(signInPerMinute),
	}
}

type SignInRequest struct {
	IDToken string `json:"id_token"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, CodeRateLimited, "muitas tentativas, aguarde um pouco")
		return
	}

	var req SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.Identity.SignIn(r.Context(), req.IDToken)
	if err != nil {
		if auth.IsAuthError(err) {
			writeErrorResponse(w, http.StatusUnauthorized, CodeUnauthorized, "não foi possível entrar com essa conta")
			return
		}
		log.Printf("❌ Erro no login: %v", err)
		writeErrorResponse(w, http.StatusBadGateway, CodeInternal, "serviço de login indisponível")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Identity.SignOut(r.Context(), middleware.BearerToken(r)); err != nil {
		log.Printf("❌ Erro no logout: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, CodeInternal, "não foi possível encerrar a sessão")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := entity.IdentityFrom(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, CodeUnauthorized, "faça login para continuar")
		return
	}
	writeJSON(w, http.StatusOK, id)
}
