package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

type IntegrationHandler struct {
	Settings *usecase.IntegrationSettings
}

func NewIntegrationHandler(settings *usecase.IntegrationSettings) *IntegrationHandler {
	return &IntegrationHandler{Settings: settings}
}

func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings.All())
}

func (h *IntegrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.Settings.State(chi.URLParam(r, "provider"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *IntegrationHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings map[string]any
	if !decodeJSON(w, r, &settings) {
		return
	}

	state, err := h.Settings.Save(r.Context(), chi.URLParam(r, "provider"), settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Toggle conecta ou desconecta; a falha de credencial volta como 400 com os campos.
func (h *IntegrationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	state, err := h.Settings.Toggle(r.Context(), provider)
	if err != nil {
		var de *usecase.DomainError
		if errors.As(err, &de) && de.Code == usecase.CodeMissingCredentials {
			middleware.RecordIntegrationToggle(provider, "rejected")
		}
		writeError(w, err)
		return
	}

	result := "disconnected"
	if state.Connected {
		result = "connected"
	}
	middleware.RecordIntegrationToggle(provider, result)
	writeJSON(w, http.StatusOK, state)
}
