package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/assistant-flow-hub/internal/infra/export"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

type LeadHandler struct {
	Leads    *usecase.LeadManager
	Location *time.Location
	Now      func() time.Time
}

func NewLeadHandler(leads *usecase.LeadManager, loc *time.Location) *LeadHandler {
	return &LeadHandler{Leads: leads, Location: loc, Now: time.Now}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Leads.Submit(r.Context(), input, "")
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadSaved("create")
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Leads.Submit(r.Context(), input, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadSaved("update")
	writeJSON(w, http.StatusOK, lead)
}

// Delete só exclui com ?confirm=true.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.Leads.Delete(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLeads(&buf, leads, h.Location); err != nil {
		log.Printf("❌ Erro ao gerar planilha de leads: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, CodeInternal, "não foi possível gerar a planilha")
		return
	}

	filename := fmt.Sprintf("leads-%s.xlsx", h.Now().In(h.Location).Format("2006-01-02"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
