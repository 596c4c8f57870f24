package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

type AppointmentHandler struct {
	Appointments *usecase.AppointmentManager
	Now          func() time.Time
}

func NewAppointmentHandler(appointments *usecase.AppointmentManager) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Now: time.Now}
}

// List devolve todos, ou só os do dia pedido em ?date=YYYY-MM-DD.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var day entity.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := entity.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   usecase.CodeValidation,
				Message: "data inválida, use YYYY-MM-DD",
				Fields:  []usecase.ValidationError{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}},
			})
			return
		}
		day = d
	}

	all, err := h.Appointments.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if day.IsZero() {
		writeJSON(w, http.StatusOK, all)
		return
	}
	writeJSON(w, http.StatusOK, h.Appointments.OnDate(day))
}

func (h *AppointmentHandler) Today(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Appointments.Load(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Appointments.Today(h.Now()))
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Appointments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.AppointmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Appointments.Submit(r.Context(), input, "")
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordAppointmentScheduled("panel")
	writeJSON(w, http.StatusCreated, a)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.AppointmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Appointments.Submit(r.Context(), input, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.Appointments.Delete(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
