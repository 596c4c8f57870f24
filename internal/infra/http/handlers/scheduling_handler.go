package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

type SchedulingHandler struct {
	Schedule *usecase.ScheduleAppointmentUseCase
}

func NewSchedulingHandler(uc *usecase.ScheduleAppointmentUseCase) *SchedulingHandler {
	return &SchedulingHandler{Schedule: uc}
}

type SchedulingOptions struct {
	MeetingTypes []string `json:"meeting_types"`
	TimeSlots    []string `json:"time_slots"`
}

func (h *SchedulingHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SchedulingOptions{
		MeetingTypes: usecase.MeetingTypes,
		TimeSlots:    usecase.TimeSlots(),
	})
}

func (h *SchedulingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.ScheduleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Schedule.Execute(r.Context(), input, func(a entity.Appointment) {
		middleware.RecordAppointmentScheduled("form")
		log.Printf("📅 Agendamento %s confirmado para %s %s", a.ID, a.Date, a.Time)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}
