package usecase

import (
	"context"
	"math"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

const upcomingLimit = 5

type QuickAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

var quickActions = []QuickAction{
	{ID: "new_appointment", Label: "Novo Agendamento", Method: "POST", Path: "/api/scheduling"},
	{ID: "new_lead", Label: "Novo Lead", Method: "POST", Path: "/api/leads"},
	{ID: "export_leads", Label: "Exportar Leads", Method: "GET", Path: "/api/leads/export"},
}

type DashboardSummary struct {
	AppointmentsToday int                  `json:"appointments_today"`
	TotalLeads        int                  `json:"total_leads"`
	LeadsByStatus     map[string]int       `json:"leads_by_status"`
	CompletionRate    float64              `json:"completion_rate"`
	AverageDuration   float64              `json:"average_duration"`
	Upcoming          []entity.Appointment `json:"upcoming"`
	QuickActions      []QuickAction        `json:"quick_actions"`
	GeneratedAt       time.Time            `json:"generated_at"`
}

type DashboardUseCase struct {
	Leads        *LeadManager
	Appointments *AppointmentManager
}

func NewDashboardUseCase(leads *LeadManager, appointments *AppointmentManager) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads, Appointments: appointments}
}

// Summary recarrega as duas coleções e calcula os números do painel.
func (uc *DashboardUseCase) Summary(ctx context.Context, now time.Time) (*DashboardSummary, error) {
	leads, err := uc.Leads.Load(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := uc.Appointments.Load(ctx)
	if err != nil {
		return nil, err
	}

	today := entity.DateIn(now, uc.Appointments.Location)

	summary := &DashboardSummary{
		AppointmentsToday: len(uc.Appointments.OnDate(today)),
		TotalLeads:        len(leads),
		LeadsByStatus:     make(map[string]int),
		Upcoming:          []entity.Appointment{},
		QuickActions:      quickActions,
		GeneratedAt:       now,
	}

	for _, l := range leads {
		summary.LeadsByStatus[string(l.Status)]++
	}

	var active, completed, totalMinutes int
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		active++
		totalMinutes += a.DurationMinutes
		if a.Status == entity.AppointmentCompleted {
			completed++
		}
		// a lista já vem ordenada por data e horário
		if !a.Date.Before(today) && a.Status != entity.AppointmentCompleted && len(summary.Upcoming) < upcomingLimit {
			summary.Upcoming = append(summary.Upcoming, a)
		}
	}

	if active > 0 {
		summary.CompletionRate = round2(float64(completed) / float64(active) * 100)
		summary.AverageDuration = round2(float64(totalMinutes) / float64(active))
	}

	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
