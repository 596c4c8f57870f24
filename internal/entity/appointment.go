package entity

import (
	"context"
	"errors"
	"time"
)

var ErrAppointmentNotFound = errors.New("agendamento não encontrado")

type MeetingKind string

const (
	MeetingInPerson MeetingKind = "presencial"
	MeetingOnline   MeetingKind = "online"
	MeetingPhone    MeetingKind = "telefone"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "agendado"
	AppointmentConfirmed AppointmentStatus = "confirmado"
	AppointmentCompleted AppointmentStatus = "concluido"
	AppointmentCancelled AppointmentStatus = "cancelado"
)

const DefaultDurationMinutes = 60

func (k MeetingKind) Valid() bool {
	switch k {
	case MeetingInPerson, MeetingOnline, MeetingPhone:
		return true
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              string            `json:"id,omitempty"`
	Title           string            `json:"title"`
	ClientName      string            `json:"client_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone,omitempty"`
	Date            Date              `json:"date"`
	Time            string            `json:"time"`
	DurationMinutes int               `json:"duration_minutes"`
	Kind            MeetingKind       `json:"kind"`
	Location        string            `json:"location,omitempty"`
	Link            string            `json:"link,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          AppointmentStatus `json:"status"`
	ReminderSent    bool              `json:"reminder_sent"`
	CreatedAt       *time.Time        `json:"created_at,omitempty"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

func (a *Appointment) ApplyDefaults() {
	if a.DurationMinutes == 0 {
		a.DurationMinutes = DefaultDurationMinutes
	}
	if a.Kind == "" {
		a.Kind = MeetingInPerson
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
}

// NormalizePlace mantém só o campo de lugar que faz sentido para o tipo de reunião.
func (a *Appointment) NormalizePlace() {
	switch a.Kind {
	case MeetingInPerson:
		a.Link = ""
	case MeetingOnline:
		a.Location = ""
	default:
		a.Location = ""
		a.Link = ""
	}
}

// StartsAt resolve data + horário no fuso do negócio.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return a.Date.At(a.Time, loc)
}

func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled
}

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, a *Appointment) error
	FindAll(ctx context.Context) ([]Appointment, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	FindPendingReminders(ctx context.Context, from, to Date) ([]Appointment, error)
	MarkReminderSent(ctx context.Context, id string) error
}
